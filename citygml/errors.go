package citygml

import "fmt"

// ParseError reports a coordinate list that could not be read.
type ParseError struct {
	File  string // base name of the source document, empty when unknown
	Ring  int    // 1-based ordinal of the ring within its search pass
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid coordinate %q", e.Token)
	if e.Ring > 0 {
		msg = fmt.Sprintf("ring %d: %s", e.Ring, msg)
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }
