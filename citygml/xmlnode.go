package citygml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// XMLNode represents a generic XML node for traversal
type XMLNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []XMLNode  `xml:",any"`
}

// Parse decodes a whole document into a node tree. Element names keep
// their namespace URI in XMLName.Space.
func Parse(r io.Reader) (*XMLNode, error) {
	var root XMLNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// ParseFile reads and decodes the document at path.
func ParseFile(path string) (*XMLNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return root, nil
}

// Is reports whether the node is the element {space}local.
func (n *XMLNode) Is(space, local string) bool {
	return n.XMLName.Space == space && n.XMLName.Local == local
}

// Child returns the first direct child named {space}local, or nil.
func (n *XMLNode) Child(space, local string) *XMLNode {
	for i := range n.Nodes {
		if n.Nodes[i].Is(space, local) {
			return &n.Nodes[i]
		}
	}
	return nil
}

// Children returns the direct children named {space}local.
func (n *XMLNode) Children(space, local string) []*XMLNode {
	var found []*XMLNode
	for i := range n.Nodes {
		if n.Nodes[i].Is(space, local) {
			found = append(found, &n.Nodes[i])
		}
	}
	return found
}

// FindAll returns every descendant named {space}local in document order.
// The node itself is not considered.
func (n *XMLNode) FindAll(space, local string) []*XMLNode {
	var found []*XMLNode
	var walk func(node *XMLNode)
	walk = func(node *XMLNode) {
		for i := range node.Nodes {
			child := &node.Nodes[i]
			if child.Is(space, local) {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(n)
	return found
}
