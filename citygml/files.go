package citygml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// GetCityGMLFiles finds the files in directoryPath matching pattern, sorted
// by name and capped at limit. A limit of 0 means no cap.
func GetCityGMLFiles(directoryPath, pattern string, limit int) ([]string, error) {
	info, err := os.Stat(directoryPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory not found: %s", directoryPath)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", directoryPath)
	}

	files, err := filepath.Glob(filepath.Join(directoryPath, pattern))
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}
