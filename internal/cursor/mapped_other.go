//go:build !unix

package cursor

import (
	"fmt"
	"os"
)

// platformMmapFile falls back to reading the whole file on platforms
// without a POSIX mmap, matching the teacher's mmap_other.go.
func platformMmapFile(path string) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, func() {}, nil
}
