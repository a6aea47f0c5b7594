//go:build unix

package cursor

import (
	"fmt"
	"os"
	"syscall"
)

// platformMmapFile memory-maps path read-only. Grounded on the
// teacher's internal/fastparser/mmap_unix.go, minus the adjacent
// zero-page placement (see the comment on the mapped type in
// mapped.go for why).
func platformMmapFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		return []byte{}, func() { f.Close() }, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	cleanup := func() {
		_ = syscall.Munmap(data)
		f.Close()
	}
	return data, cleanup, nil
}
