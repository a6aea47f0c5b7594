//go:build amd64

package bcs

import "golang.org/x/sys/cpu"

func accelerated() bool {
	return cpu.X86.HasSSE42
}
