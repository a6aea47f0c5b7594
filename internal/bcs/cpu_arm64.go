//go:build arm64

package bcs

import "golang.org/x/sys/cpu"

func accelerated() bool {
	return cpu.ARM64.HasASIMD
}
