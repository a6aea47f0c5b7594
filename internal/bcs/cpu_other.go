//go:build !amd64 && !arm64

package bcs

func accelerated() bool {
	return false
}
