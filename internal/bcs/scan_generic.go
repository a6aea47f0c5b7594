//go:build !amd64 && !arm64

package bcs

// scan on platforms without a word-parallel tier always uses the scalar
// fallback. Accelerated() is always false here (see cpu_other.go), so
// this mirrors what scan_vector.go would do anyway; kept as a separate
// file so the platform split matches the teacher's own
// stage1_amd64.go/stage1_other.go structure.
func scan(buf []byte, class Class) int {
	return ScanScalar(buf, class)
}
