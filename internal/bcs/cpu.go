package bcs

// Accelerated reports whether the current CPU exposes byte-class search
// instructions (SSE4.2 PCMPISTRI on x86-64, NEON table lookups on arm64)
// that a hand-written assembly backend could target. vectorcsv does not
// ship such assembly (see DESIGN.md) — this flag instead gates the
// word-parallel (SWAR) scan tier against the scalar one, since on a CPU
// old enough to lack these features the extra arithmetic of the
// word-parallel path is not worth it over the unrolled scalar loop.
func Accelerated() bool {
	return accelerated()
}
