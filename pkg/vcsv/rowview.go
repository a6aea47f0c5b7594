package vcsv

// RowView is an ordered sequence of CellViews plus an optional
// header-to-index mapping. Like CellView, it is a borrow: it is
// invalidated by the Reader's next call to NextRow.
type RowView struct {
	cells      []CellView
	header     *headerMap
	incomplete bool
}

// Count returns the number of fields in this record.
func (r *RowView) Count() int {
	return len(r.cells)
}

// ByIndex returns the i-th cell, 0-based. It returns
// *IndexOutOfRangeError if i is not within [0, Count).
func (r *RowView) ByIndex(i int) (CellView, error) {
	if i < 0 || i >= len(r.cells) {
		return CellView{}, &IndexOutOfRangeError{Index: i, Count: len(r.cells)}
	}
	return r.cells[i], nil
}

// ByName returns the cell for the named column via the Reader's header
// map. It returns *UnknownColumnError if no header map is available or
// name is not present in it.
func (r *RowView) ByName(name string) (CellView, error) {
	if r.header == nil {
		return CellView{}, &UnknownColumnError{Name: name}
	}
	idx, ok := r.header.index(name)
	if !ok {
		return CellView{}, &UnknownColumnError{Name: name}
	}
	return r.ByIndex(idx)
}

// Incomplete reports whether this row was emitted early because EOF
// was reached inside a quoted field under Dialect.YieldIncompleteRow.
func (r *RowView) Incomplete() bool {
	return r.incomplete
}

// AsTuple materializes every cell's decoded content into a fresh
// []string, grounded on the teacher's Record.Fields() (pkg/csv/dom.go).
func (r *RowView) AsTuple() []string {
	out := make([]string, len(r.cells))
	for i, c := range r.cells {
		out[i] = string(c.Unescaped())
	}
	return out
}

// AsMapping materializes the row into a map keyed by header name,
// grounded on the teacher's Record.GetByName (pkg/csv/dom.go). It
// returns an empty map if this Reader has no header map. Columns
// beyond the header's length are silently dropped; columns the header
// names but the row lacks are simply absent from the result.
func (r *RowView) AsMapping() map[string]string {
	if r.header == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(r.header.names))
	for i, name := range r.header.names {
		if i >= len(r.cells) {
			break
		}
		out[name] = string(r.cells[i].Unescaped())
	}
	return out
}
