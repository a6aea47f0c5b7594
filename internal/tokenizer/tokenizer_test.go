package tokenizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/vectorcsv/internal/cursor"
	"github.com/shapestone/vectorcsv/internal/dialect"
)

// collectRow resolves row.Cells[:row.Count] against c's current buffer
// and advances c by row.Consumed, mirroring what pkg/vcsv.Reader does
// between a Next call and the next one.
func collectRow(t *testing.T, c cursor.Cursor, row *Row) []string {
	t.Helper()
	buf := c.Peek()
	out := make([]string, row.Count)
	for i := 0; i < row.Count; i++ {
		cell := row.Cells[i]
		out[i] = string(buf[cell.Start : cell.Start+cell.Len])
	}
	c.Advance(row.Consumed)
	return out
}

func parseAll(t *testing.T, input string, d dialect.Dialect) ([][]string, []bool, error) {
	t.Helper()
	c := cursor.NewBuffered(strings.NewReader(input), 4)
	cls := BuildClasses(d)
	var rows [][]string
	var incomplete []bool
	row := &Row{}
	for {
		err := Next(c, cls, d, row)
		if errors.Is(err, ErrEndOfStream) {
			return rows, incomplete, nil
		}
		if err != nil {
			return rows, incomplete, err
		}
		rows = append(rows, collectRow(t, c, row))
		incomplete = append(incomplete, row.Incomplete)
	}
}

func TestScenarios(t *testing.T) {
	d := dialect.Default()

	cases := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"basic_rows", "a,b,c\n1,2,3\n", [][]string{{"a", "b", "c"}, {"1", "2", "3"}}},
		{"empty_middle_field", "a,,c\n", [][]string{{"a", "", "c"}}},
		{"crlf_line_endings", "x\r\ny\r\n", [][]string{{"x"}, {"y"}}},
		{"no_trailing_newline", "x", [][]string{{"x"}}},
		{"empty_input", "", nil},
		{"only_newline", "\n", [][]string{{""}}},
		{"trailing_comma_at_eof", "a,", [][]string{{"a", ""}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _, err := parseAll(t, tc.input, d)
			if err != nil {
				t.Fatalf("parseAll(%q): %v", tc.input, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("parseAll(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
			for i := range got {
				if len(got[i]) != len(tc.want[i]) {
					t.Fatalf("row %d = %#v, want %#v", i, got[i], tc.want[i])
				}
				for j := range got[i] {
					if got[i][j] != tc.want[i][j] {
						t.Fatalf("row %d cell %d = %q, want %q", i, j, got[i][j], tc.want[i][j])
					}
				}
			}
		})
	}
}

func TestQuotedFieldWithEmbeddedComma(t *testing.T) {
	d := dialect.Default()
	c := cursor.NewBuffered(strings.NewReader(`"a,b","c""d"`+"\n"), 4)
	cls := BuildClasses(d)
	row := &Row{}

	if err := Next(c, cls, d, row); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if row.Count != 2 {
		t.Fatalf("Count = %d, want 2", row.Count)
	}
	buf := c.Peek()
	first := buf[row.Cells[0].Start : row.Cells[0].Start+row.Cells[0].Len]
	second := buf[row.Cells[1].Start : row.Cells[1].Start+row.Cells[1].Len]
	if string(first) != "a,b" || row.Cells[0].Escaped {
		t.Fatalf("cell0 = %q escaped=%v, want %q escaped=false", first, row.Cells[0].Escaped, "a,b")
	}
	if string(second) != `c""d` || !row.Cells[1].Escaped {
		t.Fatalf("cell1 = %q escaped=%v, want %q escaped=true", second, row.Cells[1].Escaped, `c""d`)
	}
}

func TestUnterminatedQuotedFieldStrict(t *testing.T) {
	d := dialect.Default()
	c := cursor.NewBuffered(strings.NewReader(`"oops`), 4)
	cls := BuildClasses(d)
	row := &Row{}

	err := Next(c, cls, d, row)
	var target *UnterminatedQuotedFieldError
	if !errors.As(err, &target) {
		t.Fatalf("Next error = %v, want *UnterminatedQuotedFieldError", err)
	}
}

func TestUnterminatedQuotedFieldYieldsIncompleteRow(t *testing.T) {
	d := dialect.Default()
	d.YieldIncompleteRow = true
	c := cursor.NewBuffered(strings.NewReader(`"oops`), 4)
	cls := BuildClasses(d)
	row := &Row{}

	if err := Next(c, cls, d, row); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !row.Incomplete {
		t.Fatal("expected Incomplete = true")
	}
	if row.Count != 1 {
		t.Fatalf("Count = %d, want 1", row.Count)
	}
	buf := c.Peek()
	cell := row.Cells[0]
	if got := string(buf[cell.Start : cell.Start+cell.Len]); got != "oops" {
		t.Fatalf("cell = %q, want %q", got, "oops")
	}
	if !cell.Escaped {
		t.Fatal("expected partial cell to be reported escaped")
	}
}

func TestNoTrailingNewlineAfterQuotedField(t *testing.T) {
	d := dialect.Default()
	c := cursor.NewBuffered(strings.NewReader("a,b\n\"c\"\"c\",d"), 4)
	cls := BuildClasses(d)
	row := &Row{}

	if err := Next(c, cls, d, row); err != nil {
		t.Fatalf("Next (row 1): %v", err)
	}
	if row.Count != 2 {
		t.Fatalf("row 1 Count = %d, want 2", row.Count)
	}
	buf := c.Peek()
	if string(buf[row.Cells[0].Start:row.Cells[0].Start+row.Cells[0].Len]) != "a" ||
		string(buf[row.Cells[1].Start:row.Cells[1].Start+row.Cells[1].Len]) != "b" {
		t.Fatalf("row 1 = %#v", row.Cells[:row.Count])
	}
	c.Advance(row.Consumed)

	if err := Next(c, cls, d, row); err != nil {
		t.Fatalf("Next (row 2): %v", err)
	}
	if row.Count != 2 {
		t.Fatalf("row 2 Count = %d, want 2", row.Count)
	}
	buf = c.Peek()
	first := buf[row.Cells[0].Start : row.Cells[0].Start+row.Cells[0].Len]
	second := buf[row.Cells[1].Start : row.Cells[1].Start+row.Cells[1].Len]
	if string(first) != `c""c` || !row.Cells[0].Escaped {
		t.Fatalf("cell0 = %q escaped=%v, want %q escaped=true", first, row.Cells[0].Escaped, `c""c`)
	}
	if string(second) != "d" || row.Cells[1].Escaped {
		t.Fatalf("cell1 = %q escaped=%v, want %q escaped=false", second, row.Cells[1].Escaped, "d")
	}
	c.Advance(row.Consumed)

	if err := Next(c, cls, d, row); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("expected ErrEndOfStream, got %v", err)
	}
}

func TestMalformedQuotedField_Strict(t *testing.T) {
	d := dialect.Default()
	c := cursor.NewBuffered(strings.NewReader(`"a"b,c`+"\n"), 4)
	cls := BuildClasses(d)
	row := &Row{}

	err := Next(c, cls, d, row)
	var target *MalformedQuotedFieldError
	if !errors.As(err, &target) {
		t.Fatalf("Next error = %v, want *MalformedQuotedFieldError", err)
	}
}

func TestQuoteInUnquotedFieldIsLiteral(t *testing.T) {
	d := dialect.Default()
	got, _, err := parseAll(t, `ab"cd,e`+"\n", d)
	if err != nil {
		t.Fatalf("parseAll: %v", err)
	}
	want := [][]string{{`ab"cd`, "e"}}
	if len(got) != 1 || len(got[0]) != 2 || got[0][0] != want[0][0] || got[0][1] != want[0][1] {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestDistinctEscapeByte(t *testing.T) {
	d := dialect.Default()
	d.Escape = '\\'
	c := cursor.NewBuffered(strings.NewReader(`"a\"b",c`+"\n"), 4)
	cls := BuildClasses(d)
	row := &Row{}

	if err := Next(c, cls, d, row); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if row.Count != 2 {
		t.Fatalf("Count = %d, want 2", row.Count)
	}
	buf := c.Peek()
	first := buf[row.Cells[0].Start : row.Cells[0].Start+row.Cells[0].Len]
	second := buf[row.Cells[1].Start : row.Cells[1].Start+row.Cells[1].Len]
	// The tokenizer never unescapes: the raw span still carries the
	// escape byte, only flagged for the cell-view layer to decode.
	if string(first) != `a\"b` || !row.Cells[0].Escaped {
		t.Fatalf("cell0 = %q escaped=%v, want %q escaped=true", first, row.Cells[0].Escaped, `a\"b`)
	}
	if string(second) != "c" || row.Cells[1].Escaped {
		t.Fatalf("cell1 = %q escaped=%v, want %q escaped=false", second, row.Cells[1].Escaped, "c")
	}
}

// TestBlockBoundaryIndependence checks that parsing the same logical
// input through tiny reader chunks produces the same rows as parsing
// it through a single large chunk.
func TestBlockBoundaryIndependence(t *testing.T) {
	d := dialect.Default()
	input := `name,age,note` + "\n" +
		`Alice,30,"hi, there"` + "\n" +
		`Bob,25,"she said ""hi"""` + "\n" +
		`Carol,40,plain` + "\n"

	want, _, err := parseAllWithBufsize(t, input, d, 4096)
	if err != nil {
		t.Fatalf("baseline parse: %v", err)
	}

	for _, bufsize := range []int{1, 2, 3, 5, 7, 16, 31} {
		got, _, err := parseAllWithBufsize(t, input, d, bufsize)
		if err != nil {
			t.Fatalf("bufsize=%d: %v", bufsize, err)
		}
		if len(got) != len(want) {
			t.Fatalf("bufsize=%d: got %d rows, want %d", bufsize, len(got), len(want))
		}
		for i := range got {
			if len(got[i]) != len(want[i]) {
				t.Fatalf("bufsize=%d row %d: got %#v, want %#v", bufsize, i, got[i], want[i])
			}
			for j := range got[i] {
				if got[i][j] != want[i][j] {
					t.Fatalf("bufsize=%d row %d cell %d: got %q, want %q", bufsize, i, j, got[i][j], want[i][j])
				}
			}
		}
	}
}

func parseAllWithBufsize(t *testing.T, input string, d dialect.Dialect, bufsize int) ([][]string, []bool, error) {
	t.Helper()
	c := cursor.NewBuffered(strings.NewReader(input), bufsize)
	cls := BuildClasses(d)
	var rows [][]string
	var incomplete []bool
	row := &Row{}
	for {
		err := Next(c, cls, d, row)
		if errors.Is(err, ErrEndOfStream) {
			return rows, incomplete, nil
		}
		if err != nil {
			return rows, incomplete, err
		}
		rows = append(rows, collectRow(t, c, row))
		incomplete = append(incomplete, row.Incomplete)
	}
}
