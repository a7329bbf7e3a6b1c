package pattern

import "testing"

func TestHeartDimensions(t *testing.T) {
	t.Parallel()

	if got := Heart.Rows(); got != 11 {
		t.Fatalf("Heart.Rows() = %d, want 11", got)
	}
	if got := Heart.Cols(); got != 17 {
		t.Fatalf("Heart.Cols() = %d, want 17", got)
	}
	for i, row := range Heart {
		if len(row) != 17 {
			t.Fatalf("row %d length = %d, want 17", i, len(row))
		}
	}
}

func TestHeartIsMirrored(t *testing.T) {
	t.Parallel()

	cols := Heart.Cols()
	for r := 0; r < Heart.Rows(); r++ {
		for c := 0; c < cols; c++ {
			if Heart.Filled(r, c) != Heart.Filled(r, cols-1-c) {
				t.Fatalf("cell (%d,%d) is not mirrored", r, c)
			}
		}
	}
}

func TestFilledRaggedRows(t *testing.T) {
	t.Parallel()

	p := Pattern{"XX", "X", ""}
	tests := []struct {
		row, col int
		want     bool
	}{
		{row: 0, col: 0, want: true},
		{row: 0, col: 1, want: true},
		{row: 1, col: 0, want: true},
		{row: 1, col: 1, want: false},
		{row: 2, col: 0, want: false},
		{row: -1, col: 0, want: false},
		{row: 0, col: -1, want: false},
		{row: 3, col: 0, want: false},
	}
	for _, tt := range tests {
		if got := p.Filled(tt.row, tt.col); got != tt.want {
			t.Fatalf("Filled(%d,%d) = %t, want %t", tt.row, tt.col, got, tt.want)
		}
	}
	if p.Cols() != 2 {
		t.Fatalf("Cols() = %d, want 2", p.Cols())
	}
	if p.FilledCount() != 3 {
		t.Fatalf("FilledCount() = %d, want 3", p.FilledCount())
	}
}

func TestEmptyPattern(t *testing.T) {
	t.Parallel()

	var p Pattern
	if p.Rows() != 0 || p.Cols() != 0 || p.FilledCount() != 0 {
		t.Fatalf("empty pattern reported rows=%d cols=%d filled=%d", p.Rows(), p.Cols(), p.FilledCount())
	}
}
