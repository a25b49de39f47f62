package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 1, Start: 10, End: 12},
			expected: Span{File: 1, Start: 2, End: 12},
		},
		{
			name:     "contained span",
			a:        Span{File: 1, Start: 2, End: 20},
			b:        Span{File: 1, Start: 5, End: 6},
			expected: Span{File: 1, Start: 2, End: 20},
		},
		{
			name:     "other file ignored",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 2, Start: 0, End: 40},
			expected: Span{File: 1, Start: 2, End: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Collapse(t *testing.T) {
	sp := Span{File: 3, Start: 7, End: 11}
	if got := sp.AtStart(); got != (Span{File: 3, Start: 7, End: 7}) {
		t.Errorf("AtStart() = %+v", got)
	}
	if got := sp.AtEnd(); got != (Span{File: 3, Start: 11, End: 11}) {
		t.Errorf("AtEnd() = %+v", got)
	}
	if !sp.AtEnd().Empty() {
		t.Errorf("collapsed span must be empty")
	}
	if sp.Len() != 4 {
		t.Errorf("Len() = %d, want 4", sp.Len())
	}
}
