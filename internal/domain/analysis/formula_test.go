package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
)

func TestFormulaRecognizer_CaseInsensitiveDedup(t *testing.T) {
	r := NewFormulaRecognizer(nil, 0, nil)

	pages := []document.Page{
		{Number: 1, Text: "The compound C6H6 was synthesised."},
		{Number: 2, Text: "A sample of c6h6 and some C8H10 were mixed."},
	}

	got := r.Recognize(pages)
	require.Len(t, got, 2)
	assert.Equal(t, "C6H6", got[0].Formula)
	assert.Equal(t, 1, got[0].PageNumber)
	assert.Equal(t, "C8H10", got[1].Formula)
	assert.Equal(t, 2, got[1].PageNumber)
}

func TestFormulaRecognizer_Canonicalize(t *testing.T) {
	r := NewFormulaRecognizer(nil, 0, nil)

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"simple organic", "C6H6", "C6H6", true},
		{"lowercase organic", "c6h6", "C6H6", true},
		{"acid", "H2SO4", "H2SO4", true},
		{"salt", "NaCl", "NaCl", true},
		{"hydroxide fragment", "CaOH", "CaOH", true},
		{"stopword", "THE", "", false},
		{"prose word", "AND", "", false},
		{"no common element", "AuPt", "", false},
		{"single element", "H2", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.canonicalize(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormulaRecognizer_Cap(t *testing.T) {
	r := NewFormulaRecognizer(nil, 2, nil)

	pages := []document.Page{
		{Number: 1, Text: "C6H6 C2H6O C8H10 C7H8"},
	}

	got := r.Recognize(pages)
	assert.Len(t, got, 2)
}

func TestFormulaRecognizer_Deterministic(t *testing.T) {
	r := NewFormulaRecognizer(nil, 0, nil)
	pages := []document.Page{
		{Number: 1, Text: "C6H6 then NaCl then H2SO4 then c6h6 again"},
	}

	first := r.Recognize(pages)
	second := r.Recognize(pages)
	assert.Equal(t, first, second)
}

func TestFormulaRecognizer_EmptyPages(t *testing.T) {
	r := NewFormulaRecognizer(nil, 0, nil)
	assert.Empty(t, r.Recognize(nil))
	assert.Empty(t, r.Recognize([]document.Page{{Number: 1, Text: ""}}))
}

func TestSortedUnique(t *testing.T) {
	in := []ChemicalFormula{
		{Formula: "NaCl", PageNumber: 2},
		{Formula: "C6H6", PageNumber: 1},
		{Formula: "NaCl", PageNumber: 5},
	}
	assert.Equal(t, []string{"C6H6", "NaCl"}, SortedUnique(in))
}
