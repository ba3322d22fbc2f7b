package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"unicode"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
)

// StructureEncoding is one SMILES line-notation result attributed to the
// image it was derived from.  Placeholder marks encodings that come from the
// stub recogniser rather than real optical structure recognition, so callers
// can tell the two apart without parsing the string.
type StructureEncoding struct {
	SMILES      string `json:"smiles"`
	PageNumber  int    `json:"page_number"`
	Index       int    `json:"image_index"`
	Placeholder bool   `json:"placeholder"`
}

// StructureRecognizer converts patent figures into SMILES encodings.
// Implementations must return exactly one encoding per input image, in input
// order, and must be deterministic over image content.
type StructureRecognizer interface {
	Recognize(ctx context.Context, images []document.Image) ([]StructureEncoding, error)
}

// PlaceholderRecognizer is the stub StructureRecognizer used until a real
// optical chemical structure engine is integrated.  Each image maps to one
// of a fixed set of well-known SMILES strings, selected by a hash of the
// image bytes so repeated analyses of the same document agree.
type PlaceholderRecognizer struct {
	candidates []string
	logger     logging.Logger
}

// NewPlaceholderRecognizer builds the stub over the library's candidate set.
func NewPlaceholderRecognizer(library *PatternLibrary, logger logging.Logger) *PlaceholderRecognizer {
	if library == nil {
		library = DefaultPatternLibrary()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PlaceholderRecognizer{
		candidates: library.PlaceholderSMILES,
		logger:     logger.Named("structure"),
	}
}

// Recognize returns one placeholder encoding per image.  It never fails;
// the error return exists to satisfy the interface a real engine needs.
func (p *PlaceholderRecognizer) Recognize(ctx context.Context, images []document.Image) ([]StructureEncoding, error) {
	out := make([]StructureEncoding, 0, len(images))
	for _, img := range images {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		out = append(out, StructureEncoding{
			SMILES:      p.pick(img.Data),
			PageNumber:  img.PageNumber,
			Index:       img.Index,
			Placeholder: true,
		})
	}
	p.logger.Debug("placeholder structures generated", logging.Int("count", len(out)))
	return out, nil
}

// pick selects a candidate by content hash.  Empty image data still yields a
// stable choice.
func (p *PlaceholderRecognizer) pick(data []byte) string {
	if len(p.candidates) == 0 {
		return ""
	}
	sum := sha256.Sum256(data)
	idx := binary.BigEndian.Uint64(sum[:8]) % uint64(len(p.candidates))
	return p.candidates[idx]
}

// MolecularProperties are rough descriptors derived from a SMILES string by
// token counting.  They are heuristics for triage and sorting, not computed
// chemistry; the same input always yields the same output.
type MolecularProperties struct {
	AtomCount       int     `json:"atom_count"`
	RingCount       int     `json:"ring_count"`
	Aromatic        bool    `json:"aromatic"`
	MolecularWeight float64 `json:"molecular_weight"`
}

// atomicMasses covers the organic subset that appears in SMILES shorthand.
var atomicMasses = map[string]float64{
	"C": 12.011, "N": 14.007, "O": 15.999, "S": 32.06, "P": 30.974,
	"F": 18.998, "Cl": 35.45, "Br": 79.904, "I": 126.904, "B": 10.81,
	"Na": 22.99, "K": 39.098, "Ca": 40.078, "Mg": 24.305, "Li": 6.94,
}

// Properties derives the descriptors for the encoding's SMILES string.
func (e StructureEncoding) Properties() MolecularProperties {
	var p MolecularProperties
	rings := make(map[rune]int)
	runes := []rune(e.SMILES)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsDigit(r):
			rings[r]++
		case unicode.IsLower(r):
			// Aromatic atom shorthand such as c, n, o, s.
			if m, ok := atomicMasses[strings.ToUpper(string(r))]; ok {
				p.Aromatic = true
				p.AtomCount++
				p.MolecularWeight += m
			}
		case unicode.IsUpper(r):
			sym := string(r)
			if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				if _, ok := atomicMasses[sym+string(runes[i+1])]; ok {
					sym += string(runes[i+1])
					i++
				}
			}
			if m, ok := atomicMasses[sym]; ok {
				p.AtomCount++
				p.MolecularWeight += m
			}
		}
	}
	// Each ring closure digit appears twice, once to open and once to close.
	for _, n := range rings {
		p.RingCount += n / 2
	}
	return p
}

// ValidateSMILES reports whether s looks like a syntactically sane SMILES
// string: non-empty, balanced brackets and parentheses, and only characters
// from the SMILES alphabet.  It does not verify chemical validity.
func ValidateSMILES(s string) bool {
	if s == "" {
		return false
	}
	paren, bracket := 0, 0
	for _, r := range s {
		switch {
		case r == '(':
			paren++
		case r == ')':
			paren--
		case r == '[':
			bracket++
		case r == ']':
			bracket--
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		case strings.ContainsRune("=#-+@/\\.%*:", r):
		default:
			return false
		}
		if paren < 0 || bracket < 0 {
			return false
		}
	}
	return paren == 0 && bracket == 0
}
