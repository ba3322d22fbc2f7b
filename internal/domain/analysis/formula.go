package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
)

// ChemicalFormula is one recognised molecular formula with the page it was
// first seen on.  Formula holds the canonical spelling (element symbols with
// standard capitalisation), so case variants of the same composition collapse
// into a single entry.
type ChemicalFormula struct {
	Formula    string `json:"formula"`
	PageNumber int    `json:"page_number"`
}

// FormulaRecognizer scans extracted page text for molecular formulas.  It is
// stateless and safe for concurrent use; the same input always yields the
// same output in the same order.
type FormulaRecognizer struct {
	library    *PatternLibrary
	maxResults int
	logger     logging.Logger
}

// NewFormulaRecognizer builds a recogniser over the given library.
// maxResults caps the returned list; zero or negative means no cap.
func NewFormulaRecognizer(library *PatternLibrary, maxResults int, logger logging.Logger) *FormulaRecognizer {
	if library == nil {
		library = DefaultPatternLibrary()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &FormulaRecognizer{
		library:    library,
		maxResults: maxResults,
		logger:     logger.Named("formula"),
	}
}

// Recognize scans every page and returns deduplicated formulas in first-seen
// order.  Deduplication is case-insensitive over the canonical form, so
// "C6H6" and "c6h6" count once, attributed to the earlier page.
func (r *FormulaRecognizer) Recognize(pages []document.Page) []ChemicalFormula {
	seen := make(map[string]bool)
	var out []ChemicalFormula

	for _, page := range pages {
		for _, pat := range r.library.FormulaPatterns {
			for _, raw := range pat.FindAllString(page.Text, -1) {
				canonical, ok := r.canonicalize(raw)
				if !ok {
					continue
				}
				key := strings.ToUpper(canonical)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, ChemicalFormula{
					Formula:    canonical,
					PageNumber: page.Number,
				})
			}
		}
	}

	if r.maxResults > 0 && len(out) > r.maxResults {
		r.logger.Debug("formula cap reached",
			logging.Int("found", len(out)),
			logging.Int("cap", r.maxResults))
		out = out[:r.maxResults]
	}
	return out
}

// elementToken is one parsed symbol+count unit of a formula candidate.
type elementToken struct {
	symbol string
	count  string
}

// canonicalize parses a raw candidate into element tokens, applies the
// plausibility filter, and rebuilds the formula with standard element
// capitalisation.  Returns false when the candidate is not a credible
// chemical formula.
func (r *FormulaRecognizer) canonicalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if r.library.Stopwords[strings.ToUpper(raw)] {
		return "", false
	}

	var tokens []elementToken
	var ok bool
	if hasLower(raw) && !hasUpper(raw) {
		tokens, ok = r.segmentLowercase(raw)
	} else {
		tokens, ok = r.parseCapitalized(raw)
	}
	if !ok || len(tokens) < 2 {
		return "", false
	}

	if !r.plausible(raw, tokens) {
		return "", false
	}

	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.symbol)
		b.WriteString(t.count)
	}
	return b.String(), true
}

// parseCapitalized splits a conventionally-cased candidate on capital
// boundaries: each unit is an uppercase letter, optional lowercase letter,
// optional digits.  Every symbol must be in the periodic table.
func (r *FormulaRecognizer) parseCapitalized(raw string) ([]elementToken, bool) {
	runes := []rune(raw)
	var tokens []elementToken
	i := 0
	for i < len(runes) {
		if !unicode.IsUpper(runes[i]) {
			return nil, false
		}
		sym := string(runes[i])
		i++
		if i < len(runes) && unicode.IsLower(runes[i]) {
			two := sym + string(runes[i])
			if r.library.PeriodicTable[two] {
				sym = two
				i++
			}
		}
		if !r.library.PeriodicTable[sym] {
			return nil, false
		}
		start := i
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}
		tokens = append(tokens, elementToken{symbol: sym, count: string(runes[start:i])})
	}
	return tokens, true
}

// segmentLowercase handles fully-lowercased candidates like "c6h6" where
// capital boundaries are lost.  Letter runs between digit runs are greedily
// segmented against the periodic table, preferring two-letter symbols.
func (r *FormulaRecognizer) segmentLowercase(raw string) ([]elementToken, bool) {
	runes := []rune(raw)
	var tokens []elementToken
	i := 0
	for i < len(runes) {
		if !unicode.IsLower(runes[i]) {
			return nil, false
		}
		// Collect the letter run, then split it into symbols.
		start := i
		for i < len(runes) && unicode.IsLower(runes[i]) {
			i++
		}
		run := runes[start:i]
		digStart := i
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}
		count := string(runes[digStart:i])

		syms, ok := r.segmentRun(run)
		if !ok {
			return nil, false
		}
		// The trailing digits attach to the last symbol of the run.
		for j, s := range syms {
			t := elementToken{symbol: s}
			if j == len(syms)-1 {
				t.count = count
			}
			tokens = append(tokens, t)
		}
	}
	return tokens, true
}

// segmentRun splits a lowercase letter run into periodic-table symbols,
// longest match first with backtracking.
func (r *FormulaRecognizer) segmentRun(run []rune) ([]string, bool) {
	if len(run) == 0 {
		return nil, false
	}
	if len(run) >= 2 {
		two := canonicalSymbol(string(run[:2]))
		if r.library.PeriodicTable[two] {
			if rest, ok := r.segmentRun(run[2:]); ok || len(run) == 2 {
				return append([]string{two}, rest...), true
			}
		}
	}
	one := canonicalSymbol(string(run[:1]))
	if r.library.PeriodicTable[one] {
		if len(run) == 1 {
			return []string{one}, true
		}
		if rest, ok := r.segmentRun(run[1:]); ok {
			return append([]string{one}, rest...), true
		}
	}
	return nil, false
}

// plausible applies the false-positive filter: the composition must contain
// at least one common element, and short digit-free candidates are treated
// as abbreviations rather than formulas.
func (r *FormulaRecognizer) plausible(raw string, tokens []elementToken) bool {
	common := false
	hasCount := false
	for _, t := range tokens {
		if t.count != "" {
			hasCount = true
		}
		for _, c := range r.library.CommonElements {
			if t.symbol == c {
				common = true
				break
			}
		}
	}
	if !common {
		return false
	}
	if !hasCount && len(raw) > 6 {
		return false
	}
	return true
}

// canonicalSymbol turns a lowercase run fragment into standard element
// capitalisation: first letter upper, remainder lower.
func canonicalSymbol(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// SortedUnique returns the distinct formula spellings in lexical order.
// Used by summary assembly where stable ordering matters for JSON output.
func SortedUnique(formulas []ChemicalFormula) []string {
	set := make(map[string]bool, len(formulas))
	for _, f := range formulas {
		set[f.Formula] = true
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
