package analysis

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
)

// PatentElements holds the bibliographic and textual sections recovered from
// a patent document, keyed by element name.  Absent elements are simply not
// present in the map; callers must not rely on any key existing.
type PatentElements map[ElementName]string

// minElementLength rejects matches too short to be real section content,
// typically a stray header with the body on another page.
const minElementLength = 5

// ElementParser locates patent sections (title, abstract, claims and so on)
// in the concatenated document text using the library's multilingual
// patterns.
type ElementParser struct {
	library   *PatternLibrary
	maxLength int
	logger    logging.Logger
}

// NewElementParser builds a parser.  maxLength caps stored element content,
// counted in runes so multibyte scripts keep as many characters as Latin
// text; zero or negative means no cap.
func NewElementParser(library *PatternLibrary, maxLength int, logger logging.Logger) *ElementParser {
	if library == nil {
		library = DefaultPatternLibrary()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ElementParser{
		library:   library,
		maxLength: maxLength,
		logger:    logger.Named("elements"),
	}
}

// Parse extracts every known element from the extracted document.  The full
// text is NFC-normalised first so composed and decomposed Unicode spellings
// of the same header match the same pattern.  For each element the first
// candidate pattern that yields usable content wins; elements with no match
// are omitted from the result.
func (p *ElementParser) Parse(ext *document.Extraction) PatentElements {
	full := norm.NFC.String(ext.FullText())

	out := make(PatentElements)
	for _, name := range AllElementNames {
		for _, pat := range p.library.ElementPatterns[name] {
			m := pat.FindStringSubmatch(full)
			if len(m) < 2 {
				continue
			}
			content := strings.TrimSpace(m[1])
			if len(content) < minElementLength {
				continue
			}
			if p.maxLength > 0 {
				content = truncateRunes(content, p.maxLength)
			}
			out[name] = content
			break
		}
		if _, ok := out[name]; !ok {
			p.logger.Debug("element not found", logging.String("element", string(name)))
		}
	}
	return out
}

// truncateRunes cuts s to at most max runes.
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
