package analysis

import "regexp"

// ElementName identifies one of the fixed patent elements the parser knows
// how to extract.  The set is closed; adding a new element means adding its
// pattern candidates to the library.
type ElementName string

const (
	ElementTitle       ElementName = "title"
	ElementAbstract    ElementName = "abstract"
	ElementClaims      ElementName = "claims"
	ElementInventors   ElementName = "inventors"
	ElementApplicants  ElementName = "applicants"
	ElementDescription ElementName = "description"
)

// AllElementNames lists every element the parser attempts, in a stable order
// used for deterministic iteration.
var AllElementNames = []ElementName{
	ElementTitle,
	ElementAbstract,
	ElementClaims,
	ElementInventors,
	ElementApplicants,
	ElementDescription,
}

// PatternLibrary is the static collection of recognition patterns driving the
// extraction engine: formula candidate patterns, element-section patterns in
// English and Chinese, the periodic table, and the false-positive stoplist.
// A library instance is immutable after construction; pattern sets can be
// extended or versioned here without touching pipeline control flow.
type PatternLibrary struct {
	// FormulaPatterns are applied in order to every text block.  Later
	// patterns catch case variants the first would miss.
	FormulaPatterns []*regexp.Regexp

	// ElementPatterns maps each patent element to its ordered candidate
	// patterns.  Matching takes the first candidate that produces content;
	// candidates alternate between English and Chinese section headers.
	ElementPatterns map[ElementName][]*regexp.Regexp

	// PeriodicTable is the set of valid element symbols.  A two-letter token
	// inside a formula candidate is only accepted when present here.
	PeriodicTable map[string]bool

	// CommonElements are the symbols that must appear at least once for a
	// candidate to be considered a plausible chemical formula.
	CommonElements []string

	// Stopwords are uppercase words that match the formula shape but are
	// ordinary prose (or catalog noise) and are always rejected.
	Stopwords map[string]bool

	// PlaceholderSMILES is the fixed candidate set the stub structure
	// recogniser draws from, keyed deterministically by image content hash.
	PlaceholderSMILES []string
}

// periodicSymbols is every IUPAC element symbol.
var periodicSymbols = []string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// DefaultPatternLibrary constructs the production pattern set.
func DefaultPatternLibrary() *PatternLibrary {
	table := make(map[string]bool, len(periodicSymbols))
	for _, s := range periodicSymbols {
		table[s] = true
	}

	return &PatternLibrary{
		FormulaPatterns: []*regexp.Regexp{
			// Canonical composition: two or more element units, each an
			// uppercase symbol with optional subscript, e.g. C6H6, H2SO4,
			// NaCl, Ca(OH)2 without the parentheses.
			regexp.MustCompile(`\b(?:[A-Z][a-z]?\d*){2,}\b`),
			// Organic shorthand sometimes typeset entirely in lowercase by
			// OCR or sloppy formatting, e.g. c6h6.
			regexp.MustCompile(`\b(?:[a-z]{1,2}\d+){2,}[a-z]{0,2}\d*\b`),
		},

		ElementPatterns: map[ElementName][]*regexp.Regexp{
			ElementTitle: {
				regexp.MustCompile(`(?im)Title of Invention\s*[:：]?\s*(.+?)(?:\n|$)`),
				regexp.MustCompile(`(?im)發明名稱\s*[:：]?\s*(.+?)(?:\n|$)`),
				regexp.MustCompile(`(?im)发明名称\s*[:：]?\s*(.+?)(?:\n|$)`),
				// The bare keyword forms require the colon so that, with
				// case-insensitive matching, "Title" does not swallow the
				// prefix of a "Title of Invention" header whose specific
				// candidate was rejected.
				regexp.MustCompile(`(?im)^TITLE\s*[:：]\s*(.+?)(?:\n|$)`),
				regexp.MustCompile(`(?im)標題\s*[:：]\s*(.+?)(?:\n|$)`),
			},
			ElementAbstract: {
				regexp.MustCompile(`(?is)\bAbstract\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
				regexp.MustCompile(`(?is)摘要\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
			},
			ElementClaims: {
				regexp.MustCompile(`(?is)\bClaims?\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
				regexp.MustCompile(`(?is)請求項\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
				regexp.MustCompile(`(?is)权利要求\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
			},
			ElementInventors: {
				regexp.MustCompile(`(?im)Inventors?\s*[:：]?\s*(.+?)(?:\n|$)`),
				regexp.MustCompile(`(?im)發明人\s*[:：]?\s*(.+?)(?:\n|$)`),
				regexp.MustCompile(`(?im)发明人\s*[:：]?\s*(.+?)(?:\n|$)`),
			},
			ElementApplicants: {
				regexp.MustCompile(`(?im)Applicants?\s*[:：]?\s*(.+?)(?:\n|$)`),
				regexp.MustCompile(`(?im)申請人\s*[:：]?\s*(.+?)(?:\n|$)`),
				regexp.MustCompile(`(?im)申请人\s*[:：]?\s*(.+?)(?:\n|$)`),
			},
			ElementDescription: {
				regexp.MustCompile(`(?is)(?:Detailed )?Description\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
				regexp.MustCompile(`(?is)詳細說明\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
				regexp.MustCompile(`(?is)详细说明\s*[:：]?\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
			},
		},

		PeriodicTable: table,

		CommonElements: []string{
			"C", "H", "O", "N", "S", "P", "Cl", "Br", "F", "I",
			"Na", "K", "Ca", "Mg", "Li",
		},

		Stopwords: map[string]bool{
			"THE": true, "AND": true, "FOR": true, "WITH": true,
			"ARE": true, "CAN": true, "MAY": true, "USE": true,
			"NOT": true, "ALL": true, "ANY": true, "PER": true,
			"DNA": true, "RNA": true, "ATP": true, "GTP": true,
			"USA": true, "ISO": true, "PCT": true, "WO": true,
		},

		PlaceholderSMILES: []string{
			"c1ccccc1",       // benzene
			"CCO",            // ethanol
			"CC(=O)O",        // acetic acid
			"c1ccc2ccccc2c1", // naphthalene
			"CC(C)O",         // isopropanol
		},
	}
}
