package analysis

import (
	"sort"
	"strings"
)

// PatentStrength grades the chemical disclosure of a document.
type PatentStrength string

const (
	StrengthLow    PatentStrength = "low"
	StrengthMedium PatentStrength = "medium"
	StrengthHigh   PatentStrength = "high"
)

// CompoundType classifies a formula by its elemental composition.
type CompoundType string

const (
	CompoundOrganic       CompoundType = "organic"
	CompoundInorganicSalt CompoundType = "inorganic salt"
	CompoundOther         CompoundType = "other"
)

// Grading thresholds.  A document reaches medium strength once it carries a
// substantive claims section, and high strength once its compound count
// shows broad chemical coverage.
const (
	mediumClaimsMinLength = 100
	highCompoundThreshold = 5
)

// saltFormers are the alkali and alkaline-earth symbols whose presence,
// absent carbon, marks a formula as an inorganic salt.
var saltFormers = []string{"Na", "K", "Ca", "Mg", "Li"}

// AnalysisSummary aggregates the per-stage results into headline numbers.
type AnalysisSummary struct {
	TotalCompounds    int            `json:"total_compounds"`
	TotalStructures   int            `json:"total_structures"`
	PagesAnalyzed     int            `json:"pages_analyzed"`
	ImagesFound       int            `json:"images_found"`
	CompoundTypes     []string       `json:"compound_types"`
	PatentStrength    PatentStrength `json:"patent_strength"`
	NoveltyAssessment string         `json:"novelty_assessment"`
}

// AnalysisReport is the complete result of analysing one document.  Field
// names are part of the API contract and must stay stable.
type AnalysisReport struct {
	ChemicalFormulas []ChemicalFormula   `json:"chemical_formulas"`
	SMILESStructures []StructureEncoding `json:"smiles_structures"`
	PatentElements   PatentElements      `json:"patent_elements"`
	Summary          AnalysisSummary     `json:"analysis_summary"`
}

// ReportInput carries the raw stage outputs into assembly.
type ReportInput struct {
	Formulas   []ChemicalFormula
	Structures []StructureEncoding
	Elements   PatentElements
	PageCount  int
	ImageCount int
}

// AssembleReport builds the final report from stage outputs.  Assembly is a
// pure function of its input; the same input always yields the same report.
func AssembleReport(in ReportInput) *AnalysisReport {
	formulas := in.Formulas
	if formulas == nil {
		formulas = []ChemicalFormula{}
	}
	structures := in.Structures
	if structures == nil {
		structures = []StructureEncoding{}
	}
	elements := in.Elements
	if elements == nil {
		elements = PatentElements{}
	}

	strength := gradeStrength(formulas, elements)
	return &AnalysisReport{
		ChemicalFormulas: formulas,
		SMILESStructures: structures,
		PatentElements:   elements,
		Summary: AnalysisSummary{
			TotalCompounds:    len(formulas),
			TotalStructures:   len(structures),
			PagesAnalyzed:     in.PageCount,
			ImagesFound:       in.ImageCount,
			CompoundTypes:     compoundTypes(formulas),
			PatentStrength:    strength,
			NoveltyAssessment: noveltyText(strength, len(formulas)),
		},
	}
}

// gradeStrength applies the grading policy: low by default, medium with a
// substantive claims section, high when the compound count exceeds the
// coverage threshold.
func gradeStrength(formulas []ChemicalFormula, elements PatentElements) PatentStrength {
	strength := StrengthLow
	if claims, ok := elements[ElementClaims]; ok && len(claims) > mediumClaimsMinLength {
		strength = StrengthMedium
	}
	if len(formulas) > highCompoundThreshold {
		strength = StrengthHigh
	}
	return strength
}

// compoundTypes returns the sorted distinct classifications present.
func compoundTypes(formulas []ChemicalFormula) []string {
	set := make(map[string]bool)
	for _, f := range formulas {
		set[string(ClassifyCompound(f.Formula))] = true
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ClassifyCompound buckets a canonical formula by composition.  Carbon with
// hydrogen marks organic chemistry; a salt-forming metal without carbon
// marks an inorganic salt; everything else is other.
func ClassifyCompound(formula string) CompoundType {
	hasC := containsElement(formula, "C")
	hasH := containsElement(formula, "H")
	if hasC && hasH {
		return CompoundOrganic
	}
	if !hasC {
		for _, m := range saltFormers {
			if containsElement(formula, m) {
				return CompoundInorganicSalt
			}
		}
	}
	return CompoundOther
}

// containsElement reports whether the canonical formula contains the symbol
// as a whole element token, so "Cl" does not register as "C".
func containsElement(formula, symbol string) bool {
	for i := 0; i < len(formula); {
		if formula[i] < 'A' || formula[i] > 'Z' {
			i++
			continue
		}
		end := i + 1
		if end < len(formula) && formula[end] >= 'a' && formula[end] <= 'z' {
			end++
		}
		if formula[i:end] == symbol {
			return true
		}
		i = end
	}
	return false
}

// noveltyText renders the one-line assessment shown in report summaries.
func noveltyText(strength PatentStrength, compounds int) string {
	if compounds == 0 {
		return "No chemical compounds detected; the assessment is inconclusive."
	}
	var b strings.Builder
	switch strength {
	case StrengthHigh:
		b.WriteString("Broad chemical coverage with a substantial compound set; ")
		b.WriteString("the disclosure suggests a strong composition-of-matter position.")
	case StrengthMedium:
		b.WriteString("Substantive claims with a modest compound set; ")
		b.WriteString("the disclosure supports a defensible but narrow position.")
	default:
		b.WriteString("Limited chemical disclosure detected; ")
		b.WriteString("the document may rely on process or method claims.")
	}
	return b.String()
}
