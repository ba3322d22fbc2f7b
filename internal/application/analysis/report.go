package analysis

import (
	"fmt"
	"time"

	domain "github.com/turtacn/ChemPatent-Insight/internal/domain/analysis"
)

// ReportDocument wraps a completed analysis with presentation-level text for
// the report endpoint and the CLI.
type ReportDocument struct {
	TaskID           string                 `json:"task_id"`
	Filename         string                 `json:"filename"`
	GeneratedAt      time.Time              `json:"generated_at"`
	ExecutiveSummary string                 `json:"executive_summary"`
	Recommendations  []string               `json:"recommendations"`
	Analysis         *domain.AnalysisReport `json:"analysis"`
}

// BuildReport renders the report document for a completed task.  The task
// must carry a result; callers obtain it through GetResult first.
func (s *Service) BuildReport(id string) (*ReportDocument, error) {
	report, err := s.GetResult(id)
	if err != nil {
		return nil, err
	}
	t, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &ReportDocument{
		TaskID:           t.ID,
		Filename:         t.Filename,
		GeneratedAt:      time.Now().UTC(),
		ExecutiveSummary: executiveSummary(t.Filename, report),
		Recommendations:  recommendations(report),
		Analysis:         report,
	}, nil
}

func executiveSummary(filename string, r *domain.AnalysisReport) string {
	return fmt.Sprintf(
		"Analysis of %q covered %d pages and found %d chemical compounds and %d structure depictions. "+
			"The disclosure is graded %s. %s",
		filename,
		r.Summary.PagesAnalyzed,
		r.Summary.TotalCompounds,
		r.Summary.TotalStructures,
		r.Summary.PatentStrength,
		r.Summary.NoveltyAssessment,
	)
}

// recommendations derives follow-up actions from the grading outcome.
func recommendations(r *domain.AnalysisReport) []string {
	var out []string
	switch r.Summary.PatentStrength {
	case domain.StrengthHigh:
		out = append(out,
			"Prioritise this document for freedom-to-operate review.",
			"Cross-reference the compound set against the in-house portfolio.")
	case domain.StrengthMedium:
		out = append(out,
			"Review the claims section for overlap with pending applications.")
	default:
		out = append(out,
			"Chemical disclosure is thin; consider manual review before drawing conclusions.")
	}
	if _, ok := r.PatentElements[domain.ElementClaims]; !ok {
		out = append(out, "No claims section was detected; verify the source document is complete.")
	}
	for _, enc := range r.SMILESStructures {
		if enc.Placeholder {
			out = append(out, "Structure encodings are placeholders; rerun once optical structure recognition is enabled.")
			break
		}
	}
	return out
}
