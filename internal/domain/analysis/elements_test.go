package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
)

func TestElementParser_Parse(t *testing.T) {
	p := NewElementParser(nil, 500, nil)

	ext := &document.Extraction{Pages: []document.Page{
		{Number: 1, Text: "Title of Invention: Novel benzene derivatives\n" +
			"Inventors: A. Chemist, B. Researcher\n" +
			"Applicants: Example Pharma Ltd\n"},
		{Number: 2, Text: "Abstract: A composition comprising substituted benzene rings with improved stability.\n\n" +
			"Claims: 1. A compound of formula C6H6 wherein the ring carries at least one substituent selected from halogen and alkyl groups.\n\n"},
	}}

	got := p.Parse(ext)

	require.Contains(t, got, ElementTitle)
	assert.Equal(t, "Novel benzene derivatives", got[ElementTitle])
	assert.Contains(t, got[ElementAbstract], "substituted benzene rings")
	assert.Contains(t, got[ElementClaims], "compound of formula C6H6")
	assert.Equal(t, "A. Chemist, B. Researcher", got[ElementInventors])
	assert.Equal(t, "Example Pharma Ltd", got[ElementApplicants])
}

func TestElementParser_MissingTitle(t *testing.T) {
	p := NewElementParser(nil, 500, nil)

	ext := &document.Extraction{Pages: []document.Page{
		{Number: 1, Text: "Abstract: A process for preparing sodium chloride crystals of high purity.\n\n" +
			"Inventors: C. Salt\n"},
	}}

	got := p.Parse(ext)

	assert.NotContains(t, got, ElementTitle)
	assert.Contains(t, got, ElementAbstract)
	assert.Contains(t, got, ElementInventors)
}

func TestElementParser_ChinesePatterns(t *testing.T) {
	p := NewElementParser(nil, 500, nil)

	ext := &document.Extraction{Pages: []document.Page{
		{Number: 1, Text: "发明名称: 一种苯衍生物的制备方法与其应用\n发明人: 张三, 李四\n"},
	}}

	got := p.Parse(ext)

	assert.Equal(t, "一种苯衍生物的制备方法与其应用", got[ElementTitle])
	assert.Equal(t, "张三, 李四", got[ElementInventors])
}

func TestElementParser_ShortMatchRejected(t *testing.T) {
	p := NewElementParser(nil, 500, nil)

	// The generic TITLE fallback must not salvage the remainder of a
	// "Title of Invention" header whose content was too short.
	ext := &document.Extraction{Pages: []document.Page{
		{Number: 1, Text: "Title of Invention: Ab\n"},
	}}

	got := p.Parse(ext)
	assert.NotContains(t, got, ElementTitle)
}

func TestElementParser_BareTitleRequiresColon(t *testing.T) {
	p := NewElementParser(nil, 500, nil)

	ext := &document.Extraction{Pages: []document.Page{
		{Number: 1, Text: "TITLE: Halogenated solvents\n" +
			"Title compounds were isolated in good yield.\n"},
	}}

	got := p.Parse(ext)
	assert.Equal(t, "Halogenated solvents", got[ElementTitle])
}

func TestElementParser_ContentCap(t *testing.T) {
	p := NewElementParser(nil, 20, nil)

	ext := &document.Extraction{Pages: []document.Page{
		{Number: 1, Text: "Inventors: " + strings.Repeat("x", 100) + "\n"},
	}}

	got := p.Parse(ext)
	require.Contains(t, got, ElementInventors)
	assert.Len(t, got[ElementInventors], 20)
}

func TestElementParser_ContentCapCountsRunes(t *testing.T) {
	p := NewElementParser(nil, 4, nil)

	ext := &document.Extraction{Pages: []document.Page{
		{Number: 1, Text: "发明人: 张三李四王五\n"},
	}}

	got := p.Parse(ext)
	require.Contains(t, got, ElementInventors)
	assert.Equal(t, "张三李四", got[ElementInventors])
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "苯", truncateRunes("苯环", 1))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "苯环", truncateRunes("苯环", 2))
}
