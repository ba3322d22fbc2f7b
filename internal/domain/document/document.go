// Package document defines the extraction data model shared between the PDF
// infrastructure layer and the analysis pipeline.  The types here are owned
// by the pipeline run that produced them and are discarded once the report is
// assembled; nothing in this package is persisted.
package document

import "context"

// Page is the text content of a single document page.
type Page struct {
	// Number is the 1-based page index within the source document.
	Number int `json:"number"`

	// Text is the raw extracted text of the page.  May be empty for pages
	// that contain only drawings.
	Text string `json:"text"`
}

// Image is a single embedded raster image extracted from a page.
type Image struct {
	// PageNumber is the 1-based page the image was found on.
	PageNumber int `json:"page_number"`

	// Index is the 0-based position of the image within its page.
	Index int `json:"index"`

	// Data holds the decoded image samples.
	Data []byte `json:"-"`

	// Width and Height are the pixel dimensions of the image.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PageWarning records a non-fatal, page-scoped extraction failure.  A page
// that cannot be read is skipped with a warning rather than aborting the
// whole extraction.
type PageWarning struct {
	PageNumber int    `json:"page_number"`
	Message    string `json:"message"`
}

// Extraction is the complete output of a single document extraction:
// per-page text blocks in document order, embedded images in document order,
// and any page-level warnings accumulated along the way.
type Extraction struct {
	Pages    []Page        `json:"pages"`
	Images   []Image       `json:"images"`
	Warnings []PageWarning `json:"warnings,omitempty"`
}

// PageCount returns the number of pages that were successfully read.
func (e *Extraction) PageCount() int {
	return len(e.Pages)
}

// FullText concatenates all page text in document order, separated by
// newlines.  Element parsing operates on this concatenation.
func (e *Extraction) FullText() string {
	total := 0
	for _, p := range e.Pages {
		total += len(p.Text) + 1
	}
	buf := make([]byte, 0, total)
	for i, p := range e.Pages {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, p.Text...)
	}
	return string(buf)
}

// Extractor pulls raw text and embedded images per page from a PDF byte
// stream.  Implementations must reject oversized input before attempting any
// parsing work, and must skip unreadable pages with a PageWarning unless
// every page fails.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*Extraction, error)
}
