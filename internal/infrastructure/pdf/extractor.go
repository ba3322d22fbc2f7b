package pdf

import (
	"bytes"
	"context"
	"fmt"

	pdfextractor "github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/ChemPatent-Insight/pkg/errors"
)

// Config bounds what the extractor accepts and keeps.
type Config struct {
	// MaxFileSize rejects documents above this many bytes before parsing.
	MaxFileSize int64
	// MinImageWidth and MinImageHeight drop decorative images (rules,
	// logos, bullets) that cannot depict a chemical structure.
	MinImageWidth  int
	MinImageHeight int
}

// Extractor reads PDF bytes into pages of text and embedded images.  It
// implements document.Extractor.  Page-level parse failures degrade to
// warnings; only document-level failures return an error.
type Extractor struct {
	cfg    Config
	logger logging.Logger
}

// NewExtractor builds a PDF extractor.
func NewExtractor(cfg Config, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Extractor{cfg: cfg, logger: logger.Named("pdf")}
}

var _ document.Extractor = (*Extractor)(nil)

// Extract parses the document and returns its pages and images.  Encrypted
// documents are tried against the empty user password first, which many
// viewers apply silently; anything stronger fails the extraction.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*document.Extraction, error) {
	if e.cfg.MaxFileSize > 0 && int64(len(data)) > e.cfg.MaxFileSize {
		return nil, apperrors.New(apperrors.ErrCodeDocumentTooLarge,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeDocumentTooLarge)).
			WithDetail(fmt.Sprintf("%d bytes, limit %d", len(data), e.cfg.MaxFileSize))
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeDocumentEmpty,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeDocumentEmpty))
	}

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentCorrupt,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeDocumentCorrupt))
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentCorrupt, "encryption check failed")
	}
	if encrypted {
		ok, derr := reader.Decrypt([]byte(""))
		if derr != nil || !ok {
			return nil, apperrors.New(apperrors.ErrCodeDocumentEncrypted,
				apperrors.DefaultMessageForCode(apperrors.ErrCodeDocumentEncrypted))
		}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDocumentCorrupt, "page count unavailable")
	}
	if numPages == 0 {
		return nil, apperrors.New(apperrors.ErrCodeDocumentEmpty,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeDocumentEmpty))
	}

	ext := &document.Extraction{}
	failed := 0
	for n := 1; n <= numPages; n++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if !e.extractPage(reader, n, ext) {
			failed++
		}
	}
	if failed == numPages {
		return nil, apperrors.New(apperrors.ErrCodeDocumentCorrupt,
			"no page could be parsed").WithDetail(fmt.Sprintf("%d pages attempted", numPages))
	}

	e.logger.Debug("document extracted",
		logging.Int("pages", len(ext.Pages)),
		logging.Int("images", len(ext.Images)),
		logging.Int("warnings", len(ext.Warnings)))
	return ext, nil
}

// extractPage pulls text and images from one page, appending warnings for
// partial failures.  It returns false only when the page yielded nothing.
func (e *Extractor) extractPage(reader *model.PdfReader, n int, ext *document.Extraction) bool {
	page, err := reader.GetPage(n)
	if err != nil {
		e.warn(ext, n, "page unreadable: "+err.Error())
		return false
	}

	px, err := pdfextractor.New(page)
	if err != nil {
		e.warn(ext, n, "extractor init failed: "+err.Error())
		return false
	}

	text, err := px.ExtractText()
	if err != nil {
		e.warn(ext, n, "text extraction failed: "+err.Error())
		text = ""
	}
	ext.Pages = append(ext.Pages, document.Page{Number: n, Text: text})

	pageImages, err := px.ExtractPageImages(nil)
	if err != nil {
		e.warn(ext, n, "image extraction failed: "+err.Error())
		return true
	}
	idx := 0
	for _, mark := range pageImages.Images {
		img := mark.Image
		if img == nil {
			continue
		}
		w, h := int(img.Width), int(img.Height)
		if w < e.cfg.MinImageWidth || h < e.cfg.MinImageHeight {
			continue
		}
		ext.Images = append(ext.Images, document.Image{
			PageNumber: n,
			Index:      idx,
			Data:       img.Data,
			Width:      w,
			Height:     h,
		})
		idx++
	}
	return true
}

func (e *Extractor) warn(ext *document.Extraction, page int, msg string) {
	e.logger.Warn("page degraded", logging.Int("page", page), logging.String("reason", msg))
	ext.Warnings = append(ext.Warnings, document.PageWarning{PageNumber: page, Message: msg})
}
