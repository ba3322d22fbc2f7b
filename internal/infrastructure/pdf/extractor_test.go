package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/turtacn/ChemPatent-Insight/pkg/errors"
)

func newTestExtractor(maxSize int64) *Extractor {
	return NewExtractor(Config{
		MaxFileSize:    maxSize,
		MinImageWidth:  50,
		MinImageHeight: 50,
	}, nil)
}

func TestExtract_TooLarge(t *testing.T) {
	e := newTestExtractor(16)

	_, err := e.Extract(context.Background(), bytes.Repeat([]byte{0x41}, 17))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentTooLarge))
}

func TestExtract_Empty(t *testing.T) {
	e := newTestExtractor(0)

	_, err := e.Extract(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentEmpty))
}

func TestExtract_Corrupt(t *testing.T) {
	e := newTestExtractor(0)

	_, err := e.Extract(context.Background(), []byte("this is not a pdf document at all"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentCorrupt))
}

func TestExtract_SizeLimitBeforeParse(t *testing.T) {
	// An oversized payload must be rejected on size alone, even when the
	// content would also fail parsing.
	e := newTestExtractor(8)

	_, err := e.Extract(context.Background(), []byte("garbage beyond the limit"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDocumentTooLarge))
}
