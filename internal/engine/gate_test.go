package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/report-triage/internal/catalog"
)

func TestHasUsableContent(t *testing.T) {
	tests := []struct {
		name      string
		comment   string
		ocrTexts  []string
		filenames []string
		usable    bool
	}{
		{
			name:   "empty report",
			usable: false,
		},
		{
			name:    "short vague comment",
			comment: "ok",
			usable:  false,
		},
		{
			name:    "long enough text",
			comment: "hello world",
			usable:  true,
		},
		{
			name:    "short text with digit",
			comment: "err 5",
			usable:  true,
		},
		{
			name:    "short text with date",
			comment: "12/05/24",
			usable:  true,
		},
		{
			name:    "header keyword alone",
			comment: "otp",
			usable:  true,
		},
		{
			name:    "currency token alone",
			comment: "₹",
			usable:  true,
		},
		{
			name:    "key value shape",
			comment: "qty: x",
			usable:  true,
		},
		{
			name:     "ocr text counts toward the gate",
			ocrTexts: []string{"invoice"},
			usable:   true,
		},
		{
			name:      "bare screenshot filename",
			filenames: []string{"Screenshot.png"},
			usable:    false,
		},
		{
			name:      "filename with hint keyword",
			filenames: []string{"error.png"},
			usable:    true,
		},
		{
			name:      "filename with digits",
			filenames: []string{"image_123.jpg"},
			usable:    true,
		},
		{
			name:      "log attachment",
			filenames: []string{"notes.txt"},
			usable:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasUsableContent(tt.comment, tt.ocrTexts, tt.filenames)
			assert.Equal(t, tt.usable, got,
				"comment=%q ocr=%v filenames=%v", tt.comment, tt.ocrTexts, tt.filenames)
		})
	}
}

func TestAllowUnclear(t *testing.T) {
	cat := catalog.Default()

	t.Run("usable content blocks unclear", func(t *testing.T) {
		assert.False(t, allowUnclear(cat, "app keeps crashing on open", nil, nil))
	})

	t.Run("catalog keyword blocks unclear even below the length floor", func(t *testing.T) {
		assert.False(t, allowUnclear(cat, "upi", nil, nil))
	})

	t.Run("no signal anywhere permits unclear", func(t *testing.T) {
		assert.True(t, allowUnclear(cat, "zzz zz", nil, []string{"image.jpg"}))
	})

	t.Run("empty report permits unclear", func(t *testing.T) {
		assert.True(t, allowUnclear(cat, "", nil, nil))
	})
}
