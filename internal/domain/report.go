package domain

import (
	"net/url"
	"strings"
	"time"
)

// Report is the unit of triage work. The engine treats it as immutable; the
// caller attaches the result fields afterward.
type Report struct {
	ID string `json:"id,omitempty"`

	// Comment is the raw free-text comment, possibly non-English.
	Comment string `json:"comment,omitempty"`
	// CommentTranslated, when present, takes precedence over Comment.
	CommentTranslated string `json:"comment_translated,omitempty"`

	// OCRTexts holds one extracted text per processed attachment, in order.
	OCRTexts []string `json:"ocr_texts,omitempty"`
	// Filenames are bare attachment filenames derived from URLs.
	Filenames []string `json:"filenames,omitempty"`

	// ModelPred is an optional category string from the external statistical
	// classifier; empty means no prediction was supplied.
	ModelPred string `json:"model_pred,omitempty"`
}

// EffectiveComment returns the translated comment when available, else the
// raw comment.
func (r *Report) EffectiveComment() string {
	if r.CommentTranslated != "" {
		return r.CommentTranslated
	}
	return r.Comment
}

// TriageResult is the engine's verdict for a single report.
type TriageResult struct {
	Category   Category   `json:"category"`
	Confidence float64    `json:"label_confidence"`
	Reason     ReasonCode `json:"label_reason"`
}

// TriageHistory is the audit record persisted per triaged report.
type TriageHistory struct {
	ID            int        `db:"id"             json:"id"`
	ReportID      string     `db:"report_id"      json:"report_id"`
	Category      Category   `db:"category"       json:"category"`
	Confidence    float64    `db:"confidence"     json:"confidence"`
	Reason        ReasonCode `db:"reason"         json:"reason"`
	EngineVersion string     `db:"engine_version" json:"engine_version"`
	DurationMs    int64      `db:"duration_ms"    json:"duration_ms"`
	TriagedAt     time.Time  `db:"triaged_at"     json:"triaged_at"`
}

// ExportRecord is one entry of a JSON export keyed by report id. The shape
// mirrors the bug-report export the relabel pass consumes: attachment URLs,
// an optional log-file URL, already-extracted OCR text, and a translated
// comment alongside the raw one.
type ExportRecord struct {
	Comment           string   `json:"comment,omitempty"`
	CommentTranslated string   `json:"comment_translated,omitempty"`
	Attachments       []string `json:"attachments,omitempty"`
	LogFile           string   `json:"logFile,omitempty"`

	// ExtractedText is a string or a list of strings in the wild; it is
	// decoded leniently via ExtractedTextValue.
	ExtractedText ExtractedTextValue `json:"extracted_text,omitempty"`

	Category        Category   `json:"category,omitempty"`
	LabelConfidence float64    `json:"label_confidence,omitempty"`
	LabelReason     ReasonCode `json:"label_reason,omitempty"`
	DetectedLang    string     `json:"detected_lang,omitempty"`
}

// OCRTexts returns the non-empty extracted texts of the record.
func (r *ExportRecord) OCRTexts() []string {
	texts := make([]string, 0, len(r.ExtractedText))
	for _, t := range r.ExtractedText {
		if t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}

// AttachmentFilenames derives bare filenames from the record's attachment
// URLs, appending the log-file name when a log URL is present.
func (r *ExportRecord) AttachmentFilenames() []string {
	names := make([]string, 0, len(r.Attachments)+1)
	for _, u := range r.Attachments {
		if name := FilenameFromURL(u); name != "" {
			names = append(names, name)
		}
	}
	if r.LogFile != "" {
		if name := FilenameFromURL(r.LogFile); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// FilenameFromURL extracts the bare filename from an attachment URL: the
// last path segment, URL-decoded, with any query string and residual folder
// prefix (e.g. "bug_reports%2Ffoo.jpg") stripped.
func FilenameFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		s = u.Path
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	// Decoding can reintroduce a folder prefix.
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
