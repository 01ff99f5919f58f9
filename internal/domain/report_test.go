package domain

import (
	"encoding/json"
	"testing"
)

func TestEffectiveComment(t *testing.T) {
	r := &Report{Comment: "original"}
	if got := r.EffectiveComment(); got != "original" {
		t.Errorf("expected raw comment, got %q", got)
	}
	r.CommentTranslated = "translated"
	if got := r.EffectiveComment(); got != "translated" {
		t.Errorf("translated comment must take precedence, got %q", got)
	}
}

func TestFilenameFromURL(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{"empty", "", ""},
		{"plain url", "https://cdn.example.com/uploads/Screenshot_error.jpg", "Screenshot_error.jpg"},
		{"query stripped", "https://cdn.example.com/a/login.png?token=abc&exp=1", "login.png"},
		{"encoded folder prefix", "https://storage.example.com/o/bug_reports%2Fimage_123.jpg?alt=media", "image_123.jpg"},
		{"bare filename", "device.log", "device.log"},
		{"percent space", "https://cdn.example.com/a/my%20shot.png", "my shot.png"},
		{"trailing slash", "https://cdn.example.com/uploads/", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FilenameFromURL(tc.url); got != tc.expected {
				t.Errorf("FilenameFromURL(%q) = %q, expected %q", tc.url, got, tc.expected)
			}
		})
	}
}

func TestIsCanonical(t *testing.T) {
	for _, c := range CanonicalCategories {
		if !IsCanonical(c) {
			t.Errorf("%s should be canonical", c)
		}
	}
	if IsCanonical("bogus_category") {
		t.Error("bogus category reported canonical")
	}
	if IsCanonical("") {
		t.Error("empty category reported canonical")
	}
}

func TestExtractedTextValue_Unmarshal(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected []string
	}{
		{"single string", `"Unable to connect"`, []string{"Unable to connect"}},
		{"empty string", `""`, nil},
		{"list", `["Loading", "Total: 120"]`, []string{"Loading", "Total: 120"}},
		{"list with junk", `["ok", 42, null, ""]`, []string{"ok"}},
		{"null", `null`, nil},
		{"wrong type", `{"oops": true}`, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var v ExtractedTextValue
			if err := json.Unmarshal([]byte(tc.payload), &v); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.payload, err)
			}
			if len(v) != len(tc.expected) {
				t.Fatalf("payload %s: got %v, expected %v", tc.payload, v, tc.expected)
			}
			for i := range v {
				if v[i] != tc.expected[i] {
					t.Errorf("payload %s: got %v, expected %v", tc.payload, v, tc.expected)
				}
			}
		})
	}
}

func TestExtractedTextValue_MarshalShape(t *testing.T) {
	single, err := json.Marshal(ExtractedTextValue{"only one"})
	if err != nil {
		t.Fatal(err)
	}
	if string(single) != `"only one"` {
		t.Errorf("single text must marshal as a string, got %s", single)
	}

	many, err := json.Marshal(ExtractedTextValue{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if string(many) != `["a","b"]` {
		t.Errorf("multiple texts must marshal as a list, got %s", many)
	}
}

func TestExportRecord_Accessors(t *testing.T) {
	rec := &ExportRecord{
		Attachments: []string{
			"https://cdn.example.com/a/login_screen.png",
			"",
		},
		LogFile:       "https://cdn.example.com/logs/device_debug.log?sig=x",
		ExtractedText: ExtractedTextValue{"Sign in", "", "Loading"},
	}

	texts := rec.OCRTexts()
	if len(texts) != 2 || texts[0] != "Sign in" || texts[1] != "Loading" {
		t.Errorf("unexpected OCR texts: %v", texts)
	}

	names := rec.AttachmentFilenames()
	if len(names) != 2 {
		t.Fatalf("unexpected filenames: %v", names)
	}
	if names[0] != "login_screen.png" || names[1] != "device_debug.log" {
		t.Errorf("unexpected filenames: %v", names)
	}
}
