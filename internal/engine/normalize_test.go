package engine

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n  ", ""},
		{"lowercases", "App CRASHED", "app crashed"},
		{"collapses whitespace", "app   crashed\n\ttwice", "app crashed twice"},
		{"strips punctuation", "won't open!!!", "won t open"},
		{"keeps digits and underscore", "error_code 500", "error_code 500"},
		{"keeps currency runes", "₹450 missing, $2 extra", "₹450 missing $2 extra"},
		{"nfkc folds width variants", "ｅｒｒｏｒ", "error"},
		{"unicode letters survive", "aplicación bloqueada", "aplicación bloqueada"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"App CRASHED!!!",
		"  Total: ₹1,240.50  ",
		"network\terror\non 12/05/2024",
		"ｗｏｎ'ｔ ｏｐｅｎ",
	}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeLight_PreservesPunctuation(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Total: 120", "total: 120"},
		{"on 12/05/2024 at 10:45", "on 12/05/2024 at 10:45"},
		{"  Mixed   CASE  ", "mixed case"},
	}
	for _, tc := range testCases {
		if got := normalizeLight(tc.input); got != tc.expected {
			t.Errorf("normalizeLight(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestWithinEditDistanceOne(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected bool
	}{
		{"coins", "coins", true},
		{"coins", "c0ins", true},
		{"coins", "coin", true},
		{"coins", "coinss", true},
		{"coins", "cions", false},
		{"coins", "points", false},
		{"quality", "qaulity", false},
		{"quality", "qualty", true},
	}
	for _, tc := range testCases {
		if got := withinEditDistanceOne(tc.a, tc.b); got != tc.expected {
			t.Errorf("withinEditDistanceOne(%q, %q) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}
