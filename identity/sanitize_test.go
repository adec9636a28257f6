package identity

import (
	"strings"
	"testing"
)

var sanitizeInputs = []string{
	"",
	"Notch",
	"[Admin] Notch",
	"[MVP+] xX_Gamer_Xx 🎮",
	"a]b]c",
	"]]]",
	"no tag here!",
	"[unterminated tag",
	"069a79f4-44e9-4726-a5be-fca90e38aaf5",
	"Ünïcödé_name",
	"\u212Aelvin",
	"   ",
	"!!!???",
}

func TestStripTag(t *testing.T) {
	cases := map[string]string{
		"[Admin] Notch": " Notch",
		"Notch":         "Notch",
		"a]b]c":         "b",
		"]Dream":        "Dream",
		"[VIP]":         "",
		"[a] b [c] d":   " b [c",
	}

	for in, expected := range cases {
		if actual := StripTag(in); actual != expected {
			t.Fatalf("StripTag(%q): Expected(%q) Actual(%q)", in, expected, actual)
		}
	}
}

func TestStripTagIdempotent(t *testing.T) {
	for _, s := range sanitizeInputs {
		once := StripTag(s)
		if twice := StripTag(once); twice != once {
			t.Fatalf("StripTag not idempotent for %q: %q then %q", s, once, twice)
		}
		if strings.Contains(once, "]") {
			t.Fatalf("StripTag(%q) left a ']' behind: %q", s, once)
		}
	}
}

func TestStripThenFilterMatchesFilterOfStripped(t *testing.T) {
	inputs := append([]string{
		"[MVP++] Notch",
		"[a]b]c",
		"[VIP] x [MVP] y",
		"]]Notch",
		"[!@#] ]Dream",
		"[ÄÖ] Jeb_",
	}, sanitizeInputs...)

	for _, s := range inputs {
		once := Sanitize(StripTag(s))
		if twice := Sanitize(StripTag(StripTag(s))); once != twice {
			t.Fatalf("Stripping twice changed the result for %q: %q vs %q", s, once, twice)
		}
		if refiltered := Sanitize(StripTag(once)); once != refiltered {
			t.Fatalf("Filtering is not stable for %q: %q vs %q", s, once, refiltered)
		}
	}

	if actual := Sanitize(StripTag("[!@#] ]Dream")); actual != "" {
		t.Fatalf("Only the text up to the second ']' should survive, got %q", actual)
	}
}

func TestSanitizeAlphabet(t *testing.T) {
	for _, s := range sanitizeInputs {
		for _, c := range Sanitize(s) {
			if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
				t.Fatalf("Sanitize(%q) kept %q", s, c)
			}
		}
	}

	if actual := Sanitize("[MVP+] xX_Gamer_Xx 🎮"); actual != "MVPxX_Gamer_Xx" {
		t.Fatalf("Unexpected sanitised value: %q", actual)
	}
	if actual := Sanitize("\u212Aelvin"); actual != "elvin" {
		t.Fatalf("Non ASCII letters must be dropped, got %q", actual)
	}
}

func TestIsNameDispatch(t *testing.T) {
	for n := 0; n <= 40; n++ {
		s := strings.Repeat("a", n)
		if IsName(s) != (n <= MaxNameLength) {
			t.Fatalf("Wrong dispatch for length %d", n)
		}
	}
}
