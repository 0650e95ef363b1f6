package models

import (
	"testing"
	"unicode/utf8"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t\n  ", nil},
		{"single line", "Order taking", []string{"Order taking"}},
		{"multiple lines", "One\nTwo\nThree", []string{"One", "Two", "Three"}},
		{"blank lines skipped", "One\n\n\nTwo\n", []string{"One", "Two"}},
		{"lines trimmed", "  One \n Two  ", []string{"One", "Two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLines(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitLines(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "pricing", []string{"pricing"}},
		{"lowercased and trimmed", " Pricing , SETUP ", []string{"pricing", "setup"}},
		{"empty entries dropped", "a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitKeywords(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitKeywords(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitKeywords(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short, 10) = %q", got)
	}
	if got := Truncate("a longer sentence", 8); got != "a longer..." {
		t.Errorf("Truncate = %q, want %q", got, "a longer...")
	}
}

func TestTruncateMultibyte(t *testing.T) {
	// Counts characters, not bytes: Devanagari runes are 3 bytes each.
	in := "पनीर टिक्का मसाला"
	got := Truncate(in, 5)
	if want := "पनीर ..."; got != want {
		t.Errorf("Truncate = %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncate produced invalid UTF-8: %q", got)
	}
	if got := Truncate(in, 100); got != in {
		t.Errorf("Truncate under limit = %q, want input unchanged", got)
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-20, 0}, {0, 0}, {55, 55}, {100, 100}, {140, 100},
	}
	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStepValid(t *testing.T) {
	for _, s := range []Step{StepWelcome, StepMenuSelection, StepItemSelection, StepOrderConfirmation, StepComplete} {
		if !s.Valid() {
			t.Errorf("Step(%q).Valid() = false", s)
		}
	}
	if Step("checkout").Valid() {
		t.Error(`Step("checkout").Valid() = true`)
	}
}
