package callflow

import "testing"

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", 1},
		{" 3 ", 3},
		{"0", 0},
		{"one", 1},
		{"Two", 2},
		{"ten", 10},
		{"zero", 0},
		{"eleven", -1},
		{"pizza", -1},
		{"", -1},
		{"what is your fee?", -1},
	}
	for _, tt := range tests {
		if got := ParseChoice(tt.in); got != tt.want {
			t.Errorf("ParseChoice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLooksLikeQuestion(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"what's your delivery fee?", true},
		{"how much does delivery cost", true},
		{"do you have vegan options", true},
		{"tell me about your specials", true}, // three or more words
		{"9", false},
		{"nine", false},
		{"pizza", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeQuestion(tt.in); got != tt.want {
			t.Errorf("LooksLikeQuestion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
