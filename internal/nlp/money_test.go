package nlp

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain_integer", "25000", 25000},
		{"thousands_separator", "25,000", 25000},
		{"k_suffix", "25k", 25000},
		{"uppercase_k_suffix", "25K", 25000},
		{"decimal_k_suffix", "7.5k", 7500},
		{"k_with_space", "25 k", 25000},
		{"decimal", "100.50", 100.5},
		{"surrounding_whitespace", "  1,500 ", 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if err != nil {
				t.Fatalf("ParseMoney(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoney(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMoneyInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "12abc", "k", "twenty"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMoney(input)
			if !errors.Is(err, ErrNotNumeric) {
				t.Errorf("ParseMoney(%q) error = %v, want ErrNotNumeric", input, err)
			}
		})
	}
}

func TestExtractFirstAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"amount_then_text", "550rs lunch", 550},
		{"decimal_amount", "100.5 dinner", 100.5},
		{"amount_with_commas", "spent 1,500 on rent", 1500},
		{"first_of_several", "300 lunch and 200 snacks", 300},
		{"no_digits", "had lunch with friends", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFirstAmount(tt.input); got != tt.want {
				t.Errorf("ExtractFirstAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractRequestedAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain", "can I spend 200 more today?", 200},
		{"k_suffix", "can I spend 1.5k on shoes", 1500},
		{"comma_separated", "is 2,000 okay for an outing", 2000},
		{"no_amount", "how is my budget looking", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRequestedAmount(tt.input); got != tt.want {
				t.Errorf("ExtractRequestedAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
