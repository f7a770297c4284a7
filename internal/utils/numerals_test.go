package utils

import (
	"testing"

	"github.com/julianstephens/dayfit/internal/constants"
)

func TestRoman(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{1994, "MCMXCIV"},
		{2026, "MMXXVI"},
	}
	for _, tt := range tests {
		if got := Roman(tt.n); got != tt.want {
			t.Errorf("Roman(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAlphabetic(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "a"},
		{26, "z"},
		{27, "aa"},
		{52, "az"},
		{53, "ba"},
		{702, "zz"},
		{703, "aaa"},
	}
	for _, tt := range tests {
		if got := Alphabetic(tt.n); got != tt.want {
			t.Errorf("Alphabetic(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRowLabel(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{constants.NumberFormatNumbers, "12"},
		{constants.NumberFormatRoman, "XII"},
		{constants.NumberFormatAlphabet, "l"},
		{"unknown", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := RowLabel(12, tt.format); got != tt.want {
				t.Errorf("RowLabel(12, %q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
