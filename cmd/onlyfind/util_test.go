package main

import "testing"

func TestParseSizeValid(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1234", 1234},
		{"0", 0},
		{"1K", 1000},
		{"1KiB", 1024},
		{"1MiB", 1048576},
		{"2.5G", 2500000000},
	}
	for _, tt := range tests {
		got, err := parseSize(tt.input)
		if err != nil {
			t.Fatalf("parseSize(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("parseSize(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseSizeInvalid(t *testing.T) {
	for _, input := range []string{"invalid", "abc", "1.5.5"} {
		if _, err := parseSize(input); err == nil {
			t.Errorf("parseSize(%q) should return an error", input)
		}
	}
}
