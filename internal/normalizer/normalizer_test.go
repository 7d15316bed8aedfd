package normalizer

import "testing"

// TestNormalizeTable exercises the worked examples covering copy
// markers, trailing numbers, and bracketed suffixes.
func TestNormalizeTable(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"DSC_0001.JPG", "dsc0001.jpg"},
		{"DSC_0001Copy2.JPG", "dsc0001.jpg"},
		{"Report (1).pdf", "report.pdf"},
		{"Report_2024.pdf", "report2024.pdf"},
		{"Report_123.pdf", "report.pdf"},
		{"Photo_copy.jpg", "photo.jpg"},
		{"IMG_1001 (1).jpg", "img1001.jpg"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want \"\"", got)
	}
}

func TestNormalizeFourDigitSuffixPreserved(t *testing.T) {
	// 4+ trailing digits are camera sequence numbers, not copy suffixes;
	// two distinct camera files must remain distinct after normalization.
	a := Normalize("DSC_0001.JPG")
	b := Normalize("DSC_0002.JPG")
	if a == b {
		t.Errorf("expected DSC_0001 and DSC_0002 to normalize differently, both got %q", a)
	}
}

func TestNormalizeCached(t *testing.T) {
	// Calling twice must return the same result (and exercises the cache
	// path without asserting on internal call counts, since Normalize has
	// no injectable hook for that).
	first := Normalize("Vacation_Photo (copy).png")
	second := Normalize("Vacation_Photo (copy).png")
	if first != second {
		t.Errorf("Normalize is not idempotent: %q != %q", first, second)
	}
}
