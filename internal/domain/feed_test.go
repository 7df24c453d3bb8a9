package domain

import "testing"

func TestStatusFor(t *testing.T) {
	cases := []struct {
		in   string
		want ProductStatus
	}{
		{"allocated", StatusPending},
		{"deleted", StatusPublish},
		{"closeout", StatusPublish},
		{"banana", StatusPublish},
		{"", StatusPublish},
		{" Allocated ", StatusPending},
	}
	for _, c := range cases {
		if got := StatusFor(c.in); got != c.want {
			t.Errorf("StatusFor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeSKU(t *testing.T) {
	if got := NormalizeSKU("  abc123 "); got != "ABC123" {
		t.Errorf("NormalizeSKU = %q, want ABC123", got)
	}
}

func TestNormalizeImageFile(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abc123.JPG", "abc123.jpg"},
		{"COLT_45.JPG", "COLT_45.jpg"},
		{"already.jpg", "already.jpg"},
		{" 7_small.JPG ", "7_small.jpg"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeImageFile(c.in); got != c.want {
			t.Errorf("NormalizeImageFile(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
