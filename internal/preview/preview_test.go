package preview

import (
	"io"
	"path/filepath"
	"testing"
)

func TestAutoWidth(t *testing.T) {
	cases := []struct {
		pixels int
		want   int
	}{
		{1920, 100}, // clamped to the maximum
		{640, 80},
		{160, 20},
		{100, 20}, // clamped to the minimum
		{0, 20},
	}

	for _, c := range cases {
		if got := AutoWidth(c.pixels); got != c.want {
			t.Errorf("AutoWidth(%d) = %d, want %d", c.pixels, got, c.want)
		}
	}
}

func TestShow_MissingFile(t *testing.T) {
	err := Show(io.Discard, filepath.Join(t.TempDir(), "nope.png"), 40)
	if err == nil {
		t.Error("expected error for a missing preview image")
	}
}
