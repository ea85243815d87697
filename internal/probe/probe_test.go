package probe

import "testing"

func TestParseVideoJSON(t *testing.T) {
	output := []byte(`{
		"streams": [
			{"width": 1920, "height": 1080, "r_frame_rate": "30000/1001", "codec_name": "h264"}
		],
		"format": {"duration": "12.480000"}
	}`)

	meta, err := parseVideoJSON(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.Width != 1920 || meta.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", meta.Width, meta.Height)
	}

	if meta.Codec != "h264" {
		t.Errorf("expected codec h264, got %s", meta.Codec)
	}

	if meta.Duration != 12.48 {
		t.Errorf("expected duration 12.48, got %f", meta.Duration)
	}

	if meta.FPS < 29.9 || meta.FPS > 30.0 {
		t.Errorf("expected NTSC frame rate, got %f", meta.FPS)
	}

	if meta.DurationUs() != 12480000 {
		t.Errorf("expected 12480000 microseconds, got %d", meta.DurationUs())
	}
}

func TestParseVideoJSON_NoStreams(t *testing.T) {
	_, err := parseVideoJSON([]byte(`{"streams": [], "format": {}}`))
	if err == nil {
		t.Error("expected error for missing video streams")
	}
}

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		rate string
		want float64
	}{
		{"30/1", 30},
		{"25", 25},
		{"0/0", 0},
		{"bogus", 0},
	}

	for _, c := range cases {
		if got := parseFrameRate(c.rate); got != c.want {
			t.Errorf("parseFrameRate(%q) = %f, want %f", c.rate, got, c.want)
		}
	}
}
