// Package probe extracts media metadata with ffprobe. The renderer uses
// it to size previews and to turn ffmpeg progress timestamps into
// percentages; it performs no validation of the media itself.
package probe

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Metadata contains video file information relevant to rendering
type Metadata struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	Duration float64 `json:"duration_seconds"`
	Codec    string  `json:"codec"`
}

// VideoSize returns the dimensions of the first video stream in a file
func VideoSize(ffprobe, path string) (width, height int, err error) {
	cmd := exec.Command(ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get video info: %w", err)
	}

	var w, h int
	_, err = fmt.Sscanf(string(output), "%d,%d", &w, &h)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse video dimensions: %w", err)
	}

	return w, h, nil
}

// Video returns metadata for the first video stream in a file
func Video(ffprobe, path string) (*Metadata, error) {
	cmd := exec.Command(ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,codec_name:format=duration",
		"-of", "json",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	return parseVideoJSON(output)
}

// parseVideoJSON decodes ffprobe's -of json output into Metadata
func parseVideoJSON(output []byte) (*Metadata, error) {
	var probeResult struct {
		Streams []struct {
			Width      int    `json:"width"`
			Height     int    `json:"height"`
			RFrameRate string `json:"r_frame_rate"`
			CodecName  string `json:"codec_name"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}

	if err := json.Unmarshal(output, &probeResult); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(probeResult.Streams) == 0 {
		return nil, fmt.Errorf("no video streams found")
	}

	stream := probeResult.Streams[0]
	meta := &Metadata{
		Width:  stream.Width,
		Height: stream.Height,
		Codec:  stream.CodecName,
	}

	meta.FPS = parseFrameRate(stream.RFrameRate)

	if d, err := strconv.ParseFloat(probeResult.Format.Duration, 64); err == nil {
		meta.Duration = d
	}

	return meta, nil
}

// parseFrameRate converts ffprobe's rational frame rate ("30000/1001")
// into frames per second
func parseFrameRate(rate string) float64 {
	num, den, found := strings.Cut(rate, "/")
	if !found {
		f, _ := strconv.ParseFloat(rate, 64)
		return f
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// DurationUs returns the metadata duration in microseconds, the unit
// ffmpeg progress reports use.
func (m *Metadata) DurationUs() int64 {
	return int64(m.Duration * 1000000)
}
