// Package runner invokes ffmpeg with a compiled filter graph and reports
// encode progress while it runs.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tilecast/tilecast/internal/config"
)

// PercentCallback is called with render progress in the range 0-100
type PercentCallback func(percent float64)

// Runner executes ffmpeg commands for compiled compositions
type Runner struct {
	ffmpeg    string
	onPercent PercentCallback
}

// New creates a Runner that invokes the given ffmpeg binary
func New(ffmpeg string) *Runner {
	return &Runner{ffmpeg: ffmpeg}
}

// SetPercentCallback sets the callback for progress updates
func (r *Runner) SetPercentCallback(cb PercentCallback) {
	r.onPercent = cb
}

// reportPercent reports progress if a callback is set
func (r *Runner) reportPercent(percent float64) {
	if r.onPercent != nil {
		r.onPercent(percent)
	}
}

// EncodeArgs converts encoder settings into ffmpeg output arguments
func EncodeArgs(enc config.EncodeOptions) []string {
	return []string{
		"-c:v", enc.VideoCodec,
		"-preset", enc.Preset,
		"-crf", strconv.Itoa(enc.CRF),
		"-r", strconv.Itoa(enc.FPS),
		"-pix_fmt", enc.PixelFormat,
	}
}

// Render runs ffmpeg over the assembled graph arguments, appending encoder
// settings and the output file. durationUs is the expected output duration
// in microseconds, used to compute progress percentages; pass 0 when
// unknown and only a completion signal will be reported.
func (r *Runner) Render(ctx context.Context, graphArgs []string, enc config.EncodeOptions, outputFile string, durationUs int64) error {
	args := append([]string{"-y"}, graphArgs...)
	args = append(args, EncodeArgs(enc)...)
	args = append(args, "-an", outputFile)

	return r.runWithProgress(ctx, durationUs, args...)
}

// ExtractFrame renders a single frame of the composition at the given
// offset (seconds) into outputPath. The image format follows the output
// file extension.
func (r *Runner) ExtractFrame(ctx context.Context, graphArgs []string, offset float64, outputPath string) error {
	args := append([]string{"-y"}, graphArgs...)
	args = append(args,
		"-ss", fmt.Sprintf("%.3f", offset),
		"-frames:v", "1",
		outputPath,
	)

	cmd := exec.CommandContext(ctx, r.ffmpeg, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// runWithProgress runs an ffmpeg command and parses its progress output.
// ffmpeg emits key=value lines on stdout when given -progress pipe:1; the
// out_time_us key carries the encoded position in microseconds.
func (r *Runner) runWithProgress(ctx context.Context, durationUs int64, args ...string) error {
	// -stats_period 0.5 outputs progress every 0.5 seconds
	progressArgs := append([]string{"-progress", "pipe:1", "-stats_period", "0.5", "-nostats"}, args...)

	cmd := exec.CommandContext(ctx, r.ffmpeg, progressArgs...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	var stderrBuf strings.Builder
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	r.reportPercent(0)

	// out_time_us can be "N/A" before the first frame is encoded
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "out_time_us=") {
			timeStr := strings.TrimPrefix(line, "out_time_us=")
			if timeStr == "N/A" {
				continue
			}
			if timeUs, err := strconv.ParseInt(timeStr, 10, 64); err == nil && durationUs > 0 && timeUs >= 0 {
				percent := float64(timeUs) / float64(durationUs) * 100
				if percent > 100 {
					percent = 100
				}
				r.reportPercent(percent)
			}
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w, stderr: %s", err, stderrBuf.String())
	}

	r.reportPercent(100)
	return nil
}
