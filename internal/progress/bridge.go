package progress

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// SpinInterval is the liveness poll cadence for tools that report no
// fine-grained progress.
const SpinInterval = 150 * time.Millisecond

// StreamFfmpeg consumes ffmpeg's "-progress pipe:1" key=value stream until
// EOF, forwarding throttled updates to the sink. The reader is always
// drained to completion so the subprocess never blocks on a full pipe,
// regardless of what the sink does with the updates.
//
// With a known total duration it emits Progress events (percent capped at
// 100, linear ETA) whenever the percentage has moved at least one point.
// Without one it emits Spinner events carrying raw elapsed output time on
// a one-second cadence.
func StreamFfmpeg(r io.Reader, label string, durationSeconds float64, sink Sink) {
	scanner := bufio.NewScanner(r)
	lastPercent := math.Inf(-1)
	lastElapsed := math.Inf(-1)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "progress=end" {
			if durationSeconds > 0 && lastPercent < 100 {
				sink.Progress(label, 100, 0)
				lastPercent = 100
			}
			continue
		}

		value, ok := strings.CutPrefix(line, "out_time_ms=")
		if !ok {
			continue
		}
		ms, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			continue
		}
		// out_time_ms is in microseconds despite the name.
		elapsed := float64(ms) / 1e6

		if durationSeconds > 0 {
			percent := math.Min(elapsed/durationSeconds*100, 100)
			if percent-lastPercent >= 1 {
				sink.Progress(label, percent, math.Max(durationSeconds-elapsed, 0))
				lastPercent = percent
			}
		} else if elapsed-lastElapsed >= 1 {
			sink.Spinner(label, elapsed, "ffmpeg")
			lastElapsed = elapsed
		}
	}
}

// Spin emits Spinner ticks for label until done is closed. Used for
// backends (ImageMagick, LibreOffice) that expose no progress stream; the
// tick carries wall-clock elapsed time.
func Spin(done <-chan struct{}, label, message string, sink Sink) {
	start := time.Now()
	ticker := time.NewTicker(SpinInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			sink.Spinner(label, time.Since(start).Seconds(), message)
		}
	}
}
