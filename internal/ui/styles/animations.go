// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// =============================================================================
// SPINNER
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(s.FPS)
}

// LineSpinner - Simple ASCII line rotation, shown while reference data loads
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// =============================================================================
// SCROLL EASING
// =============================================================================

// EasingFunc maps progress t in [0,1] to eased progress.
type EasingFunc func(t float64) float64

// EaseLinear - No easing.
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic - Fast start, gentle stop. Used for smooth scrolling.
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// ScrollFrames returns the intermediate offsets of a smooth scroll from
// `from` to `to` over n frames. The last frame is always `to`.
func ScrollFrames(from, to, n int, ease EasingFunc) []int {
	if n < 1 || from == to {
		return []int{to}
	}
	if ease == nil {
		ease = EaseLinear
	}

	frames := make([]int, 0, n)
	last := from
	for i := 1; i <= n; i++ {
		p := ease(float64(i) / float64(n))
		off := from + int(float64(to-from)*p+0.5*sign(to-from))
		if i == n {
			off = to
		}
		if off != last {
			frames = append(frames, off)
			last = off
		}
	}
	if len(frames) == 0 || frames[len(frames)-1] != to {
		frames = append(frames, to)
	}
	return frames
}

func sign(n int) float64 {
	if n < 0 {
		return -1
	}
	return 1
}

// ScrollFrameInterval is the delay between smooth scroll frames.
const ScrollFrameInterval = 16 * time.Millisecond

// ScrollFrameCount is the number of frames in a smooth scroll.
const ScrollFrameCount = 8
