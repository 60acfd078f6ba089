// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import "time"

// FrameStats times editor frames.
type FrameStats struct {

	// DeltaTime is the duration of the last full frame.
	DeltaTime time.Duration

	// Now returns the current time; it is time.Now if nil.
	Now func() time.Time

	start time.Time
}

func (fs *FrameStats) now() time.Time {
	if fs.Now != nil {
		return fs.Now()
	}
	return time.Now()
}

// Begin marks the start of a frame.
func (fs *FrameStats) Begin() {
	fs.start = fs.now()
}

// End marks the end of a frame started with Begin.
func (fs *FrameStats) End() {
	if fs.start.IsZero() {
		return
	}
	fs.DeltaTime = fs.now().Sub(fs.start)
}

// FPS returns the frame rate implied by DeltaTime, or 0.
func (fs *FrameStats) FPS() float64 {
	if fs.DeltaTime <= 0 {
		return 0
	}
	return float64(time.Second) / float64(fs.DeltaTime)
}
