// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package srf

// TickScale converts instrument ticks into seconds.
type TickScale struct {
	dt float64
}

// NewTickScale returns a TickScale for the given tick duration in seconds.
// NaN, zero and negative durations are rejected.
func NewTickScale(dt float64) (TickScale, error) {
	if !(dt > 0) {
		return TickScale{}, &InvalidScaleError{Value: dt}
	}
	return TickScale{dt: dt}, nil
}

// Seconds converts a raw tick count into seconds.
func (s TickScale) Seconds(ticks uint32) float64 {
	return TicksToSeconds(ticks, s.dt)
}

// Duration returns the tick duration in seconds.
func (s TickScale) Duration() float64 {
	return s.dt
}

func TicksToSeconds(ticks uint32, dt float64) float64 {
	return float64(ticks) * dt
}
