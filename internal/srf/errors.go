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

import "fmt"

// TruncatedHeaderError is returned when the input is too short to hold the file header.
type TruncatedHeaderError struct {
	Size int // Number of bytes available
}

func (e *TruncatedHeaderError) Error() string {
	return fmt.Sprintf("srf: truncated header: got %d bytes, need at least %d", e.Size, HeaderSize)
}

// MalformedBodyError is returned when the body of a recognized sweep record
// does not split into whole 4-byte tick chunks.
type MalformedBodyError struct {
	Offset int // Offset of the record the body belongs to
	Length int // Length of the body in bytes
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("srf: malformed body in record at offset %d: length %d is not a multiple of %d", e.Offset, e.Length, ChunkSize)
}

// InvalidScaleError is returned when the header tick duration cannot be used
// to convert ticks into seconds.
type InvalidScaleError struct {
	Value float64
}

func (e *InvalidScaleError) Error() string {
	return fmt.Sprintf("srf: invalid tick duration %g: must be positive", e.Value)
}
