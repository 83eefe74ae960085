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

import (
	"bytes"
	"fmt"
	"strings"
)

// Sentinel layout: a run of 0xFF, a run of 0x00 and another run of 0xFF.
const (
	markerRunSize = 16
	zeroRunSize   = 36

	SignatureSize = 2*markerRunSize + zeroRunSize
)

// Legacy files leave two bytes in the middle of the zero run unconstrained.
const (
	legacyWildcardOff = markerRunSize + 16
	legacyWildcardLen = 2
)

// Revision selects the sentinel layout used to recognize sweep records.
// A file is decoded with exactly one revision.
type Revision uint8

const (
	RevisionCurrent Revision = iota
	RevisionLegacy
)

var revisionNames = map[Revision]string{
	RevisionCurrent: "current",
	RevisionLegacy:  "legacy",
}

// Revisions lists the supported layouts.
var Revisions = []Revision{RevisionCurrent, RevisionLegacy}

var signature = func() [SignatureSize]byte {
	var sig [SignatureSize]byte
	for i := 0; i < markerRunSize; i++ {
		sig[i] = 0xFF
		sig[SignatureSize-1-i] = 0xFF
	}
	return sig
}()

func ParseRevision(s string) (Revision, error) {
	for rev, name := range revisionNames {
		if strings.EqualFold(s, name) {
			return rev, nil
		}
	}
	return 0, fmt.Errorf("unknown revision %q", s)
}

func (r Revision) String() string {
	if name, ok := revisionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Revision(%d)", uint8(r))
}

// Pattern returns the sentinel bytes and a mask marking the positions
// that take part in the comparison.
func (r Revision) Pattern() (sig []byte, mask []bool) {
	sig = bytes.Clone(signature[:])
	mask = make([]bool, SignatureSize)
	for i := range mask {
		mask[i] = true
	}
	if r == RevisionLegacy {
		for i := legacyWildcardOff; i < legacyWildcardOff+legacyWildcardLen; i++ {
			mask[i] = false
		}
	}
	return sig, mask
}

// Matches reports whether the sentinel starts at buf[off].
func (r Revision) Matches(buf []byte, off int) bool {
	if off < 0 || off > len(buf)-SignatureSize {
		return false
	}
	window := buf[off : off+SignatureSize]

	if r == RevisionLegacy {
		end := legacyWildcardOff + legacyWildcardLen
		return bytes.Equal(window[:legacyWildcardOff], signature[:legacyWildcardOff]) &&
			bytes.Equal(window[end:], signature[end:])
	}
	return bytes.Equal(window, signature[:])
}
