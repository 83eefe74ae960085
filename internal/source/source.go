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
package source

import (
	"fmt"
	"io"
	"os"
)

// Source holds the whole content of a file in memory.
// The returned bytes must not be modified.
type Source struct {
	data  []byte
	unmap func([]byte) error
}

// Load reads the whole file at path. The file is closed before Load returns.
func Load(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %q: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a regular file", path)
	}

	data := make([]byte, fi.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return &Source{data: data}, nil
}

// Bytes returns the file content.
func (s *Source) Bytes() []byte {
	return s.data
}

// Size returns the number of bytes held by the source.
func (s *Source) Size() int {
	return len(s.data)
}

// Close releases the memory held by the source. Slices previously returned
// by Bytes must not be used afterwards.
func (s *Source) Close() error {
	data := s.data
	s.data = nil

	if s.unmap == nil || data == nil {
		return nil
	}
	if err := s.unmap(data); err != nil {
		return fmt.Errorf("failed to munmap: %w", err)
	}
	return nil
}
