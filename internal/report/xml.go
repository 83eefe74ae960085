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
package report

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/ostafen/srf/internal/env"
	"github.com/ostafen/srf/internal/srf"
)

const XMLOutputVersion = "1.0"

// XMLHeader is written once, before the sweeps.
type XMLHeader struct {
	Version  string // Defaults to XMLOutputVersion
	Creator  Creator
	Source   Source
	Metadata XMLMetadata
}

// Creator describes the program that produced the report.
type Creator struct {
	XMLName xml.Name `xml:"creator"`
	Package string `xml:"package"`
	Version string `xml:"version"`
	Commit  string `xml:"commit"`
}

// Source describes the decoded file.
type Source struct {
	XMLName  xml.Name `xml:"source"`
	Filename string `xml:"filename"`
	Revision string `xml:"revision"`
}

type XMLMetadata struct {
	XMLName      xml.Name `xml:"metadata"`
	BinsPerSweep uint32  `xml:"bins_per_sweep"`
	BinSize      float64 `xml:"bin_size"`
	Offset       float64 `xml:"offset"`
	TickDuration float64 `xml:"tick_duration"`
}

// XMLSweep is the XML form of a single sweep.
type XMLSweep struct {
	XMLName xml.Name  `xml:"sweep"`
	Index   int       `xml:"index,attr"`
	Start   float64   `xml:"start,attr"`
	Events  []float64 `xml:"event"`
}

// XMLWriter streams a report: WriteHeader, WriteSweep for each sweep, Close.
type XMLWriter struct {
	w   io.Writer
	enc *xml.Encoder
}

func NewXMLWriter(w io.Writer) *XMLWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return &XMLWriter{
		w:   w,
		enc: enc,
	}
}

// WriteHeader writes the XML declaration, opens the root element and encodes
// the header fields inside it.
func (w *XMLWriter) WriteHeader(hdr XMLHeader) error {
	if _, err := io.WriteString(w.w, xml.Header); err != nil {
		return err
	}

	version := hdr.Version
	if version == "" {
		version = XMLOutputVersion
	}

	start := xml.StartElement{
		Name: xml.Name{Local: "srf"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmloutputversion"}, Value: version},
		},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}

	for _, v := range []any{hdr.Creator, hdr.Source, hdr.Metadata} {
		if err := w.enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func (w *XMLWriter) WriteSweep(s XMLSweep) error {
	return w.enc.Encode(s)
}

// Close writes the closing root tag and flushes the encoder.
func (w *XMLWriter) Close() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "srf"}}); err != nil {
		return err
	}
	return w.enc.Flush()
}

// WriteXML writes res as a complete XML document.
func WriteXML(w io.Writer, filename string, res *srf.Result) error {
	xw := NewXMLWriter(w)

	md := res.Metadata
	err := xw.WriteHeader(XMLHeader{
		Creator: Creator{
			Package: env.AppName,
			Version: env.Version,
			Commit:  env.CommitHash,
		},
		Source: Source{
			Filename: filename,
			Revision: res.Revision.String(),
		},
		Metadata: XMLMetadata{
			BinsPerSweep: md.BinsPerSweep,
			BinSize:      md.BinSize,
			Offset:       md.Offset,
			TickDuration: md.TickDuration,
		},
	})
	if err != nil {
		return err
	}

	for i, s := range res.Sweeps {
		if err := xw.WriteSweep(XMLSweep{Index: i, Start: s.Start, Events: s.Events}); err != nil {
			return err
		}
	}
	return xw.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
