package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/ostafen/srf/internal/srf"
	"github.com/stretchr/testify/require"
)

func testResult() *srf.Result {
	return &srf.Result{
		Revision: srf.RevisionCurrent,
		Metadata: srf.Metadata{
			BinsPerSweep: 100,
			BinSize:      0.01,
			Offset:       0,
			TickDuration: 2e-6,
		},
		Sweeps: []srf.Sweep{
			{Start: 1, Events: []float64{0.2, 0.4}},
			{Start: 2, Events: []float64{}},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "text", "a.srf", testResult()))

	out := buf.String()
	require.Contains(t, out, "Bins per sweep:")
	require.Contains(t, out, "100")
	require.Contains(t, out, "2e-06 s")
	require.Contains(t, out, "0.200000 0.400000")
	require.Contains(t, out, "SWEEP")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", "a.srf", testResult()))

	var out jsonResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Equal(t, "current", out.Revision)
	require.Equal(t, uint32(100), out.Metadata.BinsPerSweep)
	require.Equal(t, 2e-6, out.Metadata.TickDuration)
	require.Len(t, out.Sweeps, 2)
	require.Equal(t, []float64{0.2, 0.4}, out.Sweeps[0].Events)
	require.Empty(t, out.Sweeps[1].Events)
	require.Contains(t, buf.String(), `"event_times_sec": []`)
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "xml", "a.srf", testResult()))

	var doc struct {
		XMLName  xml.Name    `xml:"srf"`
		Version  string      `xml:"xmloutputversion,attr"`
		Creator  Creator     `xml:"creator"`
		Source   Source      `xml:"source"`
		Metadata XMLMetadata `xml:"metadata"`
		Sweeps   []XMLSweep  `xml:"sweep"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))

	require.Equal(t, XMLOutputVersion, doc.Version)
	require.Equal(t, "srf", doc.Creator.Package)
	require.Equal(t, "a.srf", doc.Source.Filename)
	require.Equal(t, "current", doc.Source.Revision)
	require.Equal(t, 0.01, doc.Metadata.BinSize)
	require.Len(t, doc.Sweeps, 2)
	require.Equal(t, 1, doc.Sweeps[1].Index)
	require.Equal(t, []float64{0.2, 0.4}, doc.Sweeps[0].Events)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Write(&buf, "csv", "a.srf", testResult()))
}
