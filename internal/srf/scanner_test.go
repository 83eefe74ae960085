package srf

import (
	"testing"

	"github.com/ostafen/srf/internal/srf/srftest"
	"github.com/stretchr/testify/require"
)

var testHeader = srftest.Header{
	BinsPerSweep: 100,
	BinSize:      0.01,
	Offset:       0,
	TickDuration: 2e-6,
}

func collect(t *testing.T, sc *Scanner) []Record {
	t.Helper()

	var records []Record
	for rec := range sc.Records() {
		records = append(records, rec)
	}
	return records
}

func TestScannerRecords(t *testing.T) {
	buf := srftest.NewBuilder(testHeader).
		Sweep(500000, 100000, 200000).
		Sweep(900000).
		Sweep(1200000, 1300000).
		Bytes()

	sc := NewScanner(nil, buf, RevisionCurrent)
	records := collect(t, sc)
	require.NoError(t, sc.Err())
	require.Len(t, records, 3)

	require.Equal(t, DataStart, records[0].Offset)
	require.Equal(t, uint32(500000), records[0].StartTick())
	require.Equal(t, []uint32{100000, 200000}, records[0].Ticks())

	require.Equal(t, DataStart+RecordHeaderSize+8, records[1].Offset)
	require.Equal(t, uint32(900000), records[1].StartTick())
	require.Empty(t, records[1].Ticks())

	require.Equal(t, records[1].Offset+RecordHeaderSize, records[2].Offset)
	require.Equal(t, []uint32{1300000}, records[2].Ticks())
	require.Equal(t, len(buf), records[2].Offset+RecordHeaderSize+len(records[2].Body))
}

func TestScannerStopsOnBreak(t *testing.T) {
	buf := srftest.NewBuilder(testHeader).
		Sweep(1, 2).
		Sweep(3, 4).
		Bytes()

	sc := NewScanner(nil, buf, RevisionCurrent)

	n := 0
	for range sc.Records() {
		n++
		break
	}
	require.Equal(t, 1, n)
	require.NoError(t, sc.Err())
}

func TestScannerSkipsLeadingBytes(t *testing.T) {
	buf := srftest.NewBuilder(testHeader).
		Raw(0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0).
		Sweep(10, 20).
		Bytes()

	sc := NewScanner(nil, buf, RevisionCurrent)
	records := collect(t, sc)
	require.NoError(t, sc.Err())
	require.Len(t, records, 1)
	require.Equal(t, DataStart+8, records[0].Offset)
	require.Equal(t, []uint32{20}, records[0].Ticks())
}

func TestScannerIgnoresUnalignedRecords(t *testing.T) {
	buf := srftest.NewBuilder(testHeader).
		Raw(0, 0).
		Sweep(10, 20).
		Raw(0, 0).
		Bytes()

	sc := NewScanner(nil, buf, RevisionCurrent)
	require.Empty(t, collect(t, sc))
	require.NoError(t, sc.Err())
}

func TestScannerMalformedTail(t *testing.T) {
	buf := srftest.NewBuilder(testHeader).
		Sweep(10, 20, 30).
		Raw(0xAA, 0xBB).
		Bytes()

	sc := NewScanner(nil, buf, RevisionCurrent)
	records := collect(t, sc)
	require.Empty(t, records)

	var bodyErr *MalformedBodyError
	require.ErrorAs(t, sc.Err(), &bodyErr)
	require.Equal(t, DataStart, bodyErr.Offset)
	require.Equal(t, 10, bodyErr.Length)
}

func TestScannerMalformedTailAfterValidRecords(t *testing.T) {
	buf := srftest.NewBuilder(testHeader).
		Sweep(10, 20).
		Sweep(30, 40).
		Raw(0xAA).
		Bytes()

	sc := NewScanner(nil, buf, RevisionCurrent)
	records := collect(t, sc)
	require.Len(t, records, 1)

	var bodyErr *MalformedBodyError
	require.ErrorAs(t, sc.Err(), &bodyErr)
	require.Equal(t, DataStart+RecordHeaderSize+4, bodyErr.Offset)
	require.Equal(t, 5, bodyErr.Length)
}

// The tail of a signature followed by a body starting with 36 zero bytes and
// 16 0xFF bytes forms a second signature that overlaps the first record.
// Only the record whose signature is found first is emitted.
func TestAnchorInsideSignatureIsIgnored(t *testing.T) {
	ticks := []uint32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}
	buf := srftest.NewBuilder(testHeader).
		Sweep(7, ticks...).
		Bytes()

	phantom := DataStart + 52
	require.True(t, RevisionCurrent.Matches(buf, phantom+PreambleSize))

	sc := NewScanner(nil, buf, RevisionCurrent)
	records := collect(t, sc)
	require.NoError(t, sc.Err())
	require.Len(t, records, 1)
	require.Equal(t, uint32(7), records[0].StartTick())
	require.Equal(t, ticks, records[0].Ticks())
}

func TestScannerLegacyRevision(t *testing.T) {
	buf := srftest.NewBuilder(testHeader).
		LegacySweep([2]byte{0xAB, 0xCD}, 100, 1, 2).
		Sweep(200, 3).
		Bytes()

	sc := NewScanner(nil, buf, RevisionLegacy)
	records := collect(t, sc)
	require.NoError(t, sc.Err())
	require.Len(t, records, 2)
	require.Equal(t, []uint32{1, 2}, records[0].Ticks())
	require.Equal(t, []uint32{3}, records[1].Ticks())

	// the current layout does not see the legacy record, so its bytes
	// up to the next record are simply skipped
	sc = NewScanner(nil, buf, RevisionCurrent)
	records = collect(t, sc)
	require.NoError(t, sc.Err())
	require.Len(t, records, 1)
	require.Equal(t, uint32(200), records[0].StartTick())
}
