package srf

import (
	"errors"
	"testing"

	"github.com/ostafen/srf/internal/srf/srftest"
)

func FuzzDecode(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, HeaderSize))
	f.Add(srftest.NewBuilder(testHeader).Bytes())
	f.Add(srftest.NewBuilder(testHeader).Sweep(1, 2, 3).Sweep(4).Bytes())
	f.Add(srftest.NewBuilder(testHeader).Sweep(1, 0, 0, 0, 0, 0, 0, 0, 0, 0, ^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)).Bytes())
	f.Add(srftest.NewBuilder(testHeader).Sweep(1, 2).Raw(3).Bytes())

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, rev := range Revisions {
			dec := NewDecoder(nil, rev)

			res, err := dec.Decode(data)
			if err != nil {
				if res != nil {
					t.Fatalf("partial result returned with error %v", err)
				}

				var (
					truncErr *TruncatedHeaderError
					bodyErr  *MalformedBodyError
					scaleErr *InvalidScaleError
				)
				if !errors.As(err, &truncErr) && !errors.As(err, &bodyErr) && !errors.As(err, &scaleErr) {
					t.Fatalf("unexpected error type %T: %v", err, err)
				}
				if len(data) < HeaderSize && truncErr == nil {
					t.Fatalf("expected truncated header error, got %v", err)
				}
				continue
			}

			// records never overlap and bodies consist of whole ticks
			sc := NewScanner(nil, data, rev)
			prevEnd := DataStart
			n := 0
			for rec := range sc.Records() {
				if rec.Offset < prevEnd || rec.Offset%ChunkSize != 0 {
					t.Fatalf("record at %d overlaps previous record ending at %d", rec.Offset, prevEnd)
				}
				if len(rec.Body)%ChunkSize != 0 {
					t.Fatalf("body of record at %d has length %d", rec.Offset, len(rec.Body))
				}
				if len(res.Sweeps[n].Events) != rec.NumTicks() {
					t.Fatalf("sweep %d has %d events, record has %d ticks", n, len(res.Sweeps[n].Events), rec.NumTicks())
				}
				prevEnd = rec.Offset + RecordHeaderSize + len(rec.Body)
				n++
			}
			if sc.Err() != nil || n != len(res.Sweeps) {
				t.Fatalf("scanner disagrees with decoder: %d records, %d sweeps, err %v", n, len(res.Sweeps), sc.Err())
			}

			again, err := dec.Decode(data)
			if err != nil || len(again.Sweeps) != len(res.Sweeps) {
				t.Fatalf("second decode differs: %v", err)
			}
		}
	})
}
