package srf

import (
	"testing"

	"github.com/ostafen/srf/internal/srf/srftest"
	"github.com/stretchr/testify/require"
)

func TestSignatureLayout(t *testing.T) {
	sig, mask := RevisionCurrent.Pattern()
	require.Len(t, sig, SignatureSize)
	require.Equal(t, srftest.Signature(), sig)
	for _, m := range mask {
		require.True(t, m)
	}

	_, mask = RevisionLegacy.Pattern()
	for i, m := range mask {
		require.Equal(t, i != 32 && i != 33, m, "position %d", i)
	}
}

func TestMatches(t *testing.T) {
	sig := srftest.Signature()
	buf := append(append([]byte{1, 2, 3, 4}, sig...), 5, 6)

	for _, rev := range Revisions {
		require.True(t, rev.Matches(buf, 4))
		require.False(t, rev.Matches(buf, 0))
		require.False(t, rev.Matches(buf, 5))
		require.False(t, rev.Matches(buf, -1))
		require.False(t, rev.Matches(buf, len(buf)))

		// window must fit in the buffer
		require.True(t, rev.Matches(sig, 0))
		require.False(t, rev.Matches(sig[:SignatureSize-1], 0))
	}
}

func TestMatchesEveryPosition(t *testing.T) {
	for i := 0; i < SignatureSize; i++ {
		sig := srftest.Signature()
		sig[i] ^= 0x5A

		require.False(t, RevisionCurrent.Matches(sig, 0), "position %d", i)

		wildcard := i == 32 || i == 33
		require.Equal(t, wildcard, RevisionLegacy.Matches(sig, 0), "position %d", i)
	}
}

func TestParseRevision(t *testing.T) {
	for _, rev := range Revisions {
		parsed, err := ParseRevision(rev.String())
		require.NoError(t, err)
		require.Equal(t, rev, parsed)
	}

	rev, err := ParseRevision("LEGACY")
	require.NoError(t, err)
	require.Equal(t, RevisionLegacy, rev)

	_, err = ParseRevision("v3")
	require.Error(t, err)

	require.Equal(t, "Revision(9)", Revision(9).String())
}
