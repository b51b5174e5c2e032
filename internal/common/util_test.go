package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, n := range []int{0, 1, 8, 32} {
		s, err := MakeRandHexString(n)
		require.NoError(t, err)
		assert.Len(t, s, n*2)

		_, err = hex.DecodeString(s)
		assert.NoError(t, err, "must be valid hex")
	}
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		s, err := MakeRandHexString(8)
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup, "request ids should not repeat")
		seen[s] = struct{}{}
	}
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("Passw0rd!")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, 9), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
	assert.NotPanics(t, func() { WipeByteArray([]byte{}) })
}
