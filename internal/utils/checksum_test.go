package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateChecksum(t *testing.T) {
	sum, err := CalculateChecksum([]byte("abc"), HashSHA1)
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", sum)

	sum, err = CalculateChecksum([]byte("abc"), "SHA256")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	_, err = CalculateChecksum([]byte("abc"), "md5")
	assert.Error(t, err)
}
