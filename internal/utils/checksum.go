package utils

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Supported digest algorithms
const (
	HashSHA1   = "sha1"
	HashSHA256 = "sha256"
)

// CalculateChecksum calculates a specific checksum for data
func CalculateChecksum(data []byte, hashType string) (string, error) {
	var h hash.Hash

	switch strings.ToLower(hashType) {
	case HashSHA1:
		h = sha1.New()
	case HashSHA256:
		h = sha256.New()
	default:
		return "", fmt.Errorf("unsupported hash type %q", hashType)
	}

	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
