// Package cryptoutil collects the hashing and field-element helpers shared
// by the engine and the VK registry.
package cryptoutil

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// Sha256Hex returns the hex-encoded SHA-256 digest of data.
func Sha256Hex(data []byte) string {
	return hex.EncodeToString(Sha256(data))
}

// SplitHashToFieldElements splits a 256-bit hash (hex string) into two
// 128-bit field elements, low part first.
func SplitHashToFieldElements(hexString string) (*fr.Element, *fr.Element) {
	fullValue := new(big.Int)
	fullValue.SetString(hexString, 16)

	mask128 := new(big.Int).Lsh(big.NewInt(1), 128)
	mask128.Sub(mask128, big.NewInt(1))

	p1Int := new(big.Int).And(fullValue, mask128)
	p2Int := new(big.Int).Rsh(fullValue, 128)
	p2Int.And(p2Int, mask128)

	var p1, p2 fr.Element
	p1.SetBigInt(p1Int)
	p2.SetBigInt(p2Int)

	return &p1, &p2
}

// FieldElementFromBytes hashes arbitrary bytes with SHA-256 and reduces the
// whole 256-bit digest into one scalar-field element (unlike
// SplitHashToFieldElements, which takes an existing hash and splits it into
// two 128-bit halves) — used by the engine to fold a depth/subnet
// domain-separation tag into its commitment digest.
func FieldElementFromBytes(b []byte) *fr.Element {
	hashInt := new(big.Int).SetBytes(Sha256(b))
	var f fr.Element
	f.SetBigInt(hashInt)
	return &f
}
