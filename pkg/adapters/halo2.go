package adapters

import (
	"fmt"

	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// minHalo2ProofBytes is a conservative structural floor; halo2 proofs
// without lookup arguments are still sizeable KZG commitments, never a
// handful of bytes.
const minHalo2ProofBytes = 64

// halo2Adapter, like plonkAdapter, performs structural validation only
// — no halo2 verifier library is present in this module's dependency
// stack (see DESIGN.md).
type halo2Adapter struct{}

func (halo2Adapter) ProofSystem() protocol.ProofSystem { return protocol.Halo2 }

func (halo2Adapter) PreVerify(proofBytes, vkBytes []byte, publicInputs []string) (bool, error) {
	if len(proofBytes) < minHalo2ProofBytes {
		return false, fmt.Errorf("%w: halo2 proof too short (%d bytes, need >= %d)", protocol.ErrMalformedProof, len(proofBytes), minHalo2ProofBytes)
	}
	if len(vkBytes) == 0 {
		return false, fmt.Errorf("%w: empty halo2 verification key", protocol.ErrVKCorrupt)
	}
	return true, nil
}

func (halo2Adapter) CanonicalBytes(proofBytes []byte) ([]byte, error) {
	return proofBytes, nil
}
