package adapters

import (
	"fmt"

	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// minNovaProofBytes is a conservative structural floor for a folded IVC
// proof, which carries at least a running instance commitment plus a
// final SNARK wrapping it.
const minNovaProofBytes = 64

// novaAdapter performs structural validation only. It is also the
// system the engine itself uses for its own recursion-layer VK (see
// SPEC_FULL.md "Supplemented features" #2 and pkg/engine), so this
// adapter's checks double as the guard on the engine's own recursive
// output when it is re-submitted as a base proof to a further round of
// composition.
type novaAdapter struct{}

func (novaAdapter) ProofSystem() protocol.ProofSystem { return protocol.Nova }

func (novaAdapter) PreVerify(proofBytes, vkBytes []byte, publicInputs []string) (bool, error) {
	if len(proofBytes) < minNovaProofBytes {
		return false, fmt.Errorf("%w: nova proof too short (%d bytes, need >= %d)", protocol.ErrMalformedProof, len(proofBytes), minNovaProofBytes)
	}
	if len(vkBytes) == 0 {
		return false, fmt.Errorf("%w: empty nova verification key", protocol.ErrVKCorrupt)
	}
	return true, nil
}

func (novaAdapter) CanonicalBytes(proofBytes []byte) ([]byte, error) {
	return proofBytes, nil
}
