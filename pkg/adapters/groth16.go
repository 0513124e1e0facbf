package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/vocdoni/circom2gnark/parser"

	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// groth16Adapter verifies Circom/SnarkJS groth16 proofs by converting
// them to gnark's representation, adapted almost verbatim from the
// teacher's pkg/verifier/verifier.go verifyCircomProof: parse the proof
// JSON, parse the VK JSON, convert both plus the public signals to a
// gnark proof, and run the real groth16 verifier over it.
type groth16Adapter struct{}

func (groth16Adapter) ProofSystem() protocol.ProofSystem { return protocol.Groth16 }

func (groth16Adapter) PreVerify(proofBytes, vkBytes []byte, publicInputs []string) (bool, error) {
	circomProof, err := parser.UnmarshalCircomProofJSON(proofBytes)
	if err != nil {
		return false, fmt.Errorf("%w: invalid groth16 proof json: %v", protocol.ErrMalformedProof, err)
	}

	circomVk, err := parser.UnmarshalCircomVerificationKeyJSON(vkBytes)
	if err != nil {
		return false, fmt.Errorf("%w: invalid groth16 vk json: %v", protocol.ErrVKCorrupt, err)
	}

	gnarkProof, err := parser.ConvertCircomToGnark(circomProof, circomVk, publicInputs)
	if err != nil {
		return false, fmt.Errorf("%w: circom to gnark conversion failed: %v", protocol.ErrMalformedProof, err)
	}

	valid, err := parser.VerifyProof(gnarkProof)
	if err != nil {
		return false, fmt.Errorf("groth16 verification error: %w", err)
	}
	return valid, nil
}

// CanonicalBytes re-marshals the proof JSON through a stable encoder so
// that cosmetic whitespace/key-order differences in how a miner
// serialized the proof never change the linkage digest it feeds into.
func (groth16Adapter) CanonicalBytes(proofBytes []byte) ([]byte, error) {
	return canonicalJSON(proofBytes)
}

func canonicalJSON(raw []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformedProof, err)
	}
	return json.Marshal(v)
}
