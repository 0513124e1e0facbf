// Package fixtures builds a real groth16 proof and verification key, in
// the same shape as the teacher's
// DoHCircuit (pkg/circuit/circuit.go) but over a trivial x*x=y
// constraint: the teacher's circuit binds its public inputs through
// Poseidon gadgets whose round-constant tables are not present anywhere
// in the retrieved source (see DESIGN.md), so this repo cannot
// reproduce it; a minimal gnark circuit is used instead purely to
// exercise the real groth16 setup/prove/verify path end to end. Only this
// package's own test uses it: the output is gnark-native bytes, not the
// Circom/SnarkJS JSON that the groth16 adapter parses.
package fixtures

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// SquareCircuit constrains Y == X*X.
type SquareCircuit struct {
	X frontend.Variable `gnark:",public"`
	Y frontend.Variable `gnark:",public"`
}

func (c *SquareCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Mul(c.X, c.X), c.Y)
	return nil
}

// Groth16Fixture holds a matched proof/verifying-key pair for x=3, y=9.
type Groth16Fixture struct {
	ProofBytes []byte
	VKBytes    []byte
}

// BuildGroth16Fixture compiles SquareCircuit, runs a trusted setup, and
// proves x=3, y=9, returning the gnark-native serialized proof and
// verifying key. Its only caller is fixtures_test.go.
func BuildGroth16Fixture() (*Groth16Fixture, error) {
	var circuit SquareCircuit
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, fmt.Errorf("circuit compilation failed: %w", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	assignment := SquareCircuit{X: 3, Y: 9}
	witness, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness creation failed: %w", err)
	}

	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return nil, fmt.Errorf("proving failed: %w", err)
	}

	var proofBuf, vkBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return nil, fmt.Errorf("proof serialization failed: %w", err)
	}
	if _, err := vk.WriteTo(&vkBuf); err != nil {
		return nil, fmt.Errorf("vk serialization failed: %w", err)
	}

	return &Groth16Fixture{ProofBytes: proofBuf.Bytes(), VKBytes: vkBuf.Bytes()}, nil
}
