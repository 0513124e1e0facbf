// Package adapters implements C2: per-proof-system structural validation
// and (where a real verifier library is available) cryptographic
// pre-verification of component proofs before they are folded by the
// engine. Each adapter is registered at startup via Register, the same
// explicit-wiring pattern the teacher uses for its own single hardcoded
// Groth16 path in pkg/verifier/verifier.go — no reflection, no plugin
// discovery.
package adapters

import (
	"fmt"

	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// Adapter validates one component proof against its verification key
// before it is accepted into an aggregation (spec.md §4.2). PreVerify
// does not need to be a full cryptographic verification for every
// system (see plonk.go/halo2.go/nova.go for what each one actually
// checks); CanonicalBytes returns the byte representation folded into
// the linkage digest, so proof re-serialization never changes the
// digest the verifier later recomputes.
type Adapter interface {
	ProofSystem() protocol.ProofSystem
	PreVerify(proofBytes []byte, vkBytes []byte, publicInputs []string) (bool, error)
	CanonicalBytes(proofBytes []byte) ([]byte, error)
}

var registry = map[protocol.ProofSystem]Adapter{}

// Register installs an adapter for its proof system. The four built-in
// adapters are all registered by this file's init().
func Register(a Adapter) {
	registry[a.ProofSystem()] = a
}

// Lookup returns the adapter for system, or ErrUnsupportedProofSystem.
func Lookup(system protocol.ProofSystem) (Adapter, error) {
	a, ok := registry[system]
	if !ok {
		return nil, fmt.Errorf("%w: %s", protocol.ErrUnsupportedProofSystem, system)
	}
	return a, nil
}

func init() {
	Register(&groth16Adapter{})
	Register(&plonkAdapter{})
	Register(&halo2Adapter{})
	Register(&novaAdapter{})
}
