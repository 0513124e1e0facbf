package fixtures

import "testing"

func TestBuildGroth16Fixture(t *testing.T) {
	f, err := BuildGroth16Fixture()
	if err != nil {
		t.Fatalf("BuildGroth16Fixture: %v", err)
	}
	if len(f.ProofBytes) == 0 {
		t.Fatalf("expected non-empty proof bytes")
	}
	if len(f.VKBytes) == 0 {
		t.Fatalf("expected non-empty vk bytes")
	}
}
