package config

import "testing"

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	c := Default()
	if c.SourcingK != 5 || c.SourcingMajority != 3 {
		t.Fatalf("unexpected sourcing defaults: k=%d majority=%d", c.SourcingK, c.SourcingMajority)
	}
	if c.DepthBonusCap != 5.0 || c.CompressionBonusMultiplier != 1.5 || c.CrossSubnetMultiplier != 2.0 {
		t.Fatalf("unexpected scoring defaults: %+v", c)
	}
	if c.VKCacheDir == "" {
		t.Fatalf("expected a non-empty default VK cache dir")
	}
}

func TestNewAppliesOptionsOverDefaults(t *testing.T) {
	c := New(
		WithVKCacheDir("/tmp/vks"),
		WithSourcingK(7),
		WithSourcingMajority(4),
		WithProvingWorkUnit(1),
		WithTaskGuardRedisURL("redis://localhost:6379/0"),
	)
	if c.VKCacheDir != "/tmp/vks" {
		t.Errorf("VKCacheDir = %q", c.VKCacheDir)
	}
	if c.SourcingK != 7 || c.SourcingMajority != 4 {
		t.Errorf("sourcing overrides not applied: %+v", c)
	}
	if c.ProvingWorkUnit != 1 {
		t.Errorf("ProvingWorkUnit override not applied: %d", c.ProvingWorkUnit)
	}
	if c.TaskGuardRedisURL != "redis://localhost:6379/0" {
		t.Errorf("TaskGuardRedisURL override not applied: %q", c.TaskGuardRedisURL)
	}
	// Untouched fields still come from Default.
	if c.VKCacheTTL != Default().VKCacheTTL {
		t.Errorf("VKCacheTTL should be untouched by unrelated options")
	}
}

func TestMajorityOf(t *testing.T) {
	cases := []struct {
		k    int
		want int
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 3},
		{6, 4},
	}
	for _, tc := range cases {
		if got := MajorityOf(tc.k); got != tc.want {
			t.Errorf("MajorityOf(%d) = %d, want %d", tc.k, got, tc.want)
		}
	}
}
