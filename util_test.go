package stitch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// diff fails the test with a readable diff when want and got differ.
func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}

func assertNear(t *testing.T, got, want Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon {
		t.Fatalf("got %s, want %s (off by %g)", got, want, d)
	}
}
