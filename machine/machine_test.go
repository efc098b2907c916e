package machine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/stitch"
)

func sp(x, y float64, k stitch.Kind) stitch.StitchPoint {
	return stitch.StitchPoint{X: x, Y: y, Kind: k}
}

func TestRegistry(t *testing.T) {
	r := Standard(0.26, "design")
	assert.Equal(t, []string{"dst", "raw"}, r.Formats())

	c, err := r.Lookup("DST")
	require.NoError(t, err)
	assert.Equal(t, "dst", c.Name())

	c, err = r.ForPath("/tmp/Design.Stitches")
	require.NoError(t, err)
	assert.Equal(t, "raw", c.Name())

	_, err = r.Lookup("pes")
	assert.ErrorIs(t, err, stitch.ErrUnsupportedCapability)
	assert.Equal(t, stitch.ErrUnsupportedCapability, stitch.KindOf(err))

	_, err = r.ForPath("design.pes")
	assert.ErrorIs(t, err, stitch.ErrUnsupportedCapability)
	_, err = r.ForPath("design")
	assert.ErrorIs(t, err, stitch.ErrUnsupportedCapability)

	// Registering under an existing name replaces the codec.
	r.Register(NewDST(0.1, "other"))
	c, err = r.Lookup("dst")
	require.NoError(t, err)
	assert.Equal(t, 0.1, c.(*DST).MMPerPx)
	assert.Len(t, r.Formats(), 2)
}

func TestRegistryMissingCapability(t *testing.T) {
	var nilRegistry *Registry
	_, err := nilRegistry.Lookup("raw")
	assert.ErrorIs(t, err, stitch.ErrUnsupportedCapability)
	assert.Empty(t, nilRegistry.Formats())

	r := NewRegistry(Raw{})
	var buf bytes.Buffer
	err = r.Encode(&buf, "dst", stitch.Plan{})
	assert.ErrorIs(t, err, stitch.ErrUnsupportedCapability)
	assert.Zero(t, buf.Len())

	_, err = r.Decode(&buf, "dst")
	assert.ErrorIs(t, err, stitch.ErrUnsupportedCapability)
}

func TestRegistryRoundTrip(t *testing.T) {
	r := Standard(0.1, "")
	plan := stitch.PlanFromPoints([]stitch.StitchPoint{
		sp(0, 0, stitch.StitchKind),
		sp(10, 0, stitch.StitchKind),
	})
	for _, format := range r.Formats() {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Encode(&buf, format, plan))
			got, err := r.Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, 2, got.Info.StitchCount)
			require.Len(t, got.Points, 3)
			assert.Equal(t, stitch.EndKind, got.Points[2].Kind)
		})
	}
}
