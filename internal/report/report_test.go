package report

import (
	"strings"
	"testing"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildFixture(t *testing.T, numSlots int, ctrs, values []float64) (*auction.Instance, *Report) {
	t.Helper()

	in, err := auction.NewInstance(numSlots, ctrs, values)
	require.NoError(t, err)

	out, err := auction.NewSimulator(zap.NewNop()).Run(in)
	require.NoError(t, err)

	pricing, err := auction.NewOracle(zap.NewNop()).Compute(in)
	require.NoError(t, err)

	return in, Build(7, in, out, pricing)
}

func TestBuildKnownScenario(t *testing.T) {
	in, r := buildFixture(t, 2, []float64{1.0, 0.6, 0}, []float64{10, 6, 2})

	assert.Equal(t, uint64(7), r.Trial)
	assert.Equal(t, in.Fingerprint(), r.Fingerprint)
	assert.NotEmpty(t, r.ID)

	require.Len(t, r.Slots, 2)

	top := r.Slots[0]
	assert.Equal(t, 0, top.Advertiser)
	assert.InDelta(t, 3.6, top.ClockPrice, 1e-9)
	assert.InDelta(t, 3.6, top.VCGPrice, 1e-9)
	assert.InDelta(t, 3.6, top.Payment, 1e-9) // price * ctr 1.0
	assert.InDelta(t, 6.4, top.Utility, 1e-9) // (10 - 3.6) * 1.0

	second := r.Slots[1]
	assert.Equal(t, 1, second.Advertiser)
	assert.InDelta(t, 2.0, second.ClockPrice, 1e-9)
	assert.InDelta(t, 1.2, second.Payment, 1e-9) // 2.0 * 0.6
	assert.InDelta(t, 2.4, second.Utility, 1e-9) // (6 - 2) * 0.6

	assert.InDelta(t, 4.8, r.ClockRevenue, 1e-9)
	assert.InDelta(t, 4.8, r.VCGRevenue, 1e-9)

	assert.True(t, r.AllocationMatch)
	assert.True(t, r.PriceMatch)

	require.Len(t, r.Advertisers, 3)
	assert.Equal(t, auction.Unassigned, r.Advertisers[2].Slot)
	assert.InDelta(t, 0.0, r.Advertisers[2].ClockPrice, 1e-9)
}

func TestBuildTiePermutationKeepsPriceMatch(t *testing.T) {
	// Equal values: the clock seats advertisers in a different order than
	// the oracle's stable ranking, but the per-slot prices agree.
	_, r := buildFixture(t, 2, []float64{1.0, 0.5, 0}, []float64{5, 5, 5})

	assert.False(t, r.AllocationMatch)
	assert.True(t, r.PriceMatch)
	assert.InDelta(t, r.ClockRevenue, r.VCGRevenue, 1e-9)
}

func TestBuildUnassignedSlot(t *testing.T) {
	_, r := buildFixture(t, 3, []float64{1.0, 0.6, 0.3, 0}, []float64{10, 6})

	// Clock leaves the middle slot empty while VCG packs ranks from the
	// top, so the allocations differ even though prices agree at the top.
	assert.False(t, r.AllocationMatch)
	assert.Equal(t, auction.Unassigned, r.Slots[1].Advertiser)
	assert.InDelta(t, 0.0, r.Slots[1].Payment, 1e-9)
}

func TestRenderConsole(t *testing.T) {
	_, r := buildFixture(t, 2, []float64{1.0, 0.6, 0}, []float64{10, 6, 2})

	var b strings.Builder
	r.RenderConsole(&b)
	rendered := b.String()

	assert.Contains(t, rendered, "Auction Results")
	assert.Contains(t, rendered, "Comparison with VCG")
	assert.Contains(t, rendered, "Clock revenue: 4.8000")
	assert.Contains(t, rendered, "Allocation match: true   Price match: true")
}
