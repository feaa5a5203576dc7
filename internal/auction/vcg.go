package auction

import (
	"sort"

	"go.uber.org/zap"
)

// Pricing is the VCG benchmark outcome for an instance: the
// value-maximizing allocation and the externality-based per-click payment
// each allocated advertiser owes.
type Pricing struct {
	// Allocation maps slot index to the advertiser ranked there by
	// value, or Unassigned when there are fewer advertisers than slots.
	Allocation []int

	// Prices maps advertiser id to the per-click VCG payment.
	// Advertisers outside the top NumSlots ranks pay 0.
	Prices []float64
}

// Oracle computes VCG payments for the position auction in closed form.
// It is the correctness baseline the clock simulation is compared against.
type Oracle struct {
	logger *zap.Logger
}

// NewOracle creates a new VCG pricing oracle.
func NewOracle(logger *zap.Logger) *Oracle {
	return &Oracle{logger: logger}
}

// Compute ranks advertisers by value and charges each winner the
// externality they impose: at each rank below theirs, the CTR differential
// times the value of the advertiser pushed one position down. The
// aggregate is converted to a per-click price by the winner's own CTR;
// a zero CTR yields price 0 by convention rather than an error.
func (o *Oracle) Compute(in *Instance) (*Pricing, error) {
	n := in.NumAdvertisers()

	// Rank by value descending, stable in original index order so equal
	// values resolve deterministically.
	ranked := make([]int, n)
	for adv := range ranked {
		ranked[adv] = adv
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return in.Values[ranked[a]] > in.Values[ranked[b]]
	})

	p := &Pricing{
		Allocation: make([]int, in.NumSlots),
		Prices:     make([]float64, n),
	}
	for slot := range p.Allocation {
		p.Allocation[slot] = Unassigned
	}

	winners := in.NumSlots
	if n < winners {
		winners = n
	}

	for i := 0; i < winners; i++ {
		adv := ranked[i]
		p.Allocation[i] = adv

		payment := 0.0
		for j := i + 1; j <= in.NumSlots && j < n; j++ {
			payment += (in.CTRs[j-1] - in.CTRs[j]) * in.Values[ranked[j]]
		}

		if in.CTRs[i] > 0 {
			p.Prices[adv] = payment / in.CTRs[i]
		}
	}

	VCGComputationsTotal.Inc()

	o.logger.Debug("vcg-pricing-complete",
		zap.Int("advertisers", n),
		zap.Int("slots", in.NumSlots),
		zap.Float64s("prices", p.Prices))

	return p, nil
}
