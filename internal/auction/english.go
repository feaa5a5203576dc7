package auction

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DropoutEvent records one elimination: which advertiser left the clock
// and at which per-click price they were indifferent to leaving.
type DropoutEvent struct {
	Advertiser int     `json:"advertiser" csv:"advertiser"`
	Price      float64 `json:"price" csv:"price"`
}

// Outcome is the result of one English-clock run.
type Outcome struct {
	// Allocation maps slot index (0 = best CTR) to the winning
	// advertiser, or Unassigned.
	Allocation []int

	// Prices maps advertiser id to the per-click price they pay.
	// Advertisers without a slot pay 0.
	Prices []float64

	// History holds every drop-out price in elimination order. Its
	// length is always NumAdvertisers-1: every advertiser except the
	// final survivor produces exactly one entry.
	History []float64

	// Events pairs each history entry with the advertiser that produced it.
	Events []DropoutEvent
}

// Simulator runs the generalized English (ascending-clock) auction: at
// every round each active advertiser's equilibrium drop-out price is
// computed, the lowest one exits, and surviving advertisers fill slots
// from the worst upward. A run is pure: identical instances yield
// bit-identical outcomes.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator creates a new English-clock simulator.
func NewSimulator(logger *zap.Logger) *Simulator {
	return &Simulator{logger: logger}
}

// dropoutPrice computes the equilibrium drop-out price for one advertiser:
//
//	price = s - (alpha_i / alpha_{i-1}) * (s - b)
//
// where s is the advertiser's per-click value, b the most recent recorded
// drop-out price (0 if none) and alpha_i / alpha_{i-1} the CTRs of the
// candidate slot and the one above it for the current active count.
func dropoutPrice(in *Instance, active int, lastDrop, value float64) (float64, error) {
	alpha, alphaAbove := in.recurrenceCTRs(active)
	if alphaAbove == 0 {
		return 0, fmt.Errorf("active=%d candidate slot %d: %w", active, in.candidateSlot(active), ErrDegenerateCTRs)
	}

	return value - (alpha/alphaAbove)*(value-lastDrop), nil
}

// Run executes the two-phase elimination loop and returns the allocation,
// the per-advertiser per-click prices and the drop-out history.
func (s *Simulator) Run(in *Instance) (*Outcome, error) {
	start := time.Now()

	n := in.NumAdvertisers()

	out := &Outcome{
		Allocation: make([]int, in.NumSlots),
		Prices:     make([]float64, n),
		History:    make([]float64, 0, n),
		Events:     make([]DropoutEvent, 0, n),
	}
	for slot := range out.Allocation {
		out.Allocation[slot] = Unassigned
	}

	// Active advertisers in id order. Selection scans this slice and
	// replaces only on a strictly lower price, so ties always resolve
	// to the first id encountered and the process stays deterministic.
	active := make([]int, n)
	for adv := range active {
		active[adv] = adv
	}

	rounds := 0

	// Excess-elimination phase: with more advertisers than slots, the
	// lowest drop-out price exits with no slot and price 0. The computed
	// price still enters history, where the allocation phase reads it.
	for len(active) > in.NumSlots {
		pos, price, err := s.lowestDropout(in, active, out.History)
		if err != nil {
			return nil, err
		}

		adv := active[pos]
		out.Prices[adv] = 0
		out.History = append(out.History, price)
		out.Events = append(out.Events, DropoutEvent{Advertiser: adv, Price: price})
		active = append(active[:pos], active[pos+1:]...)
		rounds++
	}

	// Allocation phase: slots fill bottom-up. The advertiser leaving the
	// clock takes the worst unfilled slot and pays the drop-out price of
	// whoever left immediately before them.
	nextSlot := in.NumSlots - 1
	for len(active) > 1 && nextSlot >= 0 {
		pos, price, err := s.lowestDropout(in, active, out.History)
		if err != nil {
			return nil, err
		}

		adv := active[pos]
		out.Allocation[nextSlot] = adv
		out.Prices[adv] = lastEntry(out.History)
		out.History = append(out.History, price)
		out.Events = append(out.Events, DropoutEvent{Advertiser: adv, Price: price})
		active = append(active[:pos], active[pos+1:]...)
		nextSlot--
		rounds++
	}

	// The survivor takes the best slot at the last recorded price.
	if len(active) == 1 && nextSlot >= 0 {
		adv := active[0]
		out.Allocation[0] = adv
		out.Prices[adv] = lastEntry(out.History)
	}

	AuctionsSimulatedTotal.Inc()
	EliminationRounds.Observe(float64(rounds))
	SimulationDurationSeconds.Observe(time.Since(start).Seconds())

	s.logger.Debug("english-clock-complete",
		zap.Int("advertisers", n),
		zap.Int("slots", in.NumSlots),
		zap.Int("rounds", rounds),
		zap.Float64s("history", out.History))

	return out, nil
}

// lowestDropout computes every active advertiser's drop-out price at the
// current round and returns the position (within the active slice) and
// price of the strictly lowest one.
func (s *Simulator) lowestDropout(in *Instance, active []int, history []float64) (int, float64, error) {
	lastDrop := lastEntry(history)

	best := -1
	bestPrice := 0.0

	for pos, adv := range active {
		price, err := dropoutPrice(in, len(active), lastDrop, in.Values[adv])
		if err != nil {
			return 0, 0, fmt.Errorf("advertiser %d: %w", adv, err)
		}

		if best == -1 || price < bestPrice {
			best = pos
			bestPrice = price
		}
	}

	return best, bestPrice, nil
}

func lastEntry(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1]
}
