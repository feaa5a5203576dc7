package report

import (
	"fmt"
	"io"
	"math"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/google/uuid"
)

// matchTolerance is the absolute tolerance when comparing clock and VCG
// per-click prices. The two mechanisms compute the same numbers along
// different arithmetic paths, so exact float equality is not expected.
const matchTolerance = 1e-6

// SlotRow describes one slot of the clock outcome next to its VCG
// counterpart. Payment and utility are per-impression expectations:
// payment = price * CTR, utility = (value - price) * CTR.
type SlotRow struct {
	Slot       int     `json:"slot"`
	CTR        float64 `json:"ctr"`
	Advertiser int     `json:"advertiser"`
	Value      float64 `json:"value"`
	ClockPrice float64 `json:"clock_price"`
	VCGPrice   float64 `json:"vcg_price"`
	Payment    float64 `json:"payment"`
	Utility    float64 `json:"utility"`
}

// AdvertiserRow pairs one advertiser's clock price with its VCG price.
type AdvertiserRow struct {
	Advertiser int     `json:"advertiser"`
	Value      float64 `json:"value"`
	Slot       int     `json:"slot"`
	ClockPrice float64 `json:"clock_price"`
	VCGPrice   float64 `json:"vcg_price"`
}

// Report is the full clock-vs-VCG comparison for one auction instance.
type Report struct {
	ID          string `json:"id"`
	Trial       uint64 `json:"trial"`
	Fingerprint string `json:"fingerprint"`

	NumSlots       int `json:"num_slots"`
	NumAdvertisers int `json:"num_advertisers"`

	Slots       []SlotRow       `json:"slots"`
	Advertisers []AdvertiserRow `json:"advertisers"`
	History     []float64       `json:"history"`

	ClockRevenue float64 `json:"clock_revenue"`
	VCGRevenue   float64 `json:"vcg_revenue"`

	// AllocationMatch reports whether both mechanisms seated the same
	// advertiser in every slot. PriceMatch compares the per-slot
	// clearing prices, which stay equal under value ties even when the
	// seating permutes.
	AllocationMatch bool `json:"allocation_match"`
	PriceMatch      bool `json:"price_match"`
}

// Build assembles the comparison report for one instance from the clock
// outcome and the VCG pricing.
func Build(trial uint64, in *auction.Instance, out *auction.Outcome, pricing *auction.Pricing) *Report {
	r := &Report{
		ID:              uuid.New().String(),
		Trial:           trial,
		Fingerprint:     in.Fingerprint(),
		NumSlots:        in.NumSlots,
		NumAdvertisers:  in.NumAdvertisers(),
		Slots:           make([]SlotRow, in.NumSlots),
		Advertisers:     make([]AdvertiserRow, in.NumAdvertisers()),
		History:         append([]float64(nil), out.History...),
		AllocationMatch: true,
		PriceMatch:      true,
	}

	for slot := 0; slot < in.NumSlots; slot++ {
		row := SlotRow{
			Slot:       slot,
			CTR:        in.CTRs[slot],
			Advertiser: out.Allocation[slot],
		}

		if adv := out.Allocation[slot]; adv != auction.Unassigned {
			row.Value = in.Values[adv]
			row.ClockPrice = out.Prices[adv]
			row.Payment = row.ClockPrice * row.CTR
			row.Utility = (row.Value - row.ClockPrice) * row.CTR
			r.ClockRevenue += row.Payment
		}

		if adv := pricing.Allocation[slot]; adv != auction.Unassigned {
			row.VCGPrice = pricing.Prices[adv]
			r.VCGRevenue += row.VCGPrice * row.CTR
		}

		if out.Allocation[slot] != pricing.Allocation[slot] {
			r.AllocationMatch = false
		}

		if math.Abs(row.ClockPrice-row.VCGPrice) > matchTolerance {
			r.PriceMatch = false
		}

		r.Slots[slot] = row
	}

	clockSlot := make([]int, in.NumAdvertisers())
	for adv := range clockSlot {
		clockSlot[adv] = auction.Unassigned
	}
	for slot, adv := range out.Allocation {
		if adv != auction.Unassigned {
			clockSlot[adv] = slot
		}
	}

	for adv := range r.Advertisers {
		r.Advertisers[adv] = AdvertiserRow{
			Advertiser: adv,
			Value:      in.Values[adv],
			Slot:       clockSlot[adv],
			ClockPrice: out.Prices[adv],
			VCGPrice:   pricing.Prices[adv],
		}
	}

	return r
}

// RenderConsole writes the fixed-width result and comparison tables.
func (r *Report) RenderConsole(w io.Writer) {
	r.RenderAuction(w)
	fmt.Fprintln(w)
	r.RenderComparison(w)
}

// RenderAuction writes the per-slot clock outcome table.
func (r *Report) RenderAuction(w io.Writer) {
	line := "----------------------------------------------------------------------"

	fmt.Fprintf(w, "Auction Results (trial %d, report %s)\n", r.Trial, shortID(r.ID))
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "Slot |  CTR  | Advertiser |  Value |  Price | Payment | Utility")
	fmt.Fprintln(w, line)

	for _, row := range r.Slots {
		if row.Advertiser == auction.Unassigned {
			fmt.Fprintf(w, "%4d | %.3f | %10s | %6s | %6s | %7s | %7s\n",
				row.Slot, row.CTR, "none", "-", "-", "-", "-")
			continue
		}

		fmt.Fprintf(w, "%4d | %.3f | %10d | %6.2f | %6.2f | %7.2f | %7.2f\n",
			row.Slot, row.CTR, row.Advertiser, row.Value, row.ClockPrice, row.Payment, row.Utility)
	}

	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Clock revenue: %.4f   VCG revenue: %.4f\n", r.ClockRevenue, r.VCGRevenue)
}

// RenderComparison writes the per-advertiser clock-vs-VCG table.
func (r *Report) RenderComparison(w io.Writer) {
	line := "----------------------------------------------------------------------"

	fmt.Fprintln(w, "Comparison with VCG")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "Advertiser |  Value | Slot | Clock Price | VCG Price")
	fmt.Fprintln(w, line)

	for _, row := range r.Advertisers {
		slot := fmt.Sprintf("%d", row.Slot)
		if row.Slot == auction.Unassigned {
			slot = "-"
		}
		fmt.Fprintf(w, "%10d | %6.2f | %4s | %11.4f | %9.4f\n",
			row.Advertiser, row.Value, slot, row.ClockPrice, row.VCGPrice)
	}

	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Allocation match: %v   Price match: %v\n", r.AllocationMatch, r.PriceMatch)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
