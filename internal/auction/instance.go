package auction

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strings"
)

// Unassigned is the allocation sentinel for a slot that no advertiser won.
const Unassigned = -1

// Instance is a single auction problem: a set of slots with descending
// click-through rates and a set of advertisers with private per-click
// values. It is immutable after construction; both the English-clock
// simulator and the VCG oracle consume the same instance.
//
// CTRs has NumSlots+1 entries: one per slot plus a terminal 0 for the
// "no slot" position awarded to eliminated advertisers.
type Instance struct {
	NumSlots int
	CTRs     []float64
	Values   []float64
}

// NewInstance validates and builds an auction instance. Inputs are copied,
// so callers may reuse their slices. All validation happens here; Run and
// Compute assume a well-formed instance.
func NewInstance(numSlots int, ctrs, values []float64) (*Instance, error) {
	if numSlots < 1 {
		return nil, fmt.Errorf("numSlots %d: %w", numSlots, ErrNoSlots)
	}

	if len(ctrs) != numSlots+1 {
		return nil, fmt.Errorf("got %d ctrs for %d slots: %w", len(ctrs), numSlots, ErrCTRLength)
	}

	for i, ctr := range ctrs {
		if math.IsNaN(ctr) || math.IsInf(ctr, 0) {
			return nil, fmt.Errorf("ctr[%d]: %w", i, ErrCTRNotFinite)
		}

		if ctr < 0 {
			return nil, fmt.Errorf("ctr[%d] = %f: %w", i, ctr, ErrCTRNegative)
		}

		if i > 0 && ctr > ctrs[i-1] {
			return nil, fmt.Errorf("ctr[%d] = %f > ctr[%d] = %f: %w", i, ctr, i-1, ctrs[i-1], ErrCTRAscending)
		}
	}

	if ctrs[numSlots] != 0 {
		return nil, fmt.Errorf("ctr[%d] = %f: %w", numSlots, ctrs[numSlots], ErrCTRTerminal)
	}

	// An adjacent zero pair strictly below the slot boundary makes the
	// drop-out ratio 0/0 for a reachable candidate slot.
	for i := 1; i < numSlots; i++ {
		if ctrs[i] == 0 && ctrs[i-1] == 0 {
			return nil, fmt.Errorf("ctr[%d] and ctr[%d] are both zero: %w", i-1, i, ErrDegenerateCTRs)
		}
	}

	if len(values) == 0 {
		return nil, ErrNoAdvertisers
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value[%d]: %w", i, ErrValueNotFinite)
		}

		if v <= 0 {
			return nil, fmt.Errorf("value[%d] = %f: %w", i, v, ErrValueNotPositive)
		}
	}

	in := &Instance{
		NumSlots: numSlots,
		CTRs:     append([]float64(nil), ctrs...),
		Values:   append([]float64(nil), values...),
	}

	return in, nil
}

// NumAdvertisers returns the number of competing advertisers.
func (in *Instance) NumAdvertisers() int {
	return len(in.Values)
}

// candidateSlot maps the count of active advertisers to the slot index the
// next advertiser to drop out would receive. With i active advertisers the
// candidate slot is i-1, clamped once to the terminal "no slot" index when
// more advertisers than slots remain. This is the single place the three
// position coordinates (active count, slot index, CTR index) meet.
func (in *Instance) candidateSlot(active int) int {
	k := active - 1
	if k > in.NumSlots {
		k = in.NumSlots
	}
	return k
}

// recurrenceCTRs returns the CTR of the candidate slot and the CTR one
// position above it, for the given active-advertiser count. Callers only
// invoke this with active >= 2, so the index above the candidate slot is
// always valid.
func (in *Instance) recurrenceCTRs(active int) (alpha, alphaAbove float64) {
	k := in.candidateSlot(active)
	return in.CTRs[k], in.CTRs[k-1]
}

// Fingerprint returns a deterministic digest of the instance, used to
// deduplicate identical scenarios in batch runs.
//
// Floats are rendered to six decimal places so the digest does not depend
// on their in-memory representation.
func (in *Instance) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", in.NumSlots)
	for _, ctr := range in.CTRs {
		fmt.Fprintf(&b, "|%.6f", ctr)
	}
	b.WriteString("||")
	for _, v := range in.Values {
		fmt.Fprintf(&b, "|%.6f", v)
	}

	hash := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", hash)
}
