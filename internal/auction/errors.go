package auction

import "errors"

// Construction errors. NewInstance fails fast with one of these; a
// malformed instance never reaches the simulator or the oracle.
var (
	ErrNoSlots          = errors.New("auction requires at least one slot")
	ErrNoAdvertisers    = errors.New("auction requires at least one advertiser")
	ErrCTRLength        = errors.New("ctrs must have exactly numSlots+1 entries")
	ErrCTRAscending     = errors.New("ctrs must be weakly descending")
	ErrCTRNegative      = errors.New("ctrs must be non-negative")
	ErrCTRTerminal      = errors.New("last ctr entry must be exactly 0")
	ErrCTRNotFinite     = errors.New("ctrs must be finite numbers")
	ErrValueNotPositive = errors.New("advertiser values must be strictly positive")
	ErrValueNotFinite   = errors.New("advertiser values must be finite numbers")

	// ErrDegenerateCTRs reports an adjacent pair of zero CTRs below the
	// slot boundary. The drop-out recurrence divides by the CTR one
	// position above the candidate slot, so such a pair would force a
	// zero denominator mid-auction. Detected at construction where
	// possible and signalled explicitly at run time otherwise, never
	// propagated as NaN/Inf.
	ErrDegenerateCTRs = errors.New("degenerate ctr ratio: adjacent zero ctrs")
)

// RejectionReason maps a NewInstance validation error to the reason label
// recorded on InstancesRejectedTotal.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNoSlots):
		return "no_slots"
	case errors.Is(err, ErrNoAdvertisers):
		return "no_advertisers"
	case errors.Is(err, ErrCTRLength):
		return "ctr_length"
	case errors.Is(err, ErrCTRAscending):
		return "ctr_ascending"
	case errors.Is(err, ErrCTRNegative):
		return "ctr_negative"
	case errors.Is(err, ErrCTRTerminal):
		return "ctr_terminal"
	case errors.Is(err, ErrCTRNotFinite):
		return "ctr_not_finite"
	case errors.Is(err, ErrValueNotPositive):
		return "value_not_positive"
	case errors.Is(err, ErrValueNotFinite):
		return "value_not_finite"
	case errors.Is(err, ErrDegenerateCTRs):
		return "degenerate_ctrs"
	}
	return "other"
}
