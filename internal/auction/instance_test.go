package auction

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstanceValidation(t *testing.T) {
	tests := []struct {
		name     string
		numSlots int
		ctrs     []float64
		values   []float64
		wantErr  error
	}{
		{
			name:     "valid-instance",
			numSlots: 2,
			ctrs:     []float64{1.0, 0.6, 0},
			values:   []float64{10, 6, 2},
		},
		{
			name:     "valid-single-slot",
			numSlots: 1,
			ctrs:     []float64{0.8, 0},
			values:   []float64{5},
		},
		{
			name:     "valid-equal-ctrs",
			numSlots: 2,
			ctrs:     []float64{0.5, 0.5, 0},
			values:   []float64{3, 1},
		},
		{
			name:     "zero-slots",
			numSlots: 0,
			ctrs:     []float64{0},
			values:   []float64{1},
			wantErr:  ErrNoSlots,
		},
		{
			name:     "ctr-length-mismatch",
			numSlots: 2,
			ctrs:     []float64{1.0, 0},
			values:   []float64{10, 6},
			wantErr:  ErrCTRLength,
		},
		{
			name:     "ascending-ctrs",
			numSlots: 2,
			ctrs:     []float64{0.6, 1.0, 0},
			values:   []float64{10, 6},
			wantErr:  ErrCTRAscending,
		},
		{
			name:     "negative-ctr",
			numSlots: 2,
			ctrs:     []float64{1.0, -0.1, 0},
			values:   []float64{10, 6},
			wantErr:  ErrCTRNegative,
		},
		{
			name:     "nonzero-terminal-ctr",
			numSlots: 2,
			ctrs:     []float64{1.0, 0.6, 0.1},
			values:   []float64{10, 6},
			wantErr:  ErrCTRTerminal,
		},
		{
			name:     "adjacent-zero-ctrs-below-boundary",
			numSlots: 3,
			ctrs:     []float64{1.0, 0, 0, 0},
			values:   []float64{10, 6},
			wantErr:  ErrDegenerateCTRs,
		},
		{
			name:     "nan-ctr",
			numSlots: 1,
			ctrs:     []float64{math.NaN(), 0},
			values:   []float64{1},
			wantErr:  ErrCTRNotFinite,
		},
		{
			name:     "empty-values",
			numSlots: 1,
			ctrs:     []float64{1.0, 0},
			values:   []float64{},
			wantErr:  ErrNoAdvertisers,
		},
		{
			name:     "zero-value",
			numSlots: 1,
			ctrs:     []float64{1.0, 0},
			values:   []float64{5, 0},
			wantErr:  ErrValueNotPositive,
		},
		{
			name:     "infinite-value",
			numSlots: 1,
			ctrs:     []float64{1.0, 0},
			values:   []float64{math.Inf(1)},
			wantErr:  ErrValueNotFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewInstance(tt.numSlots, tt.ctrs, tt.values)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, in)
			assert.Equal(t, len(tt.values), in.NumAdvertisers())
		})
	}
}

func TestRejectionReason(t *testing.T) {
	tests := []struct {
		err    error
		reason string
	}{
		{ErrNoSlots, "no_slots"},
		{ErrNoAdvertisers, "no_advertisers"},
		{ErrCTRLength, "ctr_length"},
		{ErrCTRAscending, "ctr_ascending"},
		{ErrCTRNegative, "ctr_negative"},
		{ErrCTRTerminal, "ctr_terminal"},
		{ErrCTRNotFinite, "ctr_not_finite"},
		{ErrValueNotPositive, "value_not_positive"},
		{ErrValueNotFinite, "value_not_finite"},
		{ErrDegenerateCTRs, "degenerate_ctrs"},
		{errors.New("unrelated"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.reason, RejectionReason(tt.err))
			// Validation errors arrive wrapped with context.
			assert.Equal(t, tt.reason, RejectionReason(fmt.Errorf("ctr[1]: %w", tt.err)))
		})
	}

	// End to end: the reason derives from what NewInstance actually returns.
	_, err := NewInstance(2, []float64{0.6, 1.0, 0}, []float64{10, 6})
	require.Error(t, err)
	assert.Equal(t, "ctr_ascending", RejectionReason(err))
}

func TestNewInstanceCopiesInputs(t *testing.T) {
	ctrs := []float64{1.0, 0.6, 0}
	values := []float64{10, 6}

	in, err := NewInstance(2, ctrs, values)
	require.NoError(t, err)

	ctrs[0] = 0.1
	values[0] = 0.1

	assert.Equal(t, 1.0, in.CTRs[0])
	assert.Equal(t, 10.0, in.Values[0])
}

func TestCandidateSlotClamp(t *testing.T) {
	in, err := NewInstance(2, []float64{1.0, 0.6, 0}, []float64{9, 7, 4, 1})
	require.NoError(t, err)

	// With more active advertisers than slots the candidate slot clamps
	// to the terminal "no slot" index.
	assert.Equal(t, 2, in.candidateSlot(4))
	assert.Equal(t, 2, in.candidateSlot(3))
	assert.Equal(t, 1, in.candidateSlot(2))

	alpha, above := in.recurrenceCTRs(4)
	assert.Equal(t, 0.0, alpha)
	assert.Equal(t, 0.6, above)

	alpha, above = in.recurrenceCTRs(2)
	assert.Equal(t, 0.6, alpha)
	assert.Equal(t, 1.0, above)
}

func TestFingerprint(t *testing.T) {
	a, err := NewInstance(2, []float64{1.0, 0.6, 0}, []float64{10, 6, 2})
	require.NoError(t, err)
	b, err := NewInstance(2, []float64{1.0, 0.6, 0}, []float64{10, 6, 2})
	require.NoError(t, err)
	c, err := NewInstance(2, []float64{1.0, 0.6, 0}, []float64{10, 6, 3})
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}
