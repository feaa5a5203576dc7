package scenario

import (
	"fmt"
	"sort"

	"github.com/admarket/clocksim/internal/auction"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution selects how advertiser values are sampled.
type Distribution string

const (
	// DistGamma samples values from Gamma(shape, scale).
	DistGamma Distribution = "gamma"
	// DistUniform samples values from Uniform(lo, hi).
	DistUniform Distribution = "uniform"
	// DistNormal samples values from Normal(mean, stddev), floored at a
	// small positive epsilon so instances stay valid.
	DistNormal Distribution = "normal"
)

// minValue keeps sampled values strictly positive.
const minValue = 1e-6

// Config holds generator configuration.
type Config struct {
	NumSlots       int
	NumAdvertisers int
	ValueDist      Distribution

	GammaShape float64
	GammaScale float64
	UniformLo  float64
	UniformHi  float64
	NormalMean float64
	NormalStd  float64

	Seed   uint64
	Logger *zap.Logger
}

// Generator produces random auction instances. All randomness lives here;
// the core consumes pre-sampled instances only. Each trial index derives
// its own source from the base seed, so a batch is reproducible regardless
// of how trials are scheduled across workers.
type Generator struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a generator, validating the distribution parameters.
func New(cfg Config) (*Generator, error) {
	if cfg.NumSlots < 1 {
		return nil, fmt.Errorf("num slots must be >= 1, got %d", cfg.NumSlots)
	}

	if cfg.NumAdvertisers < 1 {
		return nil, fmt.Errorf("num advertisers must be >= 1, got %d", cfg.NumAdvertisers)
	}

	switch cfg.ValueDist {
	case DistGamma:
		if cfg.GammaShape <= 0 || cfg.GammaScale <= 0 {
			return nil, fmt.Errorf("gamma parameters must be positive, got shape=%f scale=%f", cfg.GammaShape, cfg.GammaScale)
		}
	case DistUniform:
		if cfg.UniformLo < 0 || cfg.UniformHi <= cfg.UniformLo {
			return nil, fmt.Errorf("uniform bounds must satisfy 0 <= lo < hi, got lo=%f hi=%f", cfg.UniformLo, cfg.UniformHi)
		}
	case DistNormal:
		if cfg.NormalStd <= 0 {
			return nil, fmt.Errorf("normal stddev must be positive, got %f", cfg.NormalStd)
		}
	default:
		return nil, fmt.Errorf("unsupported value distribution %q", cfg.ValueDist)
	}

	return &Generator{cfg: cfg, logger: cfg.Logger}, nil
}

// Sample produces the instance for one trial: slot CTRs are independent
// Uniform(0,1) draws sorted descending with the terminal 0 appended, and
// advertiser values come from the configured distribution.
func (g *Generator) Sample(trial uint64) (*auction.Instance, error) {
	src := rand.NewSource(g.cfg.Seed + trial)

	ctrDist := distuv.Uniform{Min: 0, Max: 1, Src: src}
	ctrs := make([]float64, g.cfg.NumSlots, g.cfg.NumSlots+1)
	for i := range ctrs {
		ctrs[i] = ctrDist.Rand()
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ctrs)))
	ctrs = append(ctrs, 0)

	values := make([]float64, g.cfg.NumAdvertisers)
	valueDist := g.valueDist(src)
	for i := range values {
		v := valueDist.Rand()
		if v < minValue {
			v = minValue
		}
		values[i] = v
	}

	in, err := auction.NewInstance(g.cfg.NumSlots, ctrs, values)
	if err != nil {
		auction.InstancesRejectedTotal.WithLabelValues(auction.RejectionReason(err)).Inc()
		return nil, fmt.Errorf("sampled instance for trial %d: %w", trial, err)
	}

	ScenariosSampledTotal.Inc()

	g.logger.Debug("scenario-sampled",
		zap.Uint64("trial", trial),
		zap.Float64s("ctrs", in.CTRs),
		zap.Float64s("values", in.Values))

	return in, nil
}

func (g *Generator) valueDist(src rand.Source) distuv.Rander {
	switch g.cfg.ValueDist {
	case DistUniform:
		return distuv.Uniform{Min: g.cfg.UniformLo, Max: g.cfg.UniformHi, Src: src}
	case DistNormal:
		return distuv.Normal{Mu: g.cfg.NormalMean, Sigma: g.cfg.NormalStd, Src: src}
	default:
		// Gamma's rate parameter is the inverse of the configured scale.
		return distuv.Gamma{Alpha: g.cfg.GammaShape, Beta: 1 / g.cfg.GammaScale, Src: src}
	}
}
