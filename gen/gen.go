// Package gen produces random records for seeding a tree.
package gen

import (
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/go-faker/faker/v4"

	"rtree/rtree"
)

type Source string

const (
	// Uniform draws origins uniformly from [0, Range) on both axes.
	Uniform Source = "uniform"
	// Geo uses fake latitude/longitude pairs as origins.
	Geo Source = "geo"
)

const (
	DefaultCount = 1000
	DefaultRange = 100
	DefaultSize  = 10

	// MaxCount bounds a single batch.
	MaxCount = 1 << 24
)

// Config describes a batch of square records of side Size.
type Config struct {
	Count int
	Range float64
	Size  float64
}

// DefaultConfig matches the batch the demo has always generated.
func DefaultConfig() Config {
	return Config{Count: DefaultCount, Range: DefaultRange, Size: DefaultSize}
}

// ParseSource maps a flag value to a Source.
func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case Uniform, Geo:
		return src, nil
	default:
		return "", errors.Newf("unknown source %q, want %q or %q", s, Uniform, Geo)
	}
}

// Generate returns cfg.Count records keyed 0..Count-1. rnd is only used by
// the uniform source.
func Generate(src Source, rnd *rand.Rand, cfg Config) ([]rtree.Record, error) {
	if cfg.Count < 0 || cfg.Size < 0 || cfg.Range < 0 {
		return nil, errors.Newf("invalid generator config %+v", cfg)
	}
	if cfg.Count > MaxCount {
		return nil, errors.Newf("count %d exceeds the limit of %d", cfg.Count, MaxCount)
	}
	switch src {
	case Uniform:
		return generate(cfg, func() (float64, float64) {
			return randomOrd(rnd, 0, cfg.Range), randomOrd(rnd, 0, cfg.Range)
		}), nil
	case Geo:
		return generate(cfg, func() (float64, float64) {
			return faker.Latitude(), faker.Longitude()
		}), nil
	default:
		return nil, errors.Newf("unknown source %q", src)
	}
}

func generate(cfg Config, origin func() (top, left float64)) []rtree.Record {
	recs := make([]rtree.Record, cfg.Count)
	for i := range recs {
		top, left := origin()
		recs[i] = rtree.Record{
			Rect: rtree.Rect{
				Top:    top,
				Left:   left,
				Bottom: top + cfg.Size,
				Right:  left + cfg.Size,
			},
			Key: i,
		}
	}
	return recs
}

func randomOrd(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
