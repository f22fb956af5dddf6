package rtree

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// DefaultMaxFill is the number of records or children a node holds before it splits.
const DefaultMaxFill = 3

// ErrInvalidOptions is returned by New for unusable options.
var ErrInvalidOptions = errors.New("rtree: invalid options")

// Options configures a Tree.
type Options struct {
	// MaxFill is the capacity of both leaves and branches. Zero means DefaultMaxFill.
	MaxFill int
	// Logger receives split and reroot events at debug level. Nil means
	// logrus.StandardLogger().
	Logger logrus.FieldLogger
}

func (o Options) normalized() Options {
	if o.MaxFill == 0 {
		o.MaxFill = DefaultMaxFill
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

func (o Options) validate() error {
	o = o.normalized()
	// a branch split keeps MaxFill/2 children, which must not be zero
	if o.MaxFill < 2 {
		return errors.Wrapf(ErrInvalidOptions, "max fill must be >= 2, got %d", o.MaxFill)
	}
	return nil
}
