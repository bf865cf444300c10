package dungeongraph

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig implies a Config setting is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds settings for a single generation run. It is read once when
// a Generator is created; changing it afterwards has no effect.
type Config struct {
	// MainLength is the number of tiles on the main path, including both
	// the start & exit tiles. Must be at least 2.
	MainLength int

	// BranchLength is the number of tiles we try to place per branch.
	// A branch stops early (without backtracking) on the first failure.
	BranchLength int

	// Branches is the number of branches we attempt. Fewer may be built if
	// we run out of free connectors to root them on.
	Branches int

	// DoorwayPercent is the chance (0-100) that a connected connector is
	// given a doorway prop during cleanup.
	DoorwayPercent int

	// Delay between steps when driven by Run.
	// Purely for dramatic effect, has no bearing on the layout.
	Delay time.Duration

	// MaxBacktrack is the number of consecutive failed placements on the
	// main path we tolerate before giving up on it. Must be > 0.
	// We also give up after MaxBacktrack * MainLength failures in total.
	MaxBacktrack int

	// Audit runs a pairwise overlap check of all tiles during cleanup,
	// logging (never failing) on unexpected overlaps.
	Audit bool

	// KeepColliders leaves tile volumes registered with the Oracle after
	// cleanup, otherwise they're removed once generation is done.
	KeepColliders bool

	// Seed for rng (random number chosen if not set)
	Seed int64

	// CellSize is the bucket size used by the default SpatialIndex.
	// Roughly the size of an average tile works well. Defaults to 8.
	CellSize float64 `json:",omitempty"`
}

// DefaultConfig returns the settings the demo dungeons are built with.
func DefaultConfig() *Config {
	return &Config{
		MainLength:     10,
		BranchLength:   5,
		Branches:       10,
		DoorwayPercent: 25,
		MaxBacktrack:   50,
		CellSize:       defaultCellSize,
	}
}

// LoadConfig reads a json encoded Config from disk. Unset fields are
// taken from DefaultConfig.
func LoadConfig(fpath string) (*Config, error) {
	data, err := ioutil.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", fpath)
	}

	cfg := DefaultConfig()
	err = json.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config %s", fpath)
	}

	return cfg, cfg.Validate()
}

// Validate checks all settings are within their allowed ranges.
func (c *Config) Validate() error {
	switch {
	case c.MainLength < 2:
		return errors.Wrapf(ErrInvalidConfig, "main length %d is less than 2", c.MainLength)
	case c.BranchLength < 0:
		return errors.Wrapf(ErrInvalidConfig, "branch length %d is negative", c.BranchLength)
	case c.Branches < 0:
		return errors.Wrapf(ErrInvalidConfig, "branch count %d is negative", c.Branches)
	case c.DoorwayPercent < 0 || c.DoorwayPercent > 100:
		return errors.Wrapf(ErrInvalidConfig, "doorway percent %d not within 0-100", c.DoorwayPercent)
	case c.Delay < 0:
		return errors.Wrapf(ErrInvalidConfig, "delay %s is negative", c.Delay)
	case c.MaxBacktrack <= 0:
		return errors.Wrapf(ErrInvalidConfig, "max backtrack %d must be positive", c.MaxBacktrack)
	case c.CellSize < 0:
		return errors.Wrapf(ErrInvalidConfig, "cell size %f is negative", c.CellSize)
	}
	return nil
}
