package config

import (
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/partition"
	"github.com/teranos/partgen/sink"
)

// Validate checks that the configuration names a known mode, algorithm,
// visitor and format. Names are checked against the built-in registry.
func (c *Config) Validate() error {
	mode, err := partition.ParseMode(c.Generate.Mode)
	if err != nil {
		return errors.Wrap(err, "generate.mode")
	}

	reg := partition.NewRegistry()
	if _, ok := reg.Generator(mode, c.Generate.Algorithm); !ok {
		err := errors.NewUnknownNameError(errors.ErrUnknownAlgorithm, "algorithm", c.Generate.Algorithm, reg.Algorithms(mode))
		return errors.Wrap(err, "generate.algorithm")
	}
	if _, ok := reg.Visitor(c.Generate.Visitor); !ok {
		err := errors.NewUnknownNameError(errors.ErrUnknownVisitor, "visitor", c.Generate.Visitor, reg.Visitors())
		return errors.Wrap(err, "generate.visitor")
	}

	// Sample size: 0 = keep nothing, negative = invalid
	if c.Generate.SampleSize < 0 {
		return errors.Newf("generate.sample_size must be >= 0, got %d", c.Generate.SampleSize)
	}

	if _, err := sink.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrap(err, "output.format")
	}

	return nil
}
