package batch

import (
	"errors"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/fault"
)

// Configuration is a reusable automation recipe: which file names to unify,
// where to look, and how chatty the run should be. Persistence lives in the
// config store; this package only consumes the loaded value.
type Configuration struct {
	Name                    string   `mapstructure:"name" yaml:"name"`
	Patterns                []string `mapstructure:"patterns" yaml:"patterns"`
	SearchRoots             []string `mapstructure:"search_roots" yaml:"search_roots"`
	Exclusions              []string `mapstructure:"exclusions" yaml:"exclusions,omitempty"`
	SkipEmptyPatterns       bool     `mapstructure:"skip_empty_patterns" yaml:"skip_empty_patterns"`
	PromptBeforeEachPattern bool     `mapstructure:"prompt_before_each_pattern" yaml:"prompt_before_each_pattern"`
}

// Validate rejects configurations that cannot drive a run.
func (c Configuration) Validate() error {
	switch {
	case c.Name == "":
		return fault.Newf(fault.ErrMalformed, "config", "", errors.New("batch name is required"))
	case len(c.Patterns) == 0:
		return fault.Newf(fault.ErrMalformed, "config", c.Name, errors.New("at least one pattern is required"))
	case len(c.SearchRoots) == 0:
		return fault.Newf(fault.ErrMalformed, "config", c.Name, errors.New("at least one search root is required"))
	}
	return nil
}
