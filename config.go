package expreval

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for evaluator configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	NoCase     string
	MaxDepth   string
	RegionSize string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:      f,
		MaxDepth:   DefaultMaxDepth,
		RegionSize: DefaultRegionSize,
	}
}

// Config holds CLI flag values for evaluator configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewSession] to create a [Session]
// and [Config.NewEnv] to create an [Env] bound to a resolver.
type Config struct {
	Flags      Flags
	MaxDepth   int
	RegionSize int
	NoCase     bool
}

// NewConfig returns a new [Config] with default flag names and default
// evaluator knobs.
func NewConfig() *Config {
	f := Flags{
		NoCase:     "no-case",
		MaxDepth:   "max-depth",
		RegionSize: "region-size",
	}

	return f.NewConfig()
}

// RegisterFlags adds evaluator flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.NoCase, c.Flags.NoCase, false,
		"case-insensitive string comparisons")
	flags.IntVar(&c.MaxDepth, c.Flags.MaxDepth, DefaultMaxDepth,
		"maximum expression nesting depth")
	flags.IntVar(&c.RegionSize, c.Flags.RegionSize, DefaultRegionSize,
		"size in bytes of the per-session allocation region")
}

// RegisterCompletions registers shell completions for evaluator flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, name := range []string{c.Flags.MaxDepth, c.Flags.RegionSize} {
		err := cmd.RegisterFlagCompletionFunc(name, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// NewSession creates a [Session] using this [Config].
func (c *Config) NewSession() *Session {
	return NewSession(
		WithRegionSize(c.RegionSize),
		WithMaxDepth(c.MaxDepth),
	)
}

// NewEnv creates an [Env] using this [Config] and the given resolver.
func (c *Config) NewEnv(ref RefFunc) *Env {
	return &Env{
		Ref:    ref,
		NoCase: c.NoCase,
	}
}
