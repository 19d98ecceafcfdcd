package expreval_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/expreval"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := expreval.NewConfig()
	assert.Equal(t, expreval.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, expreval.DefaultRegionSize, cfg.RegionSize)
	assert.False(t, cfg.NoCase)
}

func TestConfigRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := expreval.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--no-case",
		"--max-depth", "7",
		"--region-size", "64",
	})
	require.NoError(t, err)

	assert.True(t, cfg.NoCase)
	assert.Equal(t, 7, cfg.MaxDepth)
	assert.Equal(t, 64, cfg.RegionSize)

	sess := cfg.NewSession()
	defer sess.Cleanup()

	env := cfg.NewEnv(nil)
	assert.True(t, env.NoCase)

	assert.Equal(t, "true", sess.Eval("'HI' == 'hi'", env).String())
	assert.Equal(t, "MaxDepthError", sess.Eval("((((((((1))))))))", env).String())
}

func TestConfigCustomFlagNames(t *testing.T) {
	t.Parallel()

	cfg := expreval.Flags{
		NoCase:     "fold-case",
		MaxDepth:   "depth",
		RegionSize: "region",
	}.NewConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{"--fold-case", "--depth", "5"})
	require.NoError(t, err)

	assert.True(t, cfg.NoCase)
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, expreval.DefaultRegionSize, cfg.RegionSize)
}
