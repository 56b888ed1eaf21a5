package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	width int
	name  string
}

func withWidth(w int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if w != 4 && w != 8 {
			return errors.New("width must be 4 or 8")
		}
		c.width = w

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withWidth(4), withName("a"), withWidth(8), withName("b"))

		require.NoError(t, err)
		require.Equal(t, 8, cfg.width)
		require.Equal(t, "b", cfg.name)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withWidth(3), withName("b"))

		require.Error(t, err)
		require.Contains(t, err.Error(), "option 1")
		require.Equal(t, "a", cfg.name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withName("x")))
		require.Equal(t, "x", cfg.name)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{width: 4}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 4, cfg.width)
	})
}
