package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findStringFlag(t *testing.T, flags []cli.Flag, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("flag %q not found", name)
	return nil
}

func TestStorageFlags(t *testing.T) {
	flags := storageFlags()

	db := findStringFlag(t, flags, "db")
	assert.Equal(t, defaultStorePath, db.Value)

	url := findStringFlag(t, flags, "memory-api-url")
	assert.Contains(t, url.EnvVars, "MEMORY_API_URL")

	key := findStringFlag(t, flags, "memory-api-key")
	assert.Contains(t, key.EnvVars, "MEMORY_API_KEY")
}

func TestAIKeyFlagReadsEnv(t *testing.T) {
	flag, ok := aiKeyFlag().(*cli.StringFlag)
	require.True(t, ok)
	assert.Contains(t, flag.EnvVars, "XAI_API_KEY")
}

func TestSetupRejectsBadLogLevel(t *testing.T) {
	app := &cli.App{
		Name: "lifepilot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: setup,
		Action: func(c *cli.Context) error { return nil },
	}

	err := app.Run([]string{"lifepilot", "--log-level", "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSetupAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		app := &cli.App{
			Name: "lifepilot",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setup,
			Action: func(c *cli.Context) error { return nil },
		}
		assert.NoError(t, app.Run([]string{"lifepilot", "--log-level", level}), level)
	}
}
