package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/dashboard-help/internal/help"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv())
	require.NoError(t, err)

	require.Equal(t, "", cfg.Help.ContentDir)
	require.Equal(t, "en", cfg.Help.DefaultLocale)
	require.Equal(t, []string{"cn", "en"}, cfg.Help.Locales)
	require.Equal(t, help.PlaceholderKeep, cfg.Help.Policy())
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvMap(map[string]string{
		"HELP_CONTENT_DIR":        " ./content/help ",
		"HELP_DEFAULT_LOCALE":     "CN",
		"HELP_LOCALES":            "cn, en,cn",
		"HELP_PLACEHOLDER_POLICY": "warn",
		"LOG_LEVEL":               "DEBUG",
	}))
	require.NoError(t, err)

	require.Equal(t, "./content/help", cfg.Help.ContentDir)
	require.Equal(t, "cn", cfg.Help.DefaultLocale)
	require.Equal(t, []string{"cn", "en"}, cfg.Help.Locales)
	require.Equal(t, help.PlaceholderWarn, cfg.Help.Policy())
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvMap(map[string]string{
		"HELP_DEFAULT_LOCALE":     "ja",
		"HELP_PLACEHOLDER_POLICY": "explode",
		"LOG_LEVEL":               "loud",
	}))
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.ElementsMatch(t, []string{"HELP_DEFAULT_LOCALE", "HELP_PLACEHOLDER_POLICY", "LOG_LEVEL"}, vErr.Fields())
}

func TestLoadRejectsEmptyLocales(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvMap(map[string]string{
		"HELP_LOCALES": " , ",
	}))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields(), "HELP_LOCALES")
}
