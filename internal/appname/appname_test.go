package appname

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestClassName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                     "",
		"com.test.domain":      "com_test_domain",
		"a^b:c":                "a_b_c",
		"...":                  "___",
		"plain-name_1":         "plain-name_1",
		"서버.api:8080^v2":       "서버_api_8080_v2",
		"trailing.":            "trailing_",
		"node::1.2.3^STAND":    "node__1_2_3_STAND",
		"with space.and/slash": "with space_and/slash",
	}
	for in, want := range cases {
		require.Equal(t, want, ClassName(in), "input %q", in)
	}
}

func TestClassNameProperties(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "x", "a.b.c", "^^^", "::", "app:9090", "日本.語", "mixed.^:chars.", "no-op"}
	for _, in := range inputs {
		got := ClassName(in)
		require.False(t, strings.ContainsAny(got, ".^:"), "input %q left special characters in %q", in, got)
		require.Equal(t, utf8.RuneCountInString(in), utf8.RuneCountInString(got), "input %q", in)
		require.Equal(t, len(in), len(got), "input %q", in)
		require.Equal(t, got, ClassName(got), "not idempotent for %q", in)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate("my-app_1.0"))
	require.NoError(t, Validate(strings.Repeat("a", MaxLength)))

	require.ErrorIs(t, Validate(""), ErrEmpty)
	require.ErrorIs(t, Validate("a b"), ErrPattern)
	require.ErrorIs(t, Validate("app:1"), ErrPattern)
	require.ErrorIs(t, Validate("앱"), ErrPattern)
	require.ErrorIs(t, Validate(strings.Repeat("a", MaxLength+1)), ErrTooLong)
}

func TestValidateLength(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateLength("abc", 3))
	require.ErrorIs(t, ValidateLength("abcd", 3), ErrTooLong)
	require.ErrorIs(t, ValidateLength("abc", 0), ErrInvalidMaxLength)
	require.ErrorIs(t, ValidateLength("abc", -5), ErrInvalidMaxLength)
}
