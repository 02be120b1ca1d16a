package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestNegotiator(t *testing.T) *Negotiator {
	t.Helper()
	n, err := NewNegotiator("en", []string{"cn", "en"}, DefaultAliases)
	require.NoError(t, err)
	return n
}

func TestResolveHonorsQValues(t *testing.T) {
	t.Parallel()
	n := newTestNegotiator(t)

	require.Equal(t, "cn", n.Resolve("en;q=0.8, zh-CN;q=0.9"))
	require.Equal(t, "en", n.Resolve("zh;q=0.5, en"))
}

func TestResolveKeepsHeaderOrderOnTies(t *testing.T) {
	t.Parallel()
	n := newTestNegotiator(t)

	require.Equal(t, "cn", n.Resolve("zh-Hans, en"))
	require.Equal(t, "en", n.Resolve("en, zh-Hans"))
}

func TestResolveFallsBack(t *testing.T) {
	t.Parallel()
	n := newTestNegotiator(t)

	require.Equal(t, "en", n.Resolve(""))
	require.Equal(t, "en", n.Resolve("fr-FR, de;q=0.7"))
	require.Equal(t, "en", n.Resolve("cn;q=0"))
}

func TestResolveRejectsMalformedHeader(t *testing.T) {
	t.Parallel()
	n := newTestNegotiator(t)

	require.Equal(t, "en", n.Resolve("zh;q=0.1;v=1, en;q=0.9"))
	require.Equal(t, "en", n.Resolve("zh;q=high"))
	require.Equal(t, "cn", n.Resolve("en;q=0.2, zh-Hant-TW;q=0.8, zh;q=0.5"))
}

func TestChain(t *testing.T) {
	t.Parallel()
	n := newTestNegotiator(t)

	require.Equal(t, []string{"cn", "en"}, n.Chain("zh-TW"))
	require.Equal(t, []string{"en"}, n.Chain("en-US"))
	require.Equal(t, []string{"en"}, n.Chain("ko"))
}

func TestNewNegotiatorRejectsUnsupportedFallback(t *testing.T) {
	t.Parallel()

	_, err := NewNegotiator("ja", []string{"cn", "en"}, nil)
	require.Error(t, err)
}

func TestSupportedSorted(t *testing.T) {
	t.Parallel()

	n, err := NewNegotiator("en", []string{"en", " CN ", ""}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"cn", "en"}, n.Supported())
	require.Equal(t, "en", n.Fallback())
}
