package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Negotiator picks the help locale for a client from the locales the registry carries.
type Negotiator struct {
	fallback  string
	supported map[string]struct{}
	aliases   map[string]string
}

// DefaultAliases maps language tags browsers send to the dashboard's locale codes.
var DefaultAliases = map[string]string{
	"zh": "cn",
}

func NewNegotiator(fallback string, supported []string, aliases map[string]string) (*Negotiator, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	n := &Negotiator{
		fallback:  fallback,
		supported: map[string]struct{}{},
		aliases:   map[string]string{},
	}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			n.supported[l] = struct{}{}
		}
	}
	if _, ok := n.supported[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %q is not supported", fallback)
	}
	for from, to := range aliases {
		n.aliases[strings.ToLower(from)] = strings.ToLower(to)
	}
	return n, nil
}

func (n *Negotiator) Supported() []string {
	out := make([]string, 0, len(n.supported))
	for k := range n.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback locale.
func (n *Negotiator) Fallback() string { return n.fallback }

func (n *Negotiator) isSupported(lang string) bool {
	_, ok := n.supported[lang]
	return ok
}

// Normalize maps lang to a supported locale code, or returns "" when there is none.
func (n *Negotiator) Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if n.isSupported(lang) {
		return lang
	}
	base := lang
	if dash := strings.IndexAny(lang, "-_"); dash != -1 {
		base = lang[:dash]
	}
	if n.isSupported(base) {
		return base
	}
	if to, ok := n.aliases[base]; ok && n.isSupported(to) {
		return to
	}
	return ""
}

// Chain returns the locales to try for lang: lang itself when supported, then the fallback.
func (n *Negotiator) Chain(lang string) []string {
	out := make([]string, 0, 2)
	if l := n.Normalize(lang); l != "" {
		out = append(out, l)
	}
	if len(out) == 0 || out[0] != n.fallback {
		out = append(out, n.fallback)
	}
	return out
}

// Resolve chooses best locale from an Accept-Language header. Tags are tried in weight order,
// header order breaking ties. A malformed header yields the fallback.
func (n *Negotiator) Resolve(acceptLang string) string {
	if strings.TrimSpace(acceptLang) == "" {
		return n.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil {
		return n.fallback
	}
	for _, tag := range tags {
		if l := n.Normalize(tag.String()); l != "" {
			return l
		}
		if base, conf := tag.Base(); conf == language.Exact {
			if l := n.Normalize(base.String()); l != "" {
				return l
			}
		}
	}
	return n.fallback
}
