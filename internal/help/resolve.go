package help

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a locale or path does not name a help leaf.
var ErrNotFound = errors.New("help: not found")

// LookupError carries the details of a failed lookup. It matches ErrNotFound.
type LookupError struct {
	Locale string
	Path   Path
	// Segment is the first key that could not be followed. Empty when the locale is
	// unknown or the path is empty.
	Segment string
	Reason  string
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("help: %s/%s: %s", e.Locale, e.Path, e.Reason)
	if e.Segment != "" {
		msg += fmt.Sprintf(" (at %q)", e.Segment)
	}
	return msg
}

func (e *LookupError) Unwrap() error { return ErrNotFound }

// PlaceholderPolicy decides what happens to tokens that have no value.
// Under every policy the token text is left in place.
type PlaceholderPolicy int

const (
	// PlaceholderKeep leaves unresolved tokens silently.
	PlaceholderKeep PlaceholderPolicy = iota
	// PlaceholderWarn leaves unresolved tokens and logs a warning.
	PlaceholderWarn
)

func (p PlaceholderPolicy) String() string {
	switch p {
	case PlaceholderWarn:
		return "warn"
	default:
		return "keep"
	}
}

// ParsePlaceholderPolicy accepts "keep" or "warn".
func ParsePlaceholderPolicy(s string) (PlaceholderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return PlaceholderKeep, nil
	case "warn":
		return PlaceholderWarn, nil
	default:
		return PlaceholderKeep, fmt.Errorf("help: unknown placeholder policy %q", s)
	}
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\}\}`)

// Resolved is a help leaf with its placeholders filled. Its text is trusted HTML.
type Resolved struct {
	Locale string
	Path   Path
	// Node is an *Entry or a Text.
	Node Node
	// Missing lists placeholder names that had no value, sorted.
	Missing []string
}

// Entry returns the structured leaf, if that is what was resolved.
func (r Resolved) Entry() (*Entry, bool) {
	e, ok := r.Node.(*Entry)
	return e, ok
}

// Text returns the pre-joined leaf, if that is what was resolved.
func (r Resolved) Text() (Text, bool) {
	t, ok := r.Node.(Text)
	return t, ok
}

// Resolver looks help leaves up in a Registry and fills their placeholders.
type Resolver struct {
	registry *Registry
	logger   *zap.Logger
	policy   PlaceholderPolicy
	values   *bluemonday.Policy
}

type Option func(*Resolver)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithPlaceholderPolicy(p PlaceholderPolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// WithUntrustedValues strips markup from substitution values before insertion.
// Stored help text is never altered.
func WithUntrustedValues() Option {
	return func(r *Resolver) { r.values = bluemonday.StrictPolicy() }
}

func NewResolver(registry *Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		logger:   zap.NewNop(),
		policy:   PlaceholderKeep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the leaf at path in locale's tree with placeholders replaced by values.
func (r *Resolver) Resolve(locale string, path Path, values Values) (Resolved, error) {
	tree, ok := r.registry.Tree(locale)
	if !ok {
		return Resolved{}, &LookupError{Locale: locale, Path: path, Reason: "unsupported locale"}
	}
	if len(path) == 0 {
		return Resolved{}, &LookupError{Locale: locale, Path: path, Reason: "empty path"}
	}
	node, miss := tree.find(path)
	if miss >= 0 {
		return Resolved{}, &LookupError{Locale: locale, Path: path, Segment: path[miss], Reason: "no such key"}
	}
	if _, ok := node.(*Tree); ok {
		return Resolved{}, &LookupError{Locale: locale, Path: path, Reason: "path names a section, not an entry"}
	}

	s := r.newSubstituter(values)
	out := Resolved{
		Locale:  locale,
		Path:    append(Path(nil), path...),
		Node:    mapNode(node, s.apply),
		Missing: s.missingNames(),
	}
	if len(out.Missing) > 0 && r.policy == PlaceholderWarn {
		r.logger.Warn("help: unresolved placeholders",
			zap.String("locale", locale),
			zap.String("path", path.String()),
			zap.Strings("placeholders", out.Missing),
		)
	}
	return out, nil
}

// ResolveFirst tries each locale in order and returns the first leaf found.
func (r *Resolver) ResolveFirst(locales []string, path Path, values Values) (Resolved, error) {
	var lastErr error = &LookupError{Path: path, Reason: "no locales given"}
	for _, l := range locales {
		res, err := r.Resolve(l, path, values)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Resolved{}, err
		}
		lastErr = err
	}
	return Resolved{}, lastErr
}

type substituter struct {
	values  map[string]string
	missing map[string]struct{}
}

func (r *Resolver) newSubstituter(values Values) *substituter {
	s := &substituter{
		values:  make(map[string]string, len(values)),
		missing: map[string]struct{}{},
	}
	for k, v := range values {
		text := formatValue(v)
		if r.values != nil {
			text = r.values.Sanitize(text)
		}
		s.values[k] = text
	}
	return s
}

func (s *substituter) apply(text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]
		if v, ok := s.values[name]; ok {
			return v
		}
		s.missing[name] = struct{}{}
		return token
	})
}

func (s *substituter) missingNames() []string {
	if len(s.missing) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.missing))
	for k := range s.missing {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// placeholderNames returns the distinct placeholder names in text, in order of appearance.
func placeholderNames(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
