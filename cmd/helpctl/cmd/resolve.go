package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"finitefield.org/dashboard-help/internal/help"
)

type resolveOptions struct {
	locale         string
	acceptLanguage string
	fallback       bool
	set            []string
	setBytes       []string
	output         string
}

func newResolveCmd(a *app) *cobra.Command {
	opts := &resolveOptions{}
	c := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a help entry and fill its placeholders",
		Example: `  helpctl resolve navbar.searchPeriod.guideDateMax --locale cn --set day=2
  helpctl resolve inspector.wrongApp --accept-language "zh-CN,zh;q=0.9" --set agentId=a1 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.OutOrStdout(), a, opts, args[0])
		},
	}
	flags := c.Flags()
	flags.StringVar(&opts.locale, "locale", "", "locale to resolve in (default: HELP_DEFAULT_LOCALE)")
	flags.StringVar(&opts.acceptLanguage, "accept-language", "", "pick the locale from an Accept-Language header")
	flags.BoolVar(&opts.fallback, "fallback", true, "retry in the default locale when the path is missing")
	flags.StringArrayVar(&opts.set, "set", nil, "placeholder value as name=value (repeatable)")
	flags.StringArrayVar(&opts.setBytes, "set-bytes", nil, "byte-size placeholder as name=count, printed human readable (repeatable)")
	flags.StringVarP(&opts.output, "output", "o", "yaml", "output format: yaml or json")
	c.MarkFlagsMutuallyExclusive("locale", "accept-language")
	return contentCommand(c)
}

func runResolve(w io.Writer, a *app, opts *resolveOptions, rawPath string) error {
	if opts.output != "yaml" && opts.output != "json" {
		return fmt.Errorf("unsupported output format %q", opts.output)
	}
	values, err := parseValues(opts.set, opts.setBytes)
	if err != nil {
		return err
	}

	locale := opts.locale
	switch {
	case opts.acceptLanguage != "":
		locale = a.negotiator.Resolve(opts.acceptLanguage)
	case locale == "":
		locale = a.negotiator.Fallback()
	}
	chain := []string{locale}
	if opts.fallback {
		chain = a.negotiator.Chain(locale)
	} else if l := a.negotiator.Normalize(locale); l != "" {
		chain = []string{l}
	}

	res, err := a.resolver().ResolveFirst(chain, help.ParsePath(rawPath), values)
	if err != nil {
		return err
	}
	return writeResolved(w, opts.output, newResolvedView(res))
}

func parseValues(set, setBytes []string) (help.Values, error) {
	values := help.Values{}
	for _, kv := range set {
		name, value, err := splitAssignment(kv)
		if err != nil {
			return nil, err
		}
		values[name] = value
	}
	for _, kv := range setBytes {
		name, value, err := splitAssignment(kv)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("--set-bytes %s: %w", name, err)
		}
		values[name] = help.Bytes(n)
	}
	return values, nil
}

func splitAssignment(kv string) (string, string, error) {
	name, value, ok := strings.Cut(kv, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid assignment %q, want name=value", kv)
	}
	return name, value, nil
}

type resolvedView struct {
	Locale  string     `json:"locale" yaml:"locale"`
	Path    string     `json:"path" yaml:"path"`
	Text    string     `json:"text,omitempty" yaml:"text,omitempty"`
	Entry   *entryView `json:"entry,omitempty" yaml:"entry,omitempty"`
	Missing []string   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

type entryView struct {
	MainStyle  string         `json:"mainStyle,omitempty" yaml:"mainStyle,omitempty"`
	Title      string         `json:"title" yaml:"title"`
	Desc       string         `json:"desc" yaml:"desc"`
	Categories []categoryView `json:"category,omitempty" yaml:"category,omitempty"`
}

type categoryView struct {
	Title string     `json:"title" yaml:"title"`
	Image string     `json:"image,omitempty" yaml:"image,omitempty"`
	Items []itemView `json:"items,omitempty" yaml:"items,omitempty"`
	List  []string   `json:"list,omitempty" yaml:"list,omitempty"`
}

type itemView struct {
	Name      string `json:"name" yaml:"name"`
	Desc      string `json:"desc" yaml:"desc"`
	NameStyle string `json:"nameStyle,omitempty" yaml:"nameStyle,omitempty"`
	DescStyle string `json:"descStyle,omitempty" yaml:"descStyle,omitempty"`
}

func newResolvedView(res help.Resolved) resolvedView {
	v := resolvedView{
		Locale:  res.Locale,
		Path:    res.Path.String(),
		Missing: res.Missing,
	}
	if t, ok := res.Text(); ok {
		v.Text = string(t)
	}
	if e, ok := res.Entry(); ok {
		v.Entry = newEntryView(e)
	}
	return v
}

func newEntryView(e *help.Entry) *entryView {
	ev := &entryView{MainStyle: e.MainStyle, Title: e.Title, Desc: e.Desc}
	for _, c := range e.Categories {
		cv := categoryView{Title: c.Title, Image: c.Image}
		switch body := c.Body.(type) {
		case help.Items:
			for _, it := range body {
				cv.Items = append(cv.Items, itemView(it))
			}
		case help.List:
			cv.List = []string(body)
		}
		ev.Categories = append(ev.Categories, cv)
	}
	return ev
}

func writeResolved(w io.Writer, format string, v resolvedView) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
