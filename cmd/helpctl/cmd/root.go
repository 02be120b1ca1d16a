package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/dashboard-help/internal/config"
	"finitefield.org/dashboard-help/internal/help"
	"finitefield.org/dashboard-help/internal/i18n"
	"finitefield.org/dashboard-help/internal/observability"
	"finitefield.org/dashboard-help/locales"
)

// app holds what every subcommand needs once the root has bootstrapped.
type app struct {
	configOpts []config.Option

	contentDir string
	locales    []string
	logLevel   string

	cfg        config.Config
	logger     *zap.Logger
	registry   *help.Registry
	negotiator *i18n.Negotiator
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "helpctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(configOpts ...config.Option) *cobra.Command {
	a := &app{configOpts: configOpts}
	root := &cobra.Command{
		Use:           "helpctl",
		Short:         "Inspect and check dashboard help content",
		Long:          "helpctl resolves, lists and lints the per-locale contextual help shown by the dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bootstrap(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.contentDir, "content-dir", "", "directory with <locale>.yaml files (default: bundled content)")
	root.PersistentFlags().StringSliceVar(&a.locales, "locales", nil, "locales to load (default: HELP_LOCALES)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (default: LOG_LEVEL)")

	root.AddCommand(
		newResolveCmd(a),
		newPathsCmd(a),
		newLintCmd(a),
		newClassNameCmd(),
		newValidateIDCmd(),
	)
	return root
}

// bootstrap loads configuration, the logger and the help registry. Commands that do not
// read help content skip it.
func (a *app) bootstrap(cmd *cobra.Command) error {
	if cmd.Annotations["content"] != "true" {
		return nil
	}
	cfg, err := config.Load(a.overrides(cmd)...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger

	fsys, dir, err := a.contentFS()
	if err != nil {
		return err
	}
	reg, err := help.Load(fsys, dir, cfg.Help.Locales)
	if err != nil {
		return err
	}
	a.registry = reg

	neg, err := i18n.NewNegotiator(cfg.Help.DefaultLocale, reg.Locales(), i18n.DefaultAliases)
	if err != nil {
		return err
	}
	a.negotiator = neg
	a.logger.Debug("help content loaded",
		zap.Strings("locales", reg.Locales()),
		zap.String("source", firstNonEmpty(cfg.Help.ContentDir, "bundled")),
	)
	return nil
}

// overrides turns explicit flags into config overrides so flags win over the environment.
func (a *app) overrides(cmd *cobra.Command) []config.Option {
	opts := append([]config.Option(nil), a.configOpts...)
	set := map[string]string{}
	flags := cmd.Flags()
	if flags.Changed("content-dir") {
		set["HELP_CONTENT_DIR"] = a.contentDir
	}
	if flags.Changed("locales") {
		set["HELP_LOCALES"] = strings.Join(a.locales, ",")
	}
	if flags.Changed("log-level") {
		set["LOG_LEVEL"] = a.logLevel
	}
	if len(set) > 0 {
		opts = append(opts, config.WithEnvMap(set))
	}
	return opts
}

func (a *app) contentFS() (fs.FS, string, error) {
	if a.cfg.Help.ContentDir == "" {
		fsys, err := locales.HelpFS()
		return fsys, locales.HelpDir, err
	}
	info, err := os.Stat(a.cfg.Help.ContentDir)
	if err != nil {
		return nil, "", fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("content dir %s is not a directory", a.cfg.Help.ContentDir)
	}
	return os.DirFS(a.cfg.Help.ContentDir), ".", nil
}

func (a *app) resolver() *help.Resolver {
	return help.NewResolver(a.registry,
		help.WithLogger(a.logger),
		help.WithPlaceholderPolicy(a.cfg.Help.Policy()),
	)
}

func contentCommand(c *cobra.Command) *cobra.Command {
	if c.Annotations == nil {
		c.Annotations = map[string]string{}
	}
	c.Annotations["content"] = "true"
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
