package main

import (
	"errors"

	"github.com/kayman-mk/DevSkim/internal/config"
	"github.com/kayman-mk/DevSkim/internal/languages"
	"github.com/kayman-mk/DevSkim/internal/logging"
	"github.com/kayman-mk/DevSkim/internal/observability"
	"github.com/kayman-mk/DevSkim/internal/ruleset"
	"github.com/spf13/cobra"
)

// sourceFlags selects rules either from a config file or from explicit paths.
type sourceFlags struct {
	configPath string
	rulePaths  []string
	tag        string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringSliceVarP(&f.rulePaths, "rules", "r", nil, "Rule directory or file (repeatable); ignored with --config")
	cmd.Flags().StringVar(&f.tag, "tag", "", "Tag stamped on rules loaded through --rules")
}

func (f *sourceFlags) load() (*config.Config, error) {
	switch {
	case f.configPath != "":
		return config.Load(f.configPath)
	case len(f.rulePaths) > 0:
		return config.FromSources(f.rulePaths, f.tag), nil
	default:
		return nil, errors.New("config path or --rules is required")
	}
}

// setupLogging applies the logging flags. Values from cfg take effect for
// flags the user did not set explicitly.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if cfg != nil {
		if !cmd.Flags().Changed("log-level") && cfg.Logging.Level != "" {
			level = cfg.Logging.Level
		}
		if !cmd.Flags().Changed("log-format") && cfg.Logging.Format != "" {
			format = cfg.Logging.Format
		}
	}
	return logging.Setup(level, format, cmd.ErrOrStderr())
}

func buildRuleset(cfg *config.Config, langs *languages.Table, metrics *observability.Metrics) (*ruleset.Ruleset, error) {
	done := logging.LogOperationStart(logging.GetLogger("cli"), "load rules")
	defer done()

	return ruleset.Build(cfg,
		ruleset.WithLogger(logging.GetLogger("ruleset")),
		ruleset.WithMetrics(metrics),
		ruleset.WithLanguages(langs.Names()...),
	)
}

func loadLanguages(cfg *config.Config) (*languages.Table, error) {
	if cfg == nil || cfg.Languages == "" {
		return languages.Default(), nil
	}
	return languages.LoadFile(cfg.ResolvePath(cfg.Languages))
}
