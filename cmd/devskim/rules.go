package main

import (
	"fmt"

	"github.com/kayman-mk/DevSkim/internal/report"
	"github.com/kayman-mk/DevSkim/internal/ruleset"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	var src sourceFlags
	var language string
	var fileName string
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules that apply to a language",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := src.load()
			if err != nil {
				return err
			}
			if err := setupLogging(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			langs, err := loadLanguages(cfg)
			if err != nil {
				return err
			}
			rs, err := buildRuleset(cfg, langs, nil)
			if err != nil {
				return err
			}

			if fileName != "" && language == "" {
				lang, ok := langs.FromFileName(fileName)
				if !ok {
					return fmt.Errorf("no language for file %s", fileName)
				}
				language = lang
			}

			var rules []*ruleset.Rule
			if language == "" {
				rules = rs.Rules()
			} else {
				rules = rs.FilterByLanguage(language)
			}
			summary := report.Summarize(language, rules)

			var data []byte
			switch format {
			case "text":
				data = []byte(report.RenderText(summary))
			case "table":
				data = []byte(report.RenderTable(summary))
			case "md", "markdown":
				data = []byte(report.RenderMarkdown(summary))
			case "json":
				data, err = report.RenderJSON(summary)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q", format)
			}

			return report.WriteOutput(cmd.OutOrStdout(), outPath, data)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language to filter by; all rules are listed when empty")
	cmd.Flags().StringVarP(&fileName, "file", "f", "", "Derive the language from this file name")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|table|md|json")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default stdout)")

	return cmd
}
