package main

import (
	"fmt"

	"github.com/kayman-mk/DevSkim/internal/config"
	"github.com/kayman-mk/DevSkim/internal/logging"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate config and rule files",
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

			problems := &config.ValidationError{}
			for rule := range rs.All() {
				if len(rule.Patterns) == 0 {
					problems.Add("rule %s has no patterns", rule.ID)
					continue
				}
				if _, err := rule.CompileAll(); err != nil {
					problems.Add("%v", err)
				}
			}
			if err := problems.Err(); err != nil {
				return err
			}

			dups := rs.DuplicateIDs()
			if len(dups) > 0 {
				logger := logging.GetLogger("cli")
				logger.Warn().Strs("ids", dups).Msg("Duplicate rule ids")
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "config ok")
			_, _ = fmt.Fprintf(out, "rules: %d\n", rs.Count())
			_, _ = fmt.Fprintf(out, "sources: %d\n", len(rs.Sources()))
			_, _ = fmt.Fprintf(out, "duplicate ids: %d\n", len(dups))
			return nil
		},
	}

	src.register(cmd)
	return cmd
}
