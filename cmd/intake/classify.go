package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/intake/internal/engine"
)

func newClassifyCmd(a *app) *cobra.Command {
	var explain, pretty bool

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Suggest a title and priority for one task description",
		Long: `Classify joins its arguments into one task description, or reads it from
standard input when no arguments are given, and prints the draft as JSON.`,
		Example: `  intake classify "Fix the urgent login bug ASAP"
  echo "Update documentation later this week" | intake classify --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			if err := engine.CheckLength(text, a.cfg.Engine.MaxInputRunes); err != nil {
				return err
			}
			analysis, err := a.engine.Analyze(text)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			if pretty {
				enc.SetIndent("", "  ")
			}
			if explain {
				return enc.Encode(analysis)
			}
			return enc.Encode(analysis.Draft)
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", a.cfg.Output.Explain, "include scores and matched cues (env INTAKE_EXPLAIN)")
	cmd.Flags().BoolVar(&pretty, "pretty", a.cfg.Output.Pretty, "indent the JSON output (env INTAKE_OUTPUT_PRETTY)")
	return cmd
}
