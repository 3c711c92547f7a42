package main

import (
	"github.com/spf13/cobra"

	"github.com/crimson-sun/intake/internal/engine/lexicon"
)

func newLexiconCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lexicon",
		Short: "Print the active cue lexicon as YAML",
		Long: `Lexicon prints the cues the classifier scores against, in the YAML format
--lexicon accepts. Redirect it to a file to start a custom lexicon.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lexicon.Dump(cmd.OutOrStdout(), a.lexicon)
		},
	}
}
