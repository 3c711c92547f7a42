package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/intake/internal/config"
	"github.com/crimson-sun/intake/internal/engine"
	"github.com/crimson-sun/intake/internal/engine/lexicon"
	"github.com/crimson-sun/intake/internal/logging"
)

// app is the state shared by all subcommands, filled in by the root
// command's PersistentPreRunE.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	lexicon *lexicon.Lexicon
	engine  *engine.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Load()}

	root := &cobra.Command{
		Use:   "intake",
		Short: "Turn free-text task descriptions into task drafts",
		Long: `Intake reads what someone wrote about a task and suggests a short title
and a priority (Low, Med or High) for them to review before the task is created.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Log.Level, "log-level", a.cfg.Log.Level, "log level: debug, info, warn, error (env INTAKE_LOG_LEVEL)")
	flags.StringVar(&a.cfg.Engine.LexiconPath, "lexicon", a.cfg.Engine.LexiconPath, "YAML lexicon file replacing the built-in cues (env INTAKE_LEXICON_PATH)")
	flags.IntVar(&a.cfg.Engine.MaxInputRunes, "max-input-runes", a.cfg.Engine.MaxInputRunes, "reject longer inputs, 0 disables (env INTAKE_MAX_INPUT_RUNES)")

	root.AddCommand(
		newClassifyCmd(a),
		newBatchCmd(a),
		newLexiconCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup validates the merged env and flag configuration and builds the
// classifier.
func (a *app) setup() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.logger = logging.Init(a.cfg.OutputIsStdout(), logging.ParseLevel(a.cfg.Log.Level))

	if a.cfg.Engine.LexiconPath != "" {
		lex, err := lexicon.Load(a.cfg.Engine.LexiconPath)
		if err != nil {
			return err
		}
		a.lexicon = lex
	} else {
		a.lexicon = lexicon.Default()
	}
	a.engine = engine.NewDefault(a.lexicon, a.logger)

	a.logger.Debug("classifier ready",
		"lexicon", a.lexicon.Version(),
		"cues", a.lexicon.Len(),
		"max_input_runes", a.cfg.Engine.MaxInputRunes,
	)
	return nil
}
