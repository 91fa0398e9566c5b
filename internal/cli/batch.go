package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/batch"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/config"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/history"
)

const historyMax = 50

func newBatchCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run and manage named batch recipes",
	}
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding batch recipes (default per-user config dir)")

	store := func() (*config.Store, error) {
		dir := configDir
		if dir == "" {
			var err error
			if dir, err = config.DefaultDir(); err != nil {
				return nil, err
			}
		}
		return config.NewStore(dir), nil
	}

	cmd.AddCommand(newBatchRunCmd(store))
	cmd.AddCommand(newBatchSaveCmd(store))
	cmd.AddCommand(newBatchListCmd(store))
	cmd.AddCommand(newBatchDeleteCmd(store))
	return cmd
}

// configFlags binds the flags shared by "batch run" and "batch save".
func configFlags(cmd *cobra.Command, cfg *batch.Configuration) {
	cmd.Flags().StringSliceVar(&cfg.Patterns, "pattern", nil, "file name pattern to unify (repeatable)")
	cmd.Flags().StringSliceVar(&cfg.SearchRoots, "root", nil, "search root (repeatable)")
	cmd.Flags().StringSliceVar(&cfg.Exclusions, "exclude", nil, "exclusion glob, relative to a search root (repeatable)")
	cmd.Flags().BoolVar(&cfg.SkipEmptyPatterns, "skip-empty", false, "omit patterns with no matches from the summary")
	cmd.Flags().BoolVar(&cfg.PromptBeforeEachPattern, "prompt", true, "ask before merging each divergent pattern")
}

func newBatchRunCmd(store func() (*config.Store, error)) *cobra.Command {
	var (
		flagCfg batch.Configuration
		prefer  string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Process a saved recipe, or an ad-hoc one built from flags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flagCfg
			if len(args) == 1 {
				st, err := store()
				if err != nil {
					return err
				}
				if cfg, err = st.Load(args[0]); err != nil {
					return err
				}
			} else {
				cfg.Name = "ad-hoc"
			}
			// An explicit --prompt on the run overrides the stored recipe.
			if cmd.Flags().Changed("prompt") {
				cfg.PromptBeforeEachPattern = flagCfg.PromptBeforeEachPattern
			}

			resolve, err := scriptedResolver(prefer)
			if err != nil {
				return err
			}
			if resolve == nil {
				resolve = interactiveResolver
			}

			recordHistory(cfg)

			deps := batch.Deps{
				Resolve: resolve,
				Status:  statusLogger,
				DryRun:  dryRun,
			}
			summary, err := batch.Process(cmd.Context(), deps, cfg, promptPattern)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
			for _, r := range summary.Results {
				if r.WriteErr != nil || r.Disposition == batch.DispositionFailed {
					return errors.New("batch finished with failures")
				}
			}
			return nil
		},
	}

	configFlags(cmd, &flagCfg)
	cmd.Flags().StringVar(&prefer, "prefer", "", "resolve without prompting: 1, 2, both or markers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "decide and report, but write nothing")
	return cmd
}

func newBatchSaveCmd(store func() (*config.Store, error)) *cobra.Command {
	var flagCfg batch.Configuration

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given patterns, roots and exclusions as a named recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store()
			if err != nil {
				return err
			}
			flagCfg.Name = args[0]
			if err := st.Save(flagCfg); err != nil {
				return err
			}
			logger.Info("recipe saved", "name", flagCfg.Name, "patterns", len(flagCfg.Patterns))
			return nil
		},
	}

	configFlags(cmd, &flagCfg)
	return cmd
}

func newBatchListCmd(store func() (*config.Store, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store()
			if err != nil {
				return err
			}
			names, err := st.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved recipes")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newBatchDeleteCmd(store func() (*config.Store, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := store()
			if err != nil {
				return err
			}
			return st.Delete(args[0])
		},
	}
}

// recordHistory remembers the run's patterns and roots for future prompts.
// History failures only warn; they never block a run.
func recordHistory(cfg batch.Configuration) {
	path, err := history.DefaultPath()
	if err != nil {
		logger.Debug("history unavailable", "err", err)
		return
	}
	st := history.NewFileStore(path)
	entries, err := st.Load()
	if err != nil {
		logger.Debug("history load failed", "err", err)
		return
	}
	for _, p := range cfg.Patterns {
		entries = history.Append(entries, p, "pattern", historyMax)
	}
	for _, r := range cfg.SearchRoots {
		entries = history.Append(entries, r, "root", historyMax)
	}
	if err := st.Save(entries); err != nil {
		logger.Debug("history save failed", "err", err)
	}
}
