package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/filesys"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/grouping"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/hashing"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/markers"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/merge"
)

func newMergeCmd() *cobra.Command {
	var (
		contextLines int
		prefer       string
		dryRun       bool
		step         bool
	)

	cmd := &cobra.Command{
		Use:   "merge <path>...",
		Short: "Merge divergent copies of the given files into one version and write it back everywhere",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := filesys.OS{}

			groups, err := grouping.GroupFiles(cmd.Context(), fsys, hashing.XXH3, args)
			if err != nil {
				return err
			}
			if len(groups) <= 1 {
				logger.Info("all files are identical, nothing to merge", "files", len(args))
				return nil
			}

			resolve, err := scriptedResolver(prefer)
			if err != nil {
				return err
			}
			if resolve == nil {
				resolve = interactiveResolver
			}
			var cont merge.ContinueFunc
			if step {
				cont = confirmContinue
			}

			reps := make([]string, len(groups))
			for i, g := range groups {
				reps[i] = g.Paths[0]
			}
			cands, err := merge.PrepareCandidates(fsys, reps)
			if err != nil {
				return err
			}

			res, err := merge.Run(cands, resolve, statusLogger, cont, merge.Options{ContextLines: contextLines})
			if err != nil {
				return err
			}
			if res.Cancelled {
				logger.Warn("merge cancelled, nothing written", "iterations", res.Iterations)
				return nil
			}

			text := filesys.JoinLines(res.Lines)
			if markers.Contains(text) {
				logger.Warn("merged output contains unresolved conflict markers")
			}
			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), string(text))
				return nil
			}

			var werr *multierror.Error
			updated := 0
			for _, g := range groups {
				for _, path := range g.Paths {
					if err := fsys.WriteFile(path, text); err != nil {
						werr = multierror.Append(werr, err)
						continue
					}
					updated++
				}
			}
			logger.Info("merge complete", "iterations", res.Iterations, "updated", updated)
			return werr.ErrorOrNil()
		},
	}

	cmd.Flags().IntVar(&contextLines, "context", 0, "context lines shown around each conflict (default 3)")
	cmd.Flags().StringVar(&prefer, "prefer", "", "resolve without prompting: 1, 2, both or markers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the merged result instead of writing it back")
	cmd.Flags().BoolVar(&step, "step", false, "confirm before each merge iteration")
	return cmd
}
