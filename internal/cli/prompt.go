package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/batch"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/blocks"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/diffing"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/grouping"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/merge"
)

// interactiveResolver asks the user to decide each change block. Aborting
// the form leaves the block unresolved, which renders as conflict markers.
func interactiveResolver(b blocks.Block) blocks.Choice {
	choice := blocks.ChoiceNone
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[blocks.Choice]().
			Title(blockTitle(b)).
			Description(renderBlock(b)).
			Options(choiceOptions(b.Kind)...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return blocks.ChoiceNone
	}
	return choice
}

func blockTitle(b blocks.Block) string {
	switch b.Kind {
	case diffing.KindInsert:
		return fmt.Sprintf("Inserted lines at line %d", b.V2Start+1)
	case diffing.KindDelete:
		return fmt.Sprintf("Deleted lines at line %d", b.V1Start+1)
	default:
		return fmt.Sprintf("Conflicting lines at line %d", b.V1Start+1)
	}
}

func choiceOptions(kind diffing.Kind) []huh.Option[blocks.Choice] {
	switch kind {
	case diffing.KindInsert:
		return []huh.Option[blocks.Choice]{
			huh.NewOption("Include the inserted lines", blocks.ChoiceInclude),
			huh.NewOption("Skip them", blocks.ChoiceSkip),
			huh.NewOption("Leave as conflict markers", blocks.ChoiceNone),
		}
	case diffing.KindDelete:
		return []huh.Option[blocks.Choice]{
			huh.NewOption("Keep the lines", blocks.ChoiceKeep),
			huh.NewOption("Remove them", blocks.ChoiceRemove),
			huh.NewOption("Leave as conflict markers", blocks.ChoiceNone),
		}
	default:
		return []huh.Option[blocks.Choice]{
			huh.NewOption("Use version 1", blocks.ChoiceUseVersion1),
			huh.NewOption("Use version 2", blocks.ChoiceUseVersion2),
			huh.NewOption("Use both (version 1 then version 2)", blocks.ChoiceUseBoth),
			huh.NewOption("Skip both", blocks.ChoiceSkip),
			huh.NewOption("Leave as conflict markers", blocks.ChoiceNone),
		}
	}
}

// promptPattern asks what to do with a pattern that has genuinely divergent
// versions. Aborting the form skips the pattern.
func promptPattern(pattern string, groups []grouping.Group) batch.Action {
	action := batch.ActionSkip
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[batch.Action]().
			Title(fmt.Sprintf("%s: %s", pattern, describeGroups(groups))).
			Options(
				huh.NewOption("Merge these versions", batch.ActionRunMerge),
				huh.NewOption("Skip this pattern", batch.ActionSkip),
				huh.NewOption("Stop the batch", batch.ActionStopBatch),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return batch.ActionSkip
	}
	return action
}

func describeGroups(groups []grouping.Group) string {
	files := 0
	divergent := 0
	for _, g := range groups {
		files += g.Size()
		if g.Size() > 1 {
			divergent++
		}
	}
	return fmt.Sprintf("%d files in %d groups (%d divergent)", files, len(groups), divergent)
}

// confirmContinue polls the user between iterations when --step is set.
func confirmContinue() bool {
	keep := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Continue merging?").
			Value(&keep),
	))
	if err := form.Run(); err != nil {
		return false
	}
	return keep
}

// statusLogger reports iteration progress on the shared logger.
func statusLogger(s merge.Status) {
	logger.Info("iteration complete",
		"iteration", s.Iteration,
		"remaining", s.Remaining,
		"similarity", fmt.Sprintf("%.2f", s.Similarity),
		"result", s.MergedLabel,
	)
}
