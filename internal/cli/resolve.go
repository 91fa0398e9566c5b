package cli

import (
	"fmt"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/blocks"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/diffing"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/merge"
)

// scriptedResolver maps a --prefer mode to a non-interactive resolver, so
// merges can run unattended.
func scriptedResolver(mode string) (merge.Resolver, error) {
	switch mode {
	case "1":
		return func(b blocks.Block) blocks.Choice {
			switch b.Kind {
			case diffing.KindInsert:
				return blocks.ChoiceSkip
			case diffing.KindDelete:
				return blocks.ChoiceKeep
			default:
				return blocks.ChoiceUseVersion1
			}
		}, nil
	case "2":
		return func(b blocks.Block) blocks.Choice {
			switch b.Kind {
			case diffing.KindInsert:
				return blocks.ChoiceInclude
			case diffing.KindDelete:
				return blocks.ChoiceRemove
			default:
				return blocks.ChoiceUseVersion2
			}
		}, nil
	case "both":
		return func(b blocks.Block) blocks.Choice {
			switch b.Kind {
			case diffing.KindInsert:
				return blocks.ChoiceInclude
			case diffing.KindDelete:
				return blocks.ChoiceKeep
			default:
				return blocks.ChoiceUseBoth
			}
		}, nil
	case "markers":
		return func(blocks.Block) blocks.Choice { return blocks.ChoiceNone }, nil
	case "":
		return nil, nil // interactive
	default:
		return nil, fmt.Errorf("unknown --prefer mode %q (want 1, 2, both or markers)", mode)
	}
}
