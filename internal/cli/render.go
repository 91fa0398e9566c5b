package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/batch"
	"github.com/ktsu-dev/BlastMerge-sub002/internal/blocks"
)

var (
	contextStyle  = lipgloss.NewStyle().Faint(true)
	version1Style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	version2Style = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// renderBlock shows a change block with its context: shared context dim,
// version 1 lines marked "-", version 2 lines marked "+".
func renderBlock(b blocks.Block) string {
	var sb strings.Builder
	for _, l := range b.Context.Before1 {
		sb.WriteString(contextStyle.Render("  "+l) + "\n")
	}
	for _, l := range b.V1Lines {
		sb.WriteString(version1Style.Render("- "+l) + "\n")
	}
	for _, l := range b.V2Lines {
		sb.WriteString(version2Style.Render("+ "+l) + "\n")
	}
	for _, l := range b.Context.After1 {
		sb.WriteString(contextStyle.Render("  "+l) + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// renderSummary formats a batch run's outcome, one line per pattern.
func renderSummary(s batch.Summary) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Batch %q", s.ConfigName)) + "\n")
	for _, r := range s.Results {
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", r.Pattern, renderResult(r)))
	}
	sb.WriteString(fmt.Sprintf("  %d files matched, %d files updated", s.FilesMatched(), s.FilesUpdated()))
	if s.Stopped {
		sb.WriteString(warnStyle.Render(" (stopped early)"))
	}
	return sb.String()
}

func renderResult(r batch.PatternResult) string {
	line := r.Disposition.String()
	switch {
	case r.Disposition == batch.DispositionMerged && r.Success:
		line = okStyle.Render(fmt.Sprintf("merged, %d files updated", r.FilesUpdated))
	case r.Disposition == batch.DispositionFailed:
		line = failStyle.Render(fmt.Sprintf("failed: %v", r.MergeErr))
	case r.WriteErr != nil:
		line = failStyle.Render(fmt.Sprintf("write-back incomplete: %v", r.WriteErr))
	case !r.Success:
		line = warnStyle.Render(line)
	}
	if n := len(r.SkippedReads); n > 0 {
		line += warnStyle.Render(fmt.Sprintf(" (%d unreadable files skipped)", n))
	}
	return line
}
