// Package report renders the one-screen summary printed after a split.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/ccsplit/pkg/compdb"
)

// Render formats res as a few aligned lines, one per output file plus notes
// for invalid records, a degraded load and an overwritten input.
func Render(res compdb.Result, theme Theme) string {
	rows := []struct {
		icon  string
		style lipgloss.Style
		label string
		path  string
	}{
		{theme.PassIcon, theme.Success, plural(len(res.Partition.Success), "command", "commands") + " succeeded", res.Paths.Success},
		{theme.FailIcon, theme.Fail, plural(len(res.Partition.Fail), "command", "commands") + " to rebuild", res.Paths.Fail},
	}

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(r.style.Render(r.icon + " " + padRight(r.label, width)))
		sb.WriteString("  ")
		sb.WriteString(theme.Bold.Render(r.path))
		sb.WriteString("\n")
	}

	if res.Partition.Invalid > 0 {
		note := fmt.Sprintf("%s missing arguments, directory or exec_result (kept)",
			plural(res.Partition.Invalid, "record", "records"))
		sb.WriteString(theme.Warning.Render(theme.WarnIcon + " " + note))
		sb.WriteString("\n")
	}
	if res.LoadErr != nil {
		sb.WriteString(theme.Warning.Render(theme.WarnIcon + " input unreadable, wrote empty outputs: " + res.LoadErr.Error()))
		sb.WriteString("\n")
	}
	if res.Overwrote != compdb.OverwriteNone {
		sb.WriteString(theme.Muted.Render("  input replaced by " + string(res.Overwrote) + " output"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
