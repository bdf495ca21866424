package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Out receives all task output.
var Out io.Writer = os.Stdout

const headerWidth = 80

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	padding := max(0, (headerWidth-len(title))/2)
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, strings.Repeat("=", headerWidth))
	fmt.Fprintf(Out, "%s%s\n", strings.Repeat(" ", padding), title)
	fmt.Fprintln(Out, strings.Repeat("=", headerWidth))
	fmt.Fprintln(Out)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintf(Out, "\n=== %s ===\n\n", title)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintf(Out, "✅ %s\n", msg)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintf(Out, "⚠️  %s\n", msg)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintf(Out, "❌ %s\n", msg)
}
