package magetasks

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/sh"
)

// Run prints a header for label and runs cmd with its output attached to
// the terminal.
func Run(label, cmd string, args ...string) error {
	return RunWith(nil, label, cmd, args...)
}

// RunWith is Run with extra environment variables.
func RunWith(env map[string]string, label, cmd string, args ...string) error {
	PrintH2Header(label)
	if err := sh.RunWithV(env, cmd, args...); err != nil {
		PrintError(fmt.Sprintf("%s failed: %s %s", label, cmd, strings.Join(args, " ")))
		return err
	}
	PrintSuccess(label)
	return nil
}
