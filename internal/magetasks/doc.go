// Package magetasks provides the build tasks behind ccsplit's Magefile.
//
// Tasks are plain functions so the Magefile stays a thin list of targets:
// build, clean, tests (plain, coverage, race) and linters.
package magetasks
