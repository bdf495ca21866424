// Package config handles configuration loading and merging for ccsplit.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--success-suffix, --fail-suffix, --protect-input, --debug, --no-color, --quiet)
//  2. Environment variables (CCSPLIT_*, NO_COLOR)
//  3. YAML config file (--config, .ccsplit.yaml in the working directory, or ~/.config/ccsplit/.ccsplit.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - SuccessSuffix: appended to the input stem for the success file (default ".json")
//   - FailSuffix: appended to the input stem for the fail file (default ".fail.json")
//   - ProtectInput: never let the success file overwrite the input
//   - Quiet: suppress the run summary on stdout
//
// # Environment Variables
//
//   - CCSPLIT_SUCCESS_SUFFIX, CCSPLIT_FAIL_SUFFIX: output suffixes
//   - CCSPLIT_PROTECT_INPUT, CCSPLIT_DEBUG, CCSPLIT_QUIET: "true" or "1" to enable
//   - CCSPLIT_NO_COLOR or NO_COLOR: disable colored output
package config
