// Package config defines the format-agnostic pipeline model: which
// external tools each stage invokes and with what arguments, plus the
// built-in defaults used when no pipeline file is present.
package config
