package confstack

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported configuration file format. The set of
// recognized formats is fixed; ParseFormat rejects anything outside the
// constants below.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatINI  Format = "ini"
	FormatEnv  Format = "env"
)

// mergeOps maps each recognized format to the merge operation that applies
// it. The table is fixed at startup and never mutated.
var mergeOps = map[Format]func(c *Config, filename string, silent bool) error{
	FormatJSON: (*Config).FromJSON,
	FormatTOML: (*Config).FromTOML,
	FormatYAML: (*Config).FromYAML,
	FormatINI:  (*Config).FromINI,
	FormatEnv:  (*Config).FromDotenv,
}

// ParseFormat normalizes s to lower case and validates it against the
// recognized format identifiers. Anything outside the fixed set is
// ErrUnknownFileType.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if _, ok := mergeOps[f]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFileType, s)
	}
	return f, nil
}

// formatFromFilename derives the format from the text after the last dot of
// name. A name without an extension cannot be resolved.
func formatFromFilename(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", fmt.Errorf("%w: no extension in %s", ErrUnknownFileType, name)
	}
	return ParseFormat(strings.TrimPrefix(ext, "."))
}
