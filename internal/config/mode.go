package config

import (
	"fmt"
	"strings"
)

const (
	ModeMoses = "moses"
	ModePenn  = "penn"
)

// NormalizeMode validates a tokenizer mode name. Empty selects ModeMoses.
func NormalizeMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", ModeMoses, "default":
		return ModeMoses, nil
	case ModePenn, "ptb", "penn-treebank":
		return ModePenn, nil
	default:
		return "", fmt.Errorf("invalid tokenizer mode %q (expected %s|%s)", raw, ModeMoses, ModePenn)
	}
}
