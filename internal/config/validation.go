package config

import (
	"strings"

	"git.home.luguber.info/inful/figref/internal/foundation/errors"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.ReferencePrefix, "#") || len(c.ReferencePrefix) < 2 {
		return errors.ConfigError("reference_prefix must start with '#' followed by at least one character").
			WithContext("reference_prefix", c.ReferencePrefix).
			Build()
	}
	if strings.ContainsAny(c.ReferencePrefix, " \t\n") {
		return errors.ConfigError("reference_prefix must not contain whitespace").
			WithContext("reference_prefix", c.ReferencePrefix).
			Build()
	}
	if strings.TrimSpace(c.CaptionLabel) == "" {
		return errors.ConfigError("caption_label must not be blank").Build()
	}
	return nil
}
