package material

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every construction error returned from this package
var ErrInvalidConfig = errors.New("invalid material configuration")

// ConfigError reports a material parameter rejected at construction time
type ConfigError struct {
	Subject string // Material kind or "texture"
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("material: %s %s: %s", e.Subject, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

const textureSubject = "texture"

func configError(subject, field, format string, args ...interface{}) error {
	return &ConfigError{Subject: subject, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func requireTexture(kind Kind, field string, tex Texture) error {
	if tex == nil {
		return configError(kind.String(), field, "texture is nil")
	}
	return nil
}
