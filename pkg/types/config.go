package types

import "errors"

// Config holds the parameters for Store.Attach.
type Config struct {
	Path string `json:"path" yaml:"path"` // Backing document file.
}

// Config validation errors.
var (
	ErrPathEmpty = errors.New("store path must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Path == "" {
		return ErrPathEmpty
	}
	return nil
}
