package manifest

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/hooktools/hookman/errors"
)

// Encode renders the manifest as canonical YAML: 2-space indent, fields in
// model order, extension keys sorted. Encoding a parsed config re-emits
// legacy sha keys as rev.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode manifest")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to finish encoding manifest")
	}

	return buf.Bytes(), nil
}
