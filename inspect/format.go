package inspect

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// ErrUnknownFormat is returned by Marshal for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats accepted by Marshal.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Marshal encodes res in the given format. CSV output carries the tokens when present and
// the node counts otherwise.
func Marshal(res InspectResult, format string, pretty bool) ([]byte, error) {
	switch format {
	case "", FormatYAML:
		return yaml.Marshal(res)
	case FormatJSON:
		if pretty {
			return json.MarshalIndent(res, "", "  ")
		}

		return json.Marshal(res)
	case FormatCSV:
		if len(res.Tokens) > 0 {
			return TokensCSV(res, true)
		}

		return CountsCSV(res, true)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
