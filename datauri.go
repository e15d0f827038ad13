package charsprite

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

// dataURI matches data:<mime>;base64,<payload> with a single payload.
var dataURI = regexp.MustCompile(`^data:([A-Za-z\-+/]+);base64,(.+)$`)

// EncodeDataURI wraps the content in a base64 data URI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI extracts the mime type and the decoded payload of a
// base64 data URI. Malformed input yields ErrInvalidEncodingFormat
// and no data.
func DecodeDataURI(s string) (mime string, data []byte, err error) {
	matches := dataURI.FindStringSubmatch(s)
	if len(matches) != 3 {
		return "", nil, ErrInvalidEncodingFormat
	}

	data, err = base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidEncodingFormat, err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: empty payload", ErrInvalidEncodingFormat)
	}
	return matches[1], data, nil
}
