package codec

import (
	"encoding/base64"
	"strings"
)

// ToText returns the standard Base64 form of data, without line wrapping
func ToText(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromText parses the Base64 form produced by ToText. Leading and trailing
// whitespace from copy and paste is ignored.
func FromText(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, &Error{Kind: KindMalformedTransport, Message: "invalid base64 text", Err: err}
	}
	return data, nil
}
