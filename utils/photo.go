package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodePhotoDataURI decodes a base64 photo payload, with or without a
// "data:image/...;base64," prefix, enforcing the configured size cap.
// Returns the raw bytes and the content type.
func DecodePhotoDataURI(payload string, maxBytes int) ([]byte, string, error) {
	contentType := "image/jpeg"
	encoded := payload

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		header := payload[len("data:"):idx]
		encoded = payload[idx+1:]
		if semi := strings.Index(header, ";"); semi >= 0 {
			header = header[:semi]
		}
		if header != "" {
			contentType = header
		}
	}

	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(encoded)) > maxBytes {
		return nil, "", fmt.Errorf("photo exceeds maximum size")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 photo data: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("photo data is empty")
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, "", fmt.Errorf("photo exceeds maximum size")
	}
	return data, contentType, nil
}
