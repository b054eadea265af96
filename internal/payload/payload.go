// Package payload converts encoded virtual display payloads to and from their
// on-disk representations.
package payload

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/fiffeek/hyprvirtualdisplays/internal/config"
)

// Marshal renders raw in the given format. Text formats end with a newline.
func Marshal(format config.PayloadFormat, raw []byte) ([]byte, error) {
	switch format {
	case config.Raw:
		return raw, nil
	case config.Hex:
		return []byte(hex.EncodeToString(raw) + "\n"), nil
	case config.Base64:
		return []byte(base64.StdEncoding.EncodeToString(raw) + "\n"), nil
	}
	return nil, fmt.Errorf("unsupported payload format %d", int(format))
}

// Unmarshal is the inverse of Marshal. Surrounding whitespace of text formats is ignored.
func Unmarshal(format config.PayloadFormat, data []byte) ([]byte, error) {
	switch format {
	case config.Raw:
		return data, nil
	case config.Hex:
		raw, err := hex.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return nil, fmt.Errorf("cant decode hex payload: %w", err)
		}
		return raw, nil
	case config.Base64:
		raw, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return nil, fmt.Errorf("cant decode base64 payload: %w", err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("unsupported payload format %d", int(format))
}
