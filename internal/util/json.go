package util

import (
	"io"

	"github.com/goccy/go-json"
)

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	payload = append(payload, '\n')
	_, err = w.Write(payload)
	return err
}
