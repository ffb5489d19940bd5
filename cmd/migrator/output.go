package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type encodeFunc func(w io.Writer, v any) error

func encoderFor(format string) (encodeFunc, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return encodeJSON, nil
	case "yaml", "yml":
		return encodeYAML, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
