package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output format name.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ValidFormats lists the accepted format names.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML), string(FormatMarkdown)}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range ValidFormats() {
		if f == name {
			return Format(name), nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// JSON writes v indented by two spaces with a trailing newline. HTML
// characters are not escaped so titles stay readable.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Document is what a command hands to Write: the view model for table and
// Markdown output, and the raw value serialized for JSON and YAML.
type Document struct {
	Releases []Release
	Data     any
}

// Write renders doc in the given format.
func Write(w io.Writer, format Format, doc Document, opts Options) error {
	switch format {
	case FormatJSON:
		return JSON(w, doc.Data)
	case FormatYAML:
		return YAML(w, doc.Data)
	case FormatMarkdown:
		return Markdown(w, doc.Releases)
	case FormatTable, "":
		return Terminal(w, doc.Releases, opts)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
