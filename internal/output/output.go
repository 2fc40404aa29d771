package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/switcher/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// ButtonsResult is the output of a button listing.
type ButtonsResult struct {
	TS      int64               `yaml:"ts"      json:"ts"`
	Pending bool                `yaml:"pending" json:"pending"`
	Windows int                 `yaml:"windows" json:"windows"`
	Buttons []model.ButtonState `yaml:"buttons" json:"buttons"`
}

// RequestResult is the output of an activate or close request.
type RequestResult struct {
	OK     bool           `yaml:"ok"              json:"ok"`
	Action string         `yaml:"action"          json:"action"`
	Window model.WindowID `yaml:"window"          json:"window"`
	Error  string         `yaml:"error,omitempty" json:"error,omitempty"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return encodeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return encodeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	return encodeJSON(os.Stdout, v, false)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	return encodeYAML(os.Stdout, v)
}

func encodeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
