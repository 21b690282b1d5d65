package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := w.(*os.File); ok {
			return NewRenderer(DetectFormat(file), w)
		}
		return NewRenderer(FormatText, w)
	case FormatTerminal:
		return &textRenderer{out: w, styled: true}, nil
	case FormatText:
		return &textRenderer{out: w}, nil
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return &structuredRenderer{encode: encoder.Encode}, nil
	case FormatYAML:
		return &structuredRenderer{encode: func(v interface{}) error {
			encoder := yaml.NewEncoder(w)
			encoder.SetIndent(2)
			if err := encoder.Encode(v); err != nil {
				return err
			}
			return encoder.Close()
		}}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// structuredRenderer provides JSON or YAML output for machine consumption
type structuredRenderer struct {
	encode func(v interface{}) error
}

func (r *structuredRenderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

func (r *structuredRenderer) RenderError(err error) error {
	return r.encode(map[string]string{"error": err.Error()})
}

func (r *structuredRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
