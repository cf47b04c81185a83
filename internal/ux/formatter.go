package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	jmespath "github.com/jmespath-community/go-jmespath"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// Formatter defines the interface for output formatters.
// This enables consistent output formatting across all commands.
type Formatter interface {
	// Format writes the given data to the output writer
	Format(data interface{}) error
}

// FormatterOptions contains configuration for formatters
type FormatterOptions struct {
	// Writer is where output is written (defaults to os.Stdout)
	Writer io.Writer
	// NoColor disables colored output for text formatters
	NoColor bool
	// Compact enables compact output (no indentation for JSON/YAML)
	Compact bool
	// Query is a JMESPath expression applied to JSON and YAML output
	Query string
}

// NewFormatter creates a formatter based on the format string
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{Writer: os.Stdout}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	var query jmespath.JMESPath
	if opts.Query != "" {
		if format == "text" || format == "" {
			return nil, errors.New(errors.ErrCodeInputInvalid, "--query needs --format json or yaml")
		}
		compiled, err := jmespath.Compile(opts.Query)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputInvalid, fmt.Sprintf("invalid query %q", opts.Query), err)
		}
		query = compiled
	}

	switch format {
	case "json":
		return &JSONFormatter{opts: opts, query: query}, nil
	case "yaml":
		return &YAMLFormatter{opts: opts, query: query}, nil
	case "text", "":
		return &TextFormatter{opts: opts}, nil
	default:
		return nil, errors.New(errors.ErrCodeInputInvalid, fmt.Sprintf("unknown format: %s (supported: text, json, yaml)", format))
	}
}

// applyQuery runs query over the JSON form of data.
func applyQuery(query jmespath.JMESPath, data interface{}) (interface{}, error) {
	if query == nil {
		return data, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	result, err := query.Search(generic)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputInvalid, "query failed", err)
	}
	return result, nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	opts  *FormatterOptions
	query jmespath.JMESPath
}

// Format writes data as JSON
func (f *JSONFormatter) Format(data interface{}) error {
	data, err := applyQuery(f.query, data)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	opts  *FormatterOptions
	query jmespath.JMESPath
}

// Format writes data as YAML
func (f *YAMLFormatter) Format(data interface{}) error {
	data, err := applyQuery(f.query, data)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent(2)
	}
	defer encoder.Close()
	return encoder.Encode(data)
}

// TextFormatter formats output as human-readable text
type TextFormatter struct {
	opts *FormatterOptions
}

// Format writes data as formatted text.
// Data must be a string, a Tabular or implement fmt.Stringer.
func (f *TextFormatter) Format(data interface{}) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(f.opts.Writer, v)
		return err
	case Tabular:
		_, err := fmt.Fprintln(f.opts.Writer, v.Table().Render(f.opts.NoColor))
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.opts.Writer, v.String())
		return err
	default:
		return fmt.Errorf("text formatter requires a string, a table or a String() method, got %T", data)
	}
}

// Compile-time verification that formatters implement Formatter
var _ Formatter = (*JSONFormatter)(nil)
var _ Formatter = (*YAMLFormatter)(nil)
var _ Formatter = (*TextFormatter)(nil)
