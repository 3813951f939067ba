package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// Format is an export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Subtree serialises the value under node in display order
func Subtree(node *models.TreeNode, f Format) ([]byte, error) {
	return Encode(node.Value, f, breadcrumb.Compute(node))
}

// Encode serialises v. base prefixes the paths written by the CSV format.
func Encode(v *jsonv.Value, f Format, base breadcrumb.Path) ([]byte, error) {
	switch f {
	case FormatJSON:
		return MarshalJSON(v, "  ")
	case FormatYAML:
		return MarshalYAML(v)
	case FormatCSV:
		return MarshalCSV(v, base)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// MarshalJSON encodes v with object members in display order. An empty
// indent produces compact output without a trailing newline.
func MarshalJSON(v *jsonv.Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if indent == "" {
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes v as a YAML document in display order
func MarshalYAML(v *jsonv.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(v)); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlNode(v *jsonv.Value) *yaml.Node {
	switch v.Kind() {
	case jsonv.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.DisplayMembers() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				yamlNode(m.Value),
			)
		}
		return n
	case jsonv.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case jsonv.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case jsonv.KindNumber:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.Literal(), 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Literal()}
	case jsonv.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.Literal()}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// MarshalCSV flattens v into one row per primitive: path expression, JSON
// pointer, kind and value. Empty collections get a row of their own.
func MarshalCSV(v *jsonv.Value, base breadcrumb.Path) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Path", "Pointer", "Type", "Value"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	var walkErr error
	var walk func(v *jsonv.Value, path breadcrumb.Path)
	walk = func(v *jsonv.Value, path breadcrumb.Path) {
		if walkErr != nil {
			return
		}
		switch {
		case v.Kind() == jsonv.KindObject && v.Len() > 0:
			for _, m := range v.DisplayMembers() {
				walk(m.Value, append(path[:len(path):len(path)], breadcrumb.Step{Key: m.Key, Kind: breadcrumb.ObjectProperty}))
			}
		case v.Kind() == jsonv.KindArray && v.Len() > 0:
			for i, item := range v.Items() {
				walk(item, append(path[:len(path):len(path)], breadcrumb.Step{Index: i, HasIndex: true, Kind: breadcrumb.ArrayItem}))
			}
		default:
			value := v.Literal()
			switch v.Kind() {
			case jsonv.KindString:
				value = v.Str()
			case jsonv.KindObject:
				value = "{}"
			case jsonv.KindArray:
				value = "[]"
			}
			row := []string{path.Expression(), path.Pointer(), v.Kind().String(), value}
			if err := writer.Write(row); err != nil {
				walkErr = fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}
	walk(v, base)
	if walkErr != nil {
		return nil, walkErr
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ToFile writes exported data with 0644 permissions, creating missing
// parent directories
func ToFile(data []byte, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
