package export

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoder converts a record tree into YAML. Each Encoder carries its
// own configuration; nothing is registered globally.
type Encoder struct {
	w      io.Writer
	indent int
}

// Option adjusts an Encoder.
type Option func(*Encoder)

// Indent sets the number of spaces per nesting level (default 2).
func Indent(n int) Option {
	return func(e *Encoder) { e.indent = n }
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	e := &Encoder{w: w, indent: 2}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes v as a single YAML document terminated by one
// trailing newline.
func (e *Encoder) Encode(v any) error {
	node, err := e.node(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(e.indent)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Marshal renders v with a one-shot Encoder.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// node recursively converts a Go value into a styled yaml.Node.
func (e *Encoder) node(v any) (*yaml.Node, error) {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	if m, ok := v.(yaml.Marshaler); ok {
		inner, err := m.MarshalYAML()
		if err != nil {
			return nil, err
		}
		return e.node(inner)
	}
	if ms, ok := v.(MapSlice); ok {
		return e.mappingNode(ms)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return e.node(nil)
		}
		return e.node(rv.Elem().Interface())
	case reflect.Struct:
		return e.structNode(rv)
	case reflect.Slice, reflect.Array:
		return e.sequenceNode(rv)
	case reflect.Map:
		return e.goMapNode(rv)
	case reflect.String:
		return e.scalar(rv.String()), nil
	case reflect.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(rv.Bool())}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(rv.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(rv.Float())}, nil
	default:
		return nil, fmt.Errorf("cannot export value of type %T", v)
	}
}

// structNode walks exported fields in declaration order, applying
// yaml tag names (the alias table) and dropping empty optionals.
func (e *Encoder) structNode(rv reflect.Value) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := parseTag(field)
		if skip {
			continue
		}
		value := rv.Field(i)
		if omitEmpty && isEmpty(value) {
			continue
		}
		child, err := e.node(value.Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		node.Content = append(node.Content, e.scalar(name), child)
	}
	return node, nil
}

func (e *Encoder) mappingNode(ms MapSlice) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, item := range ms {
		child, err := e.node(item.Value)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", item.Key, err)
		}
		node.Content = append(node.Content, e.scalar(item.Key), child)
	}
	return node, nil
}

func (e *Encoder) sequenceNode(rv reflect.Value) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i := 0; i < rv.Len(); i++ {
		child, err := e.node(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, child)
	}
	return node, nil
}

// goMapNode renders a plain Go map with lexically sorted keys. The
// schema model avoids Go maps entirely (see MapSlice); sorting here
// keeps output deterministic for any that slip through.
func (e *Encoder) goMapNode(rv reflect.Value) (*yaml.Node, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("cannot export map with %s keys", rv.Type().Key())
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range keys {
		child, err := e.node(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface())
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
		node.Content = append(node.Content, e.scalar(key), child)
	}
	return node, nil
}

// scalar builds a string node: literal block style when the value
// spans lines, single quotes when a plain rendering would be
// misread, plain otherwise.
func (e *Encoder) scalar(s string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	switch {
	case strings.Contains(s, "\n"):
		node.Value = blockSafe(s)
		node.Style = yaml.LiteralStyle
	case needsQuote(s):
		node.Style = yaml.SingleQuotedStyle
	}
	return node
}

// blockSafe prepares a multi-line string for literal block style:
// trailing whitespace is trimmed from every line (literal style
// cannot carry it) and trailing blank lines collapse to at most one
// final newline.
func blockSafe(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	joined := strings.Join(lines, "\n")
	trimmed := strings.TrimRight(joined, "\n")
	if len(trimmed) < len(joined) {
		return trimmed + "\n"
	}
	return trimmed
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// parseTag reads a field's yaml tag: external name, omitempty flag,
// and whether the field is excluded.
func parseTag(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("yaml")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = strings.ToLower(field.Name)
	}
	for _, flag := range parts[1:] {
		if flag == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func isEmpty(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	}
	return false
}
