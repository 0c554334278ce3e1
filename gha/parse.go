package gha

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a workflow document back into the typed model. The
// schema is closed: field names outside it are collected as
// unknown-field errors rather than silently dropped. The result is
// funneled through New, so a successfully parsed workflow is also a
// valid one.
func FromYAML(data []byte) (*Workflow, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty workflow document")
	}

	var w Workflow
	var l errlist
	decodeRecord(&l, doc.Content[0], &w, "")
	if err := l.err(); err != nil {
		return nil, err
	}
	return New(w)
}

var unmarshalerType = reflect.TypeOf((*yaml.Unmarshaler)(nil)).Elem()

// decodeRecord decodes a mapping node into a struct, matching keys
// against the struct's yaml tags and reporting the rest as
// unknown-field errors with the source line.
func decodeRecord(l *errlist, node *yaml.Node, out any, path string) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		l.schema(orRoot(path), fmt.Sprintf("line %d: expected a mapping", node.Line), "")
		return
	}

	rv := reflect.ValueOf(out).Elem()
	fields := fieldsByTag(rv.Type())
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		idx, ok := fields[key.Value]
		if !ok {
			l.unknownField(join(path, key.Value),
				fmt.Sprintf("unknown field %q (line %d)", key.Value, key.Line))
			continue
		}
		decodeValue(l, value, rv.Field(idx), join(path, key.Value))
	}
}

// decodeValue decodes one node into an addressable value, routing
// through UnmarshalYAML where a type provides it.
func decodeValue(l *errlist, node *yaml.Node, rv reflect.Value, path string) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if rv.Addr().Type().Implements(unmarshalerType) {
		u := rv.Addr().Interface().(yaml.Unmarshaler)
		mergeErr(l, path, node, u.UnmarshalYAML(node))
		return
	}

	switch rv.Kind() {
	case reflect.Pointer:
		elem := reflect.New(rv.Type().Elem())
		decodeValue(l, node, elem.Elem(), path)
		rv.Set(elem)
	case reflect.Struct:
		decodeRecord(l, node, rv.Addr().Interface(), path)
	case reflect.Slice:
		if node.Kind != yaml.SequenceNode {
			l.schema(path, fmt.Sprintf("line %d: expected a sequence", node.Line), "")
			return
		}
		if len(node.Content) == 0 {
			l.schema(path, fmt.Sprintf("line %d: list is empty", node.Line),
				"list at least one item or drop the field")
			return
		}
		slice := reflect.MakeSlice(rv.Type(), len(node.Content), len(node.Content))
		for i, item := range node.Content {
			decodeValue(l, item, slice.Index(i), fmt.Sprintf("%s[%d]", path, i))
		}
		rv.Set(slice)
	default:
		if err := node.Decode(rv.Addr().Interface()); err != nil {
			l.schema(path, fmt.Sprintf("line %d: %v", node.Line, err), "")
		}
	}
}

// mergeErr folds an UnmarshalYAML error into the collector,
// prefixing nested validation paths with the current one.
func mergeErr(l *errlist, path string, node *yaml.Node, err error) {
	if err == nil {
		return
	}
	var nested ValidationErrors
	if errors.As(err, &nested) {
		for _, e := range nested {
			e.Path = join(path, e.Path)
			l.errs = append(l.errs, e)
		}
		return
	}
	l.schema(path, fmt.Sprintf("line %d: %v", node.Line, err), "")
}

func fieldsByTag(rt reflect.Type) map[string]int {
	fields := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("yaml")
		if tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		fields[name] = i
	}
	return fields
}

func join(path, field string) string {
	switch {
	case field == "":
		return path
	case path == "":
		return field
	case strings.HasPrefix(field, "["):
		return path + field
	}
	return path + "." + field
}

func orRoot(path string) string {
	if path == "" {
		return "workflow"
	}
	return path
}

// UnmarshalYAML accepts the scalar, list, and mapping trigger forms.
func (o *On) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var ev string
		if err := node.Decode(&ev); err != nil {
			return err
		}
		o.Event = Event(ev)
		return nil
	case yaml.SequenceNode:
		return node.Decode(&o.Events)
	default:
		t := new(Triggers)
		var l errlist
		decodeRecord(&l, node, t, "")
		o.Triggers = t
		return l.err()
	}
}

// UnmarshalYAML accepts the mapping of job IDs, routing entries with
// a uses key to the workflow-call form.
func (j *Jobs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of job IDs", node.Line)
	}
	var l errlist
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		entry := JobEntry{ID: key.Value}
		if hasKey(value, "uses") {
			entry.Call = new(WorkflowCall)
			decodeRecord(&l, value, entry.Call, key.Value)
		} else {
			entry.Job = new(Job)
			decodeRecord(&l, value, entry.Job, key.Value)
		}
		*j = append(*j, entry)
	}
	return l.err()
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// UnmarshalYAML accepts the expression and explicit-pairs forms.
func (e *Env) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&e.Expr)
	}
	return node.Decode(&e.Vars)
}

// UnmarshalYAML reads an ordered mapping of scalar values.
func (v *Vars) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		*v = append(*v, Var{Name: node.Content[i].Value, Value: value})
	}
	return nil
}

// UnmarshalYAML reads an ordered mapping of output expressions.
func (o *Outputs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value string
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		*o = append(*o, Output{Name: node.Content[i].Value, Value: value})
	}
	return nil
}

// UnmarshalYAML accepts the single-ID and list forms.
func (n *Needs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&n.Job)
	}
	return node.Decode(&n.Jobs)
}

// UnmarshalYAML accepts the single-label and list forms.
func (r *RunsOn) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&r.Label)
	}
	return node.Decode(&r.Labels)
}

// UnmarshalYAML accepts the scalar shorthand and the full record.
func (c *Concurrency) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&c.Group)
	}
	var l errlist
	decodeRecord(&l, node, c, "")
	return l.err()
}

// UnmarshalYAML accepts the plain-name shorthand and the full record.
func (e *Environment) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&e.Name)
	}
	var l errlist
	decodeRecord(&l, node, e, "")
	return l.err()
}

// UnmarshalYAML accepts the image-name shorthand and the full record.
func (c *Container) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&c.Image)
	}
	var l errlist
	decodeRecord(&l, node, c, "")
	return l.err()
}

// UnmarshalYAML reads the ordered mapping of service containers.
func (s *Services) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of service names", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		svc := Service{Name: node.Content[i].Value}
		if err := svc.Container.UnmarshalYAML(node.Content[i+1]); err != nil {
			return err
		}
		*s = append(*s, svc)
	}
	return nil
}

// UnmarshalYAML accepts the expression and literal-axes forms.
func (m *Matrix) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&m.Expr)
	}
	return node.Decode(&m.Axes)
}

// UnmarshalYAML reads the ordered mapping of matrix axes.
func (a *Axes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of axes", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var values []any
		if err := node.Content[i+1].Decode(&values); err != nil {
			return err
		}
		*a = append(*a, Axis{Name: node.Content[i].Value, Values: values})
	}
	return nil
}

// UnmarshalYAML accepts the blanket grant and per-scope forms.
func (p *Permissions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&p.All)
	}
	p.Scopes = new(PermissionScopes)
	var l errlist
	decodeRecord(&l, node, p.Scopes, "")
	return l.err()
}

// UnmarshalYAML accepts inherit, an expression, and explicit pairs.
func (s *CallSecrets) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		if v == "inherit" {
			s.Inherit = true
		} else {
			s.Expr = v
		}
		return nil
	}
	return node.Decode(&s.Vars)
}

// UnmarshalYAML reads the ordered mapping of input declarations.
func (in *Inputs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of input names", node.Line)
	}
	var l errlist
	for i := 0; i+1 < len(node.Content); i += 2 {
		input := Input{Name: node.Content[i].Value}
		decodeRecord(&l, node.Content[i+1], &input, node.Content[i].Value)
		*in = append(*in, input)
	}
	return l.err()
}

// UnmarshalYAML reads the ordered mapping of secret declarations.
func (s *Secrets) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of secret names", node.Line)
	}
	var l errlist
	for i := 0; i+1 < len(node.Content); i += 2 {
		secret := Secret{Name: node.Content[i].Value}
		if node.Content[i+1].Kind == yaml.ScalarNode && node.Content[i+1].Tag == "!!null" {
			*s = append(*s, secret)
			continue
		}
		decodeRecord(&l, node.Content[i+1], &secret, node.Content[i].Value)
		*s = append(*s, secret)
	}
	return l.err()
}
