package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cdscore/pkg/artifact"
)

// Node is one parsed schema object. Properties preserves the declaration
// order of the embedded document so results are deterministic.
type Node struct {
	Title      string
	Types      []string
	Format     string
	Enum       []any
	Default    any
	HasDefault bool
	Properties []Property
	Items      *Node
	Required   []string
}

// Property is a named child schema in declaration order.
type Property struct {
	Name   string
	Schema *Node
}

// Result collects the violations of one validation pass.
type Result struct {
	Violations []artifact.Violation
}

// Valid reports whether the pass found no violations.
func (r *Result) Valid() bool { return len(r.Violations) == 0 }

// Err returns nil for a valid pass, otherwise a SchemaViolationError
// carrying every violation.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &artifact.SchemaViolationError{Violations: r.Violations}
}

// ValidateDocument validates a decoded JSON document against the embedded
// schema. With applyDefaults set, schema defaults are written into the
// document in place before their properties are checked.
func ValidateDocument(doc map[string]any, applyDefaults bool) (*Result, error) {
	root, err := Load()
	if err != nil {
		return nil, err
	}
	return root.Validate(doc, applyDefaults), nil
}

// Validate checks value against the node. Violations carry dotted property
// paths, with [i] suffixes for array elements.
func (n *Node) Validate(value any, applyDefaults bool) *Result {
	res := &Result{}
	n.validate("", value, applyDefaults, res)
	return res
}

func (n *Node) validate(path string, value any, applyDefaults bool, res *Result) {
	actual := typeName(value)
	if len(n.Types) > 0 && !typeAllowed(n.Types, actual) {
		res.Violations = append(res.Violations, artifact.Violation{
			Property: path,
			Message:  fmt.Sprintf("%s value found, but %s is required", actual, typePhrase(n.Types)),
		})
		return
	}
	if value == nil {
		return
	}
	if len(n.Enum) > 0 && !enumContains(n.Enum, value) {
		enc, _ := json.Marshal(n.Enum)
		res.Violations = append(res.Violations, artifact.Violation{
			Property: path,
			Message:  "Does not have a value in the enumeration " + string(enc),
		})
		return
	}
	if s, ok := value.(string); ok && n.Format != "" {
		if msg := checkFormat(n.Format, s); msg != "" {
			res.Violations = append(res.Violations, artifact.Violation{Property: path, Message: msg})
			return
		}
	}

	switch v := value.(type) {
	case map[string]any:
		if applyDefaults {
			for _, p := range n.Properties {
				if !p.Schema.HasDefault {
					continue
				}
				if _, ok := v[p.Name]; !ok {
					v[p.Name] = p.Schema.Default
				}
			}
		}
		for _, name := range n.Required {
			if _, ok := v[name]; !ok {
				res.Violations = append(res.Violations, artifact.Violation{
					Property: joinPath(path, name),
					Message:  fmt.Sprintf("The property %s is required", name),
				})
			}
		}
		for _, p := range n.Properties {
			child, ok := v[p.Name]
			if !ok {
				continue
			}
			p.Schema.validate(joinPath(path, p.Name), child, applyDefaults, res)
		}
	case []any:
		if n.Items == nil {
			return
		}
		for i, elem := range v {
			n.Items.validate(fmt.Sprintf("%s[%d]", path, i), elem, applyDefaults, res)
		}
	}
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// typeName maps a decoded JSON value to the type vocabulary used in
// violation messages. Whole numbers read as integers; json.Number literals
// keep their written form.
func typeName(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		return "Boolean"
	case string:
		return "String"
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") {
			return "Double"
		}
		return "Integer"
	case float64:
		if v == float64(int64(v)) {
			return "Integer"
		}
		return "Double"
	case int, int32, int64:
		return "Integer"
	case map[string]any:
		return "Object"
	case []any:
		return "Array"
	default:
		return "Object"
	}
}

func typeAllowed(types []string, actual string) bool {
	for _, t := range types {
		switch t {
		case "null":
			if actual == "NULL" {
				return true
			}
		case "string":
			if actual == "String" {
				return true
			}
		case "boolean":
			if actual == "Boolean" {
				return true
			}
		case "integer":
			if actual == "Integer" {
				return true
			}
		case "number":
			if actual == "Integer" || actual == "Double" {
				return true
			}
		case "object":
			if actual == "Object" {
				return true
			}
		case "array":
			if actual == "Array" {
				return true
			}
		}
	}
	return false
}

// typePhrase names the expected type in a violation message. Nullable
// declarations report their concrete type; bare null is never the headline.
func typePhrase(types []string) string {
	t := types[0]
	for _, c := range types {
		if c != "null" {
			t = c
			break
		}
	}
	switch t {
	case "array", "object", "integer":
		return "an " + t
	default:
		return "a " + t
	}
}

func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if e == value {
			return true
		}
		if n, ok := e.(json.Number); ok {
			if m, ok := value.(json.Number); ok && n.String() == m.String() {
				return true
			}
		}
	}
	return false
}

var (
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe     = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	dateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})$`)
)

func checkFormat(format, s string) string {
	switch format {
	case "date":
		if !dateRe.MatchString(s) {
			return fmt.Sprintf("Invalid date %q, expected format YYYY-MM-DD", s)
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return fmt.Sprintf("Invalid date %q, expected format YYYY-MM-DD", s)
		}
	case "date-time":
		if !dateTimeRe.MatchString(s) {
			return fmt.Sprintf("Invalid date-time %q, expected format YYYY-MM-DDThh:mm:ssZ or YYYY-MM-DDThh:mm:ss+hh:mm", s)
		}
		if _, err := time.Parse(time.RFC3339, strings.ToUpper(s)); err != nil {
			return fmt.Sprintf("Invalid date-time %q, expected format YYYY-MM-DDThh:mm:ssZ or YYYY-MM-DDThh:mm:ss+hh:mm", s)
		}
	case "time":
		if !timeRe.MatchString(s) {
			return fmt.Sprintf("Invalid time %q, expected format hh:mm:ss", s)
		}
		if _, err := time.Parse("15:04:05", s); err != nil {
			return fmt.Sprintf("Invalid time %q, expected format hh:mm:ss", s)
		}
	case "email":
		if !emailRe.MatchString(s) {
			return "Invalid email"
		}
	}
	return ""
}

// parseSchema builds the ordered node tree from raw schema bytes.
func parseSchema(data []byte) (*Node, string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, "", err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, "", fmt.Errorf("schema: document is not an object")
	}
	root, err := parseNodeBody(dec)
	if err != nil {
		return nil, "", err
	}
	return root, root.Title, nil
}

// parseNodeBody consumes the members of a schema object whose opening brace
// has already been read.
func parseNodeBody(dec *json.Decoder) (*Node, error) {
	n := &Node{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("schema: non-string object key %v", keyTok)
		}
		switch key {
		case "title":
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			if s, ok := v.(string); ok {
				n.Title = s
			}
		case "type":
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			switch t := v.(type) {
			case string:
				n.Types = []string{t}
			case []any:
				for _, e := range t {
					s, ok := e.(string)
					if !ok {
						return nil, fmt.Errorf("schema: non-string type entry %v", e)
					}
					n.Types = append(n.Types, s)
				}
			default:
				return nil, fmt.Errorf("schema: invalid type declaration %v", v)
			}
		case "format":
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			if s, ok := v.(string); ok {
				n.Format = s
			}
		case "enum":
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("schema: enum is not an array")
			}
			n.Enum = list
		case "default":
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			n.Default = v
			n.HasDefault = true
		case "required":
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("schema: required is not an array")
			}
			for _, e := range list {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("schema: non-string required entry %v", e)
				}
				n.Required = append(n.Required, s)
			}
		case "properties":
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			if d, ok := tok.(json.Delim); !ok || d != '{' {
				return nil, fmt.Errorf("schema: properties is not an object")
			}
			for dec.More() {
				nameTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				name, ok := nameTok.(string)
				if !ok {
					return nil, fmt.Errorf("schema: non-string property name %v", nameTok)
				}
				childTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				if d, ok := childTok.(json.Delim); !ok || d != '{' {
					return nil, fmt.Errorf("schema: property %s is not an object", name)
				}
				child, err := parseNodeBody(dec)
				if err != nil {
					return nil, err
				}
				n.Properties = append(n.Properties, Property{Name: name, Schema: child})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
		case "items":
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			switch d := tok.(type) {
			case json.Delim:
				if d == '{' {
					item, err := parseNodeBody(dec)
					if err != nil {
						return nil, err
					}
					n.Items = item
					continue
				}
				if d == '[' {
					// Tuple form: keep the first schema, skip the rest.
					for dec.More() {
						elemTok, err := dec.Token()
						if err != nil {
							return nil, err
						}
						if ed, ok := elemTok.(json.Delim); !ok || ed != '{' {
							return nil, fmt.Errorf("schema: items tuple entry is not an object")
						}
						item, err := parseNodeBody(dec)
						if err != nil {
							return nil, err
						}
						if n.Items == nil {
							n.Items = item
						}
					}
					if _, err := dec.Token(); err != nil { // consume ']'
						return nil, err
					}
					continue
				}
				return nil, fmt.Errorf("schema: invalid items declaration")
			default:
				return nil, fmt.Errorf("schema: invalid items declaration %v", tok)
			}
		default:
			if _, err := parseValue(dec); err != nil {
				return nil, err
			}
		}
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return n, nil
}

// parseValue consumes one JSON value of any shape.
func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch d := tok.(type) {
	case json.Delim:
		switch d {
		case '{':
			out := map[string]any{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("schema: non-string object key %v", keyTok)
				}
				v, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				out[key] = v
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		case '[':
			out := []any{}
			for dec.More() {
				v, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		default:
			return nil, fmt.Errorf("schema: unexpected delimiter %v", d)
		}
	default:
		return tok, nil
	}
}
