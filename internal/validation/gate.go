// Package validation turns untrusted JSON payloads into typed, checked structs.
//
// A schema is an ordinary Go struct: the json tag names the payload field,
// the validate tag carries the rules and the label tag is the human name
// used in messages. Every violation is reported in one pass.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrNotObject is returned when a body is not a JSON object.
var ErrNotObject = errors.New("payload must be a JSON object")

// Payload is a raw request body keyed by field name.
type Payload map[string]json.RawMessage

// ParsePayload reads a JSON object from r.
func ParsePayload(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if p == nil {
		return nil, ErrNotObject
	}
	return p, nil
}

// Invalid lists every field that failed validation, keyed by payload path.
type Invalid struct {
	Fields map[string]string
}

func (e *Invalid) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Gate applies struct-tag schemas. It is safe for concurrent use.
type Gate struct {
	validate *validator.Validate
}

// New creates a Gate.
func New() *Gate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := jsonName(sf)
		if name == "-" {
			return ""
		}
		return name
	})
	// notblank rejects strings that are empty once trimmed.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &Gate{validate: v}
}

// Decode copies each present field of p into a new T and validates the result.
// Fields of the wrong JSON type are reported instead of coerced.
func Decode[T any](g *Gate, p Payload) (*T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("decode %s: schema must be a struct", rv.Type())
	}
	rt := rv.Type()

	fields := make(map[string]string)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if !sf.IsExported() || name == "-" {
			continue
		}
		raw, ok := p[name]
		if !ok || isNull(raw) {
			continue
		}
		fv := rv.Field(i)
		if err := json.Unmarshal(raw, fv.Addr().Interface()); err != nil {
			fv.Set(reflect.Zero(sf.Type))
			fields[name] = labelOf(sf) + " has an invalid type"
		}
	}

	if err := g.collect(&out, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, &Invalid{Fields: fields}
	}
	return &out, nil
}

// Struct validates an already typed value.
func (g *Gate) Struct(v interface{}) error {
	fields := make(map[string]string)
	if err := g.collect(v, fields); err != nil {
		return err
	}
	if len(fields) > 0 {
		return &Invalid{Fields: fields}
	}
	return nil
}

// collect adds rule violations to fields. A field that already failed to
// decode keeps its type error.
func (g *Gate) collect(v interface{}, fields map[string]string) error {
	err := g.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	root := reflect.TypeOf(v)
	for root.Kind() == reflect.Ptr {
		root = root.Elem()
	}
	for _, fe := range verrs {
		path := trimRoot(fe.Namespace())
		if _, taken := fields[topLevel(path)]; taken {
			continue
		}
		if _, taken := fields[path]; taken {
			continue
		}
		fields[path] = message(lookupLabel(root, trimRoot(fe.StructNamespace())), fe)
	}
	return nil
}

func message(label string, fe validator.FieldError) string {
	collection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array || fe.Kind() == reflect.Map
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "max":
		if collection {
			return fmt.Sprintf("%s must contain at most %s %s", label, fe.Param(), items(fe.Param()))
		}
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		if collection {
			return fmt.Sprintf("%s must contain at least %s %s", label, fe.Param(), items(fe.Param()))
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "url", "http_url":
		return label + " must be a valid URL"
	case "email":
		return label + " must be a valid email"
	default:
		return label + " is invalid"
	}
}

func items(n string) string {
	if n == "1" {
		return "item"
	}
	return "items"
}

// lookupLabel walks a Go struct namespace such as WorkExperience[0].Company
// and returns the label tag of the last field.
func lookupLabel(root reflect.Type, namespace string) string {
	t := root
	label := namespace
	for _, seg := range strings.Split(namespace, ".") {
		name := seg
		if i := strings.IndexByte(seg, '['); i >= 0 {
			name = seg[:i]
		}
		for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}
		sf, ok := t.FieldByName(name)
		if !ok {
			break
		}
		label = labelOf(sf)
		t = sf.Type
	}
	return label
}

func labelOf(sf reflect.StructField) string {
	if l := sf.Tag.Get("label"); l != "" {
		return l
	}
	return sf.Name
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		return sf.Name
	}
	return name
}

func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func topLevel(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
