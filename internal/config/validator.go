package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema does not define #Config")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate validates an already decoded configuration.
func (v *Validator) Validate(cfg *Config) error {
	return v.check(v.ctx.Encode(cfg), nil)
}

// ValidateFile validates the raw content of a configuration file. Unknown
// keys are reported, unlike Loader.Load which ignores them.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return v.ValidateBytes(data)
}

// ValidateBytes validates YAML configuration content.
func (v *Validator) ValidateBytes(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ValidationErrors{{Field: "(root)", Message: err.Error()}}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return v.check(v.ctx.Encode(raw), raw)
}

// check unifies value with the schema. CUE stops at the first failed
// disjunction, so unknown keys in raw are collected separately and merged.
func (v *Validator) check(value cue.Value, raw map[string]any) error {
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	err := unified.Validate(cue.Concrete(true))

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		field := strings.TrimPrefix(strings.Join(e.Path(), "."), "#Config.")
		if field == "" {
			field = "(root)"
		}
		format, args := e.Msg()
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	reported := make(map[string]bool, len(errs))
	for _, e := range errs {
		reported[e.Field] = true
	}
	for _, e := range unknownFields(v.schema, raw, "") {
		if !reported[e.Field] {
			errs = append(errs, e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// unknownFields reports every key of raw, at any depth, that def does not declare.
func unknownFields(def cue.Value, raw map[string]any, prefix string) []ValidationError {
	declared := make(map[string]cue.Value)
	if iter, err := def.Fields(cue.Optional(true)); err == nil {
		for iter.Next() {
			declared[iter.Selector().Unquoted()] = iter.Value()
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []ValidationError
	for _, k := range keys {
		field := prefix + k
		sub, ok := declared[k]
		if !ok {
			errs = append(errs, ValidationError{Field: field, Message: "field not allowed"})
			continue
		}
		if nested, isMap := raw[k].(map[string]any); isMap && sub.IncompleteKind() == cue.StructKind {
			errs = append(errs, unknownFields(sub, nested, field+".")...)
		}
	}
	return errs
}
