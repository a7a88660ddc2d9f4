package domain

import (
	"reflect"
	"sync"
)

// AttributeSchema declares the attribute vocabulary a consumer recognizes:
// key to the expected dynamic type of its value. The core defines no keys of
// its own; the vocabulary is always supplied by the consumer.
//
// A nil expected type means any value, including nil, is accepted for that
// key.
type AttributeSchema map[string]reflect.Type

// Validate checks key and value against the schema without recording
// anything.
func (s AttributeSchema) Validate(key string, value any) error {
	want, known := s[key]
	if !known {
		return E(CodeInvalidArgument, "", "attribute "+key, ErrUnknownAttribute)
	}
	if want == nil {
		return nil
	}
	if value == nil {
		if want.Kind() == reflect.Pointer || want.Kind() == reflect.Interface ||
			want.Kind() == reflect.Map || want.Kind() == reflect.Slice {
			return nil
		}
		return E(CodeTypeMismatch, "", "attribute "+key+" expects "+want.String()+", got nil", ErrAttributeType)
	}
	got := reflect.TypeOf(value)
	if want.Kind() == reflect.Interface {
		if got.Implements(want) {
			return nil
		}
		return E(CodeTypeMismatch, "", "attribute "+key+" expects "+want.String()+", got "+got.String(), ErrAttributeType)
	}
	if got != want {
		return E(CodeTypeMismatch, "", "attribute "+key+" expects "+want.String()+", got "+got.String(), ErrAttributeType)
	}
	return nil
}

// AttributeSet records attribute values against a schema, enforcing the
// at-most-once rule per key. Safe for concurrent use.
type AttributeSet struct {
	schema AttributeSchema

	mu     sync.Mutex
	values map[string]any
}

// NewAttributeSet returns an empty set validating against schema.
func NewAttributeSet(schema AttributeSchema) *AttributeSet {
	return &AttributeSet{
		schema: schema,
		values: make(map[string]any),
	}
}

// Set validates and records one attribute. It fails if the key is unknown,
// already set, or the value has the wrong type; nothing is recorded on
// failure.
func (a *AttributeSet) Set(key string, value any) error {
	if err := a.schema.Validate(key, value); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, dup := a.values[key]; dup {
		return E(CodeInvalidArgument, "", "attribute "+key, ErrAttributeRedefined)
	}
	a.values[key] = value
	return nil
}

// Values returns a copy of the recorded attributes.
func (a *AttributeSet) Values() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
