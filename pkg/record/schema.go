package record

import "fmt"

// Key is a typed handle to one attribute of a Schema. Keys are only meaningful
// for the schema that issued them.
type Key uint16

// Field describes one named, typed attribute.
type Field struct {
	Name string
	Kind Kind
}

// Schema is a fixed, ordered set of named fields.
type Schema struct {
	fields []Field
	byName map[string]Key
}

// NewSchema creates a schema from fields in order.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		byName: make(map[string]Key, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := s.byName[f.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		s.byName[f.Name] = Key(len(s.fields))
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. Intended for presets.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of fields
func (s *Schema) Len() int {
	return len(s.fields)
}

// Key resolves an attribute name.
func (s *Schema) Key(name string) (Key, error) {
	k, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	return k, nil
}

// Keys resolves several attribute names, failing on the first unknown one.
func (s *Schema) Keys(names ...string) ([]Key, error) {
	keys := make([]Key, 0, len(names))
	for _, name := range names {
		k, err := s.Key(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Field returns the field behind a key.
func (s *Schema) Field(k Key) (Field, bool) {
	if int(k) >= len(s.fields) {
		return Field{}, false
	}
	return s.fields[k], true
}

// Name returns the attribute name for k, or "" if k is out of range.
func (s *Schema) Name(k Key) string {
	f, _ := s.Field(k)
	return f.Name
}

// Names returns the field names in schema order
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// zero returns the zero value of every field, in order.
func (s *Schema) zero() []Value {
	values := make([]Value, len(s.fields))
	for i, f := range s.fields {
		values[i] = Value{kind: f.Kind}
	}
	return values
}
