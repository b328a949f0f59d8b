package record

import (
	"fmt"
	"slices"
	"strings"
)

// Record is an immutable set of attribute values bound to a schema.
// Copies share nothing mutable: With returns a new Record.
type Record struct {
	schema *Schema
	values []Value
}

// New returns a record holding the zero value of every field.
func New(schema *Schema) Record {
	return Record{schema: schema, values: schema.zero()}
}

// Schema returns the schema the record was built against
func (r Record) Schema() *Schema {
	return r.schema
}

// Get is the typed accessor for one attribute. An out-of-range key yields the
// zero Value.
func (r Record) Get(k Key) Value {
	if int(k) >= len(r.values) {
		return Value{}
	}
	return r.values[k]
}

// Lookup returns the attribute with the given name.
func (r Record) Lookup(name string) (Value, bool) {
	if r.schema == nil {
		return Value{}, false
	}
	k, ok := r.schema.byName[name]
	if !ok {
		return Value{}, false
	}
	return r.values[k], true
}

// With returns a copy of r with attribute k replaced by v. The receiver is
// left untouched.
func (r Record) With(k Key, v Value) (Record, error) {
	f, ok := r.schema.Field(k)
	if !ok {
		return Record{}, fmt.Errorf("%w: key %d", ErrUnknownAttribute, k)
	}
	if f.Kind != v.kind {
		return Record{}, fmt.Errorf("%w: %s is %s, got %s", ErrKindMismatch, f.Name, f.Kind, v.kind)
	}
	values := slices.Clone(r.values)
	values[k] = v
	return Record{schema: r.schema, values: values}, nil
}

// Equal reports whether both records share a schema and all values match.
func (r Record) Equal(other Record) bool {
	if r.schema != other.schema || len(r.values) != len(other.values) {
		return false
	}
	for i := range r.values {
		if !r.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// String renders the record as name=value pairs in schema order.
func (r Record) String() string {
	if r.schema == nil {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r.schema.fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(r.values[i].String())
	}
	b.WriteByte('}')
	return b.String()
}

// Builder assembles a Record field by field. The first error sticks and is
// returned by Build.
type Builder struct {
	rec Record
	err error
}

// NewBuilder starts a record with every field at its zero value.
func NewBuilder(schema *Schema) *Builder {
	return &Builder{rec: New(schema)}
}

// Set assigns a value by attribute name.
func (b *Builder) Set(name string, v Value) *Builder {
	if b.err != nil {
		return b
	}
	k, err := b.rec.schema.Key(name)
	if err != nil {
		b.err = err
		return b
	}
	f := b.rec.schema.fields[k]
	if f.Kind != v.kind {
		b.err = fmt.Errorf("%w: %s is %s, got %s", ErrKindMismatch, name, f.Kind, v.kind)
		return b
	}
	b.rec.values[k] = v
	return b
}

// Int sets an integer attribute
func (b *Builder) Int(name string, i int64) *Builder {
	return b.Set(name, IntValue(i))
}

// Float sets a float attribute
func (b *Builder) Float(name string, f float64) *Builder {
	return b.Set(name, FloatValue(f))
}

// Category sets a categorical attribute
func (b *Builder) Category(name, s string) *Builder {
	return b.Set(name, CategoryValue(s))
}

// Build returns the record or the first error encountered.
func (b *Builder) Build() (Record, error) {
	if b.err != nil {
		return Record{}, b.err
	}
	return Record{schema: b.rec.schema, values: slices.Clone(b.rec.values)}, nil
}
