package ir

// Record maps field names to scalar values.
//
// Fields remember the order in which they were first set so that rendering
// and projection are deterministic. Field order carries no meaning for
// equality: two records are equal when they hold the same set of fields
// with values of the same kind that compare Equal.
//
// The zero Record is empty and ready to use.
type Record struct {
	keys   []string
	values map[string]Value
}

// Field is a name/value pair used for ordered record construction.
type Field struct {
	Name  string
	Value Value
}

// F is a shorthand for Field for ergonomic construction.
// Example: NewRecord(F("state", String("Texas")), F("population", Int(30000000)))
func F(name string, value Value) Field {
	return Field{Name: name, Value: value}
}

// NewRecord creates a record from fields in order.
// A repeated name keeps its first position and takes the last value.
func NewRecord(fields ...Field) Record {
	r := Record{values: make(map[string]Value, len(fields))}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set assigns a field value. Setting an existing field replaces its value
// without moving it.
func (r *Record) Set(name string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

// Get returns the value of a field and whether the field exists.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the record carries the named field.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}

// Keys returns the field names in insertion order.
// The returned slice is a copy.
func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Fields returns the name/value pairs in insertion order.
func (r Record) Fields() []Field {
	fields := make([]Field, len(r.keys))
	for i, k := range r.keys {
		fields[i] = Field{Name: k, Value: r.values[k]}
	}
	return fields
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	return NewRecord(r.Fields()...)
}

// Project returns a new record holding only the named fields that exist on r,
// in the order the names are given. Missing names are skipped.
func (r Record) Project(names []string) Record {
	out := Record{values: make(map[string]Value, len(names))}
	for _, name := range names {
		if v, ok := r.values[name]; ok {
			out.Set(name, v)
		}
	}
	return out
}

// Equal reports whether both records hold the same fields with same-kind Equal values.
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for k, v := range r.values {
		ov, ok := other.values[k]
		if !ok || v.Kind() != ov.Kind() || !Equal(v, ov) {
			return false
		}
	}
	return true
}
