package models

import "encoding/json"

// Value is a parsed JSON value: one of Object, Array, String, Number, Bool
// or Null. The set is closed; consumers switch exhaustively over it.
type Value interface {
	isValue()
}

// Member is a single key/value pair inside an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object with its members in document order. Column
// ordering depends on document order, which Go maps do not preserve, so the
// object is a slice of members rather than a map.
type Object []Member

// Array is a JSON array in document order.
type Array []Value

// String is a JSON string scalar.
type String string

// Number is a JSON number scalar, kept as its original text so values pass
// through to the output without reformatting.
type Number json.Number

// Bool is a JSON boolean scalar.
type Bool bool

// Null is the JSON null scalar.
type Null struct{}

func (Object) isValue() {}
func (Array) isValue()  {}
func (String) isValue() {}
func (Number) isValue() {}
func (Bool) isValue()   {}
func (Null) isValue()   {}

// FlatRecord maps composite path keys to scalar values while remembering the
// order in which keys were first set. Setting an existing key overwrites its
// value but keeps the key's original position; that is the documented
// behavior when distinct paths collide after flattening.
type FlatRecord struct {
	keys   []string
	values map[string]Value
}

// NewFlatRecord returns an empty FlatRecord.
func NewFlatRecord() *FlatRecord {
	return &FlatRecord{values: make(map[string]Value)}
}

// Set stores value under key, appending the key on first use.
func (r *FlatRecord) Set(key string, value Value) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key and whether the key is present.
func (r *FlatRecord) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record's keys in first-set order. The returned slice is
// owned by the record and must not be modified.
func (r *FlatRecord) Keys() []string {
	return r.keys
}

// Len returns the number of distinct keys in the record.
func (r *FlatRecord) Len() int {
	return len(r.keys)
}

// ConversionJob is one unit of conversion work: the flattened records in
// input order plus every distinct key observed across them, in first-seen
// order. It is built once per conversion and read-only afterwards.
type ConversionJob struct {
	Records     []*FlatRecord
	OrderedKeys []string
}

// WriteResult describes the files produced by one write call.
type WriteResult struct {
	FileCount int
	TotalRows int
	Files     []string // paths in chunk order
}
