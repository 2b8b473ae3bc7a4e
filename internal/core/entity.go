// Package core defines the catalog domain model: entities, lists, filters
// and the in-memory database they live in.
//
// Entities are mutated only while a database is being loaded. After loading
// completes the database is treated as read-only and may be shared freely
// between goroutines.
package core

import (
	"slices"
	"strconv"
	"time"
)

// PropID is the pseudo-parameter that exposes an entity's identifier.
const PropID = "id"

// DateLayout is the layout used for release-date and eol-date values.
const DateLayout = "2006-01-02"

// Entity is the read-only view shared by every catalog object.
type Entity interface {
	// ID returns the unique identifier, usually a URI.
	ID() string

	// ParamKeys returns the sorted parameter names, including "id".
	ParamKeys() []string

	// ParamValue returns the first value recorded for key, or "".
	ParamValue(key string) string

	// ParamValues returns every value recorded for key.
	ParamValues(key string) []string
}

// BaseEntity holds an identifier and a multi-valued parameter map.
// Concrete catalog types embed it.
type BaseEntity struct {
	id     string
	params map[string][]string
}

func newBaseEntity(id string) BaseEntity {
	return BaseEntity{
		id:     id,
		params: make(map[string][]string),
	}
}

// ID implements Entity.
func (e *BaseEntity) ID() string {
	return e.id
}

// ParamKeys implements Entity.
func (e *BaseEntity) ParamKeys() []string {
	keys := make([]string, 0, len(e.params)+1)
	keys = append(keys, PropID)
	for k := range e.params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ParamValue implements Entity.
func (e *BaseEntity) ParamValue(key string) string {
	if key == PropID {
		return e.id
	}
	values := e.params[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// ParamValues implements Entity.
func (e *BaseEntity) ParamValues(key string) []string {
	if key == PropID {
		return []string{e.id}
	}
	return slices.Clone(e.params[key])
}

// HasParam reports whether at least one value is recorded for key.
func (e *BaseEntity) HasParam(key string) bool {
	if key == PropID {
		return true
	}
	return len(e.params[key]) > 0
}

// AddParam appends value to the values recorded for key.
// The id cannot be changed through the parameter map.
func (e *BaseEntity) AddParam(key, value string) {
	if key == PropID {
		return
	}
	e.params[key] = append(e.params[key], value)
}

// SetParam replaces every value recorded for key with value.
func (e *BaseEntity) SetParam(key, value string) {
	if key == PropID {
		return
	}
	e.params[key] = []string{value}
}

// SetParamBool stores a boolean as "true" or "false".
func (e *BaseEntity) SetParamBool(key string, value bool) {
	e.SetParam(key, strconv.FormatBool(value))
}

// SetParamInt64 stores an integer in base 10.
func (e *BaseEntity) SetParamInt64(key string, value int64) {
	e.SetParam(key, strconv.FormatInt(value, 10))
}

// SetParamDate stores a date using DateLayout.
func (e *BaseEntity) SetParamDate(key string, value time.Time) {
	e.SetParam(key, value.Format(DateLayout))
}

// ClearParam removes every value recorded for key.
func (e *BaseEntity) ClearParam(key string) {
	delete(e.params, key)
}

// ParamValueBool parses the first value of key as a boolean.
// Missing or malformed values yield def.
func (e *BaseEntity) ParamValueBool(key string, def bool) bool {
	v := e.ParamValue(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// ParamValueInt64 parses the first value of key as an integer.
// Missing or malformed values yield def.
func (e *BaseEntity) ParamValueInt64(key string, def int64) int64 {
	v := e.ParamValue(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// ParamValueDate parses the first value of key as a YYYY-MM-DD date.
// The boolean is false when the value is missing or malformed.
func (e *BaseEntity) ParamValueDate(key string) (time.Time, bool) {
	v := e.ParamValue(key)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MergeParams copies every parameter of other into e. Keys present in
// other replace the values held by e.
func (e *BaseEntity) MergeParams(other *BaseEntity) {
	for k, v := range other.params {
		e.params[k] = slices.Clone(v)
	}
}
