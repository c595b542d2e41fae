package telegram

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Params represents a set of parameters that gets passed to a request.
type Params map[string]string

// AddNonEmpty adds a value if it is not an empty string.
func (p Params) AddNonEmpty(key, value string) {
	if value != "" {
		p[key] = value
	}
}

// AddNonZero adds a value if it is not zero.
func (p Params) AddNonZero(key string, value int) {
	if value != 0 {
		p[key] = strconv.Itoa(value)
	}
}

// AddNonZero64 adds a value if it is not zero.
func (p Params) AddNonZero64(key string, value int64) {
	if value != 0 {
		p[key] = strconv.FormatInt(value, 10)
	}
}

// AddInt64 adds a value, zero included.
func (p Params) AddInt64(key string, value int64) {
	p[key] = strconv.FormatInt(value, 10)
}

// AddBool adds a value of a bool if it is true.
func (p Params) AddBool(key string, value bool) {
	if value {
		p[key] = strconv.FormatBool(value)
	}
}

// AddInterface adds a JSON-marshalled value if it is not nil. Nil
// pointers, slices and maps are skipped rather than sent as "null".
func (p Params) AddInterface(key string, value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return nil
		}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	p[key] = string(b)
	return nil
}

// AddFirstValid attempts to add the first non-zero value out of a list.
func (p Params) AddFirstValid(key string, args ...interface{}) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case int:
			if v != 0 {
				p[key] = strconv.Itoa(v)
				return nil
			}
		case int64:
			if v != 0 {
				p[key] = strconv.FormatInt(v, 10)
				return nil
			}
		case string:
			if v != "" {
				p[key] = v
				return nil
			}
		case nil:
		default:
			b, err := json.Marshal(arg)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", key, err)
			}
			p[key] = string(b)
			return nil
		}
	}
	return nil
}
