package enum

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	enumManager = map[reflect.Type]any{}
	mutex       sync.RWMutex
)

type enum[T comparable] struct {
	toEnum map[string]T
}

// New registers the value as a member of its enum type and returns it.
func New[T comparable](value T) T {
	mutex.Lock()
	defer mutex.Unlock()

	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[t].(enum[T]).toEnum[fmt.Sprint(value)] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// Values returns all registered values of an enum type, ordered by their
// string form.
func Values[T comparable]() []T {
	mutex.RLock()
	defer mutex.RUnlock()

	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(e.(enum[T]).toEnum))
	for k := range e.(enum[T]).toEnum {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]T, 0, len(keys))
	for _, k := range keys {
		values = append(values, e.(enum[T]).toEnum[k])
	}

	return values
}
