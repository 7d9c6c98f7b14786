package status

import (
	"slices"
	"sync"
)

// MetricMap lazily allocates one T per key and hands out stable pointers,
// so hot paths resolve a key once and then touch the atomic directly
type MetricMap[T any] struct {
	items sync.Map // string -> *T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the value for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.items.Load(key); ok {
		return v.(*T)
	}
	v, _ := m.items.LoadOrStore(key, new(T))
	return v.(*T)
}

func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.items.Load(key)
	return ok
}

// Range visits metrics in key order
func (m *MetricMap[T]) Range(fn func(key string, v *T)) {
	var keys []string
	m.items.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	for _, k := range keys {
		if v, ok := m.items.Load(k); ok {
			fn(k, v.(*T))
		}
	}
}

func (m *MetricMap[T]) Count() int {
	n := 0
	m.items.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
