package object

import "sync"

// lazy holds a value that is loaded on first use. It is either unloaded or
// loaded; only a successful load moves it to loaded, so a failed load is
// attempted again on the next call. The zero value is unloaded.
type lazy[T any] struct {
	mu     sync.Mutex
	loaded bool
	value  T
}

// get returns the loaded value, calling load if there is none yet.
// Concurrent callers wait for the load in flight instead of repeating it.
func (l *lazy[T]) get(load func() (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.value, nil
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	l.value, l.loaded = v, true
	return v, nil
}

// set stores v, replacing anything already loaded.
func (l *lazy[T]) set(v T) {
	l.mu.Lock()
	l.value, l.loaded = v, true
	l.mu.Unlock()
}

// setDefault stores v only if nothing is loaded yet.
func (l *lazy[T]) setDefault(v T) {
	l.mu.Lock()
	if !l.loaded {
		l.value, l.loaded = v, true
	}
	l.mu.Unlock()
}

// peek returns the value and whether it has been loaded, without loading.
func (l *lazy[T]) peek() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.loaded
}
