// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

package sysproxy

import (
	"fmt"
	"io/fs"
	"sync"
)

// MemStore is an in-memory Store, mostly for tests. Keys maps a path to its
// values. A uint32 value reads as a DWORD and a string as a string; any
// other type reads as a value of the wrong type.
type MemStore struct {
	Keys map[string]map[string]interface{}
	// OpenErr, if set, is returned by every Open.
	OpenErr error

	mu   sync.Mutex
	open int
}

// NewMemStore returns a MemStore holding values at ParametersPath.
func NewMemStore(values map[string]interface{}) *MemStore {
	return &MemStore{Keys: map[string]map[string]interface{}{ParametersPath: values}}
}

func (s *MemStore) Open(path string) (Key, error) {
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	values, ok := s.Keys[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	s.mu.Lock()
	s.open++
	s.mu.Unlock()
	return &memKey{store: s, values: values}, nil
}

// OpenKeys returns the number of keys opened and not yet closed.
func (s *MemStore) OpenKeys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

type memKey struct {
	store  *MemStore
	values map[string]interface{}
	closed bool
}

func (k *memKey) lookup(name string) (interface{}, error) {
	if k.closed {
		return nil, fs.ErrClosed
	}
	v, ok := k.values[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return v, nil
}

func (k *memKey) GetDWordValue(name string) (uint32, error) {
	v, err := k.lookup(name)
	if err != nil {
		return 0, err
	}
	d, ok := v.(uint32)
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrUnexpectedType)
	}
	return d, nil
}

func (k *memKey) GetStringValue(name string) (string, error) {
	v, err := k.lookup(name)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnexpectedType)
	}
	return str, nil
}

func (k *memKey) Close() error {
	if k.closed {
		return fs.ErrClosed
	}
	k.closed = true
	k.store.mu.Lock()
	k.store.open--
	k.store.mu.Unlock()
	return nil
}
