// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

//go:build windows

package sysproxy

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type registryStore struct {
	root registry.Key
}

// SystemStore returns the registry under HKEY_LOCAL_MACHINE.
func SystemStore() Store {
	return registryStore{root: registry.LOCAL_MACHINE}
}

func (s registryStore) Open(path string) (Key, error) {
	k, err := registry.OpenKey(s.root, path, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	return registryKey{k: k}, nil
}

type registryKey struct {
	k registry.Key
}

func (rk registryKey) GetDWordValue(name string) (uint32, error) {
	// GetIntegerValue also accepts QWORD, which is not a valid flag.
	v, valtype, err := rk.k.GetIntegerValue(name)
	if err == registry.ErrUnexpectedType || (err == nil && valtype != registry.DWORD) {
		return 0, fmt.Errorf("%s: %w", name, ErrUnexpectedType)
	}
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (rk registryKey) GetStringValue(name string) (string, error) {
	v, _, err := rk.k.GetStringValue(name)
	if err == registry.ErrUnexpectedType {
		return "", fmt.Errorf("%s: %w", name, ErrUnexpectedType)
	}
	return v, err
}

func (rk registryKey) Close() error {
	return rk.k.Close()
}
