// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

//go:build !windows

package sysproxy

type unsupportedStore struct{}

// SystemStore returns a store whose Open always fails with ErrNotSupported.
func SystemStore() Store {
	return unsupportedStore{}
}

func (unsupportedStore) Open(path string) (Key, error) {
	return nil, ErrNotSupported
}
