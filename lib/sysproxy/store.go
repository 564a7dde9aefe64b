// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

package sysproxy

import "errors"

// Store is the read side of a hierarchical configuration store such as the
// registry.
type Store interface {
	Open(path string) (Key, error)
}

// Key is an open store location. Callers must Close it.
type Key interface {
	// GetDWordValue fails with ErrUnexpectedType if the value is not a
	// 32-bit integer.
	GetDWordValue(name string) (uint32, error)
	// GetStringValue fails with ErrUnexpectedType if the value is not a
	// string.
	GetStringValue(name string) (string, error)
	Close() error
}

var (
	// ErrUnexpectedType is returned when a value has the wrong type.
	ErrUnexpectedType = errors.New("unexpected value type")
	// ErrNotSupported is returned by SystemStore on hosts without a registry.
	ErrNotSupported = errors.New("system proxy configuration not supported on this platform")
)
