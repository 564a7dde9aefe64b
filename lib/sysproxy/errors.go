// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

package sysproxy

import (
	"errors"
	"fmt"
)

// Kind classifies a lookup failure.
type Kind int

const (
	// KindIO: the key could not be opened or ProxyServer could not be read.
	KindIO Kind = iota + 1
	// KindAddrParse: ProxyServer is set but is not an ip:port.
	KindAddrParse
	// KindMissingConfig: ProxyServer is empty.
	KindMissingConfig
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io-error"
	case KindAddrParse:
		return "addr-parse-error"
	case KindMissingConfig:
		return "missing-config"
	}
	return "unknown"
}

// ErrMissingProxyConfig is wrapped by every KindMissingConfig error.
var ErrMissingProxyConfig = errors.New("missing system proxy configuration")

// Error is returned by GetSystemProxy. Err holds the cause: the store
// error for KindIO, the parse error for KindAddrParse and
// ErrMissingProxyConfig for KindMissingConfig.
type Error struct {
	Kind  Kind
	Op    string
	Value string // offending ProxyServer, KindAddrParse only
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("IO error: %s: %v", e.Op, e.Err)
	case KindAddrParse:
		return fmt.Sprintf("AddrParse error: %v", e.Err)
	case KindMissingConfig:
		return "Missing system proxy configuration"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsIOError reports whether the store could not be read.
func IsIOError(err error) bool {
	return KindOf(err) == KindIO
}

// IsAddrParseError reports whether ProxyServer was malformed.
func IsAddrParseError(err error) bool {
	return KindOf(err) == KindAddrParse
}

// IsMissingProxyConfig reports whether no proxy server is configured.
func IsMissingProxyConfig(err error) bool {
	return KindOf(err) == KindMissingConfig
}
