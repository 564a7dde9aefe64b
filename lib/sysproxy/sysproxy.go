// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

// Package sysproxy reads the machine-wide proxy recorded in the Windows
// TCP/IP service parameters and returns it as a validated address.
//
// The lookup only discovers configuration. It never connects to the proxy,
// never caches the result and never watches the registry for changes.
package sysproxy

import (
	"net/netip"
	"net/url"
)

const (
	// ParametersPath is the TCP/IP service parameters key, relative to
	// HKEY_LOCAL_MACHINE.
	ParametersPath = `SYSTEM\CurrentControlSet\Services\Tcpip\Parameters`

	// EnableProxyValue is a DWORD; 1 means the proxy is turned on.
	EnableProxyValue = "EnableProxy"
	// ProxyServerValue is a "host:port" string, empty when unconfigured.
	ProxyServerValue = "ProxyServer"
)

// Config is the system proxy. A Config is only handed out once the server
// string has been fully parsed, so Address and Port are always valid.
type Config struct {
	Enabled bool
	Address netip.Addr
	Port    uint16
}

// AddrPort returns the proxy endpoint as a socket address.
func (c Config) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(c.Address, c.Port)
}

// String returns "host:port", with IPv6 hosts in brackets.
func (c Config) String() string {
	return c.AddrPort().String()
}

// URL returns the endpoint in the http://host:port form HTTP clients
// expect in HTTP_PROXY.
func (c Config) URL() *url.URL {
	return &url.URL{Scheme: "http", Host: c.String()}
}

// Reader looks up the proxy in a Store. The zero Reader reads the host's
// registry at ParametersPath. A Reader holds no state between calls and is
// safe for concurrent use.
type Reader struct {
	Store Store
	Path  string
}

// NewReader returns a Reader over store at ParametersPath.
func NewReader(store Store) *Reader {
	return &Reader{Store: store, Path: ParametersPath}
}

// GetSystemProxy reads the proxy from the host's registry.
func GetSystemProxy() (*Config, error) {
	return NewReader(SystemStore()).GetSystemProxy()
}

// GetSystemProxy opens the parameters key, reads EnableProxy and
// ProxyServer and parses the server. Every failure is returned as an
// *Error; nothing is retried.
func (r *Reader) GetSystemProxy() (*Config, error) {
	store := r.Store
	if store == nil {
		store = SystemStore()
	}
	path := r.Path
	if path == "" {
		path = ParametersPath
	}

	key, err := store.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "open " + path, Err: err}
	}
	defer key.Close()

	// Absent or not a DWORD: the proxy is off.
	enabled := false
	if v, err := key.GetDWordValue(EnableProxyValue); err == nil {
		enabled = v == 1
	}

	server, err := key.GetStringValue(ProxyServerValue)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "read " + ProxyServerValue, Err: err}
	}
	if server == "" {
		return nil, &Error{Kind: KindMissingConfig, Op: "read " + ProxyServerValue, Err: ErrMissingProxyConfig}
	}

	addr, err := ParseServer(server)
	if err != nil {
		return nil, &Error{Kind: KindAddrParse, Op: "parse " + ProxyServerValue, Value: server, Err: err}
	}

	return &Config{
		Enabled: enabled,
		Address: addr.Addr(),
		Port:    addr.Port(),
	}, nil
}

// ParseServer parses an IP literal and port, "10.0.0.1:8080" or
// "[::1]:3128". Host names are not resolved and a missing port is an error.
func ParseServer(server string) (netip.AddrPort, error) {
	return netip.ParseAddrPort(server)
}
