// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

// Package report turns a system proxy lookup into a canonical JSON document
// that can be signed and handed to another process, e.g. an updater that
// must not trust an unsigned proxy setting.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/papercutsoftware/sysproxy/lib/sysproxy"
)

// StatusOK marks a successful lookup. Failures use the sysproxy.Kind name,
// or "error" for anything unclassified.
const StatusOK = "ok"

type Report struct {
	Status string `json:"status"`
	Proxy  *Proxy `json:"proxy,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Proxy struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
	Port    uint16 `json:"port"`
	Server  string `json:"server"`
	URL     string `json:"url"`
}

// New records the outcome of sysproxy.GetSystemProxy.
func New(cfg *sysproxy.Config, err error) Report {
	if err != nil {
		status := "error"
		if kind := sysproxy.KindOf(err); kind != 0 {
			status = kind.String()
		}
		return Report{Status: status, Error: err.Error()}
	}
	if cfg == nil {
		return Report{Status: "error", Error: "no proxy configuration returned"}
	}
	return Report{
		Status: StatusOK,
		Proxy: &Proxy{
			Enabled: cfg.Enabled,
			Address: cfg.Address.String(),
			Port:    cfg.Port,
			Server:  cfg.String(),
			URL:     cfg.URL().String(),
		},
	}
}

// OK reports whether the lookup succeeded.
func (r Report) OK() bool {
	return r.Status == StatusOK
}

// Canonical returns the report as RFC 8785 canonical JSON.
func (r Report) Canonical() ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	canonical, err := jcs.Transform(b)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize report: %w", err)
	}
	return canonical, nil
}

// Parse reads a report, signed or not. A signature member is ignored;
// use Verify to check it.
func Parse(payload []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return Report{}, fmt.Errorf("invalid report: %w", err)
	}
	if r.Status == "" {
		return Report{}, fmt.Errorf("invalid report: missing status")
	}
	return r, nil
}
