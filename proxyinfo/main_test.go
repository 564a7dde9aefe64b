// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2014-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papercutsoftware/sysproxy/lib/report"
	"github.com/papercutsoftware/sysproxy/lib/sysproxy"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func withStore(t *testing.T, store sysproxy.Store) {
	t.Helper()
	orig := newReader
	newReader = func() *sysproxy.Reader { return sysproxy.NewReader(store) }
	t.Cleanup(func() { newReader = orig })
}

func runWith(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	conf := filepath.Join(t.TempDir(), "missing.conf")
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-conf", conf}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestShow_ScenarioA(t *testing.T) {
	withStore(t, sysproxy.NewMemStore(map[string]interface{}{
		"EnableProxy": uint32(1),
		"ProxyServer": "127.0.0.1:8080",
	}))

	res := runWith(t, "")

	assert.Equal(t, exitOK, res.code)
	assert.Equal(t, "enabled: true\naddress: 127.0.0.1\nport:    8080\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestShow_ScenarioB(t *testing.T) {
	withStore(t, sysproxy.NewMemStore(map[string]interface{}{
		"EnableProxy": uint32(0),
		"ProxyServer": "[::1]:3128",
	}))

	res := runWith(t, "", "get")

	assert.Equal(t, exitOK, res.code)
	assert.Equal(t, "enabled: false\naddress: ::1\nport:    3128\n", res.stdout)
}

func TestShow_ExitCodes(t *testing.T) {
	var tests = []struct {
		name  string
		store sysproxy.Store
		code  int
	}{
		{"missing config", sysproxy.NewMemStore(map[string]interface{}{"EnableProxy": uint32(1), "ProxyServer": ""}), exitMissingConfig},
		{"bad host", sysproxy.NewMemStore(map[string]interface{}{"ProxyServer": "badhost"}), exitAddrParse},
		{"no port", sysproxy.NewMemStore(map[string]interface{}{"ProxyServer": "127.0.0.1"}), exitAddrParse},
		{"access denied", &sysproxy.MemStore{OpenErr: fs.ErrPermission}, exitIOError},
		{"no key", &sysproxy.MemStore{}, exitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withStore(t, tt.store)

			res := runWith(t, "", "show")

			assert.Equal(t, tt.code, res.code)
			assert.Empty(t, res.stdout)
			assert.True(t, strings.HasPrefix(res.stderr, "ERROR: "), res.stderr)
		})
	}
}

func TestJSON(t *testing.T) {
	withStore(t, sysproxy.NewMemStore(map[string]interface{}{
		"EnableProxy": uint32(1),
		"ProxyServer": "127.0.0.1:8080",
	}))

	res := runWith(t, "", "json")

	assert.Equal(t, exitOK, res.code)
	assert.Equal(t,
		`{"proxy":{"address":"127.0.0.1","enabled":true,"port":8080,"server":"127.0.0.1:8080","url":"http://127.0.0.1:8080"},"status":"ok"}`+"\n",
		res.stdout)
}

func TestJSON_FailureStillPrintsReport(t *testing.T) {
	withStore(t, sysproxy.NewMemStore(map[string]interface{}{"ProxyServer": ""}))

	res := runWith(t, "", "json")

	assert.Equal(t, exitMissingConfig, res.code)
	r, err := report.Parse([]byte(res.stdout))
	require.NoError(t, err)
	assert.Equal(t, "missing-config", r.Status)
}

func TestEnv(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		withStore(t, sysproxy.NewMemStore(map[string]interface{}{
			"EnableProxy": uint32(1),
			"ProxyServer": "[::1]:3128",
		}))

		res := runWith(t, "", "env")

		assert.Equal(t, exitOK, res.code)
		assert.Equal(t, "HTTP_PROXY=http://[::1]:3128\nHTTPS_PROXY=http://[::1]:3128\n", res.stdout)
	})

	t.Run("disabled", func(t *testing.T) {
		withStore(t, sysproxy.NewMemStore(map[string]interface{}{
			"EnableProxy": uint32(0),
			"ProxyServer": "10.0.0.1:80",
		}))

		res := runWith(t, "", "env")

		assert.Equal(t, exitOK, res.code)
		assert.Empty(t, res.stdout)
	})
}

func TestSignAndVerify(t *testing.T) {
	withStore(t, sysproxy.NewMemStore(map[string]interface{}{
		"EnableProxy": uint32(1),
		"ProxyServer": "127.0.0.1:8080",
	}))
	dir := t.TempDir()
	pub := filepath.Join(dir, "report.pub")
	priv := filepath.Join(dir, "report.key")
	signedFile := filepath.Join(dir, "report.json")

	res := runWith(t, "", "genkey", "--public-key="+pub, "--private-key="+priv)
	require.Equal(t, exitOK, res.code, res.stderr)

	res = runWith(t, "", "sign", "--private-key="+priv, "--output="+signedFile)
	require.Equal(t, exitOK, res.code, res.stderr)

	res = runWith(t, "", "verify", "--public-key="+pub, "--input="+signedFile)
	assert.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "Verification successful! status=ok\n", res.stdout)

	signed, err := os.ReadFile(signedFile)
	require.NoError(t, err)
	res = runWith(t, string(signed), "check", "--public-key="+pub)
	assert.Equal(t, exitOK, res.code, res.stderr)

	tampered := strings.Replace(string(signed), "8080", "8081", -1)
	res = runWith(t, tampered, "verify", "--public-key="+pub)
	assert.Equal(t, exitBadSignature, res.code)
}

func TestSign_RequiresKey(t *testing.T) {
	res := runWith(t, "", "sign")

	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "--private-key is required")
}

func TestGenkey_Stdout(t *testing.T) {
	res := runWith(t, "", "genkey")

	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stdout, "Public Key:")
	assert.Contains(t, res.stdout, "Private Key:")
}

func TestUnknownCommand(t *testing.T) {
	res := runWith(t, "", "frobnicate")

	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, `Unknown command "frobnicate"`)
}

func TestHelp(t *testing.T) {
	res := runWith(t, "", "help")

	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stdout, "Commands:")
}

func TestVerboseLogsLookup(t *testing.T) {
	withStore(t, sysproxy.NewMemStore(map[string]interface{}{"ProxyServer": "badhost"}))

	res := runWith(t, "", "-v", "show")

	assert.Equal(t, exitAddrParse, res.code)
	assert.Contains(t, res.stderr, "Proxy lookup failed (addr-parse-error)")
}

func TestLogFileFromConf(t *testing.T) {
	withStore(t, sysproxy.NewMemStore(map[string]interface{}{
		"EnableProxy": uint32(1),
		"ProxyServer": "10.0.0.1:3128",
	}))
	dir := t.TempDir()
	conf := filepath.Join(dir, "proxyinfo.conf")
	require.NoError(t, os.WriteFile(conf, []byte(`{"LogFile": "proxyinfo.log"}`), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-conf", conf, "show"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	output, err := os.ReadFile(filepath.Join(dir, "proxyinfo.log"))
	require.NoError(t, err)
	assert.Contains(t, string(output), "Proxy lookup: server=10.0.0.1:3128 enabled=true")
}
