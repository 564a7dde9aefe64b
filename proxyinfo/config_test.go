// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2014-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papercutsoftware/sysproxy/lib/report"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxyinfo.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	conf, err := LoadConfig(filepath.Join(t.TempDir(), "invalid.conf"), ReplacementVars{})

	require.NoError(t, err)
	assert.Equal(t, 10, conf.LogFileMaxSizeMb)
	assert.Equal(t, report.DefaultKeyID, conf.KeyID)
	assert.Empty(t, conf.LogFile)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	exeDir := filepath.Join(t.TempDir(), `Proxy "Tools"`)
	path := writeConf(t, `
    {
        "LogFile" : "${ExeFolder}/proxyinfo.log",
        "LogFileMaxSizeMb" : 2,
        "PrivateKeyFile" : "keys/report.key",
        "PublicKeyFile" : "/etc/proxyinfo/report.pub",
        "KeyID" : "site-key-7"
    }`)

	conf, err := LoadConfig(path, ReplacementVars{ExeFolder: exeDir})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exeDir, "proxyinfo.log"), conf.LogFile)
	assert.Equal(t, 2, conf.LogFileMaxSizeMb)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "keys", "report.key"), conf.PrivateKeyFile)
	assert.Equal(t, "site-key-7", conf.KeyID)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConf(t, `{"LogFile": `)

	_, err := LoadConfig(path, ReplacementVars{})

	assert.Error(t, err)
}

func TestLoadConfig_NegativeLogSize(t *testing.T) {
	path := writeConf(t, `{"LogFileMaxSizeMb": -1}`)

	_, err := LoadConfig(path, ReplacementVars{})

	assert.Error(t, err)
}
