// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2014-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/papercutsoftware/sysproxy/lib/report"
)

// Config is the optional proxyinfo.conf file. Relative paths are taken
// from the folder holding the conf file.
type Config struct {
	LogFile          string
	LogFileMaxSizeMb int
	PrivateKeyFile   string
	PublicKeyFile    string
	KeyID            string
}

type ReplacementVars struct {
	ExeFolder string
}

// LoadConfig parses the conf file at path. A missing file is not an error;
// the defaults are returned instead.
func LoadConfig(path string, vars ReplacementVars) (*Config, error) {
	conf := &Config{}
	s, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		replacements := map[string]string{
			"${ExeFolder}": jsonEscapeString(vars.ExeFolder),
		}
		s = []byte(replaceVars(string(s), replacements))
		if err := json.Unmarshal(s, conf); err != nil {
			return nil, fmt.Errorf("invalid conf file %s: %v", path, err)
		}
	}

	if err := validate(conf); err != nil {
		return nil, err
	}
	applyDefaults(conf, filepath.Dir(path))
	return conf, nil
}

func validate(conf *Config) error {
	if conf.LogFileMaxSizeMb < 0 {
		return fmt.Errorf("LogFileMaxSizeMb must not be negative")
	}
	return nil
}

func applyDefaults(conf *Config, base string) {
	if conf.LogFileMaxSizeMb == 0 {
		conf.LogFileMaxSizeMb = 10
	}
	if conf.KeyID == "" {
		conf.KeyID = report.DefaultKeyID
	}
	conf.LogFile = resolvePath(base, conf.LogFile)
	conf.PrivateKeyFile = resolvePath(base, conf.PrivateKeyFile)
	conf.PublicKeyFile = resolvePath(base, conf.PublicKeyFile)
}

func resolvePath(base, p string) string {
	if p == "" {
		return p
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func replaceVars(in string, replacements map[string]string) (out string) {
	out = in
	for key, value := range replacements {
		out = strings.Replace(out, key, value, -1)
	}
	return out
}

func jsonEscapeString(in string) (out string) {
	r := strings.NewReplacer("\\", "\\\\", "\"", "\\\"")
	return r.Replace(in)
}
