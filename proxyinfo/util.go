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
	"strings"

	"github.com/kardianos/osext"
)

func exePath() string {
	exePath, err := osext.Executable()
	if err != nil {
		return os.Args[0]
	}
	return exePath
}

func exeName() string {
	return filepath.Base(exePath())
}

func exeFolder() string {
	exeFolder, err := osext.ExecutableFolder()
	if err != nil {
		return "."
	}
	return exeFolder
}

// baseName is the executable name without ".exe".
func baseName() string {
	name := exeName()
	if strings.ToLower(filepath.Ext(name)) == ".exe" {
		return name[0 : len(name)-4]
	}
	return name
}

func defaultConfPath() string {
	return filepath.Join(exeFolder(), baseName()+".conf")
}
