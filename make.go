//go:build ignore
// +build ignore

// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2014-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

// This Go make file builds proxyinfo directly from a code checkout.
//
// Run on the command line with:
//
//	$ go run make.go
//
// Other options:
//
//	Run tests:
//	  $ go run make.go test
//
//	Cross compile for the only platform with a registry:
//	  $ go run make.go -goos=windows
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	rootNamespace = "github.com/papercutsoftware/sysproxy"
)

var (
	// The project root where this file is located
	projectRoot string
	//
	buildOutputDir string
)

// Written next to the binary so the key and log paths have somewhere to live.
const sampleConf = `{
    "LogFile" : "proxyinfo.log",
    "LogFileMaxSizeMb" : 10,
    "PrivateKeyFile" : "",
    "PublicKeyFile" : "",
    "KeyID" : "sysproxy-report-key-v1"
}
`

func usage() {
	fmt.Println("Usage: go run make.go [flagged args] [non-flagged args]")
	fmt.Println("-goos=<operating system> target operating system for proxyinfo executable. Default is taken from runtime")
	fmt.Println("-goarch=<architecture> target architecture for proxyinfo executable. Default is taken from runtime")
	fmt.Println("Build action. Can be either 'all'(build all) or 'test'(test all). Default is 'all'")
	os.Exit(1)
}

func main() {
	goos := flag.String("goos", runtime.GOOS, "Specify target operating system for cross compilation")
	goarch := flag.String("goarch", runtime.GOARCH, "Specify target architecture for cross compilation")
	flag.Parse()

	_ = os.Setenv("GOFLAGS", "-mod=mod")
	_ = os.Setenv("GOOS", *goos)
	_ = os.Setenv("GOARCH", *goarch)

	var err error
	projectRoot, err = os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("Failed to get current directory: %v\n", err))
	}
	buildOutputDir = filepath.Join(projectRoot, "build", *goos)

	action := "all"
	if flag.NArg() >= 1 {
		action = flag.Arg(0)
	}

	switch action {
	case "all":
		buildAll()
	case "test":
		testAll()
	default:
		usage()
	}
}

func buildAll() {
	makeDir(buildOutputDir)

	goos := os.Getenv("GOOS")
	goarch := os.Getenv("GOARCH")
	if goos != "windows" {
		fmt.Printf("WARNING: %s has no registry; proxyinfo will always report an IO error.\n", goos)
	}

	fmt.Printf("Building binaries for %s/%s ...\n", goos, goarch)
	if err := runCmd("go", "build", "-ldflags", "-s -w", "-o", makeOutputPath(buildOutputDir, "proxyinfo"), rootNamespace+"/proxyinfo"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	confFile := filepath.Join(buildOutputDir, "proxyinfo.conf")
	if _, err := os.Stat(confFile); os.IsNotExist(err) {
		if err := os.WriteFile(confFile, []byte(sampleConf), 0644); err != nil {
			panic(err)
		}
	}

	fmt.Printf("\nCOMPLETE. You'll find the files in:\n    '%s'\n", buildOutputDir)
}

func testAll() {
	if err := runCmd("go", "test", rootNamespace+"/..."); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd(cmd string, arg ...string) error {
	c := exec.Command(cmd, arg...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("error running command %s: %v", cmd, err)
	}
	return nil
}

func makeDir(dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		panic(err)
	}
}

func makeOutputPath(dir, name string) string {
	if os.Getenv("GOOS") == "windows" && !strings.HasSuffix(name, ".exe") {
		name = name + ".exe"
	}
	return filepath.Join(dir, name)
}
