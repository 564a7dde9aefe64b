// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2014-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

// proxyinfo prints the machine-wide Windows proxy from the TCP/IP service
// parameters, optionally as a signed JSON report.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/papercutsoftware/sysproxy/lib/logging"
	"github.com/papercutsoftware/sysproxy/lib/sysproxy"
)

const (
	exitOK = iota
	exitUsage
	exitIOError
	exitAddrParse
	exitMissingConfig
	exitBadSignature
)

// newReader is swapped out by tests.
var newReader = func() *sysproxy.Reader {
	return sysproxy.NewReader(sysproxy.SystemStore())
}

type env struct {
	conf   *Config
	logger *log.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

var aliases = map[string]string{
	"get":    "show",
	"check":  "verify",
	"keygen": "genkey",
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("proxyinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	confPath := fs.String("conf", "", "Conf file. (default: <exe folder>/"+baseName()+".conf)")
	verbose := fs.Bool("v", false, "Log to the console.")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *confPath == "" {
		*confPath = defaultConfPath()
	}
	conf, err := LoadConfig(*confPath, ReplacementVars{ExeFolder: exeFolder()})
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: Invalid config - %v\n", err)
		return exitUsage
	}

	e := &env{conf: conf, stdin: stdin, stdout: stdout, stderr: stderr}
	switch {
	case *verbose:
		e.logger = logging.NewConsoleLogger()
		e.logger.SetOutput(stderr)
	case conf.LogFile != "":
		e.logger = logging.NewFileLoggerWithMaxSize(conf.LogFile, int64(conf.LogFileMaxSizeMb)*1024*1024)
		defer logging.CloseAllOpenFileLoggers()
	default:
		e.logger = logging.NewNilLogger()
	}

	action := "show"
	var actionArgs []string
	if fs.NArg() > 0 {
		action = strings.ToLower(fs.Arg(0))
		actionArgs = fs.Args()[1:]
	}
	if alias, ok := aliases[action]; ok {
		action = alias
	}

	switch action {
	case "show":
		return showCmd(e, actionArgs)
	case "json":
		return jsonCmd(e, actionArgs)
	case "env":
		return envCmd(e, actionArgs)
	case "sign":
		return signCmd(e, actionArgs)
	case "verify":
		return verifyCmd(e, actionArgs)
	case "genkey":
		return genkeyCmd(e, actionArgs)
	case "help":
		printUsage(stdout)
		return exitOK
	}
	fmt.Fprintf(stderr, "ERROR: Unknown command %q\n", action)
	printUsage(stderr)
	return exitUsage
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [-conf=<file>] [-v] [command] [arguments]\n", exeName())
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  show   - Print the system proxy. (default)")
	fmt.Fprintln(w, "  json   - Print the system proxy as canonical JSON.")
	fmt.Fprintln(w, "  env    - Print HTTP_PROXY/HTTPS_PROXY lines if the proxy is enabled.")
	fmt.Fprintln(w, "  sign   - Print a signed JSON report.")
	fmt.Fprintln(w, "      --private-key=<file>   File containing the private key. (default: conf PrivateKeyFile)")
	fmt.Fprintln(w, "      --key-id=<id>          Key ID to put in the signature header. (default: conf KeyID)")
	fmt.Fprintln(w, "      --output=<file>        File to write the signed report to. (default: stdout)")
	fmt.Fprintln(w, "  verify - Verify a signed JSON report.")
	fmt.Fprintln(w, "      --public-key=<file>    File containing the public key. (default: conf PublicKeyFile)")
	fmt.Fprintln(w, "      --input=<file>         File to read the signed report from. (default: stdin)")
	fmt.Fprintln(w, "  genkey - Generate a new key pair.")
	fmt.Fprintln(w, "      --public-key=<file>    File to save the public key to. (default: stdout)")
	fmt.Fprintln(w, "      --private-key=<file>   File to save the private key to. (default: stdout)")
	fmt.Fprintln(w, "  help   - This usage message.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Exit codes: 2 registry unreadable, 3 malformed ProxyServer, 4 no proxy configured, 5 bad signature.")
}

// exitCode maps a lookup error onto the process exit code.
func exitCode(err error) int {
	switch sysproxy.KindOf(err) {
	case 0:
		if err == nil {
			return exitOK
		}
		return exitUsage
	case sysproxy.KindIO:
		return exitIOError
	case sysproxy.KindAddrParse:
		return exitAddrParse
	case sysproxy.KindMissingConfig:
		return exitMissingConfig
	}
	return exitUsage
}

// lookup reads the proxy once and logs the outcome.
func (e *env) lookup() (*sysproxy.Config, error) {
	cfg, err := newReader().GetSystemProxy()
	if err != nil {
		e.logger.Printf("Proxy lookup failed (%s): %v", sysproxy.KindOf(err), err)
		return nil, err
	}
	e.logger.Printf("Proxy lookup: server=%s enabled=%v", cfg, cfg.Enabled)
	return cfg, nil
}

func (e *env) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}
