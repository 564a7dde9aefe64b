// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2014-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papercutsoftware/sysproxy/lib/report"
)

func showCmd(e *env, args []string) int {
	if err := e.newFlagSet("show").Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := e.lookup()
	if err != nil {
		fmt.Fprintf(e.stderr, "ERROR: %v\n", err)
		return exitCode(err)
	}
	fmt.Fprintf(e.stdout, "enabled: %v\n", cfg.Enabled)
	fmt.Fprintf(e.stdout, "address: %s\n", cfg.Address)
	fmt.Fprintf(e.stdout, "port:    %d\n", cfg.Port)
	return exitOK
}

// jsonCmd prints the report even when the lookup fails so the caller always
// gets a parseable document.
func jsonCmd(e *env, args []string) int {
	if err := e.newFlagSet("json").Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := e.lookup()
	b, cerr := report.New(cfg, err).Canonical()
	if cerr != nil {
		fmt.Fprintf(e.stderr, "ERROR: %v\n", cerr)
		return exitUsage
	}
	fmt.Fprintln(e.stdout, string(b))
	return exitCode(err)
}

// envCmd prints shell assignments for HTTP clients. A disabled proxy prints
// nothing.
func envCmd(e *env, args []string) int {
	if err := e.newFlagSet("env").Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := e.lookup()
	if err != nil {
		fmt.Fprintf(e.stderr, "ERROR: %v\n", err)
		return exitCode(err)
	}
	if cfg.Enabled {
		proxy := cfg.URL().String()
		fmt.Fprintf(e.stdout, "HTTP_PROXY=%s\n", proxy)
		fmt.Fprintf(e.stdout, "HTTPS_PROXY=%s\n", proxy)
	}
	return exitOK
}

func signCmd(e *env, args []string) int {
	fs := e.newFlagSet("sign")
	privateKeyFile := fs.String("private-key", e.conf.PrivateKeyFile, "The file containing the private key.")
	keyID := fs.String("key-id", e.conf.KeyID, "The key ID to put in the signature header.")
	outputFile := fs.String("output", "", "The file to write the signed report to. If not specified, writes to standard output.")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *privateKeyFile == "" {
		fmt.Fprintln(e.stderr, "Error: --private-key is required.")
		fs.Usage()
		return exitUsage
	}
	privateKey, err := readKey(*privateKeyFile)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error reading private key: %v\n", err)
		return exitUsage
	}

	cfg, lookupErr := e.lookup()
	signed, err := report.Sign(report.New(cfg, lookupErr), privateKey, *keyID)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error signing report: %v\n", err)
		return exitUsage
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, append(signed, '\n'), 0644); err != nil {
			fmt.Fprintf(e.stderr, "Error writing output file: %v\n", err)
			return exitUsage
		}
	} else {
		fmt.Fprintln(e.stdout, string(signed))
	}
	return exitCode(lookupErr)
}

func verifyCmd(e *env, args []string) int {
	fs := e.newFlagSet("verify")
	publicKeyFile := fs.String("public-key", e.conf.PublicKeyFile, "The file containing the public key.")
	inputFile := fs.String("input", "", "The file to read the signed report from. If not specified, reads from standard input.")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *publicKeyFile == "" {
		fmt.Fprintln(e.stderr, "Error: --public-key is required.")
		fs.Usage()
		return exitUsage
	}
	publicKey, err := readKey(*publicKeyFile)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error reading public key: %v\n", err)
		return exitUsage
	}

	var input []byte
	if *inputFile != "" {
		input, err = os.ReadFile(*inputFile)
	} else {
		input, err = io.ReadAll(e.stdin)
	}
	if err != nil {
		fmt.Fprintf(e.stderr, "Error reading input: %v\n", err)
		return exitUsage
	}

	if err := report.Verify(input, publicKey); err != nil {
		e.logger.Printf("Report verification failed: %v", err)
		fmt.Fprintf(e.stderr, "Verification failed: %v\n", err)
		return exitBadSignature
	}
	r, err := report.Parse(input)
	if err != nil {
		fmt.Fprintf(e.stderr, "Verification failed: %v\n", err)
		return exitBadSignature
	}
	fmt.Fprintf(e.stdout, "Verification successful! status=%s\n", r.Status)
	return exitOK
}

func genkeyCmd(e *env, args []string) int {
	fs := e.newFlagSet("genkey")
	publicKeyFile := fs.String("public-key", "", "The file to save the public key to.")
	privateKeyFile := fs.String("private-key", "", "The file to save the private key to.")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	publicKey, privateKey, err := report.GenerateKeys()
	if err != nil {
		fmt.Fprintf(e.stderr, "Error generating keys: %v\n", err)
		return exitUsage
	}

	if *publicKeyFile != "" {
		if err := os.WriteFile(*publicKeyFile, []byte(publicKey), 0644); err != nil {
			fmt.Fprintf(e.stderr, "Error writing public key to file: %v\n", err)
			return exitUsage
		}
	} else {
		fmt.Fprintln(e.stdout, "Public Key:")
		fmt.Fprintln(e.stdout, publicKey)
		fmt.Fprintln(e.stdout, "")
	}

	if *privateKeyFile != "" {
		if err := os.WriteFile(*privateKeyFile, []byte(privateKey), 0600); err != nil {
			fmt.Fprintf(e.stderr, "Error writing private key to file: %v\n", err)
			return exitUsage
		}
	} else {
		fmt.Fprintln(e.stdout, "Private Key:")
		fmt.Fprintln(e.stdout, privateKey)
	}
	return exitOK
}

func readKey(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
