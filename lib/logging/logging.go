// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2014-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

// Package logging provides the *log.Logger constructors used by proxyinfo:
// console, discard, and a file that rolls over once to "<name>.1" when it
// reaches its maximum size.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const (
	defaultMaxSize = 10 * 1024 * 1024 // 10 MB
	logFlags       = log.Ldate | log.Ltime
)

var (
	openMu       sync.Mutex
	openLogFiles = make(map[string]*rollingFile)
)

type rollingFile struct {
	name        string
	maxSize     int64
	mu          sync.Mutex
	currentFile *os.File
	currentSize int64
}

func newRollingFile(name string, maxSize int64) (*rollingFile, error) {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	rf := &rollingFile{name: name, maxSize: maxSize}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *rollingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.currentFile == nil {
		return 0, os.ErrClosed
	}
	if rf.currentSize+int64(len(p)) >= rf.maxSize {
		if err := rf.roll(); err != nil {
			return 0, err
		}
	}
	n, err := rf.currentFile.Write(p)
	rf.currentSize += int64(n)
	return n, err
}

func (rf *rollingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.currentFile == nil {
		return nil
	}
	rf.currentFile.Sync()
	err := rf.currentFile.Close()
	rf.currentFile = nil
	return err
}

func (rf *rollingFile) open() error {
	f, err := os.OpenFile(rf.name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	finfo, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	rf.currentFile = f
	rf.currentSize = finfo.Size()
	return nil
}

// FUTURE: Support more than one roll.
func (rf *rollingFile) roll() error {
	rf.currentFile.Close()
	archivedFile := rf.name + ".1"
	os.Remove(archivedFile)
	os.Rename(rf.name, archivedFile)
	return rf.open()
}

// NewFileLogger logs to file, rolling at 10 MB.
func NewFileLogger(file string) *log.Logger {
	return NewFileLoggerWithMaxSize(file, defaultMaxSize)
}

// NewFileLoggerWithMaxSize logs to file, rolling at maxSize bytes. If the
// file cannot be opened a warning goes to stderr and the returned logger
// discards everything.
func NewFileLoggerWithMaxSize(file string, maxSize int64) *log.Logger {
	rf, err := newRollingFile(file, maxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Unable to set up log file: %v\n", err)
		return NewNilLogger()
	}
	openMu.Lock()
	if old, ok := openLogFiles[file]; ok {
		old.Close()
	}
	openLogFiles[file] = rf
	openMu.Unlock()
	return log.New(rf, "", logFlags)
}

// CloseAllOpenFileLoggers flushes and closes every file opened by
// NewFileLogger. Loggers still pointing at them fail their writes.
func CloseAllOpenFileLoggers() {
	openMu.Lock()
	defer openMu.Unlock()
	for name, rf := range openLogFiles {
		rf.Close()
		delete(openLogFiles, name)
	}
}

func NewNilLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func NewConsoleLogger() *log.Logger {
	return log.New(os.Stderr, "", logFlags)
}
