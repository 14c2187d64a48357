/*
 (c) Copyright [2026] Couchbase, Inc.
 Licensed under the Apache License, Version 2.0 (the "License");
 You may not use this file except in compliance with the License.
 You may obtain a copy of the License at

 http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package vlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	InfoLog    = "[INFO] "
	WarningLog = "[WARNING] "
	ErrorLog   = "[ERROR] "

	// StdoutLogPath sends the structured log to stderr instead of a file
	StdoutLogPath = "-"
	LogPermission = 0644
)

// Printer is a wrapper for the logger API that handles dual logging to the log
// and stdout. It reimplements all of the APIs from logr but adds additional
// ones to print messages to stdout.
type Printer struct {
	Log logr.Logger
	// ForCli is set when the printer is used by the cbadmin CLI. Messages
	// sent through the Print* functions are then echoed to the console.
	ForCli bool
	// LogToFileOnly is set when the structured log goes to a file. It
	// controls whether Print* messages are repeated on stdout.
	LogToFileOnly bool
}

// WithName will construct a new printer with the logger set with an additional
// name. The new printer inherits state from the current Printer.
func (p *Printer) WithName(logName string) Printer {
	return Printer{
		Log:           p.Log.WithName(logName),
		ForCli:        p.ForCli,
		LogToFileOnly: p.LogToFileOnly,
	}
}

// SetupOrDie will setup the logging for the CLI. If logFile is empty or "-",
// the log is written to stderr. Any failure opening the log file aborts the
// process.
func (p *Printer) SetupOrDie(logFile string) {
	p.SetupWithVerbosityOrDie(logFile, false)
}

// SetupWithVerbosityOrDie is SetupOrDie that also records V(1) messages when
// verbose is set.
func (p *Printer) SetupWithVerbosityOrDie(logFile string, verbose bool) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	logger, err := p.setup(logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup the logger: %v\n", err)
		os.Exit(1)
	}
	p.Log = logger
	p.logStartupMessage()
}

func (p *Printer) setup(logFile string, level zapcore.Level) (logr.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	if logFile == "" || logFile == StdoutLogPath {
		cfg.OutputPaths = []string{"stderr"}
		p.LogToFileOnly = false
	} else {
		// create the file up front so a bad path fails here rather than in zap
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, os.FileMode(LogPermission))
		if err != nil {
			return logr.Discard(), fmt.Errorf("fail to open log file %s: %w", logFile, err)
		}
		f.Close()
		cfg.OutputPaths = []string{logFile}
		p.LogToFileOnly = true
	}

	zapLg, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zapLg), nil
}

func (p *Printer) logStartupMessage() {
	hostname, _ := os.Hostname()
	p.Log.Info("New log for process", "pid", os.Getpid(), "args", os.Args,
		"hostname", hostname, "uid", os.Getuid())
}

// Reimplement the logr APIs that we use. These are simple pass through functions to the logr object.

// V sets the logging level. Can be daisy-chained to produce a log message for
// a given level.
func (p *Printer) V(level int) logr.Logger {
	return p.Log.V(level)
}

// Error displays an error message to the log.
func (p *Printer) Error(err error, msg string, keysAndValues ...any) {
	p.Log.Error(err, msg, keysAndValues...)
}

// Info displays an info message to the log.
func (p *Printer) Info(msg string, keysAndValues ...any) {
	p.Log.Info(msg, keysAndValues...)
}

// APIs to control printing to both the log and standard out.

// PrintInfo will display the given message in the log. And if not logging to
// stdout, it will repeat the message to the console.
func (p *Printer) PrintInfo(msg string, v ...any) {
	fmsg := fmt.Sprintf(msg, v...)
	p.Log.Info(fmsg)
	p.printlnCond(InfoLog, fmsg)
}

// PrintError will display the given error message in the log. And if not
// logging to stdout, it will repeat the message to the console.
func (p *Printer) PrintError(msg string, v ...any) {
	fmsg := fmt.Sprintf(msg, v...)
	p.Log.Error(nil, fmsg)
	p.printlnCond(ErrorLog, fmsg)
}

// PrintWarning will display the given warning message in the log. And if not
// logging to stdout, it will repeat the message to the console.
func (p *Printer) PrintWarning(msg string, v ...any) {
	fmsg := fmt.Sprintf(msg, v...)
	p.Log.Info(fmsg)
	p.printlnCond(WarningLog, fmsg)
}

// LogArgParse logs the arguments a command was parsed with. Passwords are
// masked.
func (p *Printer) LogArgParse(inputArgv *[]string) {
	p.Log.Info("Called method Parse", "args", MaskSensitiveArgs(*inputArgv))
}

// printlnCond will conditonally print a message to the console if logging to a file
func (p *Printer) printlnCond(label, msg string) {
	// Message is only printed if we are logging to a file only. Otherwise, it
	// would be duplicated in the log.
	if p.ForCli && p.LogToFileOnly {
		fmt.Printf("%s%s\n", label, msg)
	}
}

var sensitiveFlags = []string{"--password", "--secret-key"}

// MaskSensitiveArgs returns a copy of argv with the values of password-like
// flags replaced.
func MaskSensitiveArgs(argv []string) []string {
	const maskedValue = "******"
	masked := make([]string, len(argv))
	copy(masked, argv)
	for i := 0; i < len(masked); i++ {
		for _, flag := range sensitiveFlags {
			switch {
			case masked[i] == flag && i+1 < len(masked):
				masked[i+1] = maskedValue
				i++
			case strings.HasPrefix(masked[i], flag+"="):
				masked[i] = flag + "=" + maskedValue
			}
		}
	}
	return masked
}
