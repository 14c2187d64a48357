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

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

const (
	shellPrompt      = "cbadmin> "
	shellHistoryFile = ".cbadmin_history"
)

// lineReader is the part of a readline instance the shell loop uses
type lineReader interface {
	Readline() (string, error)
	Close() error
}

/* CmdShell
 *
 * Starts an interactive session. Every line is run as a cbadmin
 * command against the same registry.
 *
 * Implements cmdInterface
 */
type CmdShell struct {
	CmdBase
	launcher *launcher
}

func makeCmdShell(l *launcher) *cobra.Command {
	newCmd := &CmdShell{CmdBase: makeCmdBase(l), launcher: l}

	cmd := makeBasicCobraCmd(
		l,
		newCmd,
		shellSubCmd,
		"Start an interactive shell",
		`This starts an interactive shell. Each line is run as a cbadmin command,
for example "clusters list" or "buckets get --bucket travel-sample".
Clusters registered in the shell stay registered until it exits.

Ctrl+C cancels the running command. Type exit, quit or Ctrl+D to leave.`,
		cobra.NoArgs,
	)
	return cmd
}

func (c *CmdShell) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return c.validateParse(logger)
}

func (c *CmdShell) validateParse(logger vlog.Printer) error {
	logger.Info("Called validateParse()")
	if c.launcher.inShell {
		return errors.New("the shell is already running")
	}
	return nil
}

func (c *CmdShell) Run(ctx context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     shellHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          c.out,
	})
	if err != nil {
		return fmt.Errorf("fail to start the shell: %w", err)
	}
	return c.launcher.runShell(ctx, rl, vcc.Log)
}

func shellHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, shellHistoryFile)
}

// runShell reads lines until exit or end of input. A failing line is
// reported and the loop goes on.
func (l *launcher) runShell(ctx context.Context, rl lineReader, logger vlog.Printer) error {
	defer rl.Close()
	l.inShell = true
	defer func() { l.inShell = false }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("fail to read the shell input: %w", err)
		}

		argv := strings.Fields(line)
		if len(argv) == 0 {
			continue
		}
		if argv[0] == "exit" || argv[0] == "quit" {
			return nil
		}
		// accept lines copied from the command line
		if argv[0] == "cbadmin" {
			argv = argv[1:]
		}

		logger.Info("running shell line", "args", vlog.MaskSensitiveArgs(argv))
		if err := l.runShellLine(ctx, argv); err != nil {
			fmt.Fprintf(l.out, "Error during execution: %s\n", err)
		}
	}
}

// runShellLine runs one command with its own interrupt handling, so Ctrl+C
// stops that command and not the shell.
func (l *launcher) runShellLine(ctx context.Context, argv []string) error {
	cmdCtx, stop := signal.NotifyContext(context.WithoutCancel(ctx), os.Interrupt)
	defer stop()

	l.argv = argv
	rootCmd := l.makeRootCmd()
	rootCmd.SetArgs(argv)
	rootCmd.SetOut(l.out)
	rootCmd.SetErr(l.out)
	rootCmd.SilenceErrors = true
	return rootCmd.ExecuteContext(cmdCtx)
}
