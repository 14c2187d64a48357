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

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

/* CmdUseCluster
 *
 * Selects the active cluster.
 *
 * Implements cmdInterface
 */
type CmdUseCluster struct {
	CmdBase
}

func makeCmdUseCluster(l *launcher) *cobra.Command {
	newCmd := &CmdUseCluster{CmdBase: makeCmdBase(l)}
	return makeBasicCobraCmd(
		l,
		newCmd,
		useSubCmd+" <identifier>",
		"Select the active cluster",
		`This makes a registered cluster the active one. Commands that take
--clusters run against the active cluster when the flag is omitted.

Example:
  cbadmin clusters use local
`,
		cobra.ExactArgs(1),
	)
}

func (c *CmdUseCluster) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return nil
}

func (c *CmdUseCluster) Run(_ context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")
	if err := c.registry.SetActive(c.args[0]); err != nil {
		return err
	}
	vcc.Log.PrintInfo("Active cluster is now %s", c.args[0])
	return nil
}
