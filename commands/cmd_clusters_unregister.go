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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

/* CmdUnregisterCluster
 *
 * Removes a cluster from the registry.
 *
 * Implements cmdInterface
 */
type CmdUnregisterCluster struct {
	CmdBase
}

func makeCmdUnregisterCluster(l *launcher) *cobra.Command {
	newCmd := &CmdUnregisterCluster{CmdBase: makeCmdBase(l)}
	return makeBasicCobraCmd(
		l,
		newCmd,
		unregisterSubCmd+" <identifier>",
		"Unregister a cluster",
		`This removes a cluster from the registry. If it was the active cluster,
no cluster is active afterwards.

Example:
  cbadmin clusters unregister local
`,
		cobra.ExactArgs(1),
	)
}

func (c *CmdUnregisterCluster) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return nil
}

func (c *CmdUnregisterCluster) Run(_ context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")
	identifier := c.args[0]
	if !c.registry.Unregister(identifier) {
		return fmt.Errorf("identifier is not registered to a cluster: %w",
			&cbadminops.ClusterNotFoundError{Identifier: identifier})
	}
	vcc.Log.PrintInfo("Unregistered cluster %s", identifier)
	return nil
}
