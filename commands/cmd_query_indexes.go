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

/* CmdGetQueryIndexes
 *
 * Parses arguments to list query indexes and calls
 * the high-level function for it.
 *
 * Implements cmdInterface
 */
type CmdGetQueryIndexes struct {
	CmdBase
	getQueryIndexOptions *cbadminops.VGetQueryIndexOptions
}

func makeCmdGetQueryIndexes(l *launcher) *cobra.Command {
	newCmd := &CmdGetQueryIndexes{CmdBase: makeCmdBase(l)}
	opt := cbadminops.VGetQueryIndexOptionsFactory()
	newCmd.getQueryIndexOptions = &opt

	cmd := makeBasicCobraCmd(
		l,
		newCmd,
		indexesSubCmd,
		"List query index definitions",
		`This lists the definition and state of every GSI index on each target
cluster, as reported by the index status endpoint. Capella clusters are
not supported.

Examples:
  # Indexes of the active cluster
  cbadmin query indexes

  # Indexes of two clusters as YAML, waiting up to a minute for each
  cbadmin query indexes --clusters local,prod-eu --output yaml --query-timeout 1m
`,
		cobra.NoArgs,
	)

	newCmd.setClustersFlag(cmd)
	newCmd.setOutputFlag(cmd)
	newCmd.setQueryTimeoutFlag(cmd, 0)
	return cmd
}

func (c *CmdGetQueryIndexes) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return c.validateParse(logger)
}

func (c *CmdGetQueryIndexes) validateParse(logger vlog.Printer) error {
	logger.Info("Called validateParse()")
	if err := c.validateOutputFormat(); err != nil {
		return err
	}
	if err := validateTimeouts(&c.timeouts); err != nil {
		return err
	}
	clusters, err := c.resolveClusters()
	if err != nil {
		return err
	}
	c.getQueryIndexOptions.Clusters = clusters
	c.getQueryIndexOptions.Timeouts = c.timeouts
	return nil
}

func (c *CmdGetQueryIndexes) Run(ctx context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")

	indexes, err := vcc.VGetQueryIndexes(ctx, c.registry, c.getQueryIndexOptions)
	if err != nil {
		vcc.Log.Error(err, "failed to list query indexes")
		return err
	}
	views, rows := makeQueryIndexViews(indexes)
	return c.writeOutput(queryIndexTableHeader, rows, views)
}
