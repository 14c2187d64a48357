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
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

/* CmdGetBuckets
 *
 * Parses arguments to get buckets and calls
 * the high-level function for it.
 *
 * Implements cmdInterface
 */
type CmdGetBuckets struct {
	CmdBase
	getBucketOptions *cbadminops.VGetBucketOptions
}

func makeCmdGetBuckets(l *launcher) *cobra.Command {
	newCmd := &CmdGetBuckets{CmdBase: makeCmdBase(l)}
	opt := cbadminops.VGetBucketOptionsFactory()
	newCmd.getBucketOptions = &opt

	cmd := makeBasicCobraCmd(
		l,
		newCmd,
		getSubCmd,
		"Show bucket settings",
		`This shows the settings of one bucket, or of every bucket, on each
target cluster.

Examples:
  # All buckets of the active cluster
  cbadmin buckets get

  # One bucket on two clusters, as JSON
  cbadmin buckets get --bucket travel-sample --clusters local,prod-eu --output json
`,
		cobra.NoArgs,
	)

	cmd.Flags().StringVar(
		&newCmd.getBucketOptions.BucketName,
		bucketFlag,
		"",
		util.GetOptionalFlagMsg("Name of the bucket to show. All buckets are shown if omitted"),
	)
	newCmd.setClustersFlag(cmd)
	newCmd.setOutputFlag(cmd)
	newCmd.setManagementTimeoutFlag(cmd, 0)
	return cmd
}

func (c *CmdGetBuckets) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return c.validateParse(logger)
}

// all validations of the arguments should go in here
func (c *CmdGetBuckets) validateParse(logger vlog.Printer) error {
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
	c.getBucketOptions.Clusters = clusters
	c.getBucketOptions.Timeouts = c.timeouts
	return nil
}

func (c *CmdGetBuckets) Run(ctx context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")

	buckets, err := vcc.VGetBuckets(ctx, c.registry, c.getBucketOptions)
	if err != nil {
		vcc.Log.Error(err, "failed to get buckets")
		return err
	}
	views, rows := makeBucketViews(buckets)
	return c.writeOutput(bucketTableHeader, rows, views)
}
