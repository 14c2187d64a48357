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
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

/* CmdUpdateBucket
 *
 * Parses arguments to update a bucket and calls
 * the high-level function for it.
 *
 * Implements cmdInterface
 */
type CmdUpdateBucket struct {
	CmdBase
	updateBucketOptions *cbadminops.VUpdateBucketOptions

	ram        int64
	replicas   int64
	flush      bool
	durability string
	expiry     int64
}

func makeCmdUpdateBucket(l *launcher) *cobra.Command {
	newCmd := &CmdUpdateBucket{CmdBase: makeCmdBase(l)}
	opt := cbadminops.VUpdateBucketOptionsFactory()
	newCmd.updateBucketOptions = &opt

	cmd := makeBasicCobraCmd(
		l,
		newCmd,
		updateSubCmd+" <bucket_name>",
		"Update bucket settings",
		`This changes the settings of a bucket on each target cluster. Only the
given settings change; the others keep their current values.

Hosted Capella clusters do not allow changing --flush, --durability or
--expiry. Such an update is rejected before any cluster is contacted when
the cluster was registered as hosted.

Examples:
  cbadmin buckets update travel-sample --ram 512 --replicas 2
  cbadmin buckets update travel-sample --durability majority --clusters local,staging
`,
		cobra.ExactArgs(1),
	)

	newCmd.setLocalFlags(cmd)
	newCmd.setClustersFlag(cmd)
	newCmd.setManagementTimeoutFlag(cmd, 0)
	return cmd
}

// setLocalFlags will set the local flags the command has
func (c *CmdUpdateBucket) setLocalFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(
		&c.ram,
		ramFlag,
		0,
		util.GetOptionalFlagMsg("RAM quota of the bucket in MB"),
	)
	cmd.Flags().Int64Var(
		&c.replicas,
		replicasFlag,
		0,
		util.GetOptionalFlagMsg("Number of replicas"),
	)
	cmd.Flags().BoolVar(
		&c.flush,
		flushFlag,
		false,
		util.GetOptionalFlagMsg("Whether flush is enabled"),
	)
	cmd.Flags().StringVar(
		&c.durability,
		durabilityFlag,
		"",
		util.GetOptionalFlagMsg("Minimum durability level: one, majority, majorityAndPersistActive or persistToMajority"),
	)
	cmd.Flags().Int64Var(
		&c.expiry,
		expiryFlag,
		0,
		util.GetOptionalFlagMsg("Maximum document expiry in seconds, 0 for none"),
	)
}

func (c *CmdUpdateBucket) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return c.validateParse(logger)
}

// all validations of the arguments should go in here
func (c *CmdUpdateBucket) validateParse(logger vlog.Printer) error {
	logger.Info("Called validateParse()")

	// only the options given on the command line are part of the edit
	input := cbadminops.BucketEditInput{}
	if c.parser.Changed(ramFlag) {
		input.RAMQuotaMB = &c.ram
	}
	if c.parser.Changed(replicasFlag) {
		input.NumReplicas = &c.replicas
	}
	if c.parser.Changed(flushFlag) {
		input.FlushEnabled = &c.flush
	}
	if c.parser.Changed(durabilityFlag) {
		input.Durability = &c.durability
	}
	if c.parser.Changed(expiryFlag) {
		input.ExpirySeconds = &c.expiry
	}
	edit, err := cbadminops.MakeBucketSettingsEdit(input)
	if err != nil {
		return err
	}
	if err := validateTimeouts(&c.timeouts); err != nil {
		return err
	}
	clusters, err := c.resolveClusters()
	if err != nil {
		return err
	}

	c.updateBucketOptions.BucketName = c.args[0]
	c.updateBucketOptions.Edit = edit
	c.updateBucketOptions.Clusters = clusters
	c.updateBucketOptions.Timeouts = c.timeouts
	return nil
}

func (c *CmdUpdateBucket) Run(ctx context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")
	options := c.updateBucketOptions

	submitted, err := vcc.VUpdateBuckets(ctx, c.registry, options)
	// clusters before a failure keep their update, so report them either way
	updated := make([]string, 0, len(submitted))
	for i := range submitted {
		updated = append(updated, submitted[i].Cluster)
	}
	if len(updated) > 0 {
		vcc.Log.PrintInfo("Updated bucket %s on %s", options.BucketName, strings.Join(updated, ", "))
	}
	if err != nil {
		vcc.Log.Error(err, "failed to update the bucket")
		return err
	}
	return nil
}
