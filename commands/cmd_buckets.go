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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
)

func makeCmdBuckets(l *launcher) *cobra.Command {
	cmd := &cobra.Command{
		Use:   bucketsSubCmd,
		Short: "Read and change bucket settings",
		Long: `This reads and changes bucket settings on on-prem and Capella clusters.

Commands run against the clusters named by --clusters, one cluster at a
time, and stop at the first cluster that fails.`,
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(makeCmdGetBuckets(l))
	cmd.AddCommand(makeCmdUpdateBucket(l))
	return cmd
}

// bucketView is the printable form of a bucket on one cluster
type bucketView struct {
	Cluster          string `json:"cluster" yaml:"cluster"`
	Cloud            bool   `json:"cloud" yaml:"cloud"`
	Name             string `json:"name" yaml:"name"`
	Type             string `json:"type" yaml:"type"`
	Replicas         uint32 `json:"replicas" yaml:"replicas"`
	RAMQuotaMB       uint64 `json:"ramQuotaMB" yaml:"ramQuotaMB"`
	Flush            bool   `json:"flushEnabled" yaml:"flushEnabled"`
	Durability       string `json:"durabilityMinLevel" yaml:"durabilityMinLevel"`
	MaxExpirySeconds int64  `json:"maxExpirySeconds" yaml:"maxExpirySeconds"`
	Status           string `json:"status,omitempty" yaml:"status,omitempty"`
}

var bucketTableHeader = []string{"CLUSTER", "NAME", "TYPE", "REPLICAS", "RAM QUOTA (MB)",
	"FLUSH", "DURABILITY", "MAX EXPIRY (S)", "STATUS", "CLOUD"}

func makeBucketViews(buckets []cbadminops.ClusterBucket) ([]bucketView, [][]string) {
	views := make([]bucketView, 0, len(buckets))
	rows := make([][]string, 0, len(buckets))
	for i := range buckets {
		settings := &buckets[i].Settings
		view := bucketView{
			Cluster:          buckets[i].Cluster,
			Cloud:            buckets[i].Cloud,
			Name:             settings.Name,
			Type:             settings.BucketType.String(),
			Replicas:         settings.NumReplicas,
			RAMQuotaMB:       settings.RAMQuotaMB,
			Flush:            settings.FlushEnabled,
			Durability:       settings.MinimumDurabilityLevel.String(),
			MaxExpirySeconds: int64(settings.MaxExpiry.Seconds()),
			Status:           settings.StatusString(),
		}
		views = append(views, view)
		rows = append(rows, []string{
			view.Cluster,
			view.Name,
			view.Type,
			strconv.FormatUint(uint64(view.Replicas), 10),
			strconv.FormatUint(view.RAMQuotaMB, 10),
			strconv.FormatBool(view.Flush),
			view.Durability,
			strconv.FormatInt(view.MaxExpirySeconds, 10),
			view.Status,
			strconv.FormatBool(view.Cloud),
		})
	}
	return views, rows
}
