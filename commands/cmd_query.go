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

func makeCmdQuery(l *launcher) *cobra.Command {
	cmd := &cobra.Command{
		Use:   querySubCmd,
		Short: "Inspect the query service",
		Long: `This inspects the query service of on-prem clusters.

Requests are bounded by the query timeout of each cluster, which
--query-timeout overrides for one command.`,
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(makeCmdGetQueryIndexes(l))
	return cmd
}

// queryIndexView is the printable form of an index on one cluster
type queryIndexView struct {
	Cluster     string `json:"cluster" yaml:"cluster"`
	Bucket      string `json:"bucket" yaml:"bucket"`
	Scope       string `json:"scope" yaml:"scope"`
	Collection  string `json:"collection" yaml:"collection"`
	Name        string `json:"name" yaml:"name"`
	Status      string `json:"status" yaml:"status"`
	StorageMode string `json:"storageMode" yaml:"storageMode"`
	Replicas    uint32 `json:"replicas" yaml:"replicas"`
	Definition  string `json:"definition" yaml:"definition"`
}

var queryIndexTableHeader = []string{"CLUSTER", "BUCKET", "SCOPE", "COLLECTION", "NAME",
	"STATUS", "STORAGE MODE", "REPLICAS", "DEFINITION"}

func makeQueryIndexViews(indexes []cbadminops.ClusterQueryIndex) ([]queryIndexView, [][]string) {
	views := make([]queryIndexView, 0, len(indexes))
	rows := make([][]string, 0, len(indexes))
	for i := range indexes {
		index := &indexes[i].Index
		view := queryIndexView{
			Cluster:     indexes[i].Cluster,
			Bucket:      index.Bucket,
			Scope:       index.Scope,
			Collection:  index.Collection,
			Name:        index.Name,
			Status:      index.Status,
			StorageMode: index.StorageMode,
			Replicas:    index.Replicas,
			Definition:  index.Definition,
		}
		views = append(views, view)
		rows = append(rows, []string{
			view.Cluster,
			view.Bucket,
			view.Scope,
			view.Collection,
			view.Name,
			view.Status,
			view.StorageMode,
			strconv.FormatUint(uint64(view.Replicas), 10),
			view.Definition,
		})
	}
	return views, rows
}
