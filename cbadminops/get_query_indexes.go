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

package cbadminops

import (
	"context"
	"fmt"
)

const getQueryIndexesOperation = "query indexes"

// ClusterQueryIndex is an index definition read from one cluster
type ClusterQueryIndex struct {
	Cluster string
	Index   QueryIndex
}

type VGetQueryIndexOptions struct {
	BucketTargetOptions
}

func VGetQueryIndexOptionsFactory() VGetQueryIndexOptions {
	return VGetQueryIndexOptions{}
}

// VGetQueryIndexes lists the index definitions of every target cluster in
// order. Capella clusters have no reachable index service endpoint and are
// rejected before any request is sent.
func (vcc *ClusterCommands) VGetQueryIndexes(ctx context.Context, registry *Registry,
	options *VGetQueryIndexOptions) ([]ClusterQueryIndex, error) {
	if err := options.validateTargets(); err != nil {
		return nil, err
	}
	targets, err := lookupTargets(registry, &options.BucketTargetOptions, getQueryIndexesOperation)
	if err != nil {
		return nil, err
	}
	for i := range targets {
		cluster := &targets[i].cluster
		if cluster.IsCloud() {
			return nil, &ClusterOpError{
				Identifier: cluster.Identifier,
				Operation:  getQueryIndexesOperation,
				Err: &CapabilityConflictError{
					Reason: fmt.Sprintf("cluster %s is managed by Capella and does not expose index status", cluster.Identifier),
				},
			}
		}
	}

	var indexes []ClusterQueryIndex
	err = vcc.runTargets(ctx, targets, getQueryIndexesOperation,
		func(target *bucketTarget) []clusterOp {
			httpsGetIndexStatusOp := makeHTTPSGetIndexStatusOp(vcc.Log, &target.cluster)
			return []clusterOp{&httpsGetIndexStatusOp}
		},
		func(target *bucketTarget, execContext *opEngineExecContext) error {
			for i := range execContext.indexes {
				indexes = append(indexes, ClusterQueryIndex{
					Cluster: target.cluster.Identifier,
					Index:   execContext.indexes[i],
				})
			}
			return nil
		})
	return indexes, err
}
