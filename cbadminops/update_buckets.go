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

const updateBucketsOperation = "buckets update"

type VUpdateBucketOptions struct {
	BucketTargetOptions
	BucketName string
	Edit       BucketSettingsEdit
}

func VUpdateBucketOptionsFactory() VUpdateBucketOptions {
	return VUpdateBucketOptions{}
}

func (options *VUpdateBucketOptions) validateParseOptions() error {
	if options.BucketName == "" {
		return fmt.Errorf("must specify a bucket name")
	}
	return options.validateTargets()
}

// VUpdateBuckets applies options.Edit to the named bucket on every target
// cluster, one cluster at a time. It returns the settings submitted to each
// cluster. The first failure stops the loop and is returned as a
// ClusterOpError; clusters updated before it stay updated.
func (vcc *ClusterCommands) VUpdateBuckets(ctx context.Context, registry *Registry,
	options *VUpdateBucketOptions) ([]ClusterBucket, error) {
	if err := options.validateParseOptions(); err != nil {
		return nil, err
	}

	targets, err := lookupTargets(registry, &options.BucketTargetOptions, updateBucketsOperation)
	if err != nil {
		return nil, err
	}
	// clusters registered as hosted are rejected before anything is sent
	for i := range targets {
		cluster := &targets[i].cluster
		if cluster.IsCloud() && cluster.CloudRef.Environment == CapellaEnvironmentHosted {
			if err := options.Edit.checkHostedCapability(cluster.Identifier); err != nil {
				return nil, &ClusterOpError{Identifier: cluster.Identifier, Operation: updateBucketsOperation, Err: err}
			}
		}
	}

	var submitted []ClusterBucket
	err = vcc.runTargets(ctx, targets, updateBucketsOperation,
		func(target *bucketTarget) []clusterOp {
			return vcc.produceUpdateBucketInstructions(target, options)
		},
		func(target *bucketTarget, execContext *opEngineExecContext) error {
			if execContext.submitted == nil {
				return fmt.Errorf("no settings were submitted for bucket %s", options.BucketName)
			}
			submitted = append(submitted, ClusterBucket{
				Cluster:  target.cluster.Identifier,
				Cloud:    target.cluster.IsCloud(),
				Settings: *execContext.submitted,
			})
			return nil
		})
	return submitted, err
}

// produceUpdateBucketInstructions will build a list of instructions to execute
// for updating a bucket on one cluster.
//
// The generated instructions will later perform the following operations
// against an on-prem cluster:
//   - Get the bucket
//   - Apply the edit and submit the form
//
// and against a Capella cluster:
//   - Find the cluster id, rejecting hosted clusters for restricted fields
//   - Get the bucket collection
//   - Replace the bucket and submit the whole collection
func (vcc *ClusterCommands) produceUpdateBucketInstructions(target *bucketTarget,
	options *VUpdateBucketOptions) []clusterOp {
	var instructions []clusterOp
	cluster := &target.cluster

	if !cluster.IsCloud() {
		httpsGetBucketOp := makeHTTPSGetBucketOp(vcc.Log, cluster, options.BucketName)
		httpsUpdateBucketOp := makeHTTPSUpdateBucketOp(vcc.Log, cluster, options.BucketName, &options.Edit)
		instructions = append(instructions,
			&httpsGetBucketOp,
			&httpsUpdateBucketOp,
		)
		return instructions
	}

	client := target.org.Client
	capellaFindClusterOp := makeCapellaFindClusterOp(vcc.Log, client, cluster.Identifier, &options.Edit)
	capellaGetBucketsOp := makeCapellaGetBucketsOp(vcc.Log, client)
	capellaUpdateBucketsOp := makeCapellaUpdateBucketsOp(vcc.Log, client, options.BucketName, &options.Edit)
	instructions = append(instructions,
		&capellaFindClusterOp,
		&capellaGetBucketsOp,
		&capellaUpdateBucketsOp,
	)
	return instructions
}
