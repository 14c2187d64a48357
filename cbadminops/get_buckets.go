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

	"golang.org/x/exp/slices"
)

const getBucketsOperation = "buckets get"

type VGetBucketOptions struct {
	BucketTargetOptions
	// BucketName restricts the result to one bucket; empty lists all
	BucketName string
}

func VGetBucketOptionsFactory() VGetBucketOptions {
	return VGetBucketOptions{}
}

// VGetBuckets reads one bucket, or all buckets, from every target cluster in
// order. The first failure stops the loop.
func (vcc *ClusterCommands) VGetBuckets(ctx context.Context, registry *Registry,
	options *VGetBucketOptions) ([]ClusterBucket, error) {
	if err := options.validateTargets(); err != nil {
		return nil, err
	}
	targets, err := lookupTargets(registry, &options.BucketTargetOptions, getBucketsOperation)
	if err != nil {
		return nil, err
	}

	var buckets []ClusterBucket
	err = vcc.runTargets(ctx, targets, getBucketsOperation,
		func(target *bucketTarget) []clusterOp {
			return vcc.produceGetBucketsInstructions(target, options)
		},
		func(target *bucketTarget, execContext *opEngineExecContext) error {
			found, err := selectBuckets(execContext, options.BucketName, target.cluster.IsCloud())
			if err != nil {
				return err
			}
			for i := range found {
				buckets = append(buckets, ClusterBucket{
					Cluster:  target.cluster.Identifier,
					Cloud:    target.cluster.IsCloud(),
					Settings: found[i],
				})
			}
			return nil
		})
	return buckets, err
}

// selectBuckets picks the requested buckets out of what the ops fetched.
// Capella has no single-bucket read, so a named bucket is looked up in the
// collection.
func selectBuckets(execContext *opEngineExecContext, bucketName string, cloud bool) ([]BucketSettings, error) {
	if bucketName == "" {
		return execContext.buckets, nil
	}
	if !cloud {
		if execContext.bucket == nil {
			return nil, &BucketNotFoundError{Name: bucketName}
		}
		return []BucketSettings{*execContext.bucket}, nil
	}
	idx := slices.IndexFunc(execContext.buckets, func(s BucketSettings) bool {
		return s.Name == bucketName
	})
	if idx < 0 {
		return nil, &BucketNotFoundError{Name: bucketName}
	}
	return []BucketSettings{execContext.buckets[idx]}, nil
}

// produceGetBucketsInstructions will build a list of instructions to execute
// for reading buckets from one cluster.
func (vcc *ClusterCommands) produceGetBucketsInstructions(target *bucketTarget,
	options *VGetBucketOptions) []clusterOp {
	var instructions []clusterOp
	cluster := &target.cluster

	if !cluster.IsCloud() {
		if options.BucketName != "" {
			httpsGetBucketOp := makeHTTPSGetBucketOp(vcc.Log, cluster, options.BucketName)
			instructions = append(instructions, &httpsGetBucketOp)
		} else {
			httpsGetBucketsOp := makeHTTPSGetBucketsOp(vcc.Log, cluster)
			instructions = append(instructions, &httpsGetBucketsOp)
		}
		return instructions
	}

	client := target.org.Client
	capellaFindClusterOp := makeCapellaFindClusterOp(vcc.Log, client, cluster.Identifier, nil)
	capellaGetBucketsOp := makeCapellaGetBucketsOp(vcc.Log, client)
	instructions = append(instructions,
		&capellaFindClusterOp,
		&capellaGetBucketsOp,
	)
	return instructions
}
