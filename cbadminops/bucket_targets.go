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

// ClusterBucket is a bucket as read from, or submitted to, one cluster
type ClusterBucket struct {
	Cluster  string
	Cloud    bool
	Settings BucketSettings
}

// BucketTargetOptions names the clusters a bucket command runs against
type BucketTargetOptions struct {
	// resolved identifiers, see ResolveIdentifiers
	Clusters []string
	// per-command timeout overrides, zero values keep the cluster's own
	Timeouts ClusterTimeouts
}

func (options *BucketTargetOptions) validateTargets() error {
	if len(options.Clusters) == 0 {
		return ErrNoTargetCluster
	}
	return nil
}

// bucketTarget is the registry snapshot of one target cluster
type bucketTarget struct {
	cluster RemoteCluster
	org     *CloudOrganization
}

// lookupTargets copies every target out of the registry before any request
// is sent, so a missing cluster fails the command without network traffic
func lookupTargets(registry *Registry, options *BucketTargetOptions, operation string) ([]bucketTarget, error) {
	targets := make([]bucketTarget, 0, len(options.Clusters))
	for _, identifier := range options.Clusters {
		cluster, err := registry.Get(identifier)
		if err != nil {
			return nil, &ClusterOpError{Identifier: identifier, Operation: operation, Err: err}
		}
		target := bucketTarget{cluster: cluster.WithTimeouts(options.Timeouts)}
		if cluster.IsCloud() {
			target.org, err = registry.Organization(cluster.CloudRef.OrganizationID)
			if err != nil {
				return nil, &ClusterOpError{Identifier: identifier, Operation: operation, Err: err}
			}
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// runTargets runs the instructions built for each target in order and stops
// at the first failure. Clusters handled before the failure keep their
// changes.
func (vcc *ClusterCommands) runTargets(ctx context.Context, targets []bucketTarget, operation string,
	produceInstructions func(target *bucketTarget) []clusterOp,
	collect func(target *bucketTarget, execContext *opEngineExecContext) error) error {
	dispatcher := makeHTTPRequestDispatcher(vcc.Log)
	for i := range targets {
		target := &targets[i]
		identifier := target.cluster.Identifier
		if ctx.Err() != nil {
			return &ClusterOpError{Identifier: identifier, Operation: operation, Err: ErrCancelled}
		}

		opEngine := makeClusterOpEngine(produceInstructions(target))
		if err := opEngine.run(ctx, vcc.Log, &dispatcher, &target.cluster); err != nil {
			vcc.Log.Error(err, fmt.Sprintf("fail to run %s", operation), "cluster", identifier)
			return &ClusterOpError{Identifier: identifier, Operation: operation, Err: err}
		}
		if err := collect(target, opEngine.execContext); err != nil {
			return &ClusterOpError{Identifier: identifier, Operation: operation, Err: err}
		}
	}
	return nil
}
