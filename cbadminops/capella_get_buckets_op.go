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
	"fmt"

	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

// capellaGetBucketsOp fetches the whole bucket collection of the cluster
// found by capellaFindClusterOp
type capellaGetBucketsOp struct {
	opBase
	client *CapellaClient
}

func makeCapellaGetBucketsOp(logger vlog.Printer, client *CapellaClient) capellaGetBucketsOp {
	op := capellaGetBucketsOp{}
	op.name = "CapellaGetBucketsOp"
	op.logger = logger.WithName(op.name)
	op.client = client
	return op
}

func (op *capellaGetBucketsOp) prepare(execContext *opEngineExecContext) error {
	clusterID := execContext.capellaCluster.ID
	if clusterID == "" {
		return fmt.Errorf("[%s] capella cluster id of %s has not been resolved", op.name,
			execContext.cluster.Identifier)
	}
	op.request = op.client.makeGetBucketsRequest(clusterID, execContext.cluster.Timeouts.Management)
	return nil
}

func (op *capellaGetBucketsOp) execute(execContext *opEngineExecContext) error {
	if err := op.runExecute(execContext); err != nil {
		return err
	}
	return op.processResult(execContext)
}

/* capella bucket collection example:
[
  {
    "name": "travel-sample",
    "bucketType": "couchbase",
    "memoryAllocationInMb": 256,
    "replicas": 1,
    "flush": false,
    "durabilityLevel": "none",
    "timeToLiveInSeconds": 0,
    "status": "healthy"
  }
]
*/

func (op *capellaGetBucketsOp) processResult(execContext *opEngineExecContext) error {
	collection, err := decodeCloudBucketCollection(op.result.content)
	if err != nil {
		return err
	}
	buckets, err := collection.settings()
	if err != nil {
		return err
	}
	execContext.cloudBuckets = collection
	execContext.buckets = buckets
	return nil
}
