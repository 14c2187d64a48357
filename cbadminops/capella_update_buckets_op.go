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

// capellaUpdateBucketsOp replaces the edited bucket in the collection
// fetched by capellaGetBucketsOp and PUTs the whole collection back
type capellaUpdateBucketsOp struct {
	opBase
	client     *CapellaClient
	bucketName string
	edit       *BucketSettingsEdit
	submitted  BucketSettings
}

func makeCapellaUpdateBucketsOp(logger vlog.Printer, client *CapellaClient, bucketName string,
	edit *BucketSettingsEdit) capellaUpdateBucketsOp {
	op := capellaUpdateBucketsOp{}
	op.name = "CapellaUpdateBucketsOp"
	op.logger = logger.WithName(op.name)
	op.client = client
	op.bucketName = bucketName
	op.edit = edit
	return op
}

func (op *capellaUpdateBucketsOp) prepare(execContext *opEngineExecContext) error {
	if execContext.cloudBuckets == nil {
		return fmt.Errorf("[%s] bucket collection of %s has not been fetched", op.name,
			execContext.cluster.Identifier)
	}
	collection, settings, err := execContext.cloudBuckets.replaceBucket(op.bucketName, op.edit)
	if err != nil {
		return err
	}
	body, err := collection.encode()
	if err != nil {
		return err
	}
	op.submitted = settings
	op.request = op.client.makeUpdateBucketsRequest(execContext.capellaCluster.ID, body,
		execContext.cluster.Timeouts.Management)
	return nil
}

func (op *capellaUpdateBucketsOp) execute(execContext *opEngineExecContext) error {
	if err := op.runExecute(execContext); err != nil {
		return err
	}
	return op.processResult(execContext)
}

func (op *capellaUpdateBucketsOp) processResult(execContext *opEngineExecContext) error {
	submitted := op.submitted
	execContext.submitted = &submitted
	return nil
}
