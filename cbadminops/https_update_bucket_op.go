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

// httpsUpdateBucketOp applies an edit to the bucket read by
// httpsGetBucketOp and submits the result as a form
type httpsUpdateBucketOp struct {
	opBase
	opHTTPBase
	bucketName string
	edit       *BucketSettingsEdit
	submitted  BucketSettings
}

func makeHTTPSUpdateBucketOp(logger vlog.Printer, cluster *RemoteCluster, bucketName string,
	edit *BucketSettingsEdit) httpsUpdateBucketOp {
	op := httpsUpdateBucketOp{}
	op.name = "HTTPSUpdateBucketOp"
	op.logger = logger.WithName(op.name)
	op.opHTTPBase = makeOpHTTPBase(cluster)
	op.bucketName = bucketName
	op.edit = edit
	return op
}

func (op *httpsUpdateBucketOp) prepare(execContext *opEngineExecContext) error {
	if execContext.bucket == nil {
		return fmt.Errorf("[%s] bucket %s has not been fetched from %s", op.name, op.bucketName,
			execContext.cluster.Identifier)
	}
	settings := *execContext.bucket
	op.edit.Apply(&settings)

	body, err := encodeOnPremBucketForm(&settings)
	if err != nil {
		return err
	}
	request, err := makeOnPremRequest(&execContext.cluster, &op.opHTTPBase, PutMethod,
		onPremBucketEndpoint(op.bucketName))
	if err != nil {
		return err
	}
	request.RequestData = body
	request.ContentType = formContentType
	op.request = request
	op.submitted = settings
	return nil
}

func (op *httpsUpdateBucketOp) execute(execContext *opEngineExecContext) error {
	if err := op.runExecute(execContext); err != nil {
		return err
	}
	return op.processResult(execContext)
}

func (op *httpsUpdateBucketOp) processResult(execContext *opEngineExecContext) error {
	submitted := op.submitted
	execContext.submitted = &submitted
	return nil
}
