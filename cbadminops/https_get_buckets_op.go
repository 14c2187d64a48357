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

import "github.com/couchbaselabs/cbadmin/cbadminops/vlog"

// httpsGetBucketsOp lists every bucket of an on-prem cluster
type httpsGetBucketsOp struct {
	opBase
	opHTTPBase
}

func makeHTTPSGetBucketsOp(logger vlog.Printer, cluster *RemoteCluster) httpsGetBucketsOp {
	op := httpsGetBucketsOp{}
	op.name = "HTTPSGetBucketsOp"
	op.logger = logger.WithName(op.name)
	op.opHTTPBase = makeOpHTTPBase(cluster)
	return op
}

func (op *httpsGetBucketsOp) prepare(execContext *opEngineExecContext) error {
	request, err := makeOnPremRequest(&execContext.cluster, &op.opHTTPBase, GetMethod, onPremBucketsEndpoint)
	if err != nil {
		return err
	}
	op.request = request
	return nil
}

func (op *httpsGetBucketsOp) execute(execContext *opEngineExecContext) error {
	if err := op.runExecute(execContext); err != nil {
		return err
	}
	return op.processResult(execContext)
}

func (op *httpsGetBucketsOp) processResult(execContext *opEngineExecContext) error {
	buckets, err := decodeOnPremBuckets(op.result.content)
	if err != nil {
		return err
	}
	execContext.buckets = buckets
	return nil
}
