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

const onPremIndexStatusEndpoint = "/indexStatus"

// QueryIndex is one GSI index definition as reported by the index status
// endpoint. Scope and collection are empty on clusters without collections.
type QueryIndex struct {
	Bucket      string `json:"bucket"`
	Scope       string `json:"scope"`
	Collection  string `json:"collection"`
	Name        string `json:"indexName"`
	Status      string `json:"status"`
	StorageMode string `json:"storageMode"`
	Replicas    uint32 `json:"numReplica"`
	Definition  string `json:"definition"`
}

type indexStatusResponse struct {
	Indexes []QueryIndex `json:"indexes"`
}

// httpsGetIndexStatusOp reads the index definitions of an on-prem cluster.
// It is a query category request, so it is bounded by the query timeout.
type httpsGetIndexStatusOp struct {
	opBase
	opHTTPBase
}

func makeHTTPSGetIndexStatusOp(logger vlog.Printer, cluster *RemoteCluster) httpsGetIndexStatusOp {
	op := httpsGetIndexStatusOp{}
	op.name = "HTTPSGetIndexStatusOp"
	op.logger = logger.WithName(op.name)
	op.opHTTPBase = makeOpHTTPBase(cluster)
	return op
}

func (op *httpsGetIndexStatusOp) prepare(execContext *opEngineExecContext) error {
	request, err := makeOnPremRequest(&execContext.cluster, &op.opHTTPBase, GetMethod, onPremIndexStatusEndpoint)
	if err != nil {
		return err
	}
	request.Timeout = execContext.cluster.Timeouts.Query
	op.request = request
	return nil
}

func (op *httpsGetIndexStatusOp) execute(execContext *opEngineExecContext) error {
	if err := op.runExecute(execContext); err != nil {
		return err
	}
	return op.processResult(execContext)
}

func (op *httpsGetIndexStatusOp) processResult(execContext *opEngineExecContext) error {
	var response indexStatusResponse
	if err := op.parseAndCheckResponse(execContext.cluster.Identifier, op.result.content, &response); err != nil {
		return err
	}
	execContext.indexes = response.Indexes
	if execContext.indexes == nil {
		execContext.indexes = []QueryIndex{}
	}
	return nil
}
