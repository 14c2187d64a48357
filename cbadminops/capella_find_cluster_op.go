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

// capellaFindClusterOp resolves the Capella cluster id of a registered
// cluster. When an edit is given, the hosted guard is checked against the
// environment reported by Capella.
type capellaFindClusterOp struct {
	opBase
	client      *CapellaClient
	clusterName string
	edit        *BucketSettingsEdit
}

func makeCapellaFindClusterOp(logger vlog.Printer, client *CapellaClient, clusterName string,
	edit *BucketSettingsEdit) capellaFindClusterOp {
	op := capellaFindClusterOp{}
	op.name = "CapellaFindClusterOp"
	op.logger = logger.WithName(op.name)
	op.client = client
	op.clusterName = clusterName
	op.edit = edit
	return op
}

func (op *capellaFindClusterOp) prepare(execContext *opEngineExecContext) error {
	op.request = op.client.makeFindClusterRequest(op.clusterName, execContext.cluster.Timeouts.Management)
	return nil
}

func (op *capellaFindClusterOp) execute(execContext *opEngineExecContext) error {
	if err := op.runExecute(execContext); err != nil {
		return err
	}
	return op.processResult(execContext)
}

/* capella cluster list example:
{
  "data": [
    {"id": "6a1b3f1c-...", "name": "prod-eu", "environment": "hosted"}
  ]
}
*/

func (op *capellaFindClusterOp) processResult(execContext *opEngineExecContext) error {
	var list capellaClusterList
	if err := op.parseAndCheckResponse(op.clusterName, op.result.content, &list); err != nil {
		return err
	}
	cluster, err := selectCluster(&list, op.clusterName)
	if err != nil {
		return err
	}
	op.logger.Info(fmt.Sprintf("[%s] found capella cluster", op.name),
		"name", cluster.Name, "id", cluster.ID, "environment", cluster.Environment)

	if op.edit != nil && cluster.Environment == CapellaEnvironmentHosted {
		if err := op.edit.checkHostedCapability(op.clusterName); err != nil {
			return err
		}
	}
	execContext.capellaCluster = cluster
	return nil
}
