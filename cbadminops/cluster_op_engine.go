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

	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

// clusterOpEngine runs a list of ops against one cluster. The first op that
// fails stops the run.
type clusterOpEngine struct {
	instructions []clusterOp
	execContext  *opEngineExecContext
}

func makeClusterOpEngine(instructions []clusterOp) clusterOpEngine {
	return clusterOpEngine{instructions: instructions}
}

func (opEngine *clusterOpEngine) run(ctx context.Context, logger vlog.Printer,
	dispatcher *requestDispatcher, cluster *RemoteCluster) error {
	execContext := makeOpEngineExecContext(ctx, dispatcher, cluster)
	opEngine.execContext = &execContext

	for _, op := range opEngine.instructions {
		if err := opEngine.runInstruction(logger, op); err != nil {
			return err
		}
	}
	return nil
}

func (opEngine *clusterOpEngine) runInstruction(logger vlog.Printer, op clusterOp) error {
	execContext := opEngine.execContext

	op.logPrepare()
	if err := op.prepare(execContext); err != nil {
		logger.Info(fmt.Sprintf("Prepare %s failed", op.getName()), "details", err.Error())
		return err
	}

	op.logExecute()
	if err := op.execute(execContext); err != nil {
		logger.Info(fmt.Sprintf("Execute %s failed", op.getName()), "details", err.Error())
		return err
	}

	op.logFinalize()
	return op.finalize(execContext)
}
