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

// Package cbadminops is a Go library to administer Couchbase clusters,
// on-premises or managed by Capella, through their HTTP management
// interfaces. It keeps a registry of known clusters, resolves the clusters a
// command targets and reconciles bucket settings across the on-prem and
// Capella representations.
package cbadminops

import (
	"encoding/json"
	"fmt"

	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

// ResultStatus is the status of a hostHTTPResult
type ResultStatus int

const (
	SUCCESS   ResultStatus = 0
	FAILURE   ResultStatus = 1
	EXCEPTION ResultStatus = 2
)

const (
	GetMethod = "GET"
	PutMethod = "PUT"
)

const (
	SuccessResult   = "SUCCESS"
	FailureResult   = "FAILURE"
	ExceptionResult = "EXCEPTION"
)

// hostHTTPResult is the outcome of one request. err is set unless the
// request succeeded.
type hostHTTPResult struct {
	status     ResultStatus
	statusCode int
	content    string
	err        error
}

func (hostResult *hostHTTPResult) isPassing() bool {
	return hostResult.err == nil
}

func (hostResult *hostHTTPResult) isFailing() bool {
	return hostResult.status == FAILURE
}

func (hostResult *hostHTTPResult) isException() bool {
	return hostResult.status == EXCEPTION
}

func (status ResultStatus) getStatusString() string {
	if status == FAILURE {
		return FailureResult
	} else if status == EXCEPTION {
		return ExceptionResult
	}
	return SuccessResult
}

/* Cluster ops interface
 */

// clusterOp is one step run by the op engine against a single cluster.
// log* are implemented by embedding opBase.
type clusterOp interface {
	getName() string
	prepare(execContext *opEngineExecContext) error
	execute(execContext *opEngineExecContext) error
	finalize(execContext *opEngineExecContext) error
	processResult(execContext *opEngineExecContext) error
	logResponse(target string, result hostHTTPResult)
	logPrepare()
	logExecute()
	logFinalize()
}

/* Cluster ops basic fields and functions
 */

// opBase defines base fields and implements basic functions for all ops
type opBase struct {
	logger  vlog.Printer
	name    string
	request hostHTTPRequest
	result  hostHTTPResult
}

func (op *opBase) getName() string {
	return op.name
}

func (op *opBase) parseAndCheckResponse(target, responseContent string, responseObj any) error {
	if err := json.Unmarshal([]byte(responseContent), responseObj); err != nil {
		op.logger.Error(err, "fail to parse response", "op", op.name, "target", target)
		return &DeserializeError{Detail: fmt.Sprintf("[%s] %s", op.name, err.Error())}
	}
	op.logger.V(1).Info("JSON response", "op", op.name, "target", target)
	return nil
}

func (op *opBase) logResponse(target string, result hostHTTPResult) {
	op.logger.Info(fmt.Sprintf("[%s] result from %s", op.name, target),
		"summary", result.status.getStatusString(), "statusCode", result.statusCode)
}

func (op *opBase) logPrepare() {
	op.logger.Info(fmt.Sprintf("[%s] Prepare() called", op.name))
}

func (op *opBase) logExecute() {
	op.logger.Info(fmt.Sprintf("[%s] Execute() called", op.name))
}

func (op *opBase) logFinalize() {
	op.logger.Info(fmt.Sprintf("[%s] Finalize() called", op.name))
}

// runExecute sends the prepared request and keeps the result. It returns the
// result's error so callers can stop early.
func (op *opBase) runExecute(execContext *opEngineExecContext) error {
	op.result = execContext.dispatcher.sendRequest(execContext.ctx, &op.request)
	op.logResponse(execContext.cluster.Identifier, op.result)
	if !op.result.isPassing() {
		return op.result.err
	}
	return nil
}

// most ops have nothing to clean up
func (op *opBase) finalize(_ *opEngineExecContext) error {
	return nil
}

// opHTTPBase holds the credentials of ops talking to the on-prem management
// API with basic auth
type opHTTPBase struct {
	userName     string
	httpPassword *string
}

func makeOpHTTPBase(cluster *RemoteCluster) opHTTPBase {
	password := cluster.Password
	return opHTTPBase{
		userName:     cluster.Username,
		httpPassword: &password,
	}
}

// ClusterCommands is the entry point for bucket operations. Library users can
// mock it in their own tests.
type ClusterCommands struct {
	Log vlog.Printer
}
