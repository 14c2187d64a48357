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
	"net/url"

	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

const onPremBucketsEndpoint = "/pools/default/buckets"

func onPremBucketEndpoint(bucketName string) string {
	return onPremBucketsEndpoint + "/" + url.PathEscape(bucketName)
}

// makeOnPremRequest fills the target and credentials of a management request
// to the cluster's first host
func makeOnPremRequest(cluster *RemoteCluster, base *opHTTPBase, method, endpoint string) (hostHTTPRequest, error) {
	baseURL, err := cluster.ManagementEndpoint()
	if err != nil {
		return hostHTTPRequest{}, err
	}
	return hostHTTPRequest{
		Method:            method,
		BaseURL:           baseURL,
		Endpoint:          endpoint,
		Username:          base.userName,
		Password:          base.httpPassword,
		Timeout:           cluster.Timeouts.Management,
		TLSAcceptAllCerts: cluster.TLSAcceptAllCerts,
	}, nil
}

// httpsGetBucketOp reads one bucket from the on-prem management API
type httpsGetBucketOp struct {
	opBase
	opHTTPBase
	bucketName string
}

func makeHTTPSGetBucketOp(logger vlog.Printer, cluster *RemoteCluster, bucketName string) httpsGetBucketOp {
	op := httpsGetBucketOp{}
	op.name = "HTTPSGetBucketOp"
	op.logger = logger.WithName(op.name)
	op.opHTTPBase = makeOpHTTPBase(cluster)
	op.bucketName = bucketName
	return op
}

func (op *httpsGetBucketOp) prepare(execContext *opEngineExecContext) error {
	request, err := makeOnPremRequest(&execContext.cluster, &op.opHTTPBase, GetMethod,
		onPremBucketEndpoint(op.bucketName))
	if err != nil {
		return err
	}
	op.request = request
	return nil
}

func (op *httpsGetBucketOp) execute(execContext *opEngineExecContext) error {
	if err := op.runExecute(execContext); err != nil {
		return err
	}
	return op.processResult(execContext)
}

/* on-prem bucket example (trimmed):
{
  "name": "travel-sample",
  "bucketType": "membase",
  "replicaNumber": 1,
  "quota": {"ram": 104857600, "rawRAM": 104857600},
  "controllers": {"flush": "/pools/default/buckets/travel-sample/controller/doFlush"},
  "durabilityMinLevel": "none",
  "maxTTL": 0,
  "nodes": [{"status": "healthy"}]
}
*/

func (op *httpsGetBucketOp) processResult(execContext *opEngineExecContext) error {
	settings, err := decodeOnPremBucket(op.result.content)
	if err != nil {
		return err
	}
	execContext.bucket = &settings
	return nil
}
