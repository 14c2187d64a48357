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

import "context"

// opEngineExecContext carries state between the ops run against one cluster
type opEngineExecContext struct {
	ctx        context.Context
	dispatcher *requestDispatcher
	cluster    RemoteCluster

	capellaCluster capellaCluster        // set by capellaFindClusterOp
	bucket         *BucketSettings       // set by httpsGetBucketOp
	buckets        []BucketSettings      // set by the ops listing buckets
	cloudBuckets   cloudBucketCollection // raw collection from capellaGetBucketsOp
	submitted      *BucketSettings       // settings sent by an update op
	indexes        []QueryIndex          // set by httpsGetIndexStatusOp
}

func makeOpEngineExecContext(ctx context.Context, dispatcher *requestDispatcher,
	cluster *RemoteCluster) opEngineExecContext {
	return opEngineExecContext{
		ctx:        ctx,
		dispatcher: dispatcher,
		cluster:    *cluster,
	}
}
