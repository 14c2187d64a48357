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

package util

import "time"

// this file defines basic default values
const (
	DefaultManagementPort    = 8091
	DefaultManagementTLSPort = 18091
	DefaultManagementTimeout = 75 * time.Second
	DefaultQueryTimeout      = 75 * time.Second
	DefaultAnalyticsTimeout  = 75 * time.Second
	DefaultSearchTimeout     = 75 * time.Second
	DefaultCapellaEndpoint   = "https://cloudapi.cloud.couchbase.com"
	DefaultUsername          = "Administrator"
	ClusterListDelimiter     = ","
	AllClustersWildcard      = "*"
)
