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
	"net/http"
	"net/url"
	"time"
)

// hostHTTPRequest describes one management request
type hostHTTPRequest struct {
	Method      string
	BaseURL     string // scheme://host:port
	Endpoint    string // path, starting with '/'
	QueryParams map[string]string
	RequestData string
	ContentType string
	Headers     map[string]string
	// basic auth, used for on-prem requests
	Username string
	Password *string
	// Timeout bounds the request. The deadline is computed when the request
	// is dispatched.
	Timeout time.Duration
	// TLSAcceptAllCerts selects an adapter that skips certificate checks
	TLSAcceptAllCerts bool
	// Client overrides the pooled http client, e.g. for a Capella
	// organization with its own transport
	Client *http.Client
}

const (
	jsonContentType = "application/json"
	formContentType = "application/x-www-form-urlencoded"
)

// requestURI is the endpoint plus the encoded query, which is also what
// Capella signs
func (req *hostHTTPRequest) requestURI() string {
	if len(req.QueryParams) == 0 {
		return req.Endpoint
	}
	v := url.Values{}
	for key, value := range req.QueryParams {
		v.Set(key, value)
	}
	return req.Endpoint + "?" + v.Encode()
}

func (req *hostHTTPRequest) buildURL() string {
	return req.BaseURL + req.requestURI()
}

// String leaves credentials out so requests can be logged
func (req *hostHTTPRequest) String() string {
	return req.Method + " " + req.buildURL()
}
