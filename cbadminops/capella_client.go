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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/couchbaselabs/cbadmin/cbadminops/util"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

const (
	capellaTimestampHeader = "Couchbase-Timestamp"
	capellaAPIVersion      = "/v2"
)

type CapellaClientOptions struct {
	Endpoint       string // defaults to util.DefaultCapellaEndpoint
	OrganizationID string
	AccessKey      string
	SecretKey      string
	HTTPClient     *http.Client // defaults to a plain http.Client
}

// CapellaClient talks to the Capella control plane on behalf of one
// organization. It is safe for concurrent use.
type CapellaClient struct {
	endpoint       string
	organizationID string
	accessKey      string
	secretKey      string
	httpClient     *http.Client
	now            func() time.Time
}

func MakeCapellaClient(opts CapellaClientOptions) (*CapellaClient, error) {
	if opts.OrganizationID == "" {
		return nil, errors.New("capella organization id is required")
	}
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, errors.Errorf("capella organization %s requires an access key and a secret key",
			opts.OrganizationID)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = util.DefaultCapellaEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse capella endpoint")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("capella endpoint %q must be an absolute url", endpoint)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &CapellaClient{
		endpoint:       strings.TrimSuffix(endpoint, "/"),
		organizationID: opts.OrganizationID,
		accessKey:      opts.AccessKey,
		secretKey:      opts.SecretKey,
		httpClient:     httpClient,
		now:            time.Now,
	}, nil
}

func (c *CapellaClient) OrganizationID() string {
	return c.organizationID
}

// capellaCluster is an entry of the organization's cluster list
type capellaCluster struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Environment CapellaEnvironment `json:"environment"`
}

type capellaClusterList struct {
	Data []capellaCluster `json:"data"`
}

// signature is base64(hmac-sha256(secret, "METHOD\nURI\nTIMESTAMP"))
func (c *CapellaClient) sign(method, requestURI, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(method + "\n" + requestURI + "\n" + timestamp))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (c *CapellaClient) makeRequest(method, endpoint string, query map[string]string,
	body string, timeout time.Duration) hostHTTPRequest {
	request := hostHTTPRequest{
		Method:      method,
		BaseURL:     c.endpoint,
		Endpoint:    capellaAPIVersion + endpoint,
		QueryParams: query,
		RequestData: body,
		Timeout:     timeout,
		Client:      c.httpClient,
	}
	if body != "" {
		request.ContentType = jsonContentType
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	request.Headers = map[string]string{
		"Authorization":        fmt.Sprintf("Bearer %s:%s", c.accessKey, c.sign(method, request.requestURI(), timestamp)),
		capellaTimestampHeader: timestamp,
	}
	return request
}

func (c *CapellaClient) clustersEndpoint() string {
	return fmt.Sprintf("/organizations/%s/clusters", url.PathEscape(c.organizationID))
}

func (c *CapellaClient) bucketsEndpoint(clusterID string) string {
	return fmt.Sprintf("%s/%s/buckets", c.clustersEndpoint(), url.PathEscape(clusterID))
}

func (c *CapellaClient) makeFindClusterRequest(name string, timeout time.Duration) hostHTTPRequest {
	return c.makeRequest(GetMethod, c.clustersEndpoint(), map[string]string{"name": name}, "", timeout)
}

func (c *CapellaClient) makeGetBucketsRequest(clusterID string, timeout time.Duration) hostHTTPRequest {
	return c.makeRequest(GetMethod, c.bucketsEndpoint(clusterID), nil, "", timeout)
}

func (c *CapellaClient) makeUpdateBucketsRequest(clusterID, body string, timeout time.Duration) hostHTTPRequest {
	return c.makeRequest(PutMethod, c.bucketsEndpoint(clusterID), nil, body, timeout)
}

// selectCluster picks the cluster whose name matches exactly. The name query
// parameter is only a filter hint for the server.
func selectCluster(list *capellaClusterList, name string) (capellaCluster, error) {
	for _, cluster := range list.Data {
		if cluster.Name == name {
			return cluster, nil
		}
	}
	return capellaCluster{}, &ClusterNotFoundError{Identifier: name}
}

// FindCluster looks up a cluster of the organization by name
func (c *CapellaClient) FindCluster(ctx context.Context, logger vlog.Printer, name string,
	timeout time.Duration) (string, CapellaEnvironment, error) {
	dispatcher := makeHTTPRequestDispatcher(logger)
	op := makeCapellaFindClusterOp(logger, c, name, nil)
	opEngine := makeClusterOpEngine([]clusterOp{&op})
	cluster := RemoteCluster{
		Identifier: name,
		Timeouts:   ClusterTimeouts{Management: timeout},
		CloudRef:   &CloudRef{OrganizationID: c.organizationID},
	}
	if err := opEngine.run(ctx, logger, &dispatcher, &cluster); err != nil {
		return "", "", err
	}
	found := opEngine.execContext.capellaCluster
	return found.ID, found.Environment, nil
}
