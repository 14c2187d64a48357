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
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeCapellaClient(t *testing.T) {
	_, err := MakeCapellaClient(CapellaClientOptions{AccessKey: "a", SecretKey: "s"})
	assert.Error(t, err)
	_, err = MakeCapellaClient(CapellaClientOptions{OrganizationID: "org"})
	assert.Error(t, err)
	_, err = MakeCapellaClient(CapellaClientOptions{OrganizationID: "org", AccessKey: "a", SecretKey: "s",
		Endpoint: "not-a-url"})
	assert.Error(t, err)

	client, err := MakeCapellaClient(CapellaClientOptions{OrganizationID: "org", AccessKey: "a", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "https://cloudapi.cloud.couchbase.com", client.endpoint)
}

func TestCapellaRequestSigning(t *testing.T) {
	client, err := MakeCapellaClient(CapellaClientOptions{
		Endpoint:       "https://capella.example.com/",
		OrganizationID: "org1",
		AccessKey:      "access",
		SecretKey:      "secret",
	})
	require.NoError(t, err)
	client.now = func() time.Time { return time.Unix(1700000000, 0) }

	request := client.makeFindClusterRequest("prod eu", time.Second)
	assert.Equal(t, "https://capella.example.com/v2/organizations/org1/clusters?name=prod+eu", request.buildURL())
	assert.Equal(t, "1700000000", request.Headers[capellaTimestampHeader])

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("GET\n/v2/organizations/org1/clusters?name=prod+eu\n1700000000"))
	expected := "Bearer access:" + base64.StdEncoding.EncodeToString(mac.Sum(nil))
	assert.Equal(t, expected, request.Headers["Authorization"])

	update := client.makeUpdateBucketsRequest("c1", "[]", time.Second)
	assert.Equal(t, PutMethod, update.Method)
	assert.Equal(t, "/v2/organizations/org1/clusters/c1/buckets", update.requestURI())
	assert.Equal(t, jsonContentType, update.ContentType)
}

func TestCapellaFindCluster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer access:"))
		assert.NotEmpty(t, r.Header.Get(capellaTimestampHeader))
		assert.Equal(t, "/v2/organizations/org1/clusters", r.URL.Path)
		// the server filter is fuzzy, the client must match exactly
		fmt.Fprint(w, `{"data":[
			{"id":"id-1","name":"prod-eu-2","environment":"inVpc"},
			{"id":"id-2","name":"prod-eu","environment":"hosted"}
		]}`)
	}))
	defer server.Close()

	org := makeTestOrganization(t, "org1", server.URL)
	logger, _ := makeTestLogger()

	id, env, err := org.Client.FindCluster(context.Background(), logger, "prod-eu", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "id-2", id)
	assert.Equal(t, CapellaEnvironmentHosted, env)

	_, _, err = org.Client.FindCluster(context.Background(), logger, "prod", time.Second)
	var notFound *ClusterNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "prod", notFound.Identifier)
}
