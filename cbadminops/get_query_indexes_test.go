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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexStatusDoc = `{"indexes":[
	{"bucket":"travel-sample","scope":"inventory","collection":"airline","indexName":"def_inventory_airline_primary",
	 "status":"Ready","storageMode":"plasma","numReplica":1,"definition":"CREATE PRIMARY INDEX ..."},
	{"bucket":"beer-sample","indexName":"beer_primary","status":"Building","storageMode":"plasma","numReplica":0,
	 "definition":"CREATE PRIMARY INDEX ` + "`beer_primary`" + ` ON ` + "`beer-sample`" + `"}
]}`

// newIndexStatusServer serves indexStatusDoc after delay
func newIndexStatusServer(t *testing.T, delay time.Duration, release <-chan struct{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != GetMethod || r.URL.Path != onPremIndexStatusEndpoint {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		user, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "Administrator", user)
		assert.Equal(t, "password", password)
		select {
		case <-time.After(delay):
		case <-release:
			return
		}
		fmt.Fprint(w, indexStatusDoc)
	}))
}

func registerWithTimeouts(t *testing.T, registry *Registry, identifier, serverURL string, timeouts ClusterTimeouts) {
	require.NoError(t, registry.Register(identifier, RemoteCluster{
		Hosts:    []string{strings.TrimPrefix(serverURL, "http://")},
		Username: "Administrator",
		Password: "password",
		Timeouts: timeouts,
	}))
}

func TestGetQueryIndexes(t *testing.T) {
	first := newIndexStatusServer(t, 0, nil)
	defer first.Close()
	second := newIndexStatusServer(t, 0, nil)
	defer second.Close()
	registry := MakeRegistry()
	registerOnPrem(t, registry, "a", first.URL)
	registerOnPrem(t, registry, "b", second.URL)

	logger, _ := makeTestLogger()
	vcc := ClusterCommands{Log: logger}
	options := VGetQueryIndexOptionsFactory()
	options.Clusters = []string{"b", "a"}
	indexes, err := vcc.VGetQueryIndexes(context.Background(), registry, &options)
	require.NoError(t, err)
	require.Len(t, indexes, 4)

	assert.Equal(t, "b", indexes[0].Cluster)
	assert.Equal(t, "a", indexes[2].Cluster)
	assert.Equal(t, QueryIndex{
		Bucket:      "travel-sample",
		Scope:       "inventory",
		Collection:  "airline",
		Name:        "def_inventory_airline_primary",
		Status:      "Ready",
		StorageMode: "plasma",
		Replicas:    1,
		Definition:  "CREATE PRIMARY INDEX ...",
	}, indexes[0].Index)
	// clusters without collections report no scope
	assert.Empty(t, indexes[1].Index.Scope)
	assert.Empty(t, indexes[1].Index.Collection)
	assert.Equal(t, "Building", indexes[1].Index.Status)
}

func TestGetQueryIndexesUsesQueryTimeout(t *testing.T) {
	// a tiny management timeout must not cut the index status request short
	server := newIndexStatusServer(t, 100*time.Millisecond, nil)
	defer server.Close()
	registry := MakeRegistry()
	timeouts := MakeDefaultClusterTimeouts()
	timeouts.Management = time.Millisecond
	registerWithTimeouts(t, registry, "local", server.URL, timeouts)

	logger, _ := makeTestLogger()
	vcc := ClusterCommands{Log: logger}
	options := VGetQueryIndexOptionsFactory()
	options.Clusters = []string{"local"}
	indexes, err := vcc.VGetQueryIndexes(context.Background(), registry, &options)
	require.NoError(t, err)
	assert.Len(t, indexes, 2)
}

func TestGetQueryIndexesQueryTimeoutExceeded(t *testing.T) {
	release := make(chan struct{})
	server := newIndexStatusServer(t, time.Minute, release)
	defer server.Close()
	defer close(release)
	registry := MakeRegistry()
	registerOnPrem(t, registry, "local", server.URL)

	logger, _ := makeTestLogger()
	vcc := ClusterCommands{Log: logger}
	options := VGetQueryIndexOptionsFactory()
	options.Clusters = []string{"local"}
	options.Timeouts.Query = 50 * time.Millisecond
	_, err := vcc.VGetQueryIndexes(context.Background(), registry, &options)

	var opErr *ClusterOpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, getQueryIndexesOperation, opErr.Operation)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Detail, "within 50ms")
}

func TestGetQueryIndexesMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"indexes":`)
	}))
	defer server.Close()
	registry := MakeRegistry()
	registerOnPrem(t, registry, "local", server.URL)

	logger, _ := makeTestLogger()
	vcc := ClusterCommands{Log: logger}
	options := VGetQueryIndexOptionsFactory()
	options.Clusters = []string{"local"}
	_, err := vcc.VGetQueryIndexes(context.Background(), registry, &options)
	var deserializeErr *DeserializeError
	assert.ErrorAs(t, err, &deserializeErr)
}

func TestGetQueryIndexesRejectsCapellaClusters(t *testing.T) {
	onPrem := newIndexStatusServer(t, 0, nil)
	defer onPrem.Close()
	capella := newFakeCapellaServer(t, CapellaEnvironmentInVPC, cloudBuckets)
	defer capella.Close()
	registry := MakeRegistry()
	registerOnPrem(t, registry, "local", onPrem.URL)
	registerCloud(t, registry, "prod", capella.URL, CapellaEnvironmentInVPC)

	logger, _ := makeTestLogger()
	vcc := ClusterCommands{Log: logger}
	options := VGetQueryIndexOptionsFactory()
	options.Clusters = []string{"local", "prod"}
	_, err := vcc.VGetQueryIndexes(context.Background(), registry, &options)

	var opErr *ClusterOpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "prod", opErr.Identifier)
	var conflict *CapabilityConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Zero(t, capella.totalCalls())

	options.Clusters = nil
	_, err = vcc.VGetQueryIndexes(context.Background(), registry, &options)
	assert.ErrorIs(t, err, ErrNoTargetCluster)
}
