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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestOrganization(t *testing.T, id, endpoint string) *CloudOrganization {
	client, err := MakeCapellaClient(CapellaClientOptions{
		Endpoint:       endpoint,
		OrganizationID: id,
		AccessKey:      "access",
		SecretKey:      "secret",
	})
	require.NoError(t, err)
	return &CloudOrganization{ID: id, Client: client}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := MakeRegistry()
	err := registry.Register("local", RemoteCluster{Hosts: []string{"10.0.0.1"}, Username: "admin"})
	require.NoError(t, err)

	cluster, err := registry.Get("local")
	require.NoError(t, err)
	assert.Equal(t, "local", cluster.Identifier)

	// a snapshot cannot change the registry
	cluster.Hosts[0] = "10.0.0.2"
	again, err := registry.Get("local")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1"}, again.Hosts)

	_, err = registry.Get("missing")
	var notFound *ClusterNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Identifier)

	// on-prem clusters need hosts
	assert.Error(t, registry.Register("empty", RemoteCluster{}))
}

func TestRegistryActiveCluster(t *testing.T) {
	registry := MakeRegistry()
	require.NoError(t, registry.Register("b", RemoteCluster{Hosts: []string{"h2"}}))
	require.NoError(t, registry.Register("a", RemoteCluster{Hosts: []string{"h1"}}))
	assert.Equal(t, []string{"a", "b"}, registry.Identifiers())

	var notFound *ClusterNotFoundError
	assert.ErrorAs(t, registry.SetActive("c"), &notFound)
	assert.Equal(t, "", registry.Active())

	require.NoError(t, registry.SetActive("a"))
	assert.Equal(t, "a", registry.Active())

	assert.True(t, registry.Unregister("a"))
	assert.Equal(t, "", registry.Active())
	assert.False(t, registry.Unregister("a"))
	assert.Equal(t, []string{"b"}, registry.Identifiers())
}

func TestRegistryCloudCluster(t *testing.T) {
	registry := MakeRegistry()
	cloud := RemoteCluster{CloudRef: &CloudRef{OrganizationID: "org1", Environment: CapellaEnvironmentHosted}}

	// the organization has to be known first
	assert.Error(t, registry.Register("prod", cloud))

	require.NoError(t, registry.RegisterOrganization(makeTestOrganization(t, "org1", "")))
	require.NoError(t, registry.Register("prod", cloud))

	cluster, err := registry.Get("prod")
	require.NoError(t, err)
	assert.True(t, cluster.IsCloud())
	cluster.CloudRef.Environment = CapellaEnvironmentInVPC
	again, err := registry.Get("prod")
	require.NoError(t, err)
	assert.Equal(t, CapellaEnvironmentHosted, again.CloudRef.Environment)

	org, err := registry.Organization("org1")
	require.NoError(t, err)
	assert.Equal(t, "org1", org.Client.OrganizationID())
	_, err = registry.Organization("org2")
	assert.Error(t, err)
}

func TestManagementEndpoint(t *testing.T) {
	cluster := RemoteCluster{Identifier: "c", Hosts: []string{"10.0.0.1", "10.0.0.2"}}
	endpoint, err := cluster.ManagementEndpoint()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8091", endpoint)

	cluster.TLSEnabled = true
	endpoint, err = cluster.ManagementEndpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://10.0.0.1:18091", endpoint)

	cluster.Hosts = []string{"127.0.0.1:9000"}
	endpoint, err = cluster.ManagementEndpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://127.0.0.1:9000", endpoint)
}

func TestResolveIdentifiers(t *testing.T) {
	registry := MakeRegistry()
	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, registry.Register(id, RemoteCluster{Hosts: []string{id}}))
	}

	ids, err := ResolveIdentifiers(registry, " c2 ,c1,, c2 ", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, ids)

	ids, err = ResolveIdentifiers(registry, "c3,*", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c1", "c2"}, ids)

	_, err = ResolveIdentifiers(registry, "c1,nope", false)
	var notFound *ClusterNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Identifier)

	_, err = ResolveIdentifiers(registry, "", true)
	assert.ErrorIs(t, err, ErrNoTargetCluster)
	_, err = ResolveIdentifiers(registry, " , ", false)
	assert.ErrorIs(t, err, ErrNoTargetCluster)

	require.NoError(t, registry.SetActive("c3"))
	ids, err = ResolveIdentifiers(registry, "", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"c3"}, ids)
	_, err = ResolveIdentifiers(registry, "", false)
	assert.ErrorIs(t, err, ErrNoTargetCluster)
}
