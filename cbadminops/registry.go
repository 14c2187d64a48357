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
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CloudOrganization is a Capella organization with the API client shared by
// every cluster that references it.
type CloudOrganization struct {
	ID     string
	Client *CapellaClient
}

// Registry holds the clusters known to this process and the active
// identifier. A single lock guards the whole table; it is never held across
// a network call.
type Registry struct {
	mu            sync.Mutex
	clusters      map[string]*RemoteCluster
	organizations map[string]*CloudOrganization
	active        string
}

func MakeRegistry() *Registry {
	return &Registry{
		clusters:      make(map[string]*RemoteCluster),
		organizations: make(map[string]*CloudOrganization),
	}
}

// Register inserts or replaces the cluster stored under identifier
func (r *Registry) Register(identifier string, cluster RemoteCluster) error {
	cluster.Identifier = identifier
	if err := cluster.validate(); err != nil {
		return err
	}
	stored := cluster.copy()

	r.mu.Lock()
	defer r.mu.Unlock()
	if stored.IsCloud() {
		if _, ok := r.organizations[stored.CloudRef.OrganizationID]; !ok {
			return fmt.Errorf("cluster %s references unknown capella organization %s",
				identifier, stored.CloudRef.OrganizationID)
		}
	}
	r.clusters[identifier] = &stored
	return nil
}

// Unregister removes the cluster and reports whether it was registered.
// Removing the active cluster clears the active identifier.
func (r *Registry) Unregister(identifier string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clusters[identifier]; !ok {
		return false
	}
	delete(r.clusters, identifier)
	if r.active == identifier {
		r.active = ""
	}
	return true
}

// Get returns a snapshot of the cluster registered under identifier
func (r *Registry) Get(identifier string) (RemoteCluster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cluster, ok := r.clusters[identifier]
	if !ok {
		return RemoteCluster{}, &ClusterNotFoundError{Identifier: identifier}
	}
	return cluster.copy(), nil
}

func (r *Registry) Contains(identifier string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.clusters[identifier]
	return ok
}

// Active returns the active identifier, or "" if none is set
func (r *Registry) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Registry) SetActive(identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clusters[identifier]; !ok {
		return &ClusterNotFoundError{Identifier: identifier}
	}
	r.active = identifier
	return nil
}

// Identifiers returns all registered identifiers in sorted order
func (r *Registry) Identifiers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := maps.Keys(r.clusters)
	slices.Sort(ids)
	return ids
}

// RegisterOrganization inserts or replaces a Capella organization
func (r *Registry) RegisterOrganization(org *CloudOrganization) error {
	if org == nil || org.ID == "" {
		return fmt.Errorf("capella organization id cannot be empty")
	}
	if org.Client == nil {
		return fmt.Errorf("capella organization %s has no client", org.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.organizations[org.ID] = org
	return nil
}

// Organization returns the organization with the given id. The returned
// client is shared and safe for concurrent read-only use.
func (r *Registry) Organization(id string) (*CloudOrganization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.organizations[id]
	if !ok {
		return nil, fmt.Errorf("capella organization %s is not registered", id)
	}
	return org, nil
}
