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
	"net"
	"strconv"
	"time"

	"github.com/couchbaselabs/cbadmin/cbadminops/util"
)

// CapellaEnvironment classifies a cloud cluster
type CapellaEnvironment string

const (
	CapellaEnvironmentUnknown CapellaEnvironment = ""
	// CapellaEnvironmentHosted is the fully managed tier. It does not expose
	// flush, durability or expiry settings.
	CapellaEnvironmentHosted CapellaEnvironment = "hosted"
	CapellaEnvironmentInVPC  CapellaEnvironment = "inVpc"
)

func ParseCapellaEnvironment(env string) (CapellaEnvironment, error) {
	switch CapellaEnvironment(env) {
	case CapellaEnvironmentUnknown, CapellaEnvironmentHosted, CapellaEnvironmentInVPC:
		return CapellaEnvironment(env), nil
	}
	return CapellaEnvironmentUnknown, &ParseError{
		Field:   "capella environment",
		Value:   env,
		Allowed: []string{string(CapellaEnvironmentHosted), string(CapellaEnvironmentInVPC)},
	}
}

// ClusterTimeouts holds the timeout of each request category
type ClusterTimeouts struct {
	Management time.Duration
	Query      time.Duration
	Analytics  time.Duration
	Search     time.Duration
}

func MakeDefaultClusterTimeouts() ClusterTimeouts {
	return ClusterTimeouts{
		Management: util.DefaultManagementTimeout,
		Query:      util.DefaultQueryTimeout,
		Analytics:  util.DefaultAnalyticsTimeout,
		Search:     util.DefaultSearchTimeout,
	}
}

// Merge returns a copy of t where every non-zero timeout in override wins.
func (t ClusterTimeouts) Merge(override ClusterTimeouts) ClusterTimeouts {
	merged := t
	if override.Management > 0 {
		merged.Management = override.Management
	}
	if override.Query > 0 {
		merged.Query = override.Query
	}
	if override.Analytics > 0 {
		merged.Analytics = override.Analytics
	}
	if override.Search > 0 {
		merged.Search = override.Search
	}
	return merged
}

// CloudRef points a cluster at the Capella organization managing it
type CloudRef struct {
	OrganizationID string
	Environment    CapellaEnvironment
}

// RemoteCluster is the connection profile of one registered cluster. The
// registry hands out copies, so a RemoteCluster can be used outside the
// registry lock.
type RemoteCluster struct {
	Identifier        string
	Hosts             []string
	Username          string
	Password          string
	TLSEnabled        bool
	TLSAcceptAllCerts bool
	Timeouts          ClusterTimeouts
	CloudRef          *CloudRef
}

func (c *RemoteCluster) IsCloud() bool {
	return c.CloudRef != nil
}

// WithTimeouts returns a copy of the cluster using the given per-command
// timeout overrides.
func (c RemoteCluster) WithTimeouts(override ClusterTimeouts) RemoteCluster {
	c.Timeouts = c.Timeouts.Merge(override)
	return c
}

func (c *RemoteCluster) validate() error {
	if c.Identifier == "" {
		return fmt.Errorf("cluster identifier cannot be empty")
	}
	if c.IsCloud() {
		if c.CloudRef.OrganizationID == "" {
			return fmt.Errorf("cluster %s: capella organization cannot be empty", c.Identifier)
		}
		return nil
	}
	if len(c.Hosts) == 0 {
		return fmt.Errorf("cluster %s: must specify a host or host list", c.Identifier)
	}
	return nil
}

// ManagementEndpoint returns the base URL of the management API on the
// first host.
func (c *RemoteCluster) ManagementEndpoint() (string, error) {
	if len(c.Hosts) == 0 {
		return "", fmt.Errorf("cluster %s has no hosts", c.Identifier)
	}
	scheme := "http"
	port := util.DefaultManagementPort
	if c.TLSEnabled {
		scheme = "https"
		port = util.DefaultManagementTLSPort
	}

	host := c.Hosts[0]
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, strconv.Itoa(port))
	}
	return fmt.Sprintf("%s://%s", scheme, host), nil
}

// copy returns a deep copy so callers cannot mutate registry state
func (c *RemoteCluster) copy() RemoteCluster {
	cp := *c
	cp.Hosts = append([]string(nil), c.Hosts...)
	if c.CloudRef != nil {
		ref := *c.CloudRef
		cp.CloudRef = &ref
	}
	return cp
}
