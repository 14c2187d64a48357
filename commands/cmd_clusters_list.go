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

package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

/* CmdListClusters
 *
 * Prints the registry.
 *
 * Implements cmdInterface
 */
type CmdListClusters struct {
	CmdBase
}

// clusterView is the printable form of a registered cluster. Credentials
// are left out.
type clusterView struct {
	Identifier          string   `json:"identifier" yaml:"identifier"`
	Active              bool     `json:"active" yaml:"active"`
	Hosts               []string `json:"hosts,omitempty" yaml:"hosts,omitempty"`
	Username            string   `json:"username,omitempty" yaml:"username,omitempty"`
	TLS                 bool     `json:"tls" yaml:"tls"`
	CapellaOrganization string   `json:"capellaOrganization,omitempty" yaml:"capellaOrganization,omitempty"`
	CapellaEnvironment  string   `json:"capellaEnvironment,omitempty" yaml:"capellaEnvironment,omitempty"`
	ManagementTimeout   string   `json:"managementTimeout" yaml:"managementTimeout"`
}

func makeCmdListClusters(l *launcher) *cobra.Command {
	newCmd := &CmdListClusters{CmdBase: makeCmdBase(l)}
	cmd := makeBasicCobraCmd(
		l,
		newCmd,
		listSubCmd,
		"List registered clusters",
		`This lists the registered clusters. The active cluster is marked with *.

Examples:
  cbadmin clusters list
  cbadmin clusters list --output yaml
`,
		cobra.NoArgs,
	)
	newCmd.setOutputFlag(cmd)
	return cmd
}

func (c *CmdListClusters) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return c.validateOutputFormat()
}

func (c *CmdListClusters) Run(_ context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")

	active := c.registry.Active()
	views := []clusterView{}
	for _, identifier := range c.registry.Identifiers() {
		// the registry may have changed since Identifiers()
		cluster, err := c.registry.Get(identifier)
		if err != nil {
			continue
		}
		view := clusterView{
			Identifier:        identifier,
			Active:            identifier == active,
			Hosts:             cluster.Hosts,
			Username:          cluster.Username,
			TLS:               cluster.TLSEnabled,
			ManagementTimeout: cluster.Timeouts.Management.String(),
		}
		if cluster.IsCloud() {
			view.Username = ""
			view.CapellaOrganization = cluster.CloudRef.OrganizationID
			view.CapellaEnvironment = string(cluster.CloudRef.Environment)
		}
		views = append(views, view)
	}

	header := []string{"", "IDENTIFIER", "TYPE", "HOSTS", "TLS", "CAPELLA ORGANIZATION", "ENVIRONMENT", "TIMEOUT"}
	rows := make([][]string, 0, len(views))
	for i := range views {
		view := &views[i]
		marker := ""
		if view.Active {
			marker = "*"
		}
		clusterType := "on-prem"
		if view.CapellaOrganization != "" {
			clusterType = "capella"
		}
		rows = append(rows, []string{
			marker,
			view.Identifier,
			clusterType,
			util.ArrayToString(view.Hosts, ","),
			strconv.FormatBool(view.TLS),
			view.CapellaOrganization,
			view.CapellaEnvironment,
			view.ManagementTimeout,
		})
	}
	return c.writeOutput(header, rows, views)
}
