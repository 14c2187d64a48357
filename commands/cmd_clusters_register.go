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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

/* CmdRegisterCluster
 *
 * Parses arguments to register a cluster and adds it
 * to the registry.
 *
 * Implements cmdInterface
 */
type CmdRegisterCluster struct {
	CmdBase
	rawHosts          string
	username          string
	password          string
	tls               bool
	tlsAcceptAllCerts bool
	capellaOrg        string
	capellaEnv        string
	active            bool

	identifier string
	cluster    cbadminops.RemoteCluster
}

func makeCmdRegisterCluster(l *launcher) *cobra.Command {
	newCmd := &CmdRegisterCluster{CmdBase: makeCmdBase(l)}

	cmd := makeBasicCobraCmd(
		l,
		newCmd,
		registerSubCmd+" <identifier>",
		"Register a cluster",
		`This registers a cluster under the given identifier. Registering an
existing identifier replaces it.

On-prem clusters need --hosts. Capella clusters need --capella-organization
instead; the organization must be in the config file or registered with
"clusters register-organization". The identifier of a Capella cluster is its
name in Capella.

Examples:
  # Register an on-prem cluster and make it active
  cbadmin clusters register local --hosts 10.20.30.40,10.20.30.41 \
    --username Administrator --password <password> --active

  # Register a Capella cluster
  cbadmin clusters register prod-eu --capella-organization <org_id> \
    --capella-environment hosted
`,
		cobra.ExactArgs(1),
	)

	newCmd.setLocalFlags(cmd)
	newCmd.setTimeoutFlags(cmd, cbadminops.MakeDefaultClusterTimeouts())
	cmd.MarkFlagsMutuallyExclusive(hostsFlag, capellaOrgFlag)

	return cmd
}

// setLocalFlags will set the local flags the command has
func (c *CmdRegisterCluster) setLocalFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&c.rawHosts,
		hostsFlag,
		"",
		"Comma-separated list of hosts in the cluster",
	)
	cmd.Flags().StringVar(
		&c.username,
		usernameFlag,
		util.DefaultUsername,
		"The username for the management API",
	)
	cmd.Flags().StringVarP(
		&c.password,
		passwordFlag,
		"p",
		"",
		"The password for the management API",
	)
	cmd.Flags().BoolVar(
		&c.tls,
		tlsFlag,
		false,
		util.GetOptionalFlagMsg("Use https for the management API"),
	)
	cmd.Flags().BoolVar(
		&c.tlsAcceptAllCerts,
		tlsAcceptAllCertsFlag,
		false,
		util.GetOptionalFlagMsg("Skip verification of the cluster's certificate"),
	)
	cmd.Flags().StringVar(
		&c.capellaOrg,
		capellaOrgFlag,
		"",
		util.GetCapellaFlagMsg("ID of the organization managing the cluster"),
	)
	cmd.Flags().StringVar(
		&c.capellaEnv,
		capellaEnvFlag,
		"",
		util.GetCapellaFlagMsg("Environment of the cluster, hosted or inVpc. Looked up when needed if not given"),
	)
	cmd.Flags().BoolVar(
		&c.active,
		activeFlag,
		false,
		util.GetOptionalFlagMsg("Make the cluster the active one"),
	)
}

func (c *CmdRegisterCluster) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)
	return c.validateParse(logger)
}

// all validations of the arguments should go in here
func (c *CmdRegisterCluster) validateParse(logger vlog.Printer) error {
	logger.Info("Called validateParse()")
	c.identifier = c.args[0]
	if err := validateTimeouts(&c.timeouts); err != nil {
		return err
	}

	c.cluster = cbadminops.RemoteCluster{
		Username:          c.username,
		Password:          c.password,
		TLSEnabled:        c.tls,
		TLSAcceptAllCerts: c.tlsAcceptAllCerts,
		Timeouts:          cbadminops.MakeDefaultClusterTimeouts().Merge(c.timeouts),
	}

	if c.capellaOrg != "" {
		env, err := cbadminops.ParseCapellaEnvironment(c.capellaEnv)
		if err != nil {
			return err
		}
		c.cluster.CloudRef = &cbadminops.CloudRef{OrganizationID: c.capellaOrg, Environment: env}
		return nil
	}
	if c.parser.Changed(capellaEnvFlag) {
		return fmt.Errorf("--%s requires --%s", capellaEnvFlag, capellaOrgFlag)
	}

	hosts, err := util.SplitHosts(c.rawHosts)
	if err != nil {
		return err
	}
	c.cluster.Hosts = hosts
	return nil
}

func (c *CmdRegisterCluster) Run(_ context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")

	if err := c.registry.Register(c.identifier, c.cluster); err != nil {
		return err
	}
	if c.active {
		if err := c.registry.SetActive(c.identifier); err != nil {
			return err
		}
	}
	vcc.Log.PrintInfo("Registered cluster %s", c.identifier)
	return nil
}
