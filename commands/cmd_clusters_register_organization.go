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

	"github.com/spf13/cobra"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

/* CmdRegisterOrganization
 *
 * Registers the API credentials of a Capella organization.
 *
 * Implements cmdInterface
 */
type CmdRegisterOrganization struct {
	CmdBase
	endpoint  string
	accessKey string
	secretKey string

	org *cbadminops.CloudOrganization
}

func makeCmdRegisterOrganization(l *launcher) *cobra.Command {
	newCmd := &CmdRegisterOrganization{CmdBase: makeCmdBase(l)}

	cmd := makeBasicCobraCmd(
		l,
		newCmd,
		registerOrganizationSubCmd+" <organization_id>",
		"Register a Capella organization",
		`This registers the API key of a Capella organization. Capella clusters
reference the organization by its ID.

Example:
  cbadmin clusters register-organization <org_id> --access-key <key> --secret-key <secret>
`,
		cobra.ExactArgs(1),
	)

	cmd.Flags().StringVar(
		&newCmd.endpoint,
		endpointFlag,
		util.DefaultCapellaEndpoint,
		util.GetOptionalFlagMsg("Capella API endpoint"),
	)
	cmd.Flags().StringVar(
		&newCmd.accessKey,
		accessKeyFlag,
		"",
		"Access key of the API key",
	)
	cmd.Flags().StringVar(
		&newCmd.secretKey,
		secretKeyFlag,
		"",
		"Secret key of the API key",
	)
	_ = cmd.MarkFlagRequired(accessKeyFlag)
	_ = cmd.MarkFlagRequired(secretKeyFlag)

	return cmd
}

func (c *CmdRegisterOrganization) Parse(inputArgv []string, logger vlog.Printer) error {
	c.argv = inputArgv
	logger.LogArgParse(&c.argv)

	client, err := cbadminops.MakeCapellaClient(cbadminops.CapellaClientOptions{
		Endpoint:       c.endpoint,
		OrganizationID: c.args[0],
		AccessKey:      c.accessKey,
		SecretKey:      c.secretKey,
	})
	if err != nil {
		return err
	}
	c.org = &cbadminops.CloudOrganization{ID: c.args[0], Client: client}
	return nil
}

func (c *CmdRegisterOrganization) Run(_ context.Context, vcc cbadminops.ClusterCommands) error {
	vcc.Log.Info("Called method Run()")
	if err := c.registry.RegisterOrganization(c.org); err != nil {
		return err
	}
	vcc.Log.PrintInfo("Registered capella organization %s", c.org.ID)
	return nil
}
