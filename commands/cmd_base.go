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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
)

const (
	tableOutput = "table"
	jsonOutput  = "json"
	yamlOutput  = "yaml"
)

/* CmdBase
 *
 * Basic/common fields of cbadmin commands
 */
type CmdBase struct {
	argv     []string
	args     []string
	parser   *pflag.FlagSet
	registry *cbadminops.Registry
	out      io.Writer

	rawClusters string
	output      string
	timeouts    cbadminops.ClusterTimeouts
}

func makeCmdBase(l *launcher) CmdBase {
	return CmdBase{
		registry: l.registry,
		out:      l.out,
	}
}

// SetParser can assign a pflag parser to CmdBase
func (c *CmdBase) SetParser(parser *pflag.FlagSet) {
	c.parser = parser
}

func (c *CmdBase) SetPositionalArgs(args []string) {
	c.args = args
}

// setClustersFlag adds --clusters, which takes identifiers separated by
// commas or * for every registered cluster
func (c *CmdBase) setClustersFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&c.rawClusters,
		clustersFlag,
		"",
		util.GetOptionalFlagMsg("Comma-separated list of cluster identifiers, or * for all of them."+
			" Defaults to the active cluster"),
	)
}

// resolveClusters turns --clusters into registered identifiers
func (c *CmdBase) resolveClusters() ([]string, error) {
	return cbadminops.ResolveIdentifiers(c.registry, c.rawClusters, true)
}

func (c *CmdBase) setOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&c.output,
		outputFlag,
		"o",
		tableOutput,
		"Output format: table, json or yaml",
	)
}

func (c *CmdBase) validateOutputFormat() error {
	switch c.output {
	case tableOutput, jsonOutput, yamlOutput:
		return nil
	}
	return &cbadminops.ParseError{
		Field:   "output format",
		Value:   c.output,
		Allowed: []string{tableOutput, jsonOutput, yamlOutput},
	}
}

// setTimeoutFlags adds one flag per request category of a cluster
// descriptor
func (c *CmdBase) setTimeoutFlags(cmd *cobra.Command, defaults cbadminops.ClusterTimeouts) {
	c.setManagementTimeoutFlag(cmd, defaults.Management)
	c.setQueryTimeoutFlag(cmd, defaults.Query)
	cmd.Flags().DurationVar(&c.timeouts.Analytics, analyticsTimeoutFlag, defaults.Analytics,
		util.GetOptionalFlagMsg("Timeout of analytics requests"))
	cmd.Flags().DurationVar(&c.timeouts.Search, searchTimeoutFlag, defaults.Search,
		util.GetOptionalFlagMsg("Timeout of search requests"))
}

// setManagementTimeoutFlag is for commands that only send management
// requests. Zero keeps the cluster's own timeout.
func (c *CmdBase) setManagementTimeoutFlag(cmd *cobra.Command, defaultValue time.Duration) {
	cmd.Flags().DurationVar(&c.timeouts.Management, managementTimeoutFlag, defaultValue,
		util.GetOptionalFlagMsg("Timeout of management requests"))
}

func (c *CmdBase) setQueryTimeoutFlag(cmd *cobra.Command, defaultValue time.Duration) {
	cmd.Flags().DurationVar(&c.timeouts.Query, queryTimeoutFlag, defaultValue,
		util.GetOptionalFlagMsg("Timeout of query requests"))
}

func validateTimeouts(timeouts *cbadminops.ClusterTimeouts) error {
	for flag, timeout := range map[string]time.Duration{
		managementTimeoutFlag: timeouts.Management,
		queryTimeoutFlag:      timeouts.Query,
		analyticsTimeoutFlag:  timeouts.Analytics,
		searchTimeoutFlag:     timeouts.Search,
	} {
		if timeout < 0 {
			return fmt.Errorf("--%s cannot be negative", flag)
		}
	}
	return nil
}

// writeOutput renders rows as a tab separated table, or value as JSON or
// YAML
func (c *CmdBase) writeOutput(header []string, rows [][]string, value any) error {
	switch c.output {
	case jsonOutput:
		content, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("fail to render output as json: %w", err)
		}
		_, err = fmt.Fprintln(c.out, string(content))
		return err
	case yamlOutput:
		encoder := yaml.NewEncoder(c.out)
		defer encoder.Close()
		return encoder.Encode(value)
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
