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

import "github.com/spf13/cobra"

func makeCmdClusters(l *launcher) *cobra.Command {
	cmd := &cobra.Command{
		Use:   clustersSubCmd,
		Short: "Manage the cluster registry",
		Long: `This manages the clusters known to cbadmin.

Clusters listed in the config file are registered when cbadmin starts.
Clusters registered with these commands last until the process exits, so
they are most useful inside "cbadmin shell".`,
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(makeCmdRegisterCluster(l))
	cmd.AddCommand(makeCmdRegisterOrganization(l))
	cmd.AddCommand(makeCmdUnregisterCluster(l))
	cmd.AddCommand(makeCmdListClusters(l))
	cmd.AddCommand(makeCmdUseCluster(l))
	return cmd
}
