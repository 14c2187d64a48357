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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is a launcher whose config file and log live in a temp dir
type testEnv struct {
	l          *launcher
	out        *bytes.Buffer
	configPath string
	logPath    string
}

func newTestEnv(t *testing.T, config string) *testEnv {
	dir := t.TempDir()
	env := &testEnv{
		out:        &bytes.Buffer{},
		configPath: filepath.Join(dir, defConfigFileName),
		logPath:    filepath.Join(dir, defaultLogFileName),
	}
	require.NoError(t, os.WriteFile(env.configPath, []byte(config), 0600))
	env.l = makeLauncher(env.out)
	return env
}

// run executes one command line the way Execute does, with the temp config
// file and log path
func (e *testEnv) run(args ...string) error {
	argv := append(args, "--"+configFlag, e.configPath, "--"+logPathFlag, e.logPath)
	return e.runArgv(argv)
}

func (e *testEnv) runArgv(argv []string) error {
	e.out.Reset()
	e.l.argv = argv
	rootCmd := e.l.makeRootCmd()
	rootCmd.SetArgs(argv)
	rootCmd.SetOut(e.out)
	rootCmd.SetErr(e.out)
	rootCmd.SilenceErrors = true
	return rootCmd.ExecuteContext(context.Background())
}

func (e *testEnv) listClusters(t *testing.T) []clusterView {
	require.NoError(t, e.run(clustersSubCmd, listSubCmd, "-o", jsonOutput))
	var views []clusterView
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &views))
	return views
}

const seedConfig = `configFileVersion: "1.0"
activeCluster: prod-eu
capellaOrganizations:
  - id: org-1
    endpoint: https://cloudapi.example.com
    accessKey: access
    secretKey: secret
clusters:
  - identifier: local
    hosts: [10.20.30.40, 10.20.30.41]
    password: password
    timeouts:
      management: 30s
  - identifier: prod-eu
    capellaOrganization: org-1
    capellaEnvironment: inVpc
`

func TestConfigSeedsRegistry(t *testing.T) {
	env := newTestEnv(t, seedConfig)

	views := env.listClusters(t)
	require.Len(t, views, 2)

	local := views[0]
	assert.Equal(t, "local", local.Identifier)
	assert.False(t, local.Active)
	assert.Equal(t, []string{"10.20.30.40", "10.20.30.41"}, local.Hosts)
	assert.Equal(t, "Administrator", local.Username)
	assert.Equal(t, (30 * time.Second).String(), local.ManagementTimeout)

	cloud := views[1]
	assert.Equal(t, "prod-eu", cloud.Identifier)
	assert.True(t, cloud.Active)
	assert.Equal(t, "org-1", cloud.CapellaOrganization)
	assert.Equal(t, "inVpc", cloud.CapellaEnvironment)
	assert.Empty(t, cloud.Hosts)

	// credentials are never printed
	assert.NotContains(t, env.out.String(), "password")
	assert.NotContains(t, env.out.String(), "secret")
}

func TestEmptyConfigFile(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Empty(t, env.listClusters(t))
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	env := newTestEnv(t, `clusters:
  - identifier: local
    host: [10.20.30.40]
`)
	err := env.run(clustersSubCmd, listSubCmd)
	require.Error(t, err)
	assert.ErrorContains(t, err, "field host not found")
}

func TestConfigRejectsOtherVersions(t *testing.T) {
	env := newTestEnv(t, `configFileVersion: "2.0"`)
	err := env.run(clustersSubCmd, listSubCmd)
	assert.ErrorContains(t, err, "only version 1.0 is supported")
}

func TestConfigRejectsUnknownOrganization(t *testing.T) {
	env := newTestEnv(t, `clusters:
  - identifier: prod-eu
    capellaOrganization: org-1
`)
	err := env.run(clustersSubCmd, listSubCmd)
	assert.ErrorContains(t, err, "unknown capella organization org-1")
}

func TestMissingExplicitConfigFile(t *testing.T) {
	env := newTestEnv(t, "")
	missing := filepath.Join(t.TempDir(), "nothing.yaml")
	err := env.runArgv([]string{clustersSubCmd, listSubCmd, "--config", missing, "--log-path", env.logPath})
	assert.ErrorContains(t, err, "does not exist")
}

func TestConfigPathFromEnvironment(t *testing.T) {
	env := newTestEnv(t, seedConfig)
	t.Setenv(cbadminConfigEnv, env.configPath)

	err := env.runArgv([]string{clustersSubCmd, listSubCmd, "-o", jsonOutput, "--log-path", env.logPath})
	require.NoError(t, err)
	var views []clusterView
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &views))
	assert.Len(t, views, 2)
	assert.Equal(t, env.configPath, env.l.globals.configPath)
}

func TestLogPathMustBeWritable(t *testing.T) {
	env := newTestEnv(t, "")
	missingDir := filepath.Join(t.TempDir(), "missing", "cbadmin.log")
	err := env.runArgv([]string{clustersSubCmd, listSubCmd, "--config", env.configPath, "--log-path", missingDir})
	assert.ErrorContains(t, err, "does not exist")
}
