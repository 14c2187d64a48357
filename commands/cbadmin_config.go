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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
)

const (
	// If no config file was provided, we will pick a default one. This is the
	// default file name that we'll use.
	defConfigFileName        = "cbadmin.yaml"
	defConfigDirName         = "cbadmin"
	currentConfigFileVersion = "1.0"
)

// Config is the struct of cbadmin.yaml
type Config struct {
	Version              string                       `yaml:"configFileVersion"`
	ActiveCluster        string                       `yaml:"activeCluster,omitempty"`
	CapellaOrganizations []*CapellaOrganizationConfig `yaml:"capellaOrganizations,omitempty"`
	Clusters             []*ClusterConfig             `yaml:"clusters,omitempty"`
}

// CapellaOrganizationConfig holds the API credentials of one Capella
// organization
type CapellaOrganizationConfig struct {
	ID        string `yaml:"id"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// ClusterConfig describes one cluster to register at start-up
type ClusterConfig struct {
	Identifier          string         `yaml:"identifier"`
	Hosts               []string       `yaml:"hosts,omitempty"`
	Username            string         `yaml:"username,omitempty"`
	Password            string         `yaml:"password,omitempty"`
	TLS                 bool           `yaml:"tls,omitempty"`
	TLSAcceptAllCerts   bool           `yaml:"tlsAcceptAllCerts,omitempty"`
	CapellaOrganization string         `yaml:"capellaOrganization,omitempty"`
	CapellaEnvironment  string         `yaml:"capellaEnvironment,omitempty"`
	Timeouts            TimeoutsConfig `yaml:"timeouts,omitempty"`
}

// TimeoutsConfig holds durations such as "30s"; missing values use the
// defaults
type TimeoutsConfig struct {
	Management time.Duration `yaml:"management,omitempty"`
	Query      time.Duration `yaml:"query,omitempty"`
	Analytics  time.Duration `yaml:"analytics,omitempty"`
	Search     time.Duration `yaml:"search,omitempty"`
}

// resolveConfigPath picks the config file. The order of precedence is:
//  1. --config
//  2. CBADMIN_CONFIG
//  3. $HOME/.config/cbadmin/cbadmin.yaml
//
// explicit is false for the default location, which may be missing.
func (l *launcher) resolveConfigPath() (configPath string, explicit bool, err error) {
	if l.globals.configPath != "" {
		configPath, err = util.ResolveToAbsPath(l.globals.configPath)
		if err != nil {
			return "", true, fmt.Errorf("fail to resolve config path %s: %w", l.globals.configPath, err)
		}
		return configPath, true, nil
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", false, fmt.Errorf("fail to find the user config directory: %w", err)
	}
	return filepath.Join(cfgDir, defConfigDirName, defConfigFileName), false, nil
}

// readConfig parses cbadmin.yaml. Unknown keys are rejected so that typos
// do not silently drop settings.
func readConfig(configPath string) (*Config, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("fail to read config file %s: %w", configPath, err)
	}

	config := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("fail to parse config file %s: %w", configPath, err)
	}
	if config.Version != "" && config.Version != currentConfigFileVersion {
		return nil, fmt.Errorf("config file %s has version %s, only version %s is supported",
			configPath, config.Version, currentConfigFileVersion)
	}
	return config, nil
}

// seedRegistry registers the organizations, then the clusters, then selects
// the active cluster
func (c *Config) seedRegistry(registry *cbadminops.Registry) error {
	for _, orgConfig := range c.CapellaOrganizations {
		client, err := cbadminops.MakeCapellaClient(cbadminops.CapellaClientOptions{
			Endpoint:       orgConfig.Endpoint,
			OrganizationID: orgConfig.ID,
			AccessKey:      orgConfig.AccessKey,
			SecretKey:      orgConfig.SecretKey,
		})
		if err != nil {
			return err
		}
		err = registry.RegisterOrganization(&cbadminops.CloudOrganization{ID: orgConfig.ID, Client: client})
		if err != nil {
			return err
		}
	}

	for _, clusterConfig := range c.Clusters {
		cluster, err := clusterConfig.toRemoteCluster()
		if err != nil {
			return err
		}
		if err := registry.Register(clusterConfig.Identifier, cluster); err != nil {
			return err
		}
	}

	if c.ActiveCluster != "" {
		return registry.SetActive(c.ActiveCluster)
	}
	return nil
}

func (cc *ClusterConfig) toRemoteCluster() (cbadminops.RemoteCluster, error) {
	cluster := cbadminops.RemoteCluster{
		Identifier:        cc.Identifier,
		Hosts:             cc.Hosts,
		Username:          cc.Username,
		Password:          cc.Password,
		TLSEnabled:        cc.TLS,
		TLSAcceptAllCerts: cc.TLSAcceptAllCerts,
		Timeouts: cbadminops.MakeDefaultClusterTimeouts().Merge(cbadminops.ClusterTimeouts{
			Management: cc.Timeouts.Management,
			Query:      cc.Timeouts.Query,
			Analytics:  cc.Timeouts.Analytics,
			Search:     cc.Timeouts.Search,
		}),
	}
	if cluster.Username == "" {
		cluster.Username = util.DefaultUsername
	}
	if cc.CapellaOrganization != "" {
		env, err := cbadminops.ParseCapellaEnvironment(cc.CapellaEnvironment)
		if err != nil {
			return cluster, fmt.Errorf("cluster %s: %w", cc.Identifier, err)
		}
		cluster.CloudRef = &cbadminops.CloudRef{OrganizationID: cc.CapellaOrganization, Environment: env}
	}
	return cluster, nil
}
