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
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/couchbaselabs/cbadmin/cbadminops"
	"github.com/couchbaselabs/cbadmin/cbadminops/util"
	"github.com/couchbaselabs/cbadmin/cbadminops/vlog"
)

const CLIVersion = "1.0.0"
const defaultLogFileName = "cbadmin.log"

const (
	cbadminConfigEnv  = "CBADMIN_CONFIG"
	cbadminLogPathEnv = "CBADMIN_LOG_PATH"
	cbadminVerboseEnv = "CBADMIN_VERBOSE"
)

// *Flag is for the flag name, *Key is for viper key name
// They are bound together
const (
	configFlag  = "config"
	configKey   = "config"
	logPathFlag = "log-path"
	logPathKey  = "logPath"
	verboseFlag = "verbose"
	verboseKey  = "verbose"
)

// flags of the individual commands
const (
	clustersFlag          = "clusters"
	bucketFlag            = "bucket"
	outputFlag            = "output"
	hostsFlag             = "hosts"
	usernameFlag          = "username"
	passwordFlag          = "password"
	tlsFlag               = "tls"
	tlsAcceptAllCertsFlag = "tls-accept-all-certs"
	capellaOrgFlag        = "capella-organization"
	capellaEnvFlag        = "capella-environment"
	activeFlag            = "active"
	endpointFlag          = "endpoint"
	accessKeyFlag         = "access-key"
	secretKeyFlag         = "secret-key"
	managementTimeoutFlag = "management-timeout"
	queryTimeoutFlag      = "query-timeout"
	analyticsTimeoutFlag  = "analytics-timeout"
	searchTimeoutFlag     = "search-timeout"
	ramFlag               = "ram"
	replicasFlag          = "replicas"
	flushFlag             = "flush"
	durabilityFlag        = "durability"
	expiryFlag            = "expiry"
)

// flags to viper key map
var flagKeyMap = map[string]string{
	configFlag:  configKey,
	logPathFlag: logPathKey,
	verboseFlag: verboseKey,
}

// viper keys to environment variables
var keyEnvMap = map[string]string{
	configKey:  cbadminConfigEnv,
	logPathKey: cbadminLogPathEnv,
	verboseKey: cbadminVerboseEnv,
}

const (
	clustersSubCmd             = "clusters"
	registerSubCmd             = "register"
	registerOrganizationSubCmd = "register-organization"
	unregisterSubCmd           = "unregister"
	listSubCmd                 = "list"
	useSubCmd                  = "use"
	bucketsSubCmd              = "buckets"
	getSubCmd                  = "get"
	updateSubCmd               = "update"
	querySubCmd                = "query"
	indexesSubCmd              = "indexes"
	shellSubCmd                = "shell"
)

// cmdGlobals holds the values of the flags shared by every command
type cmdGlobals struct {
	configPath string
	logPath    string
	verbose    bool
}

// launcher is the state shared by the commands of one cbadmin process. The
// interactive shell builds a fresh command tree for every line but keeps the
// launcher, so registrations last for the whole session.
type launcher struct {
	globals     cmdGlobals
	viper       *viper.Viper
	registry    *cbadminops.Registry
	logger      vlog.Printer
	out         io.Writer
	argv        []string
	initialized bool
	inShell     bool
}

func makeLauncher(out io.Writer) *launcher {
	return &launcher{
		viper:    viper.New(),
		registry: cbadminops.MakeRegistry(),
		out:      out,
	}
}

// cmdInterface is an interface that every cbadmin command needs to implement
// for making a basic cobra command
type cmdInterface interface {
	Parse(inputArgv []string, logger vlog.Printer) error
	Run(ctx context.Context, vcc cbadminops.ClusterCommands) error
	SetParser(parser *pflag.FlagSet)
	SetPositionalArgs(args []string)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	l := makeLauncher(os.Stdout)
	l.argv = os.Args[1:]
	err := l.makeRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Printf("Error during execution: %s\n", err)
		os.Exit(1)
	}
}

func (l *launcher) makeRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cbadmin",
		Short: "Administer Couchbase clusters",
		Long: `This CLI manages Couchbase clusters through their management REST API.
Clusters can be self-managed (on-prem) or run by Couchbase Capella.

It keeps a registry of known clusters and can:
- Register and unregister clusters and Capella organizations
- Select the active cluster
- Read bucket settings from one or more clusters
- Update bucket settings on one or more clusters
- Run an interactive shell that keeps registrations between commands`,
		Version: CLIVersion,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return l.initialize(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(
		&l.globals.configPath,
		configFlag,
		"c",
		"",
		"Path to the config file",
	)
	markFlagsFileName(rootCmd, map[string][]string{configFlag: {"yaml"}})
	rootCmd.PersistentFlags().StringVarP(
		&l.globals.logPath,
		logPathFlag,
		"l",
		defaultLogPath(),
		"Path location used for the debug logs, - for stderr",
	)
	markFlagsFileName(rootCmd, map[string][]string{logPathFlag: {"log"}})
	rootCmd.PersistentFlags().BoolVar(
		&l.globals.verbose,
		verboseFlag,
		false,
		"Record debug details in the log",
	)

	rootCmd.AddCommand(makeCmdClusters(l))
	rootCmd.AddCommand(makeCmdBuckets(l))
	rootCmd.AddCommand(makeCmdQuery(l))
	rootCmd.AddCommand(makeCmdShell(l))
	return rootCmd
}

func defaultLogPath() string {
	return filepath.Join(os.TempDir(), defaultLogFileName)
}

// initialize binds the global flags, sets up the logger and seeds the
// registry from the config file. It runs once per process.
func (l *launcher) initialize(cmd *cobra.Command) error {
	if l.initialized {
		return nil
	}
	if err := l.configViper(cmd); err != nil {
		return err
	}
	if err := l.setupLogger(); err != nil {
		return err
	}
	if err := l.loadConfig(); err != nil {
		return err
	}
	l.initialized = true
	return nil
}

// configViper resolves the global options in this order:
// user input -> environment variables -> defaults
func (l *launcher) configViper(cmd *cobra.Command) error {
	for flag, key := range flagKeyMap {
		err := l.viper.BindPFlag(key, cmd.Flags().Lookup(flag))
		if err != nil {
			return fmt.Errorf("fail to bind viper key %q to flag %q: %w", key, flag, err)
		}
		env := keyEnvMap[key]
		err = l.viper.BindEnv(key, env)
		if err != nil {
			return fmt.Errorf("fail to bind viper key %q to environment variable %q: %w", key, env, err)
		}
	}

	l.globals.configPath = l.viper.GetString(configKey)
	l.globals.logPath = l.viper.GetString(logPathKey)
	l.globals.verbose = l.viper.GetBool(verboseKey)
	return nil
}

func (l *launcher) setupLogger() error {
	logPath := l.globals.logPath
	if logPath != "" && logPath != vlog.StdoutLogPath {
		absPath, err := util.ResolveToAbsPath(logPath)
		if err != nil {
			return fmt.Errorf("fail to resolve log path %s: %w", logPath, err)
		}
		logDir := filepath.Dir(absPath)
		switch util.CanWriteAccessDir(logDir) {
		case util.FileNotExist:
			return fmt.Errorf("log directory %s does not exist", logDir)
		case util.NoWritePerm:
			return fmt.Errorf("no write permission on log directory %s", logDir)
		}
		logPath = absPath
	}

	l.logger = vlog.Printer{ForCli: true}
	l.logger.SetupWithVerbosityOrDie(logPath, l.globals.verbose)
	return nil
}

func (l *launcher) loadConfig() error {
	configPath, explicit, err := l.resolveConfigPath()
	if err != nil {
		return err
	}
	if !util.CheckPathExist(configPath) {
		if explicit {
			return fmt.Errorf("config file %s does not exist", configPath)
		}
		l.logger.Info("no config file found, starting with an empty registry", "path", configPath)
		return nil
	}

	config, err := readConfig(configPath)
	if err != nil {
		return err
	}
	if err := config.seedRegistry(l.registry); err != nil {
		return fmt.Errorf("fail to load config file %s: %w", configPath, err)
	}
	l.logger.Info("loaded config file", "path", configPath,
		"clusters", len(config.Clusters), "organizations", len(config.CapellaOrganizations))
	return nil
}

// makeVcc will initialize a cbadminops.ClusterCommands which contains a logger
func (l *launcher) makeVcc(cmd *cobra.Command) cbadminops.ClusterCommands {
	vcc := cbadminops.ClusterCommands{
		Log: l.logger.WithName(cmd.CalledAs()),
	}
	vcc.Log.Info("New cbadmin command initialization")
	return vcc
}

// makeBasicCobraCmd can make a basic cobra command for all cbadmin commands.
// It will be called inside cmd_clusters_register.go, cmd_buckets_update.go, ...
func makeBasicCobraCmd(l *launcher, i cmdInterface, use, short, long string, args cobra.PositionalArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			vcc := l.makeVcc(cmd)
			i.SetParser(cmd.Flags())
			i.SetPositionalArgs(args)
			// parseError and runError will be printed by the command invoker.
			// we silence them in cobra for not printing duplicate error messages.
			cmd.SilenceErrors = true
			parseError := i.Parse(l.argv, vcc.Log)
			if parseError != nil {
				vcc.Log.Error(parseError, "fail to parse command")
				return parseError
			}
			runError := i.Run(cmd.Context(), vcc)
			if runError != nil {
				cmd.SilenceUsage = true // don't show usage when the operation has started
				vcc.Log.Error(runError, "fail to run command")
			}
			return runError
		},
	}
	return cmd
}

// markFlagsFileName will require some flags to be filename. It also adds
// file name completion for them.
func markFlagsFileName(cmd *cobra.Command, flagsWithExts map[string][]string) {
	for flag, ext := range flagsWithExts {
		err := cmd.MarkPersistentFlagFilename(flag, ext...)
		if err != nil {
			fmt.Printf("Warning: fail to mark flag %q to be a file name\n", flag)
		}
	}
}
