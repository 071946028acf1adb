package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agisfl/agisfl/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	noColor      bool
	serverURL    string
	apiClient    *client.Client
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agisfl",
		Short: "AgisFL CLI - Federated Learning Security Operations Platform",
		Long: `AgisFL CLI provides command-line access to the AgisFL platform
for tracking security incidents, mitigating detected threats, inspecting
system telemetry, and controlling the federated learning coordinator.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case isConfigCommand(cmd):
				return nil
			case cmd.Name() == "login" || cmd.Name() == "register":
				return initClient()
			default:
				return initAuthenticatedClient()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(loadConfig)

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.agisfl/config.yaml)")
	pf.StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", pf.Lookup("output"))
	_ = viper.BindPFlag("server_url", pf.Lookup("server"))

	root.AddCommand(
		newAuthCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newIncidentCmd(),
		newThreatCmd(),
		newSystemCmd(),
		newInsightCmd(),
		newFLCmd(),
	)

	return root
}

// isConfigCommand reports whether cmd manages local configuration and
// therefore needs no API client.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func loadConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".agisfl"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("AGISFL")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	base := viper.GetString("server_url")
	if serverURL != "" {
		base = serverURL
	}

	apiClient = client.NewClient(client.Config{BaseURL: base})
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}

	token := viper.GetString("auth.token")
	if token == "" {
		return fmt.Errorf("not authenticated, run 'agisfl auth login' first")
	}

	apiClient.SetToken(token)
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
