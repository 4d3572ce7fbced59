// Copyright © 2024 The ansible-powerflex authors

// Package cli implements pfxctl, a declarative command line for managing
// SDCs and NVMe hosts on a Dell PowerFlex system.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/P-Cao/ansible-powerflex/sdk/powerflex"
)

var cfgFile string
var Config config

type config struct {
	Gateway  string
	Username string
	Password string
	Insecure bool
	logLevel logrus.Level
}

func parseLogLevel(logLevel string) (logrus.Level, error) {
	switch strings.ToLower(logLevel) {
	case "trace":
		return logrus.TraceLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	case "fatal":
		return logrus.FatalLevel, nil
	case "panic":
		return logrus.PanicLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %s", logLevel)
	}
}

func (c *config) ParseConfig() {
	c.Gateway = viper.GetString("gateway")   // default: none, required
	c.Username = viper.GetString("username") // default: admin
	c.Password = viper.GetString("password")
	c.Insecure = viper.GetBool("insecure")
	logLevel := logrus.InfoLevel
	env_logLevel := os.Getenv("LOG_LEVEL")
	if env_logLevel != "" {
		currLevel, err := parseLogLevel(env_logLevel)
		if err != nil {
			logrus.Error(err)
		} else {
			logLevel = currLevel
		}
	} else if viper.GetString("log_level") != "" {
		currLevel, err := parseLogLevel(viper.GetString("log_level"))
		if err != nil {
			logrus.Error(err)
		} else {
			logLevel = currLevel
		}
	}
	c.logLevel = logLevel
}

var rootCmd = &cobra.Command{
	Use:   "pfxctl",
	Short: "manage SDCs and NVMe hosts on a PowerFlex system",
	Long: "pfxctl applies a desired state to SDC and NVMe host objects on a " +
		"PowerFlex system: get, rename, create, tune limits and remove, " +
		"reporting whether anything changed.",
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.pfxctl.yaml)")
	rootCmd.PersistentFlags().StringP("gateway", "g", "", "PowerFlex gateway URL, e.g. https://gateway.example.com")
	rootCmd.PersistentFlags().StringP("username", "U", "admin", "gateway username")
	rootCmd.PersistentFlags().StringP("password", "P", "", "gateway password")
	rootCmd.PersistentFlags().BoolP("insecure", "i", false, "skip gateway certificate verification")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".pfxctl")
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("PFX")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		logrus.Debug("using config file: ", viper.ConfigFileUsed())
	}
	Config.ParseConfig()
	logrus.SetLevel(Config.logLevel)
}

// populateAccessFromCmd lets flags override whatever the config file or
// environment provided.
func populateAccessFromCmd(cmd *cobra.Command) {
	if val, err := cmd.Flags().GetString("gateway"); err == nil && val != "" {
		Config.Gateway = val
	}
	if val, err := cmd.Flags().GetString("username"); err == nil && val != "" {
		Config.Username = val
	}
	if val, err := cmd.Flags().GetString("password"); err == nil && val != "" {
		Config.Password = val
	}
	if val, err := cmd.Flags().GetBool("insecure"); err == nil && val {
		Config.Insecure = val
	}
}

// connect builds a gateway client from the resolved configuration and logs
// in.
func connect(ctx context.Context, cmd *cobra.Command) (*powerflex.Client, error) {
	populateAccessFromCmd(cmd)
	if Config.Gateway == "" {
		return nil, fmt.Errorf("gateway URL is required, set --gateway, PFX_GATEWAY or the config file")
	}
	client := powerflex.NewClient(Config.Gateway, Config.Insecure)
	if err := client.Authenticate(ctx, Config.Username, Config.Password); err != nil {
		return nil, fmt.Errorf("failed to authenticate with gateway %s: %w", Config.Gateway, err)
	}
	logrus.Debugf("authenticated with gateway %s as %s", Config.Gateway, Config.Username)
	return client, nil
}

func Execute() error {
	logLevel := logrus.InfoLevel
	env_logLevel := os.Getenv("LOG_LEVEL")
	if env_logLevel != "" {
		currLevel, err := parseLogLevel(env_logLevel)
		if err != nil {
			logrus.Error(err)
		} else {
			logLevel = currLevel
		}
	}
	logrus.SetLevel(logLevel)
	return rootCmd.Execute()
}
