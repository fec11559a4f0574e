package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tourplan/internal/client"
)

// NewRootCmd builds the tourctl command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "tourctl",
		Short: "tourctl - terminal client for the One-Day Tour Planning Assistant",
		Long: `tourctl talks to the tour planning API. Chat to collect your trip
preferences, save them under a user id, then ask for an optimized itinerary.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tourctl.yaml)")
	flags.String("server", "http://localhost:8000", "tour planning API URL")
	flags.String("token", "", "Firebase ID token sent as a bearer token")
	flags.Duration("timeout", 2*time.Minute, "per-request timeout")
	_ = v.BindPFlag("server", flags.Lookup("server"))
	_ = v.BindPFlag("token", flags.Lookup("token"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))

	newClient := func() *client.Client {
		c := client.NewClient(v.GetString("server"), v.GetDuration("timeout"))
		c.Token = v.GetString("token")
		return c
	}

	root.AddCommand(
		newChatCmd(newClient),
		newWeatherCmd(newClient),
		newOptimizeCmd(newClient),
		newPrefsCmd(newClient),
		newSessionCmd(newClient),
	)
	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("TOURCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(".tourctl")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
