// Package cmd implements the clctl CLI commands.
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/ktnkk/crosslist/internal/api/client"
)

var (
	cfgFile string
	cliLog  = log.NewWithOptions(os.Stderr, log.Options{})

	rootCmd = &cobra.Command{
		Use:   "clctl",
		Short: "CLI client for the crosslist API",
		Long: "clctl is a command-line client for the crosslist API.\n" +
			"It lets you manage marketplace credentials, register products\n" +
			"on eBay, and calculate international shipping costs.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.clctl.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("token", "", "API access token")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(itemCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(shippingCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".clctl")
	}

	viper.SetEnvPrefix("CLCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		cliLog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	opts := []apiclient.Option{}
	if token := viper.GetString("token"); token != "" {
		opts = append(opts, apiclient.WithToken(token))
	}
	return apiclient.New(viper.GetString("server"), opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
