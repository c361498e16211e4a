package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hirewatch/hirewatch/internal/utils"
	"github.com/hirewatch/hirewatch/pkg/api"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	 _     _                        _       _
	| |__ (_)_ __ _____      ____ _| |_ ___| |__
	| '_ \| | '__/ _ \ \ /\ / / _' | __/ __| '_ \
	| | | | | | |  __/\ V  V / (_| | || (__| | | |
	|_| |_|_|_|  \___| \_/\_/ \__,_|\__\___|_| |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hirewatch",
	Short: "A terminal companion for the AI Role Matcher backend.",
	Long: LOGO + `hirewatch mirrors the AI Role Matcher's candidates, roles, matches and
offers into a local session, drives the matching and offer workflows, and
falls back to a built-in demo dataset when the backend is unreachable.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hirewatch.yaml)")

	// Global flags
	rootCmd.PersistentFlags().String("base-url", api.DefaultBaseURL, "Backend API base URL")
	rootCmd.PersistentFlags().Duration("timeout", api.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().Bool("demo", false, "Skip the backend and run on the built-in demo dataset")

	viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("api.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// .env files are a local-dev convenience; a missing one is fine
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".hirewatch")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("hirewatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.hirewatch.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("api.upload_timeout", "")
	viper.SetDefault("workflow.refresh_delay", "")
	viper.SetDefault("server.username", "")
	viper.SetDefault("server.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
