package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "matchctl"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "matchctl ranks freelancers for a project, or projects for a freelancer",
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "give up ranking after this long")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	if err := viper.BindEnv("timeout", "MATCH_TIMEOUT"); err != nil {
		log.Fatalf("binding MATCH_TIMEOUT environment variable: %v", err)
	}
}

func initConfig() {
	// The database and engine settings come from the same .env as the server.
	_ = godotenv.Load()
}
