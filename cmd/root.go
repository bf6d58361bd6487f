/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "final-bnn",
	Short: "ASN KGB/Pangkat record service",
	Long: `final-bnn is the backend for the ASN personnel record tool.

It tracks periodic salary-step increases (KGB, every 2 years) and rank
promotions (Pangkat, every 4 years), and serves reminder listings for
records coming due.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
