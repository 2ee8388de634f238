// Package main provides the vrs-annotate command-line tool: a VCF annotator
// plus ad hoc identify/translate/config utilities built on the core VRS
// packages (spec §6.4).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes (spec §6.4: "0 success; 2 CLI misuse; 3 data-proxy
// unreachable; 4 per-record failures exceed tolerance").
const (
	ExitSuccess           = 0
	ExitUsage             = 2
	ExitDataProxyDown     = 3
	ExitToleranceExceeded = 4
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if ce, ok := err.(*cliError); ok {
			return ce.code
		}
		return ExitUsage
	}
	return ExitSuccess
}

// cliError carries a specific exit code through cobra's error-returning
// RunE, since cobra itself only distinguishes "error" from "no error".
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func exitError(code int, err error) error {
	return &cliError{code: code, err: err}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vrs-annotate",
		Short: "Annotate VCF records with GA4GH VRS identifiers",
		Long: `vrs-annotate computes and attaches GA4GH VRS identifiers to VCF records,
and exposes the underlying identify/translate operations directly.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default: ~/.vrs-annotate.yaml)")
	viper.BindPFlag("config_file", cmd.PersistentFlags().Lookup("config"))
	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newAnnotateCmd())
	cmd.AddCommand(newIdentifyCmd())
	cmd.AddCommand(newTranslateCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() {
	if cfgFile := viper.GetString("config_file"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".vrs-annotate")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
