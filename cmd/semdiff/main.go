// Package main contains semdiff's root command.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/semdiff/semdiff/internal/pkg/cli"
	"github.com/semdiff/semdiff/internal/pkg/term/color"
	"github.com/semdiff/semdiff/internal/pkg/term/log"
)

type exitCodeError interface {
	ExitCode() int
}

func init() {
	color.DisableColorBasedOnEnvVar()
	cobra.EnableCommandSorting = false
}

func main() {
	cmd := buildRootCmd()
	if err := cmd.Execute(); err != nil {
		var exitCodeErr exitCodeError
		if errors.As(err, &exitCodeErr) {
			os.Exit(exitCodeErr.ExitCode())
		}
		log.Errorln(err.Error())
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "semdiff",
		Short:         "Compare two filesystem trees and report semantic differences.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(log.OutputWriter)
	cmd.SetErr(log.DiagnosticWriter)

	cmd.AddCommand(cli.BuildCompareCmd())
	cmd.AddCommand(cli.BuildVersionCmd())

	return cmd
}
