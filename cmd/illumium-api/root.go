package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Execute runs the root command
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "illumium-api",
		Short: "API server speaking layered message codecs",
		Long: `illumium-api serves an HTTP API whose request and response bodies are
wrapped in codec layers described by the Content-Type chain, such as
application/vnd.illumium.v1+json+sealedbox+base64. Clients fetch the
server public key, seal their payloads to it, and armor them for
transport; the server strips the layers and answers in kind.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newKeygenCmd())
	return cmd
}
