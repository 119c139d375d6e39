package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	var apiKey string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Store the AssemblyAI API key in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			envFile := cfg.EnvFilePath()
			out := cmd.OutOrStdout()
			if _, err := os.Stat(envFile); err == nil && !force {
				fmt.Fprintf(out, "Credentials already exist at %s\n", envFile)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}

			key := strings.TrimSpace(apiKey)
			if key == "" {
				fmt.Fprint(out, "Enter your AssemblyAI API key: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read API key: %w", err)
				}
				key = strings.TrimSpace(line)
			}
			if key == "" {
				return errors.New("an API key is required")
			}

			if err := os.WriteFile(envFile, []byte("ASSEMBLYAI_API_KEY="+key+"\n"), 0o600); err != nil {
				return fmt.Errorf("write env file: %w", err)
			}

			fmt.Fprintf(out, "Credentials saved to %s\n", envFile)
			fmt.Fprintf(out, "Data directory: %s\n", cfg.Paths.DataDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "AssemblyAI API key")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing credential file")
	return cmd
}
