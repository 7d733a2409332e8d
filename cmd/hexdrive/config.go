package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mwestcott/hexdrive/internal/config"
)

func newConfigCmd() *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if writePath != "" {
				if err := config.WriteDefault(writePath); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", writePath)
				return nil
			}

			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			os.Stdout.Write(data)
			return nil
		},
	}

	cmd.Flags().StringVar(&writePath, "write", "", "Write the default config to this path")

	return cmd
}
