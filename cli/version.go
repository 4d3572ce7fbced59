// Copyright © 2024 The ansible-powerflex authors

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "show version",
	Long:  "show the pfxctl version and, with --remote, the gateway API version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("pfxctl version", Version)
		remote, err := cmd.Flags().GetBool("remote")
		if err != nil || !remote {
			return nil
		}
		client, err := connect(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		apiVersion, err := client.Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("gateway API version", apiVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("remote", false, "also query the gateway API version")
}
