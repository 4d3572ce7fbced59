// Copyright © 2024 The ansible-powerflex authors

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/P-Cao/ansible-powerflex/reconcile"
	"github.com/P-Cao/ansible-powerflex/utils/tableprinter"
)

var sdcCmd = &cobra.Command{
	Use:   "sdc",
	Short: "manage SDCs",
	Long:  "get details of an SDC and rename it, selected by name, id or ip",
}

func sdcParamsFromCmd(cmd *cobra.Command) reconcile.SdcParams {
	params := reconcile.SdcParams{}
	if val, err := cmd.Flags().GetString("sdc-name"); err == nil {
		params.SdcName = val
	}
	if val, err := cmd.Flags().GetString("sdc-id"); err == nil {
		params.SdcID = val
	}
	if val, err := cmd.Flags().GetString("sdc-ip"); err == nil {
		params.SdcIP = val
	}
	if val, err := cmd.Flags().GetString("new-name"); err == nil {
		params.SdcNewName = val
	}
	if val, err := cmd.Flags().GetString("state"); err == nil {
		params.State = val
	}
	return params
}

var getSdcCmd = &cobra.Command{
	Use:   "get",
	Short: "get SDC details",
	Long:  "get SDC details including its mapped volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := connect(ctx, cmd)
		if err != nil {
			return err
		}

		params := sdcParamsFromCmd(cmd)
		params.SdcNewName = ""
		params.State = string(reconcile.StatePresent)

		module := reconcile.NewSdcModule(client, logrus.WithField("module", "sdc"))
		result, err := module.Apply(ctx, params)
		if err != nil {
			return err
		}

		b, err := json.MarshalIndent(result.SdcDetails, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal SDC details: %w", err)
		}
		fmt.Println(string(b))
		if len(result.SdcDetails.MappedVolumes) > 0 {
			fmt.Println("\nMapped volumes:")
			return tableprinter.Print(cmd.OutOrStdout(), result.SdcDetails.MappedVolumes, "ID", "Name", "VolumeType", "SizeInKb")
		}
		return nil
	},
}

var applySdcCmd = &cobra.Command{
	Use:   "apply",
	Short: "apply a desired state to an SDC",
	Long:  "apply a desired state to an SDC: rename when --new-name is set, fail on --state absent since SDC removal is not permitted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := connect(ctx, cmd)
		if err != nil {
			return err
		}

		module := reconcile.NewSdcModule(client, logrus.WithField("module", "sdc"))
		result, err := module.Apply(ctx, sdcParamsFromCmd(cmd))
		if err != nil {
			return err
		}

		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sdcCmd)
	sdcCmd.PersistentFlags().StringP("sdc-name", "n", "", "name of the SDC")
	sdcCmd.PersistentFlags().StringP("sdc-id", "d", "", "id of the SDC")
	sdcCmd.PersistentFlags().StringP("sdc-ip", "a", "", "ip of the SDC")
	applySdcCmd.Flags().StringP("new-name", "r", "", "new name of the SDC")
	applySdcCmd.Flags().StringP("state", "s", "present", "desired state: present or absent")
	sdcCmd.AddCommand(getSdcCmd, applySdcCmd)
}
