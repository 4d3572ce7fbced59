// Copyright © 2024 The ansible-powerflex authors

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/P-Cao/ansible-powerflex/reconcile"
)

var nvmeHostCmd = &cobra.Command{
	Use:   "nvme-host",
	Short: "manage NVMe hosts",
	Long:  "create, get, rename, tune and remove NVMe hosts, selected by name, id or nqn",
}

func nvmeHostParamsFromCmd(cmd *cobra.Command) reconcile.NvmeHostParams {
	params := reconcile.NvmeHostParams{}
	if val, err := cmd.Flags().GetString("name"); err == nil {
		params.NvmeHostName = val
	}
	if val, err := cmd.Flags().GetString("id"); err == nil {
		params.NvmeHostID = val
	}
	if val, err := cmd.Flags().GetString("nqn"); err == nil {
		params.NQN = val
	}
	if val, err := cmd.Flags().GetString("new-name"); err == nil {
		params.NvmeHostNewName = val
	}
	if val, err := cmd.Flags().GetString("max-num-paths"); err == nil {
		params.MaxNumPaths = val
	}
	if val, err := cmd.Flags().GetString("max-num-sys-ports"); err == nil {
		params.MaxNumSysPorts = val
	}
	if val, err := cmd.Flags().GetString("state"); err == nil {
		params.State = val
	}
	return params
}

var getNvmeHostCmd = &cobra.Command{
	Use:   "get",
	Short: "get NVMe host details",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := connect(ctx, cmd)
		if err != nil {
			return err
		}

		params := nvmeHostParamsFromCmd(cmd)
		params.State = string(reconcile.StatePresent)

		module := reconcile.NewNvmeHostModule(client, logrus.WithField("module", "nvme_host"))
		result, err := module.Apply(ctx, params)
		if err != nil {
			return err
		}

		b, err := json.MarshalIndent(result.NvmeHostDetails, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal NVMe host details: %w", err)
		}
		fmt.Println(string(b))
		return nil
	},
}

var applyNvmeHostCmd = &cobra.Command{
	Use:   "apply",
	Short: "apply a desired state to an NVMe host",
	Long: "apply a desired state to an NVMe host: create when no host matches and an nqn " +
		"is given, rename and tune limits when one does, remove on --state absent",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := connect(ctx, cmd)
		if err != nil {
			return err
		}

		module := reconcile.NewNvmeHostModule(client, logrus.WithField("module", "nvme_host"))
		result, err := module.Apply(ctx, nvmeHostParamsFromCmd(cmd))
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
	rootCmd.AddCommand(nvmeHostCmd)
	nvmeHostCmd.PersistentFlags().StringP("name", "n", "", "name of the NVMe host")
	nvmeHostCmd.PersistentFlags().StringP("id", "d", "", "id of the NVMe host")
	nvmeHostCmd.PersistentFlags().StringP("nqn", "q", "", "NQN of the NVMe host, required for creation")
	applyNvmeHostCmd.Flags().StringP("new-name", "r", "", "new name of the NVMe host")
	applyNvmeHostCmd.Flags().String("max-num-paths", "", "maximum number of paths per volume")
	applyNvmeHostCmd.Flags().String("max-num-sys-ports", "", "maximum number of ports per protection domain")
	applyNvmeHostCmd.Flags().StringP("state", "s", "present", "desired state: present or absent")
	nvmeHostCmd.AddCommand(getNvmeHostCmd, applyNvmeHostCmd)
}
