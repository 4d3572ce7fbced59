// Copyright © 2024 The ansible-powerflex authors

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/P-Cao/ansible-powerflex/reconcile"
	"github.com/P-Cao/ansible-powerflex/sdk/powerflex"
	"github.com/P-Cao/ansible-powerflex/utils/tableprinter"
)

// Task is one desired-state entry in a task file. Exactly one of Sdc and
// NvmeHost must be set.
type Task struct {
	Name     string                    `yaml:"name,omitempty"`
	Sdc      *reconcile.SdcParams      `yaml:"sdc,omitempty"`
	NvmeHost *reconcile.NvmeHostParams `yaml:"nvme_host,omitempty"`
}

// TaskOutcome is the per-task row of the apply summary.
type TaskOutcome struct {
	Task    string
	Kind    string
	Changed bool
}

// LoadTasks parses a task file.
func LoadTasks(data []byte) ([]Task, error) {
	var tasks []Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, errors.Wrap(err, "failed to parse task file")
	}
	for i, task := range tasks {
		if (task.Sdc == nil) == (task.NvmeHost == nil) {
			return nil, errors.Errorf("task %d: exactly one of 'sdc' and 'nvme_host' must be set", i+1)
		}
	}
	return tasks, nil
}

func runTasks(ctx context.Context, client *powerflex.Client, tasks []Task) ([]TaskOutcome, error) {
	sdcModule := reconcile.NewSdcModule(client, logrus.WithField("module", "sdc"))
	nvmeModule := reconcile.NewNvmeHostModule(client, logrus.WithField("module", "nvme_host"))

	var outcomes []TaskOutcome
	for i, task := range tasks {
		name := task.Name
		if name == "" {
			name = fmt.Sprintf("task %d", i+1)
		}
		logrus.Infof("applying %s", name)

		switch {
		case task.Sdc != nil:
			result, err := sdcModule.Apply(ctx, *task.Sdc)
			if err != nil {
				return outcomes, errors.Wrapf(err, "%s failed", name)
			}
			outcomes = append(outcomes, TaskOutcome{Task: name, Kind: "sdc", Changed: result.Changed})
		case task.NvmeHost != nil:
			result, err := nvmeModule.Apply(ctx, *task.NvmeHost)
			if err != nil {
				return outcomes, errors.Wrapf(err, "%s failed", name)
			}
			outcomes = append(outcomes, TaskOutcome{Task: name, Kind: "nvme_host", Changed: result.Changed})
		}
	}
	return outcomes, nil
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "apply a task file of desired states",
	Long:  "apply sdc and nvme_host desired states from a YAML task file, in order, stopping on the first failure",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := cmd.Flags().GetString("file")
		if err != nil || file == "" {
			return fmt.Errorf("a task file is required, set --file")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "failed to read task file %s", file)
		}
		tasks, err := LoadTasks(data)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := connect(ctx, cmd)
		if err != nil {
			return err
		}

		outcomes, runErr := runTasks(ctx, client, tasks)
		if len(outcomes) > 0 {
			if err := tableprinter.Print(cmd.OutOrStdout(), outcomes); err != nil {
				logrus.Error(err)
			}
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("file", "f", "", "YAML task file to apply")
}
