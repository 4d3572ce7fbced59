// Copyright © 2024 The ansible-powerflex authors

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskFile = `
- name: Rename SDC
  sdc:
    sdc_name: centos_sdc
    sdc_new_name: centos_sdc_renamed
    state: present

- name: Create NVMe host
  nvme_host:
    nqn: nqn.2014-08.org.nvmexpress:uuid:79e90a42-47c9-a0f6-d9d3-51c47c72c7c1
    nvme_host_name: example_nvme_host
    max_num_paths: "4"
    state: present
`

func TestLoadTasks(t *testing.T) {
	tasks, err := LoadTasks([]byte(taskFile))
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	require.NotNil(t, tasks[0].Sdc)
	assert.Equal(t, "Rename SDC", tasks[0].Name)
	assert.Equal(t, "centos_sdc", tasks[0].Sdc.SdcName)
	assert.Equal(t, "centos_sdc_renamed", tasks[0].Sdc.SdcNewName)
	assert.Equal(t, "present", tasks[0].Sdc.State)

	require.NotNil(t, tasks[1].NvmeHost)
	assert.Equal(t, "example_nvme_host", tasks[1].NvmeHost.NvmeHostName)
	assert.Equal(t, "4", tasks[1].NvmeHost.MaxNumPaths)
}

func TestLoadTasksRejectsAmbiguousEntries(t *testing.T) {
	both := `
- sdc:
    sdc_name: a
    state: present
  nvme_host:
    nqn: b
    state: present
`
	_, err := LoadTasks([]byte(both))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")

	neither := `
- name: does nothing
`
	_, err = LoadTasks([]byte(neither))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestLoadTasksRejectsGarbage(t *testing.T) {
	_, err := LoadTasks([]byte(`{not yaml`))
	require.Error(t, err)
}
