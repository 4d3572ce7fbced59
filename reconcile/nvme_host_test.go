// Copyright © 2024 The ansible-powerflex authors

package reconcile_test

import (
	"context"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P-Cao/ansible-powerflex/reconcile"
	"github.com/P-Cao/ansible-powerflex/sdk/powerflex"
)

const testNQN = "nqn.2014-08.org.nvmexpress:uuid:79e90a42-47c9-a0f6-d9d3-51c47c72c7c1"

func newNvmeGateway() *fakeGateway {
	return &fakeGateway{
		instances: []powerflex.Sdc{
			{
				ID:             "da8f60fd00010000",
				Name:           "nvme_host_test",
				NQN:            testNQN,
				MaxNumPaths:    3,
				MaxNumSysPorts: 3,
				HostType:       "NVMeHost",
			},
		},
		nextID: "da8f60fd00020000",
	}
}

func nvmeModule(g *fakeGateway) *reconcile.NvmeHostModule {
	return reconcile.NewNvmeHostModule(g.client(), logrus.WithField("test", true))
}

func TestNvmeHostGetByNqn(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)

	result, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NQN:   testNQN,
		State: "present",
	})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	require.NotNil(t, result.NvmeHostDetails)
	assert.Equal(t, "da8f60fd00010000", result.NvmeHostDetails.ID)
	assert.True(t, result.NvmeHostDetails.IsNvmeHost())
}

func TestNvmeHostCreateScenario(t *testing.T) {
	gw := newNvmeGateway()
	gw.instances = nil // no hosts registered yet
	module := nvmeModule(gw)

	result, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NQN:          testNQN,
		NvmeHostName: "example_nvme_host",
		MaxNumPaths:  "4",
		State:        "present",
	})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	require.NotNil(t, result.NvmeHostDetails)
	assert.Equal(t, "da8f60fd00020000", result.NvmeHostDetails.ID)
	assert.Equal(t, "example_nvme_host", result.NvmeHostDetails.Name)

	require.Len(t, gw.createCalls, 1)
	assert.Equal(t, testNQN, gw.createCalls[0].NQN)
	assert.Equal(t, "4", gw.createCalls[0].MaxNumPaths)
}

func TestNvmeHostCreateRequiresNqn(t *testing.T) {
	gw := newNvmeGateway()
	gw.instances = nil
	module := nvmeModule(gw)

	_, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NvmeHostName: "example_nvme_host",
		State:        "present",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, reconcile.ErrResourceNotFound))
	assert.Empty(t, gw.createCalls)
}

func TestNvmeHostNewNameRejectedDuringCreate(t *testing.T) {
	gw := newNvmeGateway()
	gw.instances = nil
	module := nvmeModule(gw)

	_, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NQN:             testNQN,
		NvmeHostNewName: "renamed",
		State:           "present",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, reconcile.ErrInvalidInput))
	assert.Empty(t, gw.createCalls)
}

func TestNvmeHostLimitSameValueNoop(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)

	// maxNumPaths is already 3 on the record; "3" as a string is the same
	// value, so no modify call goes out.
	result, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NQN:         testNQN,
		MaxNumPaths: "3",
		State:       "present",
	})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, gw.modifyCalls)
}

func TestNvmeHostLimitChange(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)

	result, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NvmeHostName: "nvme_host_test",
		MaxNumPaths:  "4",
		State:        "present",
	})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"modifyMaxNumPaths:da8f60fd00010000"}, gw.modifyCalls)
}

func TestNvmeHostSparsePatch(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)

	// Only a rename: both limits stay untouched on the remote record.
	result, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NvmeHostName:    "nvme_host_test",
		NvmeHostNewName: "renamed_host",
		State:           "present",
	})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"da8f60fd00010000"}, gw.renameCalls)
	assert.Empty(t, gw.modifyCalls)
	assert.Equal(t, 3, result.NvmeHostDetails.MaxNumPaths)
	assert.Equal(t, 3, result.NvmeHostDetails.MaxNumSysPorts)
}

func TestNvmeHostRemove(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)

	result, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NvmeHostID: "da8f60fd00010000",
		State:      "absent",
	})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Nil(t, result.NvmeHostDetails)
	assert.Equal(t, []string{"da8f60fd00010000"}, gw.removeCalls)
	assert.Empty(t, gw.instances)
}

func TestNvmeHostRemoveIdempotent(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)
	params := reconcile.NvmeHostParams{NQN: testNQN, State: "absent"}

	first, err := module.Apply(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	second, err := module.Apply(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, []string{"da8f60fd00010000"}, gw.removeCalls)
}

func TestNvmeHostNameAndIDMutuallyExclusive(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)

	_, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NvmeHostName: "nvme_host_test",
		NvmeHostID:   "da8f60fd00010000",
		State:        "present",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, reconcile.ErrInvalidInput))
}

func TestNvmeHostIDNotFound(t *testing.T) {
	gw := newNvmeGateway()
	module := nvmeModule(gw)

	_, err := module.Apply(context.Background(), reconcile.NvmeHostParams{
		NvmeHostID: "nonexistent",
		State:      "present",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, reconcile.ErrResourceNotFound))
}
