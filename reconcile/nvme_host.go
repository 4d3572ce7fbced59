// Copyright © 2024 The ansible-powerflex authors

package reconcile

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/P-Cao/ansible-powerflex/sdk/powerflex"
)

// Tunable limit names of the NVMe host kind.
const (
	LimitMaxNumPaths    = "max_num_paths"
	LimitMaxNumSysPorts = "max_num_sys_ports"
)

// NvmeHostParams is the declarative surface of the NVMe host module. The
// host is selected by name, id or NQN; the NQN doubles as the creation
// token when no host matches. NvmeHostName and NvmeHostID are mutually
// exclusive. The limit values are strings and compared string-normalized
// against the current record.
type NvmeHostParams struct {
	NvmeHostName    string `json:"nvme_host_name,omitempty" yaml:"nvme_host_name,omitempty"`
	NvmeHostID      string `json:"nvme_host_id,omitempty" yaml:"nvme_host_id,omitempty"`
	NQN             string `json:"nqn,omitempty" yaml:"nqn,omitempty"`
	NvmeHostNewName string `json:"nvme_host_new_name,omitempty" yaml:"nvme_host_new_name,omitempty"`
	MaxNumPaths     string `json:"max_num_paths,omitempty" yaml:"max_num_paths,omitempty"`
	MaxNumSysPorts  string `json:"max_num_sys_ports,omitempty" yaml:"max_num_sys_ports,omitempty"`
	State           string `json:"state" yaml:"state"`
}

// NvmeHostResult is returned by every NVMe host module invocation.
type NvmeHostResult struct {
	Changed         bool           `json:"changed"`
	NvmeHostDetails *powerflex.Sdc `json:"nvme_host_details"`
}

// NvmeHostModule manages NVMe hosts declaratively: create, get, rename,
// limit tuning and removal.
type NvmeHostModule struct {
	reconciler *Reconciler
}

// NewNvmeHostModule builds the NVMe host module on top of an authenticated
// gateway client.
func NewNvmeHostModule(client *powerflex.Client, log *logrus.Entry) *NvmeHostModule {
	spec := KindSpec{
		Kind: "NVMe host",
		Selectors: []Selector{
			{Field: "name", Value: func(i Identifier) string { return i.Name }},
			{Field: "nqn", Value: func(i Identifier) string { return i.NQN }},
			{Field: "id", Value: func(i Identifier) string { return i.ID }},
		},
		AllowDelete: true,
		CreateToken: func(i Identifier) string { return i.NQN },
	}
	return &NvmeHostModule{reconciler: NewReconciler(spec, &nvmeHostAPI{client: client}, log)}
}

// Apply converges the NVMe host to the requested state and reports the
// outcome.
func (m *NvmeHostModule) Apply(ctx context.Context, params NvmeHostParams) (NvmeHostResult, error) {
	state, err := ParseState(params.State)
	if err != nil {
		return NvmeHostResult{}, err
	}
	if err := exactlyOneSelector(params.NvmeHostName, params.NvmeHostID); err != nil {
		return NvmeHostResult{}, err
	}

	ident := Identifier{Name: params.NvmeHostName, ID: params.NvmeHostID, NQN: params.NQN}
	desired := DesiredState{
		State:   state,
		NewName: params.NvmeHostNewName,
		Limits: map[string]string{
			LimitMaxNumPaths:    params.MaxNumPaths,
			LimitMaxNumSysPorts: params.MaxNumSysPorts,
		},
	}

	outcome, err := m.reconciler.Reconcile(ctx, ident, desired)
	result := NvmeHostResult{Changed: outcome.Changed}
	if err != nil {
		return result, err
	}
	if outcome.Resource != nil {
		if sdc, ok := outcome.Resource.Details.(powerflex.Sdc); ok {
			result.NvmeHostDetails = &sdc
		}
	}
	return result, nil
}

// nvmeHostAPI binds the generic reconciler contract to the gateway. NVMe
// hosts are read and removed through the Sdc instance collection but
// created and tuned through Host actions.
type nvmeHostAPI struct {
	client *powerflex.Client
}

func (a *nvmeHostAPI) List(ctx context.Context, field, value string) ([]Resource, error) {
	sdcs, err := a.client.Sdc.Get(ctx, map[string]string{field: value})
	if err != nil {
		return nil, err
	}
	resources := make([]Resource, 0, len(sdcs))
	for _, sdc := range sdcs {
		resources = append(resources, Resource{
			ID:   sdc.ID,
			Name: sdc.Name,
			Limits: map[string]string{
				LimitMaxNumPaths:    strconv.Itoa(sdc.MaxNumPaths),
				LimitMaxNumSysPorts: strconv.Itoa(sdc.MaxNumSysPorts),
			},
			Details: sdc,
		})
	}
	return resources, nil
}

func (a *nvmeHostAPI) Create(ctx context.Context, ident Identifier, desired DesiredState) (*Resource, error) {
	// Renaming only applies to an existing host; creation takes the name
	// directly.
	if desired.NewName != "" {
		return nil, errors.Wrapf(ErrInvalidInput,
			"nvme_host_new_name is not supported during creation, rename the NVMe host after it is created")
	}
	id, err := a.client.Host.Create(ctx, powerflex.CreateHostParams{
		NQN:            ident.NQN,
		Name:           ident.Name,
		MaxNumPaths:    desired.Limits[LimitMaxNumPaths],
		MaxNumSysPorts: desired.Limits[LimitMaxNumSysPorts],
	})
	if err != nil {
		return nil, err
	}
	return &Resource{ID: id}, nil
}

func (a *nvmeHostAPI) Rename(ctx context.Context, id, name string) error {
	return a.client.Sdc.Rename(ctx, id, name)
}

func (a *nvmeHostAPI) ModifyLimit(ctx context.Context, id, limit, value string) error {
	switch limit {
	case LimitMaxNumPaths:
		return a.client.Host.ModifyMaxNumPaths(ctx, id, value)
	case LimitMaxNumSysPorts:
		return a.client.Host.ModifyMaxNumSysPorts(ctx, id, value)
	default:
		return errors.Wrapf(ErrInvalidInput, "NVMe host has no tunable limit %q", limit)
	}
}

func (a *nvmeHostAPI) Delete(ctx context.Context, id string) error {
	return a.client.Sdc.Delete(ctx, id)
}

func (a *nvmeHostAPI) Children(ctx context.Context, id string) ([]Child, error) {
	return nil, nil
}
