// Copyright © 2024 The ansible-powerflex authors

package reconcile

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/P-Cao/ansible-powerflex/sdk/powerflex"
)

// SdcParams is the declarative surface of the SDC module. Exactly one of
// SdcName, SdcID and SdcIP selects the SDC.
type SdcParams struct {
	SdcName    string `json:"sdc_name,omitempty" yaml:"sdc_name,omitempty"`
	SdcID      string `json:"sdc_id,omitempty" yaml:"sdc_id,omitempty"`
	SdcIP      string `json:"sdc_ip,omitempty" yaml:"sdc_ip,omitempty"`
	SdcNewName string `json:"sdc_new_name,omitempty" yaml:"sdc_new_name,omitempty"`
	State      string `json:"state" yaml:"state"`
}

// SdcDetails is the SDC record plus its mapped volumes.
type SdcDetails struct {
	powerflex.Sdc
	MappedVolumes []powerflex.Volume `json:"mapped_volumes"`
}

// SdcResult is returned by every SDC module invocation.
type SdcResult struct {
	Changed    bool        `json:"changed"`
	SdcDetails *SdcDetails `json:"sdc_details"`
}

// SdcModule manages SDCs declaratively: get and rename. SDC removal is not
// permitted through this module, and SDCs register themselves with the
// system, so there is no create path either.
type SdcModule struct {
	reconciler *Reconciler
}

// NewSdcModule builds the SDC module on top of an authenticated gateway
// client.
func NewSdcModule(client *powerflex.Client, log *logrus.Entry) *SdcModule {
	spec := KindSpec{
		Kind: "SDC",
		Selectors: []Selector{
			{Field: "name", Value: func(i Identifier) string { return i.Name }},
			{Field: "sdcIp", Value: func(i Identifier) string { return i.IP }},
			{Field: "id", Value: func(i Identifier) string { return i.ID }},
		},
		AllowDelete: false,
	}
	return &SdcModule{reconciler: NewReconciler(spec, &sdcAPI{client: client}, log)}
}

// Apply converges the SDC to the requested state and reports the outcome.
func (m *SdcModule) Apply(ctx context.Context, params SdcParams) (SdcResult, error) {
	state, err := ParseState(params.State)
	if err != nil {
		return SdcResult{}, err
	}
	if err := exactlyOneSelector(params.SdcName, params.SdcID, params.SdcIP); err != nil {
		return SdcResult{}, err
	}

	ident := Identifier{Name: params.SdcName, ID: params.SdcID, IP: params.SdcIP}
	desired := DesiredState{State: state, NewName: params.SdcNewName}

	outcome, err := m.reconciler.Reconcile(ctx, ident, desired)
	result := SdcResult{Changed: outcome.Changed}
	if err != nil {
		return result, err
	}
	if outcome.Resource != nil {
		result.SdcDetails = sdcDetailsFromResource(outcome.Resource)
	}
	return result, nil
}

// exactlyOneSelector enforces the mutually exclusive selector rule shared
// by both modules. All-empty is left for the reconciler to report as a
// missing identifier.
func exactlyOneSelector(selectors ...string) error {
	supplied := 0
	for _, s := range selectors {
		if s != "" {
			supplied++
		}
	}
	if supplied > 1 {
		return errors.Wrapf(ErrInvalidInput, "selectors are mutually exclusive, got %d", supplied)
	}
	return nil
}

func sdcDetailsFromResource(resource *Resource) *SdcDetails {
	details := &SdcDetails{MappedVolumes: []powerflex.Volume{}}
	if sdc, ok := resource.Details.(powerflex.Sdc); ok {
		details.Sdc = sdc
	}
	for _, child := range resource.Children {
		if volume, ok := child.Details.(powerflex.Volume); ok {
			details.MappedVolumes = append(details.MappedVolumes, volume)
		}
	}
	return details
}

// sdcAPI binds the generic reconciler contract to the gateway SDC service.
type sdcAPI struct {
	client *powerflex.Client
}

func (a *sdcAPI) List(ctx context.Context, field, value string) ([]Resource, error) {
	sdcs, err := a.client.Sdc.Get(ctx, map[string]string{field: value})
	if err != nil {
		return nil, err
	}
	resources := make([]Resource, 0, len(sdcs))
	for _, sdc := range sdcs {
		resources = append(resources, Resource{ID: sdc.ID, Name: sdc.Name, Details: sdc})
	}
	return resources, nil
}

func (a *sdcAPI) Create(ctx context.Context, ident Identifier, desired DesiredState) (*Resource, error) {
	return nil, errors.Wrapf(ErrUnsupportedOperation, "SDCs register themselves and cannot be created")
}

func (a *sdcAPI) Rename(ctx context.Context, id, name string) error {
	return a.client.Sdc.Rename(ctx, id, name)
}

func (a *sdcAPI) ModifyLimit(ctx context.Context, id, limit, value string) error {
	return errors.Wrapf(ErrUnsupportedOperation, "SDC has no tunable limit %q", limit)
}

func (a *sdcAPI) Delete(ctx context.Context, id string) error {
	return a.client.Sdc.Delete(ctx, id)
}

func (a *sdcAPI) Children(ctx context.Context, id string) ([]Child, error) {
	volumes, err := a.client.Sdc.MappedVolumes(ctx, id)
	if err != nil {
		return nil, err
	}
	children := make([]Child, 0, len(volumes))
	for _, volume := range volumes {
		children = append(children, Child{ID: volume.ID, Name: volume.Name, Type: volume.VolumeType, Details: volume})
	}
	return children, nil
}
