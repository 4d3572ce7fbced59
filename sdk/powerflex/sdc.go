// Copyright © 2024 The ansible-powerflex authors

package powerflex

import (
	"context"
	"fmt"
	"net/http"
)

// SdcService exposes the SDC portion of the gateway API.
type SdcService struct {
	client *Client
}

// List returns every SDC (and NVMe host) instance known to the system.
func (s *SdcService) List(ctx context.Context) ([]Sdc, error) {
	var sdcs []Sdc
	if err := s.client.doJSON(ctx, http.MethodGet, "/api/types/Sdc/instances", nil, &sdcs); err != nil {
		return nil, err
	}
	return sdcs, nil
}

// Get returns the instances matching every field in filter. Filtering
// happens client side over the full instance listing; supported fields are
// id, name, sdcIp and nqn.
func (s *SdcService) Get(ctx context.Context, filter map[string]string) ([]Sdc, error) {
	sdcs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []Sdc
	for _, sdc := range sdcs {
		ok, err := matchesFilter(sdc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, sdc)
		}
	}
	return matched, nil
}

// Rename sets a new name on the SDC.
func (s *SdcService) Rename(ctx context.Context, id, name string) error {
	body := map[string]string{"sdcName": name}
	path := fmt.Sprintf("/api/instances/Sdc::%s/action/setSdcName", id)
	_, err := s.client.do(ctx, http.MethodPost, path, body)
	return err
}

// Delete removes the SDC (or NVMe host) from the system.
func (s *SdcService) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/instances/Sdc::%s/action/removeSdc", id)
	_, err := s.client.do(ctx, http.MethodPost, path, struct{}{})
	return err
}

// MappedVolumes returns the volumes currently mapped to the SDC.
func (s *SdcService) MappedVolumes(ctx context.Context, id string) ([]Volume, error) {
	var volumes []Volume
	path := fmt.Sprintf("/api/instances/Sdc::%s/relationships/Volume", id)
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}

func matchesFilter(sdc Sdc, filter map[string]string) (bool, error) {
	for field, want := range filter {
		var got string
		switch field {
		case "id":
			got = sdc.ID
		case "name":
			got = sdc.Name
		case "sdcIp":
			got = sdc.SdcIP
		case "nqn":
			got = sdc.NQN
		default:
			return false, fmt.Errorf("unsupported filter field %q", field)
		}
		if got != want {
			return false, nil
		}
	}
	return true, nil
}
