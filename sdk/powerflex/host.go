// Copyright © 2024 The ansible-powerflex authors

package powerflex

import (
	"context"
	"fmt"
	"net/http"
)

// HostService exposes the NVMe host actions of the gateway API. NVMe hosts
// are created and tuned through the Host type but read and removed through
// the shared Sdc instance collection.
type HostService struct {
	client *Client
}

type createHostResponse struct {
	ID string `json:"id"`
}

// Create registers a new NVMe host and returns its id.
func (h *HostService) Create(ctx context.Context, params CreateHostParams) (string, error) {
	var resp createHostResponse
	if err := h.client.doJSON(ctx, http.MethodPost, "/api/types/Host/instances", params, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ModifyMaxNumPaths sets the maximum number of paths per volume.
func (h *HostService) ModifyMaxNumPaths(ctx context.Context, id, maxNumPaths string) error {
	body := map[string]string{"newMaxNumPaths": maxNumPaths}
	path := fmt.Sprintf("/api/instances/Host::%s/action/modifyMaxNumPaths", id)
	_, err := h.client.do(ctx, http.MethodPost, path, body)
	return err
}

// ModifyMaxNumSysPorts sets the maximum number of system ports per
// protection domain.
func (h *HostService) ModifyMaxNumSysPorts(ctx context.Context, id, maxNumSysPorts string) error {
	body := map[string]string{"newMaxNumSysPorts": maxNumSysPorts}
	path := fmt.Sprintf("/api/instances/Host::%s/action/modifyMaxNumSysPorts", id)
	_, err := h.client.do(ctx, http.MethodPost, path, body)
	return err
}
