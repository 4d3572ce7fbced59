// Copyright © 2024 The ansible-powerflex authors

// Package reconcile converges a remote PowerFlex resource to a declared
// desired state. One generic Reconciler implements the lookup, diff and
// apply sequence; the SDC and NVMe host kinds parametrize it with their
// selector sets, permitted operations and gateway bindings.
package reconcile

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// State is the requested lifecycle of a resource.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// ParseState validates a user-supplied state string.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StatePresent, StateAbsent:
		return State(s), nil
	default:
		return "", errors.Wrapf(ErrInvalidInput, "state must be 'present' or 'absent', got %q", s)
	}
}

// Identifier selects a remote resource. An empty field means the selector
// was not supplied; a non-empty field that trims to nothing is invalid.
type Identifier struct {
	Name string
	ID   string
	IP   string
	NQN  string
}

// String returns the most descriptive supplied selector, for messages.
func (i Identifier) String() string {
	for _, v := range []string{i.Name, i.IP, i.NQN, i.ID} {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return "<none>"
}

func (i Identifier) validate() error {
	supplied := 0
	for _, v := range []string{i.Name, i.ID, i.IP, i.NQN} {
		if v == "" {
			continue
		}
		if strings.TrimSpace(v) == "" {
			return errors.Wrapf(ErrInvalidIdentifier, "identifier must not be blank")
		}
		supplied++
	}
	if supplied == 0 {
		return errors.Wrapf(ErrMissingIdentifier, "provide a name, id, ip or nqn")
	}
	return nil
}

// DesiredState describes the target shape of the resource. Unset fields are
// left untouched on the remote system; this is a sparse patch, never a full
// overwrite.
type DesiredState struct {
	State State

	// NewName renames the resource when non-empty.
	NewName string

	// Limits maps tunable limit names to their desired values, as strings.
	// Comparison against the current value is string-normalized.
	Limits map[string]string
}

// Child is an associated record attached to the final snapshot, e.g. a
// volume mapped to an SDC.
type Child struct {
	ID      string
	Name    string
	Type    string
	Details any
}

// Resource is a request-scoped copy of the remote object.
type Resource struct {
	ID   string
	Name string

	// Limits holds the current values of the tunable limits, string
	// normalized for comparison with DesiredState.Limits.
	Limits map[string]string

	// Details is the kind-specific record as returned by the gateway.
	Details any

	Children []Child
}

// Result reports the outcome of one reconciliation.
type Result struct {
	Changed  bool
	Resource *Resource
}

// Selector is one way of looking up a resource, in kind priority order.
type Selector struct {
	// Field is the remote filter field the selector queries.
	Field string
	// Value extracts the selector value from an Identifier.
	Value func(Identifier) string
}

// KindSpec describes a resource kind: how it is looked up, whether it may
// be deleted through this path, and which token is required to create it.
type KindSpec struct {
	Kind string

	// Selectors are tried in order; the first yielding a unique match wins.
	Selectors []Selector

	// AllowDelete permits state=absent to remove an existing resource.
	AllowDelete bool

	// CreateToken extracts the token required for creation. A nil func or
	// an empty token means the kind cannot be created from this invocation.
	CreateToken func(Identifier) string
}

// API is the remote collaborator contract the Reconciler drives. All calls
// are synchronous; any error is terminal for the invocation.
type API interface {
	// List returns the resources whose field equals value.
	List(ctx context.Context, field, value string) ([]Resource, error)

	// Create registers a new resource and returns it (at minimum its id).
	Create(ctx context.Context, ident Identifier, desired DesiredState) (*Resource, error)

	// Rename sets a new name on the resource.
	Rename(ctx context.Context, id, name string) error

	// ModifyLimit sets one tunable limit.
	ModifyLimit(ctx context.Context, id, limit, value string) error

	// Delete removes the resource.
	Delete(ctx context.Context, id string) error

	// Children lists associated records for the final snapshot.
	Children(ctx context.Context, id string) ([]Child, error)
}
