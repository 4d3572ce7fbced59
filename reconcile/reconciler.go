// Copyright © 2024 The ansible-powerflex authors

package reconcile

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Reconciler converges one remote resource to a desired state. It holds no
// state across invocations; every Reconcile call re-reads the remote truth.
type Reconciler struct {
	spec KindSpec
	api  API
	log  *logrus.Entry
}

// NewReconciler builds a reconciler for one resource kind. The log entry is
// scoped to the invocation and must not be nil.
func NewReconciler(spec KindSpec, api API, log *logrus.Entry) *Reconciler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Reconciler{spec: spec, api: api, log: log.WithField("kind", spec.Kind)}
}

// Reconcile looks up the resource selected by ident, computes the minimal
// set of mutations needed to reach desired, applies them and returns the
// re-fetched post-mutation state.
//
// Field-level mutations are independent remote calls with no rollback: when
// a later field fails, earlier successful changes stay applied and the
// returned Result still reports Changed=true alongside the error.
func (r *Reconciler) Reconcile(ctx context.Context, ident Identifier, desired DesiredState) (Result, error) {
	if err := ident.validate(); err != nil {
		return Result{}, err
	}
	if err := validateDesired(desired); err != nil {
		return Result{}, err
	}

	current, err := r.lookup(ctx, ident)
	if err != nil {
		return Result{}, err
	}

	if desired.State == StateAbsent {
		return r.ensureAbsent(ctx, current)
	}

	result := Result{}
	switch {
	case current == nil:
		created, err := r.create(ctx, ident, desired)
		if err != nil {
			return result, err
		}
		result.Changed = true
		current = created
	default:
		changed, err := r.applyDiff(ctx, current, desired)
		result.Changed = changed
		if err != nil {
			return result, err
		}
	}

	snapshot, err := r.snapshot(ctx, current.ID)
	if err != nil {
		return result, err
	}
	result.Resource = snapshot
	return result, nil
}

func validateDesired(desired DesiredState) error {
	if desired.State != StatePresent && desired.State != StateAbsent {
		return errors.Wrapf(ErrInvalidInput, "state must be 'present' or 'absent', got %q", string(desired.State))
	}
	if desired.NewName != "" && strings.TrimSpace(desired.NewName) == "" {
		return errors.Wrapf(ErrInvalidInput, "new name must not be blank")
	}
	return nil
}

// lookup tries the kind's selectors in priority order; the first one
// yielding a unique match wins. Zero matches means the resource is absent,
// except when an id was supplied: an id implies the caller believes the
// resource exists, so absence is an error.
func (r *Reconciler) lookup(ctx context.Context, ident Identifier) (*Resource, error) {
	for _, sel := range r.spec.Selectors {
		value := strings.TrimSpace(sel.Value(ident))
		if value == "" {
			continue
		}
		records, err := r.api.List(ctx, sel.Field, value)
		if err != nil {
			return nil, remoteErr(err, "failed to look up %s by %s %q", r.spec.Kind, sel.Field, value)
		}
		if len(records) == 1 {
			r.log.Debugf("found %s %s by %s", r.spec.Kind, records[0].ID, sel.Field)
			return &records[0], nil
		}
		if len(records) > 1 {
			r.log.Warnf("%s lookup by %s %q matched %d records, trying next selector", r.spec.Kind, sel.Field, value, len(records))
		}
	}
	if strings.TrimSpace(ident.ID) != "" {
		return nil, errors.Wrapf(ErrResourceNotFound, "unable to find %s with id %s", r.spec.Kind, strings.TrimSpace(ident.ID))
	}
	return nil, nil
}

func (r *Reconciler) ensureAbsent(ctx context.Context, current *Resource) (Result, error) {
	if current == nil {
		return Result{Changed: false}, nil
	}
	if !r.spec.AllowDelete {
		return Result{}, errors.Wrapf(ErrUnsupportedOperation, "removal of %s is not allowed through this module", r.spec.Kind)
	}
	r.log.Infof("removing %s %s", r.spec.Kind, current.ID)
	if err := r.api.Delete(ctx, current.ID); err != nil {
		return Result{}, remoteErr(err, "failed to remove %s %s", r.spec.Kind, current.ID)
	}
	return Result{Changed: true}, nil
}

func (r *Reconciler) create(ctx context.Context, ident Identifier, desired DesiredState) (*Resource, error) {
	token := ""
	if r.spec.CreateToken != nil {
		token = strings.TrimSpace(r.spec.CreateToken(ident))
	}
	if token == "" {
		return nil, errors.Wrapf(ErrResourceNotFound, "could not find any %s with identifier %s", r.spec.Kind, ident)
	}
	r.log.Infof("creating %s %s", r.spec.Kind, ident)
	created, err := r.api.Create(ctx, ident, desired)
	if err != nil {
		return nil, remoteErr(err, "failed to create %s %s", r.spec.Kind, ident)
	}
	return created, nil
}

// applyDiff issues one remote call per changed field. A field counts as
// changed only when the desired value is non-empty and differs from the
// current value after string normalization.
func (r *Reconciler) applyDiff(ctx context.Context, current *Resource, desired DesiredState) (bool, error) {
	changed := false

	if desired.NewName != "" && desired.NewName != current.Name {
		if err := r.api.Rename(ctx, current.ID, desired.NewName); err != nil {
			return changed, remoteErr(err, "failed to rename %s %s", r.spec.Kind, current.ID)
		}
		r.log.Infof("renamed %s %s from %q to %q", r.spec.Kind, current.ID, current.Name, desired.NewName)
		changed = true
	}

	for _, limit := range sortedKeys(desired.Limits) {
		want := strings.TrimSpace(desired.Limits[limit])
		if want == "" || want == current.Limits[limit] {
			continue
		}
		if err := r.api.ModifyLimit(ctx, current.ID, limit, want); err != nil {
			return changed, remoteErr(err, "failed to modify %s of %s %s", limit, r.spec.Kind, current.ID)
		}
		r.log.Infof("modified %s of %s %s from %q to %q", limit, r.spec.Kind, current.ID, current.Limits[limit], want)
		changed = true
	}

	return changed, nil
}

// snapshot re-fetches the resource by id so the caller observes the
// post-mutation remote truth, and attaches its child associations.
func (r *Reconciler) snapshot(ctx context.Context, id string) (*Resource, error) {
	records, err := r.api.List(ctx, "id", id)
	if err != nil {
		return nil, remoteErr(err, "failed to fetch %s %s", r.spec.Kind, id)
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(ErrResourceNotFound, "%s %s disappeared during reconciliation", r.spec.Kind, id)
	}
	resource := records[0]

	children, err := r.api.Children(ctx, resource.ID)
	if err != nil {
		return nil, remoteErr(err, "failed to list children of %s %s", r.spec.Kind, resource.ID)
	}
	resource.Children = children
	return &resource, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
