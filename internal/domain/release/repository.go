package release

import (
	"context"

	"reldesk/internal/shared/query"
)

// ReleaseFilter holds list filters for releases.
type ReleaseFilter struct {
	query.BaseFilter
	ServiceID *string
}

// ReleaseRepository is the persistence contract for releases. Versions are
// the lookup key everywhere above the store; the surrogate row id never
// leaves the infrastructure layer. GetByVersion and Delete return a
// not-found AppError when no record exists.
type ReleaseRepository interface {
	Create(ctx context.Context, r *Release) error
	Update(ctx context.Context, r *Release) error
	Delete(ctx context.Context, version string) error
	GetByVersion(ctx context.Context, version string) (*Release, error)
	ExistsByVersion(ctx context.Context, version string) (bool, error)
	List(ctx context.Context, filter ReleaseFilter) ([]*Release, int64, error)
}
