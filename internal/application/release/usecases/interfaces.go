package usecases

import (
	"context"
)

type CreateReleaseExecutor interface {
	Execute(ctx context.Context, cmd CreateReleaseCommand) (*CreateReleaseResult, error)
}

type UpdateReleaseExecutor interface {
	Execute(ctx context.Context, cmd UpdateReleaseCommand) (*UpdateReleaseResult, error)
}

type DeleteReleaseExecutor interface {
	Execute(ctx context.Context, cmd DeleteReleaseCommand) error
}

type GetReleaseExecutor interface {
	Execute(ctx context.Context, query GetReleaseQuery) (*GetReleaseResult, error)
}

type ListReleasesExecutor interface {
	Execute(ctx context.Context, query ListReleasesQuery) (*ListReleasesResult, error)
}
