package usecases

import (
	"context"

	"reldesk/internal/domain/release"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
)

type DeleteReleaseCommand struct {
	Version string
}

type DeleteReleaseUseCase struct {
	releaseRepo release.ReleaseRepository
	logger      logger.Interface
}

func NewDeleteReleaseUseCase(
	releaseRepo release.ReleaseRepository,
	logger logger.Interface,
) *DeleteReleaseUseCase {
	return &DeleteReleaseUseCase{
		releaseRepo: releaseRepo,
		logger:      logger,
	}
}

// Execute removes the release record only. Ticket records referenced by the
// release stay untouched; other releases may still point at them.
func (uc *DeleteReleaseUseCase) Execute(ctx context.Context, cmd DeleteReleaseCommand) error {
	uc.logger.Infow("executing delete release use case", "version", cmd.Version)

	if len(cmd.Version) == 0 {
		return errors.NewValidationError("version is required")
	}

	if err := uc.releaseRepo.Delete(ctx, cmd.Version); err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete release", "version", cmd.Version, "error", err)
		return errors.NewInternalError("failed to delete release")
	}

	uc.logger.Infow("release deleted successfully", "version", cmd.Version)
	return nil
}
