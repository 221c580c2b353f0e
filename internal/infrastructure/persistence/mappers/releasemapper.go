package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"reldesk/internal/domain/release"
	"reldesk/internal/infrastructure/persistence/models"
)

// ReleaseMapper handles the conversion between Release domain entities and persistence models.
type ReleaseMapper interface {
	ToModel(r *release.Release) *models.ReleaseModel
	ToDomain(model *models.ReleaseModel) (*release.Release, error)
}

// ReleaseMapperImpl is the concrete implementation of ReleaseMapper.
type ReleaseMapperImpl struct{}

// NewReleaseMapper creates a new ReleaseMapper.
func NewReleaseMapper() ReleaseMapper {
	return &ReleaseMapperImpl{}
}

// ToModel converts a release domain entity to a persistence model.
func (m *ReleaseMapperImpl) ToModel(r *release.Release) *models.ReleaseModel {
	model := &models.ReleaseModel{
		ID:         r.ID(),
		Version:    r.Version(),
		Status:     r.Status(),
		Notes:      r.Notes(),
		ReleasedBy: r.ReleasedBy(),
		BuildURL:   r.BuildURL(),
		ServiceID:  r.ServiceID(),
		CreatedAt:  r.CreatedAt().UnixMilli(),
		UpdatedAt:  r.UpdatedAt().UnixMilli(),
	}

	// List columns are always written, so a cleared ticket set persists as [].
	model.TicketKeys = marshalStringList(r.TicketKeys())
	model.Commits = marshalStringList(r.Commits())
	model.AdditionalPoints = marshalStringList(r.AdditionalPoints())
	model.Customers = marshalStringList(r.Customers())

	deliveriesJSON, _ := json.Marshal(r.ComponentDeliveries())
	model.ComponentDeliveries = datatypes.JSON(deliveriesJSON)

	return model
}

// ToDomain converts a release persistence model to a domain entity.
func (m *ReleaseMapperImpl) ToDomain(model *models.ReleaseModel) (*release.Release, error) {
	ticketKeys, err := unmarshalStringList(model.TicketKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal release ticket keys (id=%d): %w", model.ID, err)
	}

	commits, err := unmarshalStringList(model.Commits)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal release commits (id=%d): %w", model.ID, err)
	}

	additionalPoints, err := unmarshalStringList(model.AdditionalPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal release additional points (id=%d): %w", model.ID, err)
	}

	customers, err := unmarshalStringList(model.Customers)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal release customers (id=%d): %w", model.ID, err)
	}

	var deliveries []release.ComponentDelivery
	if len(model.ComponentDeliveries) > 0 {
		if err := json.Unmarshal(model.ComponentDeliveries, &deliveries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal release component deliveries (id=%d): %w", model.ID, err)
		}
	}

	return release.ReconstructRelease(
		model.ID,
		model.Version,
		model.Status,
		ticketKeys,
		commits,
		model.Notes,
		additionalPoints,
		deliveries,
		model.ReleasedBy,
		model.BuildURL,
		model.ServiceID,
		customers,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}
