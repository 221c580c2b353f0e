package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"reldesk/internal/domain/ticket"
	"reldesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:           t.ID(),
		TicketID:     t.TicketID(),
		Summary:      t.Summary(),
		Status:       t.Status(),
		Assignee:     t.Assignee(),
		Priority:     t.Priority(),
		Created:      t.Created(),
		Updated:      t.Updated(),
		LastSyncedAt: t.LastSyncedAt().UnixMilli(),
	}

	// List columns are always written, so a cleared list persists as [].
	model.Components = marshalStringList(t.Components())
	model.FixVersions = marshalStringList(t.FixVersions())

	return model
}

// ToDomain converts a ticket persistence model to a domain entity.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	components, err := unmarshalStringList(model.Components)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket components (id=%d): %w", model.ID, err)
	}

	fixVersions, err := unmarshalStringList(model.FixVersions)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket fix versions (id=%d): %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.TicketID,
		model.Summary,
		model.Status,
		model.Assignee,
		model.Priority,
		components,
		fixVersions,
		model.Created,
		model.Updated,
		convertMillisToTime(model.LastSyncedAt),
	)
}

func marshalStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

func unmarshalStringList(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func convertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
