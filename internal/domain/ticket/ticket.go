package ticket

import (
	"fmt"
	"time"
)

const (
	DefaultAssignee = "Unassigned"
	DefaultPriority = "Medium"
)

// Ticket is the local projection of an externally tracked issue. The external
// ticket identifier is the identity; all other fields mirror tracker state as
// of the last ingest. Release edits never touch these fields.
type Ticket struct {
	id           uint
	ticketID     string
	summary      string
	status       string
	assignee     string
	priority     string
	components   []string
	fixVersions  []string
	created      string
	updated      string
	lastSyncedAt time.Time
}

// NewTicketFromDescription builds a Ticket from an external description.
// Missing assignee and priority fall back to the tracker defaults; missing
// list fields default to empty.
func NewTicketFromDescription(d Description) (*Ticket, error) {
	if len(d.TicketID) == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	assignee := d.Assignee
	if assignee == "" {
		assignee = DefaultAssignee
	}
	priority := d.Priority
	if priority == "" {
		priority = DefaultPriority
	}

	components := d.Components
	if components == nil {
		components = []string{}
	}
	fixVersions := d.FixVersions
	if fixVersions == nil {
		fixVersions = []string{}
	}

	return &Ticket{
		ticketID:     d.TicketID,
		summary:      d.Summary,
		status:       d.Status,
		assignee:     assignee,
		priority:     priority,
		components:   components,
		fixVersions:  fixVersions,
		created:      d.Created,
		updated:      d.Updated,
		lastSyncedAt: time.Now(),
	}, nil
}

func ReconstructTicket(
	id uint,
	ticketID string,
	summary string,
	status string,
	assignee string,
	priority string,
	components []string,
	fixVersions []string,
	created string,
	updated string,
	lastSyncedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket record ID cannot be zero")
	}
	if len(ticketID) == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	if components == nil {
		components = []string{}
	}
	if fixVersions == nil {
		fixVersions = []string{}
	}

	return &Ticket{
		id:           id,
		ticketID:     ticketID,
		summary:      summary,
		status:       status,
		assignee:     assignee,
		priority:     priority,
		components:   components,
		fixVersions:  fixVersions,
		created:      created,
		updated:      updated,
		lastSyncedAt: lastSyncedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) TicketID() string {
	return t.ticketID
}

func (t *Ticket) Summary() string {
	return t.summary
}

func (t *Ticket) Status() string {
	return t.status
}

func (t *Ticket) Assignee() string {
	return t.assignee
}

func (t *Ticket) Priority() string {
	return t.priority
}

func (t *Ticket) Components() []string {
	componentsCopy := make([]string, len(t.components))
	copy(componentsCopy, t.components)
	return componentsCopy
}

func (t *Ticket) FixVersions() []string {
	fixVersionsCopy := make([]string, len(t.fixVersions))
	copy(fixVersionsCopy, t.fixVersions)
	return fixVersionsCopy
}

// Created returns the creation date string as reported by the external
// tracker. It is opaque and never reparsed locally.
func (t *Ticket) Created() string {
	return t.created
}

func (t *Ticket) Updated() string {
	return t.updated
}

func (t *Ticket) LastSyncedAt() time.Time {
	return t.lastSyncedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket record ID cannot be zero")
	}
	t.id = id
	return nil
}

// SyncFromDescription refreshes the locally mirrored fields from a freshly
// fetched description. Only re-ingestion goes through here; reconciliation
// of release payloads deliberately does not.
func (t *Ticket) SyncFromDescription(d Description) error {
	if d.TicketID != t.ticketID {
		return fmt.Errorf("ticket ID mismatch: have %s, got %s", t.ticketID, d.TicketID)
	}

	t.summary = d.Summary
	t.status = d.Status
	if d.Assignee != "" {
		t.assignee = d.Assignee
	}
	if d.Priority != "" {
		t.priority = d.Priority
	}
	if d.Components != nil {
		t.components = d.Components
	}
	if d.FixVersions != nil {
		t.fixVersions = d.FixVersions
	}
	if d.Created != "" {
		t.created = d.Created
	}
	if d.Updated != "" {
		t.updated = d.Updated
	}
	t.lastSyncedAt = time.Now()

	return nil
}
