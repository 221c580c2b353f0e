package release

import (
	"fmt"
	"time"
)

const DefaultStatus = "Planned"

// Release is the aggregate root of the tracker: a versioned bundle of
// delivered changes. Tickets are referenced by their external identifier,
// never embedded; many releases may share a ticket.
type Release struct {
	id                  uint
	version             string
	status              string
	ticketKeys          []string
	commits             []string
	notes               string
	additionalPoints    []string
	componentDeliveries []ComponentDelivery
	releasedBy          string
	buildURL            string
	serviceID           string
	customers           []string
	createdAt           time.Time
	updatedAt           time.Time
}

// NewRelease creates a release identified by its version string.
func NewRelease(version string) (*Release, error) {
	if len(version) == 0 {
		return nil, fmt.Errorf("version is required")
	}
	if len(version) > 100 {
		return nil, fmt.Errorf("version exceeds maximum length of 100 characters")
	}

	now := time.Now()

	return &Release{
		version:             version,
		status:              DefaultStatus,
		ticketKeys:          []string{},
		commits:             []string{},
		additionalPoints:    []string{},
		componentDeliveries: []ComponentDelivery{},
		customers:           []string{},
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func ReconstructRelease(
	id uint,
	version string,
	status string,
	ticketKeys []string,
	commits []string,
	notes string,
	additionalPoints []string,
	componentDeliveries []ComponentDelivery,
	releasedBy string,
	buildURL string,
	serviceID string,
	customers []string,
	createdAt, updatedAt time.Time,
) (*Release, error) {
	if id == 0 {
		return nil, fmt.Errorf("release record ID cannot be zero")
	}
	if len(version) == 0 {
		return nil, fmt.Errorf("version is required")
	}

	if ticketKeys == nil {
		ticketKeys = []string{}
	}
	if commits == nil {
		commits = []string{}
	}
	if additionalPoints == nil {
		additionalPoints = []string{}
	}
	if componentDeliveries == nil {
		componentDeliveries = []ComponentDelivery{}
	}
	if customers == nil {
		customers = []string{}
	}

	return &Release{
		id:                  id,
		version:             version,
		status:              status,
		ticketKeys:          ticketKeys,
		commits:             commits,
		notes:               notes,
		additionalPoints:    additionalPoints,
		componentDeliveries: componentDeliveries,
		releasedBy:          releasedBy,
		buildURL:            buildURL,
		serviceID:           serviceID,
		customers:           customers,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (r *Release) ID() uint {
	return r.id
}

func (r *Release) Version() string {
	return r.version
}

func (r *Release) Status() string {
	return r.status
}

func (r *Release) TicketKeys() []string {
	keysCopy := make([]string, len(r.ticketKeys))
	copy(keysCopy, r.ticketKeys)
	return keysCopy
}

func (r *Release) Commits() []string {
	commitsCopy := make([]string, len(r.commits))
	copy(commitsCopy, r.commits)
	return commitsCopy
}

func (r *Release) Notes() string {
	return r.notes
}

func (r *Release) AdditionalPoints() []string {
	pointsCopy := make([]string, len(r.additionalPoints))
	copy(pointsCopy, r.additionalPoints)
	return pointsCopy
}

func (r *Release) ComponentDeliveries() []ComponentDelivery {
	deliveriesCopy := make([]ComponentDelivery, len(r.componentDeliveries))
	copy(deliveriesCopy, r.componentDeliveries)
	return deliveriesCopy
}

func (r *Release) ReleasedBy() string {
	return r.releasedBy
}

func (r *Release) BuildURL() string {
	return r.buildURL
}

func (r *Release) ServiceID() string {
	return r.serviceID
}

func (r *Release) Customers() []string {
	customersCopy := make([]string, len(r.customers))
	copy(customersCopy, r.customers)
	return customersCopy
}

func (r *Release) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Release) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Release) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("release record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("release record ID cannot be zero")
	}
	r.id = id
	return nil
}

// ReplaceTicketKeys swaps the entire ordered set of ticket references.
// An empty slice clears all references; this is full replacement, not merge.
func (r *Release) ReplaceTicketKeys(keys []string) {
	if keys == nil {
		keys = []string{}
	}
	r.ticketKeys = keys
	r.updatedAt = time.Now()
}

func (r *Release) UpdateStatus(status string) error {
	if len(status) == 0 {
		return fmt.Errorf("status cannot be empty")
	}
	r.status = status
	r.updatedAt = time.Now()
	return nil
}

func (r *Release) UpdateNotes(notes string) {
	r.notes = notes
	r.updatedAt = time.Now()
}

func (r *Release) UpdateCommits(commits []string) {
	if commits == nil {
		commits = []string{}
	}
	r.commits = commits
	r.updatedAt = time.Now()
}

func (r *Release) UpdateAdditionalPoints(points []string) {
	if points == nil {
		points = []string{}
	}
	r.additionalPoints = points
	r.updatedAt = time.Now()
}

func (r *Release) UpdateComponentDeliveries(deliveries []ComponentDelivery) error {
	if deliveries == nil {
		deliveries = []ComponentDelivery{}
	}
	for _, d := range deliveries {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	r.componentDeliveries = deliveries
	r.updatedAt = time.Now()
	return nil
}

func (r *Release) UpdateReleasedBy(releasedBy string) {
	r.releasedBy = releasedBy
	r.updatedAt = time.Now()
}

func (r *Release) UpdateBuildURL(buildURL string) {
	r.buildURL = buildURL
	r.updatedAt = time.Now()
}

func (r *Release) AssignService(serviceID string) {
	r.serviceID = serviceID
	r.updatedAt = time.Now()
}

func (r *Release) UpdateCustomers(customers []string) {
	if customers == nil {
		customers = []string{}
	}
	r.customers = customers
	r.updatedAt = time.Now()
}

// Rename changes the version identifier. The store keys releases by a
// surrogate row id, so the rename persists as a plain column update under
// the unique version index; callers must check the target is free first.
func (r *Release) Rename(newVersion string) error {
	if len(newVersion) == 0 {
		return fmt.Errorf("version is required")
	}
	if newVersion == r.version {
		return nil
	}
	r.version = newVersion
	r.updatedAt = time.Now()
	return nil
}
