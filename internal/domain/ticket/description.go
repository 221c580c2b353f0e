package ticket

// Description carries the externally-fetched state of a tracker issue.
// It is caller-supplied input: the service never calls out to the tracker
// itself, ingestion hands descriptions in as already-fetched data.
type Description struct {
	TicketID    string
	Summary     string
	Status      string
	Assignee    string
	Priority    string
	Components  []string
	FixVersions []string
	Created     string
	Updated     string
}
