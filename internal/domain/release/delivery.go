package release

import "fmt"

// ComponentDelivery records where one component of a release was published.
// Both links are optional; the component name is not.
type ComponentDelivery struct {
	Name          string `json:"name"`
	DockerHubLink string `json:"docker_hub_link,omitempty"`
	EDeliveryLink string `json:"e_delivery_link,omitempty"`
}

func (d ComponentDelivery) Validate() error {
	if len(d.Name) == 0 {
		return fmt.Errorf("component delivery name is required")
	}
	return nil
}
