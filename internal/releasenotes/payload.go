package releasenotes

// ReleasePayload is the release row handed to a persistence adapter.
type ReleasePayload struct {
	Version     string `json:"version" yaml:"version"`
	ReleaseDate string `json:"release_date" yaml:"release_date"`
}

// ItemPayload is an item row; the adapter adds the release reference.
type ItemPayload struct {
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	AzureDevopsID *int       `json:"azure_devops_id" yaml:"azure_devops_id"`
	Component     *Component `json:"component" yaml:"component"`
	Category      *Category  `json:"category" yaml:"category"`
}

// Payload pairs a release row with its item rows.
type Payload struct {
	Release ReleasePayload `json:"release" yaml:"release"`
	Items   []ItemPayload  `json:"items" yaml:"items"`
}

// ToPayload maps a parsed release onto storage rows. The release date is
// cut to YYYY-MM-DD.
func ToPayload(r ParsedRelease) Payload {
	items := make([]ItemPayload, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ItemPayload{
			Title:         it.Title,
			Description:   it.Description,
			AzureDevopsID: it.AzureDevopsID,
			Component:     it.Component,
			Category:      it.Category,
		})
	}
	return Payload{
		Release: ReleasePayload{Version: r.Version, ReleaseDate: r.Date()},
		Items:   items,
	}
}

// ToPayloads maps every release with ToPayload, preserving order.
func ToPayloads(releases []ParsedRelease) []Payload {
	payloads := make([]Payload, 0, len(releases))
	for _, r := range releases {
		payloads = append(payloads, ToPayload(r))
	}
	return payloads
}
