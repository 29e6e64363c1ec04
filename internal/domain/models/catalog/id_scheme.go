package catalog

// IDScheme is a named method for identifying an entity on one side of a call.
type IDScheme struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"projectID"`
	Name      string  `json:"name"`
	HowTo     *string `json:"howTo,omitempty"`
}

// SetID assigns the caller-facing identifier.
func (s *IDScheme) SetID(id string) { s.ID = id }
