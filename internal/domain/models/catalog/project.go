package catalog

// Project is the root of every other catalog entity.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SetID assigns the caller-facing identifier.
func (p *Project) SetID(id string) { p.ID = id }
