package catalog

// ConnectorType is a named, reusable cross-language adapter category.
// RelationIDs is a set: no duplicates, order of first insertion.
type ConnectorType struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectID"`
	Name        string   `json:"name"`
	RelationIDs []string `json:"relationIDs"`
}

// SetID assigns the caller-facing identifier.
func (c *ConnectorType) SetID(id string) { c.ID = id }

// ConnectorTypeWithRelations is a connector type with its relations resolved.
type ConnectorTypeWithRelations struct {
	ConnectorType
	Relations []Relation `json:"relations"`
}

// RelationOpKind selects how a relation id changes a connector type's set.
type RelationOpKind string

const (
	RelationOpAdd    RelationOpKind = "add"
	RelationOpDelete RelationOpKind = "delete"
)

// RelationOp adds or removes one relation id.
type RelationOp struct {
	ID string         `json:"id"`
	Op RelationOpKind `json:"op"`
}

// ConnectorTypePatch is a partial update; nil fields are left unchanged.
type ConnectorTypePatch struct {
	Name     *string     `json:"name,omitempty"`
	Relation *RelationOp `json:"relation,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ConnectorTypePatch) IsEmpty() bool {
	return p.Name == nil && p.Relation == nil
}
