package catalog

// CIP (Cross-Interoperability Protocol) binds a connector type, a selected
// function-call condition and the source / target ID schemes used to
// translate identifiers across the call.
type CIP struct {
	ID                 string   `json:"id"`
	ProjectID          string   `json:"projectID"`
	ConnectorType      string   `json:"connectorType"`
	SourceIDScheme     []string `json:"sourceIDScheme"`
	TargetIDScheme     []string `json:"targetIDScheme"`
	FunctionCondition  string   `json:"functionCondition"`
	VariableConditions []string `json:"variableConditions"`
}

// SetID assigns the caller-facing identifier.
func (c *CIP) SetID(id string) { c.ID = id }

// CIPPatch is an unvalidated partial update; nil fields are left unchanged.
type CIPPatch struct {
	ConnectorType      *string   `json:"connectorType,omitempty"`
	SourceIDScheme     *[]string `json:"sourceIDScheme,omitempty"`
	TargetIDScheme     *[]string `json:"targetIDScheme,omitempty"`
	FunctionCondition  *string   `json:"functionCondition,omitempty"`
	VariableConditions *[]string `json:"variableConditions,omitempty"`
}
