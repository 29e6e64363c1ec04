package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"interlink/internal/domain/models/catalog"
)

// SchemeRef names an ID scheme in a CIP request. Clients send either the
// bare name or an object carrying the scheme's how-to description.
type SchemeRef struct {
	Name  string  `json:"name"`
	HowTo *string `json:"howTo,omitempty"`
}

// UnmarshalJSON accepts "name" or {"name": ..., "howTo": ...}.
func (s *SchemeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*s = SchemeRef{}
		return json.Unmarshal(data, &s.Name)
	}

	type plain SchemeRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = SchemeRef(p)
	return nil
}

// FunctionCondition is the serialized call a CIP applies to. Clients send
// either the serialized text or the Call object itself, which is stored as
// its JSON text.
type FunctionCondition string

// UnmarshalJSON accepts a JSON string or a Call object.
func (f *FunctionCondition) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return errors.New("empty function condition")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FunctionCondition(s)
	case data[0] == '{':
		var call catalog.Call
		if err := json.Unmarshal(data, &call); err != nil {
			return err
		}
		text, err := json.Marshal(call)
		if err != nil {
			return err
		}
		*f = FunctionCondition(text)
	case bytes.Equal(data, []byte("null")):
		*f = ""
	default:
		return errors.New("function condition must be a string or a call object")
	}
	return nil
}

// CreateCIPRequest represents a request to create a CIP
type CreateCIPRequest struct {
	ConnectorType      string            `json:"connectorType"`
	SourceIDScheme     []SchemeRef       `json:"sourceIDScheme"`
	TargetIDScheme     []SchemeRef       `json:"targetIDScheme"`
	FunctionCondition  FunctionCondition `json:"functionCondition"`
	VariableConditions []string          `json:"variableConditions"`
}

// CIPService defines business logic operations for CIPs
type CIPService interface {
	// CreateCIP validates the request, registers the referenced ID schemes
	// and stores the CIP
	CreateCIP(ctx context.Context, projectID string, req *CreateCIPRequest) (*catalog.CIP, error)

	// ListCIPs lists a connector type's CIPs. connectorType is required.
	ListCIPs(ctx context.Context, projectID, connectorType string) ([]catalog.CIP, error)

	UpdateCIP(ctx context.Context, projectID, id string, patch *catalog.CIPPatch) error

	DeleteCIP(ctx context.Context, projectID, id string) error
}
