// Package catalog implements the catalog repositories on top of the
// docstore persistence provider. Repositories hold no state between calls.
package catalog

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"interlink/internal/repository/docstore"
)

// Document field names shared by the repositories and the index specs.
const (
	fieldProjectID     = "projectID"
	fieldName          = "name"
	fieldHowTo         = "howTo"
	fieldLanguage      = "language"
	fieldTargetModule  = "targetModule"
	fieldRelationIDs   = "relationIDs"
	fieldConnectorType = "connectorType"

	fieldSourceIDScheme     = "sourceIDScheme"
	fieldTargetIDScheme     = "targetIDScheme"
	fieldFunctionCondition  = "functionCondition"
	fieldVariableConditions = "variableConditions"
)

// Collections holds the prefixed collection names for the current environment
type Collections struct {
	Projects       string
	Relations      string
	ConnectorTypes string
	IDSchemes      string
	CIPs           string
}

// NewCollections creates collection names with the given prefix
func NewCollections(prefix string) Collections {
	return Collections{
		Projects:       fmt.Sprintf("%sprojects", prefix),
		Relations:      fmt.Sprintf("%srelations", prefix),
		ConnectorTypes: fmt.Sprintf("%sconnectorTypes", prefix),
		IDSchemes:      fmt.Sprintf("%sidSchemes", prefix),
		CIPs:           fmt.Sprintf("%scips", prefix),
	}
}

// Specs describes every collection with the indexes its queries rely on.
// The unique indexes back the upsert keys.
func (c Collections) Specs() []docstore.CollectionSpec {
	return []docstore.CollectionSpec{
		{Name: c.Projects},
		{
			Name: c.Relations,
			Indexes: []docstore.Index{
				{Fields: []string{fieldProjectID, fieldLanguage, fieldTargetModule}},
			},
		},
		{
			Name: c.ConnectorTypes,
			Indexes: []docstore.Index{
				{Fields: []string{fieldName}, Unique: true},
				{Fields: []string{fieldProjectID}},
			},
		},
		{
			Name: c.IDSchemes,
			Indexes: []docstore.Index{
				{Fields: []string{fieldProjectID, fieldName}, Unique: true},
			},
		},
		{
			Name: c.CIPs,
			Indexes: []docstore.Index{
				{Fields: []string{fieldProjectID, fieldConnectorType}},
			},
		},
	}
}

// RepositoryConfig holds the dependencies shared by all catalog repositories
type RepositoryConfig struct {
	Provider    *docstore.Provider
	Collections Collections
	Logger      *slog.Logger
}

// parseID converts a caller-facing id into an internal identifier.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, false
	}
	return parsed, true
}
