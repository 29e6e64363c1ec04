// Package seed loads relation fixtures into the catalog. Relations are
// normally produced by an external code analyzer; fixtures stand in for it
// in development and demos.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	models "interlink/internal/domain/models/catalog"
)

// Fixture is one project and the relations discovered in it.
//
//	project: checkout
//	relations:
//	  - language: Go
//	    targetModule: github.com/acme/payments
//	    calls:
//	      - sourcemodule: web/cart.js
//	        targetfunc: Charge
type Fixture struct {
	Project   string            `yaml:"project"`
	Relations []FixtureRelation `yaml:"relations"`
}

// FixtureRelation is a relation without identifiers.
type FixtureRelation struct {
	Language     string        `yaml:"language"`
	TargetModule string        `yaml:"targetModule"`
	Calls        []models.Call `yaml:"calls"`
}

// Decode parses a YAML fixture. Unknown keys are rejected so typos in
// hand-written fixtures surface early.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode fixture: empty document")
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if f.Project == "" {
		return nil, errors.New("decode fixture: project is required")
	}
	return &f, nil
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Decode(bytes.NewReader(raw))
}

// ToRelations converts the fixture entries into catalog relations.
func (f *Fixture) ToRelations() []models.Relation {
	out := make([]models.Relation, 0, len(f.Relations))
	for _, r := range f.Relations {
		calls := r.Calls
		if calls == nil {
			calls = []models.Call{}
		}
		out = append(out, models.Relation{
			Language:     models.Language(r.Language),
			TargetModule: r.TargetModule,
			Calls:        calls,
		})
	}
	return out
}
