package catalog

import (
	"fmt"
	"slices"
	"strings"

	"interlink/internal/domain"
)

// Language is the language a relation's target module is written in.
type Language string

const (
	LanguageGo         Language = "Go"
	LanguageJavaScript Language = "JavaScript"
)

// Languages lists every supported language.
var Languages = []Language{LanguageGo, LanguageJavaScript}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return slices.Contains(Languages, l)
}

// ParseLanguage converts s into a Language, rejecting unsupported values.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.Valid() {
		names := make([]string, len(Languages))
		for i, lang := range Languages {
			names[i] = string(lang)
		}
		return "", &domain.ValidationError{
			Message: fmt.Sprintf("unsupported language %q (want one of %s)", s, strings.Join(names, ", ")),
		}
	}
	return l, nil
}

// Call is one recorded call edge into a relation's target module.
// Not every call resolves both ends, hence the optional fields.
type Call struct {
	SourceModule   string `json:"sourcemodule" yaml:"sourcemodule"`
	SourceLocation string `json:"sourcelocation,omitempty" yaml:"sourcelocation,omitempty"`
	TargetFunc     string `json:"targetfunc,omitempty" yaml:"targetfunc,omitempty"`
}

// Relation records that a module, in a given language, receives calls.
type Relation struct {
	ID           string   `json:"id"`
	ProjectID    string   `json:"projectID"`
	TargetModule string   `json:"targetModule"`
	Language     Language `json:"language"`
	Calls        []Call   `json:"calls"`
}

// SetID assigns the caller-facing identifier.
func (r *Relation) SetID(id string) { r.ID = id }
