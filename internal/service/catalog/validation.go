package catalog

import (
	"errors"
	"strings"

	models "interlink/internal/domain/models/catalog"
)

// notBlank rejects strings made only of whitespace, which Required lets through.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// optionalNotBlank is notBlank for *string fields.
func optionalNotBlank(value interface{}) error {
	if p, ok := value.(*string); ok && p != nil {
		if strings.TrimSpace(*p) == "" {
			return errors.New("cannot be blank")
		}
	}
	return nil
}

// supportedLanguage accepts only the languages listed in models.Languages.
func supportedLanguage(value interface{}) error {
	if l, _ := value.(models.Language); !l.Valid() {
		return errors.New("must be a supported language")
	}
	return nil
}
