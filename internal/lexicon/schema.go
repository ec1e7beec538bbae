package lexicon

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "listings-search/internal/common/errors"
)

// lexiconSchema constrains lexicon override files. Every section is optional;
// a present section fully replaces the built-in one.
const lexiconSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"property_type_synonyms": {
			"type": "object",
			"additionalProperties": {
				"type": "array",
				"items": {"type": "string", "minLength": 1}
			}
		},
		"noise_types": {"type": "array", "items": {"type": "string"}},
		"bedroom_terms": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"bathroom_terms": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"living_room_terms": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"kitchen_terms": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"amenities": {
			"type": "object",
			"additionalProperties": {
				"type": "array",
				"items": {"type": "string", "minLength": 1}
			}
		},
		"noise_words": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"slang": {
			"type": "object",
			"additionalProperties": {"type": "string", "minLength": 1}
		},
		"city_to_state": {
			"type": "object",
			"additionalProperties": {"type": "string", "minLength": 1}
		},
		"states": {"type": "array", "items": {"type": "string", "minLength": 1}}
	}
}`

func validateLexiconJSON(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(lexiconSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return commonerrors.NewLexiconInvalidError(err.Error())
	}

	if !result.Valid() {
		var sb strings.Builder
		for i, desc := range result.Errors() {
			if i > 0 {
				sb.WriteString("; ")
			}
			fmt.Fprintf(&sb, "%s: %s", desc.Field(), desc.Description())
		}
		return commonerrors.NewLexiconInvalidError(sb.String())
	}

	return nil
}
