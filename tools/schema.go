package tools

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/olgasafonova/dragonball-mcp-server/internal/dragonball"
)

// Input schemas are inferred from the Args structs and then decorated with
// bounds, defaults and descriptions. Output schemas are written by hand so
// that fields the API adds later do not fail validation.

// ListCharactersInputSchema returns the input schema of dragonball-characters.
func ListCharactersInputSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[dragonball.ListCharactersArgs](nil)
	if err != nil {
		return nil, fmt.Errorf("inferring list characters schema: %w", err)
	}
	if err := decorate(s, "page", "Page number to retrieve, starting at 1", dragonball.DefaultPage); err != nil {
		return nil, err
	}
	if err := decorate(s, "limit", "Number of characters per page", dragonball.DefaultLimit); err != nil {
		return nil, err
	}
	return s, nil
}

// CharacterDetailInputSchema returns the input schema of dragonball-character-detail.
func CharacterDetailInputSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[dragonball.GetCharacterArgs](nil)
	if err != nil {
		return nil, fmt.Errorf("inferring character detail schema: %w", err)
	}
	if err := decorate(s, "id", "Character id", 0); err != nil {
		return nil, err
	}
	return s, nil
}

// decorate adds minimum 1, a description and, when def is non-zero, a default
// to an integer property.
func decorate(s *jsonschema.Schema, name, description string, def int) error {
	prop, ok := s.Properties[name]
	if !ok {
		return fmt.Errorf("schema has no property %q", name)
	}
	prop.Description = description
	prop.Minimum = ptr(1.0)
	if def != 0 {
		prop.Default = json.RawMessage(strconv.Itoa(def))
	}
	return nil
}

// CharacterPageOutputSchema describes the paginated listing envelope.
func CharacterPageOutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Paginated character listing as returned by the Dragon Ball API",
		Properties: map[string]*jsonschema.Schema{
			"items": {
				Type:  "array",
				Items: characterSchema(),
			},
			"meta": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"totalItems":   {Type: "integer"},
					"itemCount":    {Type: "integer"},
					"itemsPerPage": {Type: "integer"},
					"totalPages":   {Type: "integer"},
					"currentPage":  {Type: "integer"},
				},
			},
			"links": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"first":    {Type: "string"},
					"previous": {Type: "string"},
					"next":     {Type: "string"},
					"last":     {Type: "string"},
				},
			},
		},
		Required: []string{"items", "meta"},
	}
}

// CharacterDetailOutputSchema describes a single character with its planet
// and transformations.
func CharacterDetailOutputSchema() *jsonschema.Schema {
	s := characterSchema()
	s.Description = "Character detail as returned by the Dragon Ball API"
	s.Properties["originPlanet"] = &jsonschema.Schema{
		Types: []string{"object", "null"},
		Properties: map[string]*jsonschema.Schema{
			"id":          {Type: "integer"},
			"name":        {Type: "string"},
			"isDestroyed": {Type: "boolean"},
			"description": {Type: "string"},
			"image":       {Type: "string"},
			"deletedAt":   nullableString(),
		},
	}
	s.Properties["transformations"] = &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id":        {Type: "integer"},
				"name":      {Type: "string"},
				"image":     {Type: "string"},
				"ki":        powerLevel(),
				"deletedAt": nullableString(),
			},
		},
	}
	return s
}

func characterSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":          {Type: "integer"},
			"name":        {Type: "string"},
			"ki":          powerLevel(),
			"maxKi":       powerLevel(),
			"race":        {Type: "string"},
			"gender":      {Type: "string"},
			"description": {Type: "string"},
			"image":       {Type: "string"},
			"affiliation": {Type: "string"},
			"deletedAt":   nullableString(),
		},
		Required: []string{"id", "name"},
	}
}

// powerLevel accepts "60.000.000" style strings as well as plain numbers.
func powerLevel() *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{"string", "number", "null"}}
}

func nullableString() *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{"string", "null"}}
}
