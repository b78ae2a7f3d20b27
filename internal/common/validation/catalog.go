// Package validation checks imported catalog documents against a JSON
// schema before they are allowed to replace the in-memory tree.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// catalogDocumentSchema describes the whole-tree wire format. It is
// intentionally permissive about unknown fields so older exports keep
// importing after the model grows.
const catalogDocumentSchema = `{
  "type": "object",
  "required": ["categories"],
  "properties": {
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "image": {"type": "string"},
          "icon": {"type": "string"},
          "color": {"type": "string"},
          "businesses": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "categoryId", "name"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "categoryId": {"type": "string", "minLength": 1},
                "name": {"type": "string", "minLength": 1},
                "rating": {"type": "number", "minimum": 0, "maximum": 5},
                "visits": {"type": "integer", "minimum": 0},
                "products": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["id", "name"],
                    "properties": {
                      "id": {"type": "string", "minLength": 1},
                      "name": {"type": "string", "minLength": 1},
                      "price": {"type": "integer", "minimum": 0},
                      "available": {"type": "boolean"}
                    }
                  }
                },
                "services": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["id", "name"],
                    "properties": {
                      "id": {"type": "string", "minLength": 1},
                      "name": {"type": "string", "minLength": 1},
                      "priceFrom": {"type": "integer", "minimum": 0}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

var catalogSchema = gojsonschema.NewStringLoader(catalogDocumentSchema)

// ValidateCatalogDocument returns a nil error when the raw JSON document
// is a structurally valid whole-tree export.
func ValidateCatalogDocument(raw []byte) error {
	result, err := gojsonschema.Validate(catalogSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("catalog document is not valid JSON: %w", err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("catalog document failed schema validation: %s: %s (%d issues)",
			first.Field(), first.Description(), len(result.Errors()))
	}
	return nil
}
