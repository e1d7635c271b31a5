package templates

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrDefinitionInvalid reports a template definition that failed structural
// validation at registration time.
var ErrDefinitionInvalid = errors.New("template definition invalid")

const definitionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["templateId", "templateVersion", "name", "language", "theme", "routing", "pages", "publishing"],
  "properties": {
    "templateId": {"type": "string", "minLength": 1},
    "templateVersion": {"type": "integer", "minimum": 1},
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "titleSuffix": {"type": "string"},
    "language": {"type": "string", "minLength": 2},
    "theme": {
      "type": "object",
      "required": ["themeId", "palette", "typography", "radius", "spacing"],
      "properties": {
        "themeId": {"type": "string", "minLength": 1},
        "palette": {
          "type": "object",
          "required": ["primary", "accent", "background", "surface", "text", "mutedText"],
          "additionalProperties": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"}
        },
        "typography": {
          "type": "object",
          "required": ["fontFamily", "scale"]
        },
        "radius": {"enum": ["none", "sm", "md", "lg", "full"]},
        "spacing": {"enum": ["compact", "normal", "relaxed"]}
      }
    },
    "routing": {
      "type": "object",
      "required": ["basePath"],
      "properties": {
        "basePath": {"type": "string", "pattern": "^/"},
        "trailingSlash": {"type": "boolean"}
      }
    },
    "pages": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "path", "title", "sections"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "path": {"type": "string", "pattern": "^/"},
          "title": {"type": "string", "minLength": 1},
          "sections": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["id", "type", "props"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "type": {"enum": ["hero", "features", "about", "contact", "services", "gallery", "testimonials", "pricing", "faq", "team", "footer"]},
                "props": {"type": "object"}
              }
            }
          }
        }
      }
    },
    "publishing": {
      "type": "object",
      "required": ["target", "output", "constraints"],
      "properties": {
        "target": {"type": "string", "minLength": 1},
        "output": {
          "type": "object",
          "required": ["format", "entryPageId"]
        },
        "constraints": {
          "type": "object",
          "required": ["maxPages", "maxSectionsPerPage"],
          "properties": {
            "maxPages": {"type": "integer", "minimum": 1},
            "maxSectionsPerPage": {"type": "integer", "minimum": 1}
          }
        }
      }
    }
  }
}`

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func definitionValidator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("template.json", bytes.NewReader([]byte(definitionSchema))); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile("template.json")
	})
	return compiledSchema, compileErr
}

// ValidateDefinition checks a definition against the structural schema and the
// section vocabulary. Registration refuses definitions that fail here.
func ValidateDefinition(def *TemplateDefinition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", ErrDefinitionInvalid)
	}
	validator, err := definitionValidator()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}

	encoded, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	if err := validator.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%w: %s", ErrDefinitionInvalid, flattenIssues(validationErr))
		}
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	return nil
}

func flattenIssues(err *jsonschema.ValidationError) string {
	if err == nil {
		return ""
	}
	var parts []string
	var walk func(node *jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			}
			parts = append(parts, location+": "+strings.TrimSpace(node.Message))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return strings.Join(parts, "; ")
}
