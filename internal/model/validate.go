// Package model validates incoming resume documents before they reach
// persistence or the layout core.
package model

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema 校验 Resume.Content 的顶层形状。布局核心对缺字段
// fail-soft，但坏形状的数据不应入库。
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["data", "sections"],
  "properties": {
    "data": {
      "type": "object",
      "properties": {
        "personal": {"type": "object"},
        "experience": {"type": "array", "items": {"type": "object"}},
        "education": {"type": "array", "items": {"type": "object"}},
        "skills": {"type": "array", "items": {"type": "object"}},
        "projects": {"type": "array", "items": {"type": "object"}},
        "certifications": {"type": "array", "items": {"type": "object"}},
        "achievements": {"type": "array", "items": {"type": "object"}},
        "custom_sections": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "type"],
            "properties": {
              "id": {"type": "string", "minLength": 1},
              "title": {"type": "string"},
              "type": {"type": "string"}
            }
          }
        }
      }
    },
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "component"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "component": {
            "type": "string",
            "enum": ["personal", "experience", "education", "skills",
                     "projects", "certifications", "achievements", "custom"]
          },
          "visible": {"type": "boolean"},
          "order": {"type": "integer"},
          "custom_section_id": {"type": "string"}
        }
      }
    },
    "customization": {
      "type": "object",
      "properties": {
        "font_family": {"type": "string"},
        "layout": {
          "type": "object",
          "properties": {
            "page_width_in": {"type": "number", "exclusiveMinimum": 0},
            "page_height_in": {"type": "number", "exclusiveMinimum": 0},
            "show_page_numbers": {"type": "boolean"}
          }
        }
      }
    },
    "template": {"type": "string"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// ValidateDocument checks raw content JSON against the document schema.
// The returned error aggregates every violation.
func ValidateDocument(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
