package module

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

// moduleDocumentSchema pins the interchange shape of a module document so
// imported documents are rejected with field-level messages before they
// ever reach the Builder.
const moduleDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "ModuleDocument",
  "type": "object",
  "required": ["title", "description", "category_id", "learning_objectives", "sections"],
  "properties": {
    "id": {"type": "string"},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "category_id": {"type": "string", "minLength": 1},
    "learning_objectives": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "difficulty_level": {"enum": ["beginner", "intermediate", "advanced"]},
    "estimated_duration_minutes": {"type": "integer", "minimum": 0},
    "prerequisites": {"type": "array", "items": {"type": "string"}},
    "sections": {"type": "array", "items": {"$ref": "#/definitions/section"}, "minItems": 1},
    "multimedia_content": {
      "type": "object",
      "properties": {
        "videos": {"type": "array", "items": {"type": "string"}},
        "images": {"type": "array", "items": {"type": "string"}},
        "podcasts": {"type": "array", "items": {"type": "string"}}
      }
    },
    "interactive_elements": {"type": "object"},
    "assessment_questions": {"type": "array", "items": {"$ref": "#/definitions/question"}},
    "is_published": {"type": "boolean"},
    "created_by": {"type": "string"},
    "target_class_id": {"type": "string"},
    "target_learning_styles": {
      "type": "array",
      "items": {"enum": ["visual", "auditory", "reading_writing", "kinesthetic"]}
    }
  },
  "definitions": {
    "section": {
      "type": "object",
      "required": ["id", "content_type", "content_data", "position"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "content_type": {
          "enum": ["text", "video", "audio", "table", "diagram", "highlight",
                   "interactive", "assessment", "activity", "quick_check"]
        },
        "content_data": {"type": "object"},
        "position": {"type": "integer", "minimum": 1},
        "is_required": {"type": "boolean"},
        "time_estimate_minutes": {"type": "integer", "minimum": 0},
        "learning_style_tags": {
          "type": "array",
          "items": {"enum": ["visual", "auditory", "reading_writing", "kinesthetic"]}
        },
        "interactive_elements": {"type": "array", "items": {"type": "string"}},
        "metadata": {
          "type": "object",
          "properties": {"key_points": {"type": "array", "items": {"type": "string"}}}
        }
      },
      "allOf": [
        {
          "if": {"properties": {"content_type": {"const": "video"}}},
          "then": {
            "properties": {
              "content_data": {
                "properties": {"video_data": {"type": "object", "required": ["url"]}}
              }
            }
          }
        },
        {
          "if": {"properties": {"content_type": {"const": "audio"}}},
          "then": {
            "properties": {
              "content_data": {
                "properties": {"audio_data": {"type": "object", "required": ["url"]}}
              }
            }
          }
        },
        {
          "if": {"properties": {"content_type": {"const": "table"}}},
          "then": {
            "properties": {
              "content_data": {
                "properties": {
                  "table_data": {
                    "type": "object",
                    "required": ["headers", "rows"],
                    "properties": {
                      "headers": {"type": "array", "items": {"type": "string"}},
                      "rows": {"type": "array", "items": {"type": "array", "items": {"type": "string"}}}
                    }
                  }
                }
              }
            }
          }
        },
        {
          "if": {"properties": {"content_type": {"const": "assessment"}}},
          "then": {
            "properties": {
              "content_data": {
                "properties": {"quiz_data": {"$ref": "#/definitions/question"}}
              }
            }
          }
        },
        {
          "if": {"properties": {"content_type": {"const": "quick_check"}}},
          "then": {
            "properties": {
              "content_data": {
                "properties": {"quick_check_data": {"$ref": "#/definitions/question"}}
              }
            }
          }
        },
        {
          "if": {"properties": {"content_type": {"const": "activity"}}},
          "then": {
            "properties": {
              "content_data": {
                "properties": {
                  "activity_data": {
                    "type": "object",
                    "required": ["title", "description", "instructions"],
                    "properties": {
                      "instructions": {"type": "array", "minItems": 1}
                    }
                  }
                }
              }
            }
          }
        }
      ]
    },
    "question": {
      "type": "object",
      "required": ["type", "question"],
      "properties": {
        "type": {"enum": ["multiple_choice", "true_false", "matching", "short_answer", "interactive"]},
        "question": {"type": "string", "minLength": 1},
        "options": {"type": "array", "items": {"type": "string"}},
        "correct_answer": {
          "oneOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}}]
        },
        "points": {"type": "integer", "minimum": 1},
        "time_limit_seconds": {"type": "integer", "minimum": 0},
        "hints": {"type": "array", "items": {"type": "string"}},
        "explanation": {"type": "string"},
        "feedback": {
          "type": "object",
          "properties": {"correct": {"type": "string"}, "incorrect": {"type": "string"}}
        }
      },
      "allOf": [
        {
          "if": {"properties": {"type": {"enum": ["multiple_choice", "matching"]}}},
          "then": {"required": ["options", "correct_answer"], "properties": {"options": {"minItems": 2}}}
        }
      ]
    }
  }
}`

var documentSchema = gojsonschema.NewStringLoader(moduleDocumentSchema)

// ImportDocument validates raw JSON against the module-document schema and
// unmarshals it. Schema violations come back as a ValidationError listing
// every offending field.
func ImportDocument(data []byte) (Module, error) {
	result, err := gojsonschema.Validate(documentSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Module{}, errors.Wrap(err, "validating module document")
	}
	if !result.Valid() {
		flds := make([]core.FieldError, 0, len(result.Errors()))
		for _, resErr := range result.Errors() {
			flds = append(flds, core.FieldError{Field: resErr.Field(), Error: resErr.Description()})
		}
		return Module{}, core.NewValidationError(errors.New("invalid module document"), flds...)
	}

	var doc Module
	if err := json.Unmarshal(data, &doc); err != nil {
		return Module{}, errors.Wrap(err, "unmarshalling module document")
	}
	return doc, nil
}
