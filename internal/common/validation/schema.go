// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// liveDataSchema describes the live data document written by the automation
// pipeline. Unknown top-level keys are allowed so the pipeline can evolve
// without breaking the dashboard.
const liveDataSchema = `{
  "type": "object",
  "properties": {
    "last_updated": {"type": "string"},
    "entities": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "health_score": {"type": "integer", "minimum": 0, "maximum": 100},
          "pending_items": {"type": "integer", "minimum": 0},
          "status": {"type": "string"},
          "recent_activity": {"type": "string"}
        }
      }
    },
    "email_summary": {
      "type": "object",
      "properties": {
        "unread_count": {"type": "integer", "minimum": 0},
        "priority_emails": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "subject": {"type": "string"},
              "from": {"type": "string"},
              "priority": {"type": "string"},
              "entity": {"type": "string"}
            }
          }
        }
      }
    },
    "calendar_summary": {
      "type": "object",
      "properties": {
        "events_today": {"type": "integer", "minimum": 0}
      }
    },
    "system_health": {
      "type": "object",
      "properties": {
        "pending_tasks": {"type": "integer", "minimum": 0}
      }
    },
    "alerts": {
      "type": "object",
      "properties": {
        "count": {"type": "integer", "minimum": 0},
        "items": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "type": {"type": "string"},
              "severity": {"type": "string", "enum": ["low", "medium", "high"]},
              "message": {"type": "string"},
              "entity": {"type": "string"}
            },
            "required": ["severity", "message"]
          }
        }
      }
    }
  }
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateLiveData validates a raw live data document against the schema.
func ValidateLiveData(document []byte) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(liveDataSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return out, nil
}

// FormatErrors flattens validation errors into a single details string.
func FormatErrors(result *ValidationResult) string {
	if result == nil || len(result.Errors) == 0 {
		return ""
	}
	details := ""
	for i, e := range result.Errors {
		if i > 0 {
			details += "; "
		}
		details += fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return details
}
