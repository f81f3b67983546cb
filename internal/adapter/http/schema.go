package httpadapter

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const tickSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["session_id", "observation"],
  "properties": {
    "session_id": {"type": "string", "minLength": 1},
    "input_at": {"type": "string", "format": "date-time"},
    "observation": {
      "type": "object",
      "required": ["tick"],
      "properties": {
        "tick": {"type": "integer", "minimum": 0},
        "player": {"oneOf": [{"type": "null"}, {"$ref": "#/definitions/point"}]},
        "base_x": {"type": "integer"},
        "base_y": {"type": "integer"},
        "animation": {"type": ["integer", "null"]},
        "interacting": {
          "oneOf": [
            {"type": "null"},
            {
              "type": "object",
              "required": ["id"],
              "properties": {"id": {"type": "string"}, "name": {"type": "string"}}
            }
          ]
        },
        "objects": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "required": ["id", "position"],
            "properties": {
              "id": {"type": "string", "minLength": 1},
              "name": {"type": "string"},
              "position": {"$ref": "#/definitions/point"}
            }
          }
        },
        "inventory": {
          "oneOf": [
            {"type": "null"},
            {
              "type": "object",
              "properties": {
                "used": {"type": "integer", "minimum": 0},
                "capacity": {"type": "integer", "minimum": 0}
              }
            }
          ]
        }
      }
    }
  },
  "definitions": {
    "point": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {
        "x": {"type": "integer"},
        "y": {"type": "integer"},
        "plane": {"type": "integer", "minimum": 0, "maximum": 3}
      }
    }
  }
}`

var tickSchema = jsonschema.MustCompileString("tick.json", tickSchemaJSON)

func validateTickBody(body []byte) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return err
	}
	if err := tickSchema.Validate(doc); err != nil {
		return fmt.Errorf("tick body: %w", err)
	}
	return nil
}
