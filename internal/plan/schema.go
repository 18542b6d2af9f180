package plan

import "github.com/xeipuuv/gojsonschema"

const itinerarySchema = `{
  "type": "object",
  "required": ["summary", "days", "budgetBreakdown", "travelTips"],
  "properties": {
    "summary": {"type": "string"},
    "days": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["day", "activities"],
        "properties": {
          "day": {"type": "integer", "minimum": 1, "maximum": 10000},
          "activities": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["time", "description", "location", "cost"],
              "properties": {
                "time": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "cost": {"type": "number", "minimum": 0}
              }
            }
          }
        }
      }
    },
    "budgetBreakdown": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["category", "amount", "percentage"],
        "properties": {
          "category": {"type": "string"},
          "amount": {"type": "number"},
          "percentage": {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    },
    "travelTips": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

var itinerarySchemaLoader = gojsonschema.NewStringLoader(itinerarySchema)
