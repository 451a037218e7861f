// Package docs registers the OpenAPI description served by gin-swagger.
// Regenerate with: swag init -g cmd/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service description",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/maize_maturity.InfoResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Always 200; inspect status and model_loaded to detect degradation.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/maize_maturity.HealthResponse"}}
                }
            }
        },
        "/predict": {
            "post": {
                "description": "R, G, B in [0,255], temperature in [15,45], humidity in [0,100]. Numeric strings are accepted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prediction"],
                "summary": "Predict kernel maturity",
                "parameters": [
                    {
                        "description": "Kernel colour and environment",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/maize_maturity.PredictRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/maize_maturity.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/maize_maturity.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/maize_maturity.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/maize_maturity.ErrorResponse"}}
                }
            }
        },
        "/logs": {
            "get": {
                "description": "Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List recorded prediction requests",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range", "name": "to", "in": "query"},
                    {"enum": ["PREDICTION", "REJECTED", "UNAVAILABLE", "ERROR"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/maize_maturity.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/maize_maturity.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/maize_maturity.ErrorResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Pushes health envelopes every interval (default 1s, max 10s).",
                "tags": ["system"],
                "summary": "Stream health status",
                "parameters": [
                    {"type": "string", "description": "Go duration, e.g. 2s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Interval in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "maize_maturity.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "maize_maturity.HealthResponse": {
            "type": "object",
            "properties": {
                "model_loaded": {"type": "boolean"},
                "status": {"type": "string", "example": "healthy"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "maize_maturity.InfoResponse": {
            "type": "object",
            "properties": {
                "endpoints": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "maize_maturity.PredictRequest": {
            "type": "object",
            "properties": {
                "B": {"type": "number", "example": 50},
                "G": {"type": "number", "example": 150},
                "R": {"type": "number", "example": 100},
                "humidity": {"type": "number", "example": 60},
                "temperature": {"type": "number", "example": 25}
            }
        },
        "maize_maturity.PredictResponse": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number", "example": 1},
                "prediction": {"type": "string", "example": "Mature"},
                "status": {"type": "string", "example": "success"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Maize Maturity Prediction API",
	Description:      "Classifies maize kernel maturity from RGB colour, temperature and humidity.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
