// Package docs registers the OpenAPI description served under /swagger/.
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
        "/api/v1/price": {
            "get": {
                "description": "Returns the cached rate, fetching it from the price API on a cache miss.",
                "produces": ["application/json", "text/plain"],
                "tags": ["price"],
                "summary": "Current BTC/USD rate",
                "parameters": [
                    {
                        "enum": ["json", "text"],
                        "type": "string",
                        "description": "Response format",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.PriceResponse"}
                    },
                    "400": {
                        "description": "Unsupported format",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    },
                    "503": {
                        "description": "Price temporarily unavailable",
                        "schema": {"$ref": "#/definitions/dto.ErrorResponse"}
                    }
                }
            }
        },
        "/api/v1/alerts/ws": {
            "get": {
                "description": "Websocket stream of movement alerts as JSON text frames.",
                "tags": ["alerts"],
                "summary": "Live movement alerts",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Responds without checking any dependency.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Basic health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.HealthResponse"}
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Pings the cache store.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.HealthResponse"}
                    },
                    "503": {
                        "description": "Cache store unreachable",
                        "schema": {"$ref": "#/definitions/dto.HealthResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "PRICE_UNAVAILABLE"},
                "message": {"type": "string", "example": "Failed to fetch the current price"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "services": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string", "enum": ["OK", "ready", "unhealthy"], "example": "OK"},
                "timestamp": {"type": "string", "example": "2023-12-01T10:30:00Z"}
            }
        },
        "dto.PriceResponse": {
            "type": "object",
            "properties": {
                "display": {"type": "string", "example": "$42001"},
                "rate": {"type": "number", "example": 42000.51},
                "time": {"type": "string", "example": "2024-01-01T00:00:00.0000000Z"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "BTC Rate Monitor API",
	Description:      "Cached BTC/USD exchange rate and live movement alerts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
