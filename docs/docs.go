// Package docs registers the Swagger document served at /swagger. Regenerate with `swag init -g cmd/main.go`.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "description": "Returns a bearer token for /api/v1.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/efficiency/predict": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Encodes the reading, predicts panel efficiency and returns maintenance alerts.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["efficiency"],
                "summary": "Predict efficiency and advise",
                "parameters": [
                    {"description": "Site reading", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AdvisoryReport"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "Too Many Requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/efficiency/latest": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["efficiency"],
                "summary": "Latest prediction",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PredictionRecord"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/efficiency/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Newest first. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is end-of-day inclusive.",
                "produces": ["application/json"],
                "tags": ["efficiency"],
                "summary": "Prediction history",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range", "name": "to", "in": "query"},
                    {"type": "integer", "description": "Max records (default 100, max 1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, predictions", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/alerts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Oldest first. Same date formats as the history endpoint.",
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "List alerts",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range", "name": "to", "in": "query"},
                    {"enum": ["info", "warning", "critical"], "type": "string", "description": "Alert severity", "name": "severity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, alerts", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/model": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Feature schema, tree count, artifact checksum and alert thresholds.",
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "Model information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ModelDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/recommendations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Top panels by efficiency within budget. The preferred type follows the budget\n(<20000 Thin-film, <35000 Polycrystalline, else Monocrystalline); when nothing\nmatches, the climate and then the type filter are dropped.",
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Panel recommendations",
                "parameters": [
                    {"type": "number", "example": 25000, "description": "Budget in rupees", "name": "budget", "in": "query", "required": true},
                    {"type": "string", "description": "Hot, Sunny, Temperate or Cloudy", "name": "climate", "in": "query", "required": true},
                    {"type": "integer", "description": "Panels to return (1..10, default 3)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recommend.Result"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/subsidies": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["subsidies"],
                "summary": "Subsidy regions",
                "responses": {
                    "200": {"description": "count, regions", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/subsidies/{region}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Region names are matched case-insensitively.",
                "produces": ["application/json"],
                "tags": ["subsidies"],
                "summary": "Subsidy schemes of a region",
                "parameters": [
                    {"type": "string", "example": "Maharashtra", "description": "Region name", "name": "region", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/subsidy.Region"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handlers.PredictRequest": {
            "type": "object",
            "properties": {
                "days_since_cleaning": {"description": "Days since the panels were last cleaned (0..365)", "type": "integer", "example": 7},
                "dust_level": {"description": "Dust level. Allowed: Low, Medium, High", "type": "string", "example": "Low"},
                "humidity_pct": {"description": "Relative humidity in percent (0..100)", "type": "number", "example": 60},
                "panel_age_years": {"description": "Panel age in years (0..30)", "type": "integer", "example": 3},
                "temperature_c": {"description": "Ambient temperature in Celsius (-10..50)", "type": "number", "example": 25}
            }
        },
        "models.Alert": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "magnitude": {"description": "Magnitude is optimal upper bound minus predicted efficiency; negative means above optimal.", "type": "number"},
                "message": {"type": "string"},
                "next_cleaning_in_days": {"description": "NextCleaningInDays is negative when cleaning is already overdue.", "type": "integer"},
                "severity": {"$ref": "#/definitions/models.Severity"},
                "title": {"type": "string"}
            }
        },
        "models.AdvisoryReport": {
            "type": "object",
            "properties": {
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/models.Alert"}},
                "created_at": {"type": "string"},
                "delta_vs_optimal": {"type": "number"},
                "efficiency": {"type": "number"},
                "optimal_range": {"$ref": "#/definitions/models.EfficiencyRange"},
                "prediction_id": {"type": "string"}
            }
        },
        "models.EfficiencyRange": {
            "type": "object",
            "properties": {
                "lower": {"type": "number"},
                "upper": {"type": "number"}
            }
        },
        "models.PredictionRecord": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "efficiency": {"type": "number"},
                "id": {"type": "string"},
                "reading": {"$ref": "#/definitions/models.Reading"},
                "severity": {"$ref": "#/definitions/models.Severity"},
                "source": {"type": "string"}
            }
        },
        "models.Reading": {
            "type": "object",
            "properties": {
                "days_since_cleaning": {"type": "integer"},
                "dust_level": {"type": "string"},
                "humidity_pct": {"type": "number"},
                "panel_age_years": {"type": "integer"},
                "temperature_c": {"type": "number"}
            }
        },
        "models.Severity": {
            "type": "string",
            "enum": ["info", "warning", "critical"]
        },
        "service.ModelDetails": {
            "type": "object",
            "properties": {
                "algorithm": {"type": "string"},
                "base_score": {"type": "number"},
                "path": {"type": "string"},
                "schema": {"type": "array", "items": {"type": "string"}},
                "sha256": {"type": "string"},
                "thresholds": {"type": "object", "additionalProperties": {"type": "number"}},
                "tree_count": {"type": "integer"}
            }
        },
        "recommend.Panel": {
            "type": "object",
            "properties": {
                "best_climate": {"type": "string"},
                "company": {"type": "string"},
                "cost_inr": {"type": "integer"},
                "efficiency_pct": {"type": "number"},
                "lifespan_years": {"type": "integer"},
                "panel_type": {"type": "string"},
                "power_output_w": {"type": "integer"},
                "warranty_years": {"type": "integer"}
            }
        },
        "recommend.Result": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "climate": {"type": "string"},
                "match": {"type": "string"},
                "panels": {"type": "array", "items": {"$ref": "#/definitions/recommend.Panel"}}
            }
        },
        "subsidy.Region": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "schemes": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Solar Efficiency Advisor API",
	Description:      "Predicts solar panel efficiency from site conditions and returns maintenance alerts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
