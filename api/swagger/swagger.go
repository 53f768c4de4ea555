package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Athlete Load API",
        "description": "Wellness check-in/check-out workflow and training-load monitoring",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Wellness", "description": "Daily check-in and check-out records"},
        {"name": "Load", "description": "Individual training-load reports"},
        {"name": "Dashboard", "description": "Group wellness and load overview"},
        {"name": "Reference", "description": "Roster, competitions and lookup catalogs"},
        {"name": "System", "description": "Runtime metrics"}
    ],
    "paths": {
        "/wellness/check-in": {
            "post": {
                "tags": ["Wellness"],
                "summary": "Submit a pre-session wellness check-in",
                "description": "Creates the record for (athlete, date, shift) or overwrites an existing one.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckInRequest"}}
                ],
                "responses": {
                    "200": {"description": "Overwritten", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Concurrent first write", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Record store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/wellness/check-out": {
            "post": {
                "tags": ["Wellness"],
                "summary": "Submit a post-session check-out",
                "description": "Completes the day's check-in. Training load is RPE x minutes.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckOutRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error or missing check-in", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Record store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/wellness": {
            "get": {
                "tags": ["Wellness"],
                "summary": "List wellness records",
                "parameters": [
                    {"name": "athlete_id", "in": "query", "type": "string"},
                    {"name": "squad", "in": "query", "type": "string"},
                    {"name": "position", "in": "query", "type": "string"},
                    {"name": "shift", "in": "query", "type": "string"},
                    {"name": "phase", "in": "query", "type": "string", "enum": ["checkin", "checkout"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Wellness"],
                "summary": "Delete wellness records (ADMIN, DEVELOPER)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteWellnessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/wellness/key": {
            "get": {
                "tags": ["Wellness"],
                "summary": "Fetch one record by natural key",
                "parameters": [
                    {"name": "athlete_id", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "shift", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/wellness/export": {
            "get": {
                "tags": ["Wellness"],
                "summary": "Download wellness records",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "503": {"description": "Record store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/athletes/{id}/load": {
            "get": {
                "tags": ["Load"],
                "summary": "Individual training-load report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "end", "in": "query", "type": "string", "format": "date"},
                    {"name": "shift", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown athlete", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/group": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Group wellness and load dashboard",
                "parameters": [
                    {"name": "period", "in": "query", "type": "string", "enum": ["today", "last_day", "week", "month"]},
                    {"name": "squad", "in": "query", "type": "string"},
                    {"name": "position", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/group/export": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Download the group summary",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "period", "in": "query", "type": "string"},
                    {"name": "squad", "in": "query", "type": "string"},
                    {"name": "position", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/reference/athletes": {
            "get": {
                "tags": ["Reference"],
                "summary": "List active athletes",
                "parameters": [
                    {"name": "squad", "in": "query", "type": "string"},
                    {"name": "position", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reference/competitions": {
            "get": {
                "tags": ["Reference"],
                "summary": "List competitions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reference/catalogs/{name}": {
            "get": {
                "tags": ["Reference"],
                "summary": "List the entries of a lookup catalog",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string", "enum": ["body_zones", "stimulus_types", "rehab_types"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown catalog", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated runtime metrics (ADMIN, DEVELOPER)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CheckInRequest": {
            "type": "object",
            "required": ["athlete_id", "recovery", "energy", "sleep", "stress", "pain"],
            "properties": {
                "athlete_id": {"type": "string"},
                "session_date": {"type": "string", "format": "date"},
                "shift": {"type": "string"},
                "recovery": {"type": "integer", "minimum": 1, "maximum": 5},
                "energy": {"type": "integer", "minimum": 1, "maximum": 5},
                "sleep": {"type": "integer", "minimum": 1, "maximum": 5},
                "stress": {"type": "integer", "minimum": 1, "maximum": 5},
                "pain": {"type": "integer", "minimum": 1, "maximum": 5},
                "pain_body_parts": {"type": "array", "items": {"type": "string"}},
                "match_day_plus": {"type": "string", "example": "MD+1"},
                "match_day_minus": {"type": "string", "example": "MD-6"},
                "stimulus_type_id": {"type": "integer"},
                "rehab_type_id": {"type": "integer"},
                "in_menstrual_period": {"type": "boolean"},
                "notes": {"type": "string"}
            }
        },
        "CheckOutRequest": {
            "type": "object",
            "required": ["athlete_id", "session_minutes", "rpe"],
            "properties": {
                "athlete_id": {"type": "string"},
                "session_date": {"type": "string", "format": "date"},
                "shift": {"type": "string"},
                "session_minutes": {"type": "integer", "minimum": 1, "maximum": 1440},
                "rpe": {"type": "integer", "minimum": 1, "maximum": 10}
            }
        },
        "DeleteWellnessRequest": {
            "type": "object",
            "required": ["ids"],
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
