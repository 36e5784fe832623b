package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CEC Timetable API",
        "description": "Administrative backend for the continuing-education center, centered on the weekly timetable editor",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Operator sign-in"},
        {"name": "Catalog", "description": "Classes, teachers, rooms, courses, weeks"},
        {"name": "Schedules", "description": "Committed timetables and exports"},
        {"name": "Editor", "description": "Interactive timetable editing sessions"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current operator",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List classes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "facility_id", "in": "query", "type": "string"},
                    {"name": "major_id", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List teachers",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/facilities": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List facilities",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List rooms of a facility",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "facility_id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List program courses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "intake_year", "in": "query", "type": "integer", "required": true},
                    {"name": "major_id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List the weeks of a term",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "term", "in": "query", "type": "string", "required": true},
                    {"name": "academic_year", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List committed timetable entries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "string", "required": true},
                    {"name": "term", "in": "query", "type": "string", "required": true},
                    {"name": "academic_year", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Commit a batch of assignments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommitRequest"}}
                ],
                "responses": {
                    "200": {"description": "Commit result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Fetch a committed entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Entry not found"}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a committed entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "410": {"description": "Entry no longer exists"}
                }
            }
        },
        "/schedules/export": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Export a class timetable",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "string", "required": true},
                    {"name": "term", "in": "query", "type": "string", "required": true},
                    {"name": "academic_year", "in": "query", "type": "integer", "required": true},
                    {"name": "from_week", "in": "query", "type": "integer"},
                    {"name": "to_week", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/schedules/export/jobs": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Queue a timetable export",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "string", "required": true},
                    {"name": "term", "in": "query", "type": "string", "required": true},
                    {"name": "academic_year", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/export/jobs/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Poll an export job",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/export/download": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download a finished export",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/editor/sessions": {
            "post": {
                "tags": ["Editor"],
                "summary": "Open an editing session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/editor/sessions/{id}": {
            "get": {
                "tags": ["Editor"],
                "summary": "Session snapshot",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Session expired"}
                }
            },
            "delete": {
                "tags": ["Editor"],
                "summary": "Discard an editing session",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "Discarded"}
                }
            }
        },
        "/editor/sessions/{id}/preview": {
            "get": {
                "tags": ["Editor"],
                "summary": "Preview a grid cell",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "week", "in": "query", "type": "integer", "required": true},
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "period", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/editor/sessions/{id}/pairs": {
            "post": {
                "tags": ["Editor"],
                "summary": "Stage a subject-teacher pair",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StagePairRequest"}}
                ],
                "responses": {
                    "201": {"description": "Staged", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Editor"],
                "summary": "Remove a staged pair",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "subject_code", "in": "query", "type": "string", "required": true},
                    {"name": "teacher_id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/editor/sessions/{id}/selection": {
            "put": {
                "tags": ["Editor"],
                "summary": "Pick the active pair and delivery settings",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/editor/sessions/{id}/click": {
            "post": {
                "tags": ["Editor"],
                "summary": "Click a grid cell",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClickRequest"}}
                ],
                "responses": {
                    "200": {"description": "Outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/editor/sessions/{id}/confirm": {
            "post": {
                "tags": ["Editor"],
                "summary": "Confirm the pending prompt",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/editor/sessions/{id}/cancel": {
            "post": {
                "tags": ["Editor"],
                "summary": "Dismiss the pending prompt",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "Dismissed"}
                }
            }
        },
        "/editor/sessions/{id}/validate": {
            "post": {
                "tags": ["Editor"],
                "summary": "Validate the whole grid",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Findings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/editor/sessions/{id}/submit": {
            "post": {
                "tags": ["Editor"],
                "summary": "Commit the session's staged assignments",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Commit result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unresolved conflicts"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateSessionRequest": {
            "type": "object",
            "required": ["class_id", "term", "academic_year"],
            "properties": {
                "class_id": {"type": "string"},
                "term": {"type": "string", "enum": ["HK1", "HK2", "HK3"]},
                "academic_year": {"type": "integer"}
            }
        },
        "StagePairRequest": {
            "type": "object",
            "required": ["subject_code", "subject_name", "teacher_id", "teacher_name"],
            "properties": {
                "subject_code": {"type": "string"},
                "subject_name": {"type": "string"},
                "credits": {"type": "integer"},
                "teacher_id": {"type": "string"},
                "teacher_name": {"type": "string"}
            }
        },
        "SelectionRequest": {
            "type": "object",
            "properties": {
                "subject_code": {"type": "string"},
                "teacher_id": {"type": "string"},
                "delivery_mode": {"type": "string", "enum": ["IN_PERSON", "REMOTE"]},
                "room_id": {"type": "string"}
            }
        },
        "CommitRequest": {
            "type": "object",
            "required": ["class_id", "term", "academic_year", "items"],
            "properties": {
                "class_id": {"type": "string"},
                "term": {"type": "string", "enum": ["HK1", "HK2", "HK3"]},
                "academic_year": {"type": "integer"},
                "items": {"type": "array", "items": {"type": "object"}}
            }
        },
        "ClickRequest": {
            "type": "object",
            "required": ["week", "day", "period"],
            "properties": {
                "week": {"type": "integer"},
                "day": {"type": "string"},
                "period": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
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
