package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AutoCloud API",
        "description": "Storage cleanup dashboard backend for Google Drive accounts",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Google sign-in and local sessions"},
        {"name": "Users", "description": "Persisted account snapshots"},
        {"name": "Cleanup", "description": "Rule-based Drive cleanup and trash ledger"},
        {"name": "Dashboard", "description": "Live storage overview"},
        {"name": "Suggestions", "description": "Heuristic cleanup recommendations"}
    ],
    "paths": {
        "/auth/google": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Sign in with a Google access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GoogleAuthRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Token expired or revoked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get a user snapshot",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown user", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cleanup/drive": {
            "post": {
                "tags": ["Cleanup"],
                "summary": "Preview or execute a Drive cleanup",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CleanupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cleanup/history": {
            "post": {
                "tags": ["Cleanup"],
                "summary": "List the trash ledger for an owner",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HistoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cleanup/history/export": {
            "get": {
                "tags": ["Cleanup"],
                "summary": "Download the trash ledger as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "email", "in": "query", "required": true, "type": "string"},
                    {"name": "days", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/cleanup/restore": {
            "post": {
                "tags": ["Cleanup"],
                "summary": "Restore a file from the Drive bin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RestoreRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Live storage overview",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DashboardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/suggestions": {
            "post": {
                "tags": ["Suggestions"],
                "summary": "Suggest cleanup candidates",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SuggestionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GoogleAuthRequest": {
            "type": "object",
            "required": ["accessToken"],
            "properties": {
                "accessToken": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Rule": {
            "type": "object",
            "required": ["pattern", "condition", "value"],
            "properties": {
                "pattern": {"type": "string"},
                "condition": {"type": "string", "enum": ["older-than", "larger-than", "contains"]},
                "value": {"type": "string"},
                "enabled": {"type": "boolean"}
            }
        },
        "CleanupRequest": {
            "type": "object",
            "required": ["accessToken", "ownerEmail", "rules"],
            "properties": {
                "accessToken": {"type": "string"},
                "ownerEmail": {"type": "string"},
                "rules": {"type": "array", "items": {"$ref": "#/definitions/Rule"}},
                "preview": {"type": "boolean"},
                "forceRefresh": {"type": "boolean"}
            }
        },
        "HistoryRequest": {
            "type": "object",
            "required": ["ownerEmail"],
            "properties": {
                "ownerEmail": {"type": "string"},
                "filterDays": {"type": "integer"}
            }
        },
        "RestoreRequest": {
            "type": "object",
            "required": ["fileId"],
            "properties": {
                "fileId": {"type": "string"},
                "accessToken": {"type": "string"}
            }
        },
        "DashboardRequest": {
            "type": "object",
            "required": ["accessToken"],
            "properties": {
                "accessToken": {"type": "string"}
            }
        },
        "SuggestionsRequest": {
            "type": "object",
            "required": ["accessToken", "ownerEmail"],
            "properties": {
                "accessToken": {"type": "string"},
                "ownerEmail": {"type": "string"},
                "forceRefresh": {"type": "boolean"}
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
