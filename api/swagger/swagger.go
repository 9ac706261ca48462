package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cash Advance Monitoring API",
        "description": "Staff registration and cash advance request/approval service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Staff", "description": "Staff registration and roster management"},
        {"name": "Cash Advances", "description": "Cash advance requests, approvals and retirement"},
        {"name": "Health", "description": "Service availability"}
    ],
    "paths": {
        "/api/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/staff/register": {
            "post": {
                "tags": ["Staff"],
                "summary": "Register a staff member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStaffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SuccessEnvelope"}},
                    "400": {"description": "Validation or duplicate error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/staff": {
            "get": {
                "tags": ["Staff"],
                "summary": "List staff members",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        },
        "/api/staff/search/{query}": {
            "get": {
                "tags": ["Staff"],
                "summary": "Search staff members",
                "parameters": [
                    {"name": "query", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        },
        "/api/staff/{id}": {
            "get": {
                "tags": ["Staff"],
                "summary": "Get staff member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Staff"],
                "summary": "Update staff member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStaffRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Staff"],
                "summary": "Delete staff member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        },
        "/api/cash-advance": {
            "post": {
                "tags": ["Cash Advances"],
                "summary": "Create cash advance request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCashAdvanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            },
            "get": {
                "tags": ["Cash Advances"],
                "summary": "List cash advance requests",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "staffId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        },
        "/api/cash-advance/stats/overview": {
            "get": {
                "tags": ["Cash Advances"],
                "summary": "Aggregate statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        },
        "/api/cash-advance/export": {
            "get": {
                "tags": ["Cash Advances"],
                "summary": "Export cash advances as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "staffId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File payload"}
                }
            }
        },
        "/api/cash-advance/staff/{staffId}": {
            "get": {
                "tags": ["Cash Advances"],
                "summary": "List cash advances for one staff member",
                "parameters": [
                    {"name": "staffId", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        },
        "/api/cash-advance/{id}": {
            "get": {
                "tags": ["Cash Advances"],
                "summary": "Get cash advance request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/cash-advance/{id}/status": {
            "put": {
                "tags": ["Cash Advances"],
                "summary": "Transition cash advance status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        },
        "/api/cash-advance/{id}/retirement": {
            "put": {
                "tags": ["Cash Advances"],
                "summary": "Add retirement notes",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RetirementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterStaffRequest": {
            "type": "object",
            "required": ["email", "firstName", "lastName", "phone", "staffId", "jobRole"],
            "properties": {
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "phone": {"type": "string"},
                "staffId": {"type": "string"},
                "jobRole": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "UpdateStaffRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "phone": {"type": "string"},
                "staffId": {"type": "string"},
                "jobRole": {"type": "string"},
                "department": {"type": "string"},
                "isActive": {"type": "boolean"},
                "isVerified": {"type": "boolean"}
            }
        },
        "CreateCashAdvanceRequest": {
            "type": "object",
            "required": ["staffId", "purpose", "amount", "currency", "neededBy", "description", "paymentMethod"],
            "properties": {
                "staffId": {"type": "string"},
                "purpose": {"type": "string"},
                "amount": {"type": "number"},
                "currency": {"type": "string", "enum": ["USD", "EUR", "GBP", "NGN"]},
                "neededBy": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "projectCode": {"type": "string"},
                "paymentMethod": {"type": "string", "enum": ["bank_transfer", "check", "cash"]}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"},
                "rejectionReason": {"type": "string"},
                "approvedBy": {"type": "string"}
            }
        },
        "RetirementRequest": {
            "type": "object",
            "required": ["retirementNotes"],
            "properties": {
                "retirementNotes": {"type": "string"}
            }
        },
        "SuccessEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
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
