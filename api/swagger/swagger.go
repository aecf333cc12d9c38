package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lab Portal API",
        "description": "Lab registry, weekly lab timetables and user/admin authentication.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Sign-up, sign-in and session"},
        {"name": "System", "description": "Health and metrics"},
        {"name": "Labs", "description": "Lab registry"},
        {"name": "Timetables", "description": "Weekly lab timetables"},
        {"name": "Users", "description": "User profile"},
        {"name": "Admin", "description": "Administration"}
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["System"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["System"], "summary": "Readiness probe", "responses": {"200": {"description": "Ready"}, "503": {"description": "A backing store is unreachable"}}}
        },
        "/auth/signup": {
            "post": {
                "tags": ["Authentication"], "summary": "Register a user",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignUpRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SignUpResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Duplicate account", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/auth/admin/signup": {
            "post": {
                "tags": ["Authentication"], "summary": "Register an admin",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignUpRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SignUpResponse"}},
                    "409": {"description": "Duplicate account", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["Authentication"], "summary": "User sign-in",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SignInResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/auth/admin/signin": {
            "post": {
                "tags": ["Authentication"], "summary": "Admin sign-in",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminSignInRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SignInResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Invalid admin key", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/auth/google-verify-token": {
            "post": {
                "tags": ["Authentication"], "summary": "Sign in with a Google ID token",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"token": {"type": "string"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SignInResponse"}},
                    "401": {"description": "Invalid token", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/auth/me": {
            "get": {"tags": ["Authentication"], "summary": "Current principal", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["Authentication"], "summary": "Log out", "responses": {"200": {"description": "OK"}}}
        },
        "/labs": {
            "get": {"tags": ["Labs"], "summary": "List labs", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Lab"}}}}}
        },
        "/labs/export": {
            "get": {
                "tags": ["Labs"], "summary": "Export the lab inventory", "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/labs/type/{type}": {
            "get": {
                "tags": ["Labs"], "summary": "List labs of one type", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "type", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Lab"}}}}
            }
        },
        "/labs/{id}": {
            "get": {
                "tags": ["Labs"], "summary": "Get a lab", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Lab"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}}
            }
        },
        "/timetable": {
            "get": {"tags": ["Timetables"], "summary": "List timetables", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Timetable"}}}}},
            "post": {
                "tags": ["Timetables"], "summary": "Create a timetable", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Timetable"}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Unknown lab"}, "409": {"description": "Timetable exists"}}
            }
        },
        "/timetable/slots": {
            "get": {"tags": ["Timetables"], "summary": "Reference days and hour labels", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/timetable/lab/{labId}": {
            "get": {
                "tags": ["Timetables"], "summary": "Timetable of one lab", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "labId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Timetable or {labId, schedule: []}"}}
            }
        },
        "/timetable/lab/{labId}/export": {
            "get": {
                "tags": ["Timetables"], "summary": "Export one lab's timetable", "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "labId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}, "404": {"description": "No timetable"}}
            }
        },
        "/timetable/{id}": {
            "put": {
                "tags": ["Timetables"], "summary": "Update a timetable", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Timetables"], "summary": "Delete a timetable", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/users/profile": {
            "get": {"tags": ["Users"], "summary": "Current user's profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {
                "tags": ["Users"], "summary": "Update the current user's email or password", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Email in use", "schema": {"$ref": "#/definitions/ErrorBody"}}}
            }
        },
        "/users/labs": {
            "get": {"tags": ["Users"], "summary": "Lab overview for the user dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/LabSummary"}}}}}
        },
        "/users/labs/{id}": {
            "get": {
                "tags": ["Users"], "summary": "Get a lab", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Lab"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}}
            }
        },
        "/admin/dashboard": {
            "get": {"tags": ["Admin"], "summary": "Dashboard statistics", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardStats"}}}}
        },
        "/admin/users": {
            "get": {"tags": ["Admin"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users/{userId}": {
            "get": {
                "tags": ["Admin"], "summary": "Get a user", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "userId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/admin/users/{userId}/status": {
            "put": {
                "tags": ["Admin"], "summary": "Activate or deactivate a user", "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"isActive": {"type": "boolean"}}}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/labs": {
            "get": {"tags": ["Admin"], "summary": "List labs", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Admin"], "summary": "Create a lab", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Lab"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Lab"}}, "400": {"description": "Validation error"}}
            }
        },
        "/admin/labs/{id}": {
            "put": {
                "tags": ["Admin"], "summary": "Update a lab", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Admin"], "summary": "Delete a lab", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}, "409": {"description": "Lab has a timetable"}}
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "code": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "SignUpRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "maxLength": 72}}
        },
        "SignInRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "AdminSignInRequest": {
            "type": "object",
            "required": ["email", "password", "adminKey"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "adminKey": {"type": "string"}}
        },
        "Identity": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "SignUpResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "user": {"$ref": "#/definitions/Identity"}, "admin": {"$ref": "#/definitions/Identity"}}
        },
        "SignInResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/Identity"}, "admin": {"$ref": "#/definitions/Identity"}}
        },
        "UpdateProfileRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "maxLength": 72}}
        },
        "LabSummary": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "labName": {"type": "string"}, "department": {"type": "string"}, "location": {"type": "string"}, "capacity": {"type": "integer"}, "equipments": {"type": "string"}}
        },
        "Lab": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "labName": {"type": "string"},
                "department": {"type": "string"},
                "location": {"type": "string"},
                "capacity": {"type": "integer"},
                "equipments": {"type": "string"},
                "availableSystem": {"type": "integer"},
                "workingSystem": {"type": "integer"},
                "incharge": {"type": "string"},
                "technician": {"type": "string"},
                "software": {"type": "string"},
                "specifications": {"type": "string"},
                "labType": {"type": "string"}
            }
        },
        "TimeSlot": {
            "type": "object",
            "properties": {
                "hour": {"type": "string"},
                "subject": {"type": "string"},
                "faculty": {"type": "string"},
                "class": {"type": "string"},
                "isAvailable": {"type": "boolean"}
            }
        },
        "DaySchedule": {
            "type": "object",
            "properties": {
                "day": {"type": "string", "enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday"]},
                "timeSlots": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}}
            }
        },
        "Timetable": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "labId": {"type": "string"},
                "labName": {"type": "string"},
                "schedule": {"type": "array", "items": {"$ref": "#/definitions/DaySchedule"}}
            }
        },
        "DashboardStats": {
            "type": "object",
            "properties": {
                "totalUsers": {"type": "integer"},
                "totalLabs": {"type": "integer"},
                "totalTimetables": {"type": "integer"},
                "todayBookings": {"type": "integer"}
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
