// Package docs holds the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Server is running"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Store reachable"},
                    "503": {"description": "Store unreachable"}
                }
            }
        },
        "/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}],
                "responses": {
                    "201": {"description": "Signup Successful!", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Signup Failed!", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Login Failed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "End the session",
                "security": [{"TokenAuth": []}],
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Logout Successful!"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/todos": {
            "get": {
                "tags": ["auth"],
                "summary": "List the caller's tasks wrapped in an object",
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Tasks", "schema": {"$ref": "#/definitions/TodosResponse"}},
                    "401": {"description": "Missing or invalid token"},
                    "403": {"description": "Failed to get todos", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["tasks"],
                "summary": "List the caller's tasks",
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Tasks", "schema": {"type": "array", "items": {"$ref": "#/definitions/Task"}}},
                    "503": {"description": "Failed to get todos!", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create a task",
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}],
                "responses": {
                    "201": {"description": "Todo added successfully!", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Failed to add todo!", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["tasks"],
                "summary": "Update the first task matching title and description",
                "description": "Responds 201 whether or not a task matched.",
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateTaskByMatchRequest"}}],
                "responses": {
                    "201": {"description": "Todo updated successfully!", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Failed to update todo!", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete the first task matching title, description and tag",
                "description": "Responds 201 whether or not a task matched.",
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/DeleteTaskByMatchRequest"}}],
                "responses": {
                    "201": {"description": "Todo deleted successfully!", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Failed to delete todo!", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/{id}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Get one of the caller's tasks",
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "201": {"description": "Task", "schema": {"$ref": "#/definitions/Task"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["tasks"],
                "summary": "Replace a task by id",
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Todo updated successfully!", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task by id",
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "201": {"description": "Todo deleted successfully!", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/{id}/done": {
            "patch": {
                "tags": ["tasks"],
                "summary": "Mark a task done or not done",
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"type": "object", "properties": {"done": {"type": "boolean"}}}}
                ],
                "responses": {
                    "201": {"description": "Todo updated successfully!", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "LoginResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "SignupRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string", "minLength": 2, "maxLength": 50},
                "email": {"type": "string", "minLength": 5, "maxLength": 50},
                "password": {"type": "string", "minLength": 6, "maxLength": 18}
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
        "CreateTaskRequest": {
            "type": "object",
            "required": ["title", "description", "tag", "deadline", "section"],
            "properties": {
                "title": {"type": "string", "minLength": 3, "maxLength": 50},
                "description": {"type": "string", "minLength": 3, "maxLength": 100},
                "tag": {"type": "string", "enum": ["Low", "Medium", "High"]},
                "deadline": {"type": "string"},
                "section": {"type": "string", "enum": ["todo", "inProgress", "underReview", "finished"]},
                "done": {"type": "boolean"}
            }
        },
        "UpdateTaskByMatchRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "newTitle": {"type": "string"},
                "newDescription": {"type": "string"},
                "newTag": {"type": "string", "enum": ["Low", "Medium", "High"]},
                "newDeadline": {"type": "string"},
                "newSection": {"type": "string", "enum": ["todo", "inProgress", "underReview", "finished"]}
            }
        },
        "DeleteTaskByMatchRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "tag": {"type": "string", "enum": ["Low", "Medium", "High"]}
            }
        },
        "Task": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "userId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "tag": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "section": {"type": "string"},
                "done": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "TodosResponse": {
            "type": "object",
            "properties": {"todos": {"type": "array", "items": {"$ref": "#/definitions/Task"}}}
        }
    },
    "securityDefinitions": {
        "TokenAuth": {
            "type": "apiKey",
            "name": "token",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "TaskFlow API",
	Description:      "Personal kanban task tracking with token authentication",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
