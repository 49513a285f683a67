// Package docs registers the OpenAPI document served at /swagger/*. It is kept
// in the layout swag produces so it can be regenerated with swag init.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}}
            }
        },
        "/auth/verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Verify the current token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VerifyResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.VerifyResponse"}}
                }
            }
        },
        "/auth/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change the caller's password",
                "parameters": [{"description": "Current and new password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ChangePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/blogs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "List blog posts",
                "parameters": [{"type": "boolean", "description": "Only published posts", "name": "published", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.BlogPost"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Create a blog post",
                "parameters": [{"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.BlogInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.BlogPost"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/blogs/slug/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Get a blog post by slug",
                "parameters": [{"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BlogPost"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/blogs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Get a blog post by ID",
                "parameters": [{"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BlogPost"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Update a blog post",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.BlogInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BlogPost"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Delete a blog post",
                "parameters": [{"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "parameters": [{"type": "boolean", "description": "Only published projects", "name": "published", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Project"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a project",
                "parameters": [{"description": "Project", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProjectInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [{"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Project"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update a project",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Project", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProjectInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Project"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete a project",
                "parameters": [{"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}}
            }
        },
        "/about": {
            "get": {
                "produces": ["application/json"],
                "tags": ["about"],
                "summary": "Get the about profile",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AboutProfile"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["about"],
                "summary": "Replace the about profile",
                "parameters": [{"description": "Profile", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.AboutInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AboutProfile"}}}
            }
        },
        "/contact": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "List contact messages",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.ContactMessage"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Send a contact message",
                "parameters": [{"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ContactInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.ContactMessage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/contact/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Delete a contact message",
                "parameters": [{"type": "string", "description": "Message ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}}
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handler.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"type": "object", "properties": {"username": {"type": "string"}, "role": {"type": "string"}}}
            }
        },
        "handler.VerifyResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "user": {"type": "object", "properties": {"userId": {"type": "string"}, "username": {"type": "string"}, "role": {"type": "string"}}}
            }
        },
        "service.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "service.ChangePasswordRequest": {
            "type": "object",
            "required": ["currentPassword", "newPassword"],
            "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string", "minLength": 8, "maxLength": 72}}
        },
        "service.BlogInput": {
            "type": "object",
            "required": ["title", "slug", "content", "excerpt"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "slug": {"type": "string", "maxLength": 200},
                "content": {"type": "string"},
                "excerpt": {"type": "string", "maxLength": 500},
                "tags": {"type": "array", "items": {"type": "string"}},
                "published": {"type": "boolean"}
            }
        },
        "service.ProjectInput": {
            "type": "object",
            "required": ["title", "slug", "description", "thumbnail", "liveLink", "features", "technologies"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "slug": {"type": "string", "maxLength": 200},
                "description": {"type": "string"},
                "thumbnail": {"type": "string"},
                "liveLink": {"type": "string"},
                "githubLink": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "published": {"type": "boolean"}
            }
        },
        "service.AboutInput": {
            "type": "object",
            "required": ["bio"],
            "properties": {
                "bio": {"type": "string"},
                "workExperience": {"type": "array", "items": {"$ref": "#/definitions/model.WorkExperience"}},
                "skills": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.ContactInput": {
            "type": "object",
            "required": ["name", "email", "subject", "message"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "email": {"type": "string", "maxLength": 200},
                "subject": {"type": "string", "maxLength": 200},
                "message": {"type": "string", "maxLength": 500}
            }
        },
        "model.WorkExperience": {
            "type": "object",
            "properties": {"company": {"type": "string"}, "position": {"type": "string"}, "duration": {"type": "string"}, "description": {"type": "string"}}
        },
        "model.BlogPost": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "content": {"type": "string"},
                "excerpt": {"type": "string"},
                "authorId": {"type": "string"},
                "author": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}}},
                "tags": {"type": "array", "items": {"type": "string"}},
                "published": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "thumbnail": {"type": "string"},
                "liveLink": {"type": "string"},
                "githubLink": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "published": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.AboutProfile": {
            "type": "object",
            "properties": {
                "bio": {"type": "string"},
                "workExperience": {"type": "array", "items": {"$ref": "#/definitions/model.WorkExperience"}},
                "skills": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.ContactMessage": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Portfolio CMS API",
	Description:      "Blog, projects, about profile and contact form for a personal portfolio, with cookie or bearer token authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
