// Package docs holds the OpenAPI document served at /swagger. Regenerate it
// with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Catalogue counters plus the number of times this session has opened the home page",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Library home page",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/authors": {
            "get": {
                "description": "Authors ordered by last name, two per page. Out of range pages resolve to the last page.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List authors",
                "parameters": [
                    {"type": "string", "default": "1", "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Add an author",
                "parameters": [
                    {"description": "Author", "name": "author", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.AuthorForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/authors/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get author by ID",
                "parameters": [
                    {"type": "integer", "description": "Author ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/books": {
            "get": {
                "description": "Books with author and genres, two per page",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List books",
                "parameters": [
                    {"type": "string", "default": "1", "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Add a book",
                "parameters": [
                    {"description": "Book", "name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.BookForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/books/{id}": {
            "get": {
                "description": "A book with its genres and reviews, newest review first",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get book by ID",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/books/{id}/reviews": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Adds a review by the signed-in user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Review a book",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "id", "in": "path", "required": true},
                    {"description": "Review", "name": "review", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.BookReviewForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/search": {
            "get": {
                "description": "Case-insensitive substring match on title, summary and author first name. A missing query matches every book.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Search books",
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "query", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/genres": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List genres",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Add a genre",
                "parameters": [
                    {"description": "Genre", "name": "genre", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.GenreForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/mybooks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Copies with status \"taken\" ordered by due date, ten per page",
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Books on loan to the current user",
                "parameters": [
                    {"type": "string", "default": "1", "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/mybooks/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Loaned copy by ID",
                "parameters": [
                    {"type": "string", "description": "Book instance UUID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/book-instances": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Add a copy of a book",
                "parameters": [
                    {"description": "Book instance", "name": "instance", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.BookInstanceForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/book-instances/new": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "The available loan statuses for creating a copy",
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Book instance form choices",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/book-instances/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Edit a copy of a book",
                "parameters": [
                    {"type": "string", "description": "Book instance UUID", "name": "id", "in": "path", "required": true},
                    {"description": "Book instance", "name": "instance", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.BookInstanceForm"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "description": "Creates the user and its profile. Passwords must match and the username and email must be unused.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Create a reader account",
                "parameters": [
                    {"description": "Registration", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.RegistrationForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Obtain an access token",
                "parameters": [
                    {"description": "Credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/forms.LoginForm"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Username and email plus an optional photo, which is shrunk to fit 300x300",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Update the current user's profile",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "file", "description": "Profile photo", "name": "photo", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/upload/presign": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Generate a presigned PUT URL under the covers prefix. The public URL goes into the book's cover field.",
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Get presigned URL for a book cover upload",
                "parameters": [
                    {"type": "string", "description": "Filename", "name": "filename", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        }
    },
    "definitions": {
        "forms.AuthorForm": {
            "type": "object",
            "required": ["first_name", "last_name", "description"],
            "properties": {
                "first_name": {"type": "string", "maxLength": 100},
                "last_name": {"type": "string", "maxLength": 100},
                "description": {"type": "string"}
            }
        },
        "forms.BookForm": {
            "type": "object",
            "required": ["title", "summary", "isbn", "genre_ids"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "author_id": {"type": "integer"},
                "summary": {"type": "string", "maxLength": 1000},
                "isbn": {"type": "string", "maxLength": 13},
                "cover": {"type": "string"},
                "genre_ids": {"type": "array", "minItems": 1, "items": {"type": "integer"}}
            }
        },
        "forms.BookInstanceForm": {
            "type": "object",
            "required": ["book_id"],
            "properties": {
                "book_id": {"type": "integer"},
                "status": {"type": "string", "enum": ["a", "p", "g", "r"]},
                "due_back": {"type": "string", "example": "2026-11-01"},
                "reader_id": {"type": "integer"}
            }
        },
        "forms.BookReviewForm": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "string", "maxLength": 2000}
            }
        },
        "forms.GenreForm": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 200}
            }
        },
        "forms.LoginForm": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "forms.RegistrationForm": {
            "type": "object",
            "required": ["username", "email", "password", "password2"],
            "properties": {
                "username": {"type": "string", "maxLength": 150},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "password2": {"type": "string"}
            }
        },
        "utils.PaginationMeta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "has_next": {"type": "boolean"},
                "has_previous": {"type": "boolean"}
            }
        },
        "utils.StandardResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "meta": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8010",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Local Library API",
	Description:      "Library catalogue with authors, books, copies on loan, reviews and reader accounts",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
