// Package docs holds the Swagger document served at /swagger/*.
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
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a customer",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				]
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Customer login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				]
			}
		},
		"/auth/forget-password": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Request a password reset link",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.forgetPasswordRequest"
						}
					}
				]
			}
		},
		"/auth/reset-password/{token}": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Reset password",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "token",
						"name": "token",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.resetPasswordRequest"
						}
					}
				]
			}
		},
		"/admin/register": {
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Register an admin",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.adminRegisterRequest"
						}
					}
				]
			}
		},
		"/admin/login": {
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Admin login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				]
			}
		},
		"/admin/logout": {
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Admin logout",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/admin/{id}/role": {
			"patch": {
				"tags": [
					"admin"
				],
				"summary": "Toggle super admin role",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/admin/{id}": {
			"delete": {
				"tags": [
					"admin"
				],
				"summary": "Deactivate an admin",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/blog": {
			"post": {
				"tags": [
					"blog"
				],
				"summary": "Create a blog post",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"multipart/form-data"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "title",
						"name": "title",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "description",
						"name": "description",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "content",
						"name": "content",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "thumbnail",
						"name": "thumbnail",
						"in": "formData",
						"required": true
					}
				]
			}
		},
		"/blog/edit/{slug}": {
			"put": {
				"tags": [
					"blog"
				],
				"summary": "Edit a blog post",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"multipart/form-data"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "slug",
						"name": "slug",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "title",
						"name": "title",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "description",
						"name": "description",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "content",
						"name": "content",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "thumbnail",
						"name": "thumbnail",
						"in": "formData",
						"required": false
					}
				]
			}
		},
		"/blog/{slug}": {
			"delete": {
				"tags": [
					"blog"
				],
				"summary": "Delete a blog post",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "slug",
						"name": "slug",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/blog/delete-comment": {
			"put": {
				"tags": [
					"blog"
				],
				"summary": "Delete a comment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.deleteCommentRequest"
						}
					}
				]
			}
		},
		"/blog/blogs-admin": {
			"get": {
				"tags": [
					"blog"
				],
				"summary": "List every post (admin)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/blog/comment": {
			"put": {
				"tags": [
					"blog"
				],
				"summary": "Comment on a post",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.commentRequest"
						}
					}
				]
			}
		},
		"/blog/like": {
			"put": {
				"tags": [
					"blog"
				],
				"summary": "Like or unlike a post",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.likeRequest"
						}
					}
				]
			}
		},
		"/blog/page/{page}": {
			"get": {
				"tags": [
					"blog"
				],
				"summary": "List posts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "page",
						"name": "page",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/blog/id/{slug}": {
			"get": {
				"tags": [
					"blog"
				],
				"summary": "Get a post",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "slug",
						"name": "slug",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/gallery": {
			"post": {
				"tags": [
					"gallery"
				],
				"summary": "Upload a gallery image",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"consumes": [
					"multipart/form-data"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "file",
						"description": "image",
						"name": "image",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "type",
						"name": "type",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "alt",
						"name": "alt",
						"in": "formData",
						"required": false
					}
				]
			},
			"get": {
				"tags": [
					"gallery"
				],
				"summary": "List gallery images",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "page",
						"name": "page",
						"in": "query"
					},
					{
						"type": "string",
						"description": "category",
						"name": "category",
						"in": "query"
					}
				]
			}
		},
		"/gallery/{id}": {
			"delete": {
				"tags": [
					"gallery"
				],
				"summary": "Delete a gallery image",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/contact": {
			"post": {
				"tags": [
					"contact"
				],
				"summary": "Submit the contact form",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.contactRequest"
						}
					}
				]
			},
			"get": {
				"tags": [
					"contact"
				],
				"summary": "List contact messages",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"response.Envelope": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"statusCode": {
					"type": "integer"
				},
				"message": {
					"type": "string"
				},
				"field": {
					"type": "string"
				},
				"data": {}
			}
		},
		"handler.registerRequest": {
			"type": "object",
			"properties": {
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"confirm_password": {
					"type": "string"
				}
			},
			"required": [
				"first_name",
				"email",
				"password",
				"confirm_password"
			]
		},
		"handler.loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handler.forgetPasswordRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				}
			},
			"required": [
				"email"
			]
		},
		"handler.resetPasswordRequest": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string"
				},
				"confirm_password": {
					"type": "string"
				}
			},
			"required": [
				"password",
				"confirm_password"
			]
		},
		"handler.adminRegisterRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"is_super_admin": {
					"type": "boolean"
				},
				"password": {
					"type": "string"
				},
				"confirm_password": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"email",
				"password",
				"confirm_password"
			]
		},
		"handler.commentRequest": {
			"type": "object",
			"properties": {
				"blog_id": {
					"type": "string"
				},
				"comment": {
					"type": "string"
				}
			},
			"required": [
				"blog_id",
				"comment"
			]
		},
		"handler.deleteCommentRequest": {
			"type": "object",
			"properties": {
				"slug": {
					"type": "string"
				},
				"comment_id": {
					"type": "string"
				}
			},
			"required": [
				"slug",
				"comment_id"
			]
		},
		"handler.likeRequest": {
			"type": "object",
			"properties": {
				"slug": {
					"type": "string"
				}
			},
			"required": [
				"slug"
			]
		},
		"handler.contactRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"mobile": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"message"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the session token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Content API",
	Description:      "Customer and admin auth, blog, gallery and contact endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
