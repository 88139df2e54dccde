// Package docs holds the OpenAPI description served under /swagger. Regenerate with `swag init`.
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
		"/ping": {
			"get": {
				"tags": [
					"Ops"
				],
				"summary": "Ping",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Register",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Login",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Logout",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/check": {
			"get": {
				"tags": [
					"Auth"
				],
				"summary": "Check authentication",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/auth/request-reset": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Request Password Reset",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/reset-password": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Reset Password",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/user/profile": {
			"get": {
				"tags": [
					"Users"
				],
				"summary": "Get User Profile",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"put": {
				"tags": [
					"Users"
				],
				"summary": "Update User Profile",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/user/profile/password": {
			"put": {
				"tags": [
					"Users"
				],
				"summary": "Update User Password",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/spells/": {
			"get": {
				"tags": [
					"Spells"
				],
				"summary": "Search spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/spells/schools": {
			"get": {
				"tags": [
					"Spells"
				],
				"summary": "List schools and utility types",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/spells/{name}": {
			"get": {
				"tags": [
					"Spells"
				],
				"summary": "Get spell",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "name",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/decks/": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "List my decks",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"post": {
				"tags": [
					"Decks"
				],
				"summary": "Create deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/public": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "List public decks",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/decks/{id}": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "Get deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"Decks"
				],
				"summary": "Update deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"delete": {
				"tags": [
					"Decks"
				],
				"summary": "Delete deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/copy": {
			"post": {
				"tags": [
					"Decks"
				],
				"summary": "Copy deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/breakdown": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "Deck breakdown",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/decks/{id}/grid": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "Deck grid",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/decks/{id}/export": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "Export deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/decks/{id}/image": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "Deck image",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/decks/{id}/qr": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "Deck share QR code",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/decks/{id}/ws": {
			"get": {
				"tags": [
					"Decks"
				],
				"summary": "Deck updates websocket",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/decks/{id}/comments": {
			"get": {
				"tags": [
					"Comments"
				],
				"summary": "List deck comments",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"tags": [
					"Comments"
				],
				"summary": "Comment on a deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/spells": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Add spell",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"put": {
				"tags": [
					"Composition"
				],
				"summary": "Set deck spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"delete": {
				"tags": [
					"Composition"
				],
				"summary": "Clear deck",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/spells/bulk": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Bulk add spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/slots/{index}": {
			"put": {
				"tags": [
					"Composition"
				],
				"summary": "Add spell to slot",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"name": "index",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/spells/{index}": {
			"put": {
				"tags": [
					"Composition"
				],
				"summary": "Replace spell",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"name": "index",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			},
			"delete": {
				"tags": [
					"Composition"
				],
				"summary": "Remove spell",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"name": "index",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/spells/bulk-remove": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Bulk remove spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/spells/bulk-replace": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Bulk replace spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/spells/move": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Move spell",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/sort": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Sort spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/import": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Import deck spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/save": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Save deck now",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		},
		"/decks/{id}/match": {
			"post": {
				"tags": [
					"Composition"
				],
				"summary": "Match spells",
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				]
			}
		}
	},
	"securityDefinitions": {
		"Bearer": {
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
	Title:            "Deck Builder API",
	Description:      "Spell deck building backend: decks, composition sessions with autosave, catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
