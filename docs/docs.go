// Package docs holds the generated swagger description. Regenerate with:
//
//	swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/deals/{id}": {
            "put": {
                "summary": "Update a deal",
                "tags": ["deals"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "summary": "Partially update a deal",
                "tags": ["deals"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/firm-offers": {
            "post": {
                "summary": "Create a firm offer for a proposal",
                "tags": ["firm-offers"],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/firm-offers/{id}": {
            "patch": {
                "summary": "Update a firm offer",
                "tags": ["firm-offers"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/speaker-review/{token}": {
            "get": {
                "summary": "Speaker view of a firm offer",
                "tags": ["speaker-review"],
                "parameters": [
                    {"type": "string", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/speaker-review/{token}/respond": {
            "post": {
                "summary": "Record the speaker's confirm or decline",
                "tags": ["speaker-review"],
                "parameters": [
                    {"type": "string", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Speaker Bureau API",
	Description:      "Back office and public API for the speaker bureau platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
