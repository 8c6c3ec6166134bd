// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/api/v1/auth/register": {"post": {"tags": ["auth"], "summary": "Register a voter account", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid body"}, "409": {"description": "email taken"}}}},
        "/api/v1/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "invalid credentials"}}}},
        "/api/v1/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Log out", "responses": {"204": {"description": "No Content"}}}},
        "/api/v1/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current voter profile", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/identity/lookup": {"get": {"security": [{"BearerAuth": []}], "tags": ["identity"], "summary": "Look up a national id in the registry", "parameters": [{"type": "string", "name": "dni", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not in registry"}}}},
        "/api/v1/identity/verify": {"post": {"security": [{"BearerAuth": []}], "tags": ["identity"], "summary": "Verify the caller's identity", "responses": {"200": {"description": "OK"}, "409": {"description": "id already linked"}}}},
        "/api/v1/elections": {"get": {"security": [{"BearerAuth": []}], "tags": ["elections"], "summary": "Elections visible to voters", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/elections/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["elections"], "summary": "Election with its current phase", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}}},
        "/api/v1/elections/{id}/ballot-sheet": {"get": {"security": [{"BearerAuth": []}], "tags": ["elections"], "summary": "Ballot sheet", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/elections/{id}/ballot": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["ballot"], "summary": "Unsubmitted ballot", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["ballot"], "summary": "Discard the unsubmitted ballot", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/elections/{id}/ballot/{officeID}": {"put": {"security": [{"BearerAuth": []}], "tags": ["ballot"], "summary": "Choose a candidate for one office", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "officeID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/api/v1/elections/{id}/ballot/submit": {"post": {"security": [{"BearerAuth": []}], "tags": ["ballot"], "summary": "Submit the ballot", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "election not open or invalid choice"}, "403": {"description": "identity not verified"}, "409": {"description": "already voted"}, "429": {"description": "rate limited"}, "502": {"description": "storage failure"}}}},
        "/api/v1/results": {"get": {"security": [{"BearerAuth": []}], "tags": ["results"], "summary": "Results of closed elections", "responses": {"200": {"description": "OK"}, "502": {"description": "storage failure"}}}},
        "/api/v1/results/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["results"], "summary": "Result of one closed election", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}}},
        "/api/v1/candidates": {"get": {"security": [{"BearerAuth": []}], "tags": ["candidates"], "summary": "Candidates of visible elections", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/candidates/{id}/profile": {"get": {"security": [{"BearerAuth": []}], "tags": ["candidates"], "summary": "Candidate government plan", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}}},
        "/api/v1/parties": {"get": {"security": [{"BearerAuth": []}], "tags": ["candidates"], "summary": "List parties", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/elections": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List all elections", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create an election", "responses": {"201": {"description": "Created"}, "400": {"description": "invalid body or dates"}}}
        },
        "/api/v1/admin/elections/{id}/close": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Close an election", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "not found"}}}},
        "/api/v1/admin/results": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Live results of active and closed elections", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/voters": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List voter accounts", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "E-Vote API",
	Description:      "Electoral portal: ballots, elections, candidates and tallies",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
