// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with `swag init` after changing controller annotations.
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
        "/api/health": {"get": {"tags": ["Health"], "summary": "Liveness and active storage mode", "responses": {"200": {"description": "OK"}}}},
        "/api/auth/register": {"post": {"tags": ["Auth"], "summary": "Register a participant or leader account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/api/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in with username or email", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Current user and team standing", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Create a user", "responses": {"201": {"description": "Created"}}}
        },
        "/api/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Get a user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Update a user", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Delete a user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/teams": {
            "get": {"tags": ["Teams"], "summary": "List teams with standings", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Create a team", "responses": {"201": {"description": "Created"}}}
        },
        "/api/teams/{id}": {
            "get": {"tags": ["Teams"], "summary": "Get a team standing", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Update a team", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Delete a team", "responses": {"200": {"description": "OK"}}}
        },
        "/api/teams/{id}/members": {
            "get": {"tags": ["Teams"], "summary": "List team members", "description": "Emails are only included for admins and members of the team.", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Add a team member", "responses": {"201": {"description": "Created"}}}
        },
        "/api/teams/{id}/members/{userId}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Teams"], "summary": "Remove a team member", "responses": {"200": {"description": "OK"}}}},
        "/api/scores": {
            "get": {"tags": ["Scores"], "summary": "List scores", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Scores"], "summary": "Award a score", "responses": {"201": {"description": "Created"}}}
        },
        "/api/scores/leaderboard": {"get": {"tags": ["Scores"], "summary": "Ranked leaderboard", "responses": {"200": {"description": "OK"}}}},
        "/api/scores/team/{teamId}": {"get": {"tags": ["Scores"], "summary": "Scores of one team", "responses": {"200": {"description": "OK"}}}},
        "/api/scores/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Scores"], "summary": "Update a score", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Scores"], "summary": "Delete a score", "responses": {"200": {"description": "OK"}}}
        },
        "/api/challenges": {
            "get": {"tags": ["Challenges"], "summary": "List challenges", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Challenges"], "summary": "Create a challenge", "responses": {"201": {"description": "Created"}}}
        },
        "/api/challenges/{id}": {
            "get": {"tags": ["Challenges"], "summary": "Get a challenge", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Challenges"], "summary": "Update a challenge", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Challenges"], "summary": "Delete a challenge", "responses": {"200": {"description": "OK"}}}
        },
        "/api/activity": {"get": {"tags": ["Activity"], "summary": "Recent activity feed", "responses": {"200": {"description": "OK"}}}},
        "/api/activity/team/{teamId}": {"get": {"tags": ["Activity"], "summary": "Recent activity of one team", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/activity/stats": {"get": {"tags": ["Activity"], "summary": "Competition statistics", "responses": {"200": {"description": "OK"}}}},
        "/api/submissions": {
            "get": {"tags": ["Submissions"], "summary": "List submissions", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Submissions"], "summary": "Submit a solution", "responses": {"201": {"description": "Created"}}}
        },
        "/api/submissions/{id}": {
            "get": {"tags": ["Submissions"], "summary": "Get a submission", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Submissions"], "summary": "Review or edit a submission", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Submissions"], "summary": "Delete a submission", "responses": {"200": {"description": "OK"}}}
        }
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
	Title:            "Podium de concours API",
	Description:      "Competition leaderboard: teams, challenges, scores, submissions and live updates",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
