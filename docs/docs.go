// Package docs registra o documento OpenAPI da API com o swag.
// Gerado a partir das anotações dos controllers; atualize com `swag init -g cmd/api/main.go`.
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
        "/admin/stats": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Estatísticas do painel",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.Dashboard"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Retorna o cliente conectado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Autentica um cliente",
                "parameters": [
                    {"description": "Credenciais", "name": "signin", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SigninRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SigninResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/signout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Encerra a sessão",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Cadastra um cliente",
                "parameters": [
                    {"description": "Dados do cliente", "name": "signup", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SignupResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Envia uma pergunta",
                "parameters": [
                    {"description": "Pergunta", "name": "chat", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/chat/quota": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Consulta a cota gratuita",
                "parameters": [
                    {"type": "string", "description": "ID da conversa", "name": "conversationId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuotaResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/conversations": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["conversations"],
                "summary": "Lista as conversas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ConversationResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/conversations/{id}/messages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["conversations"],
                "summary": "Mensagens de uma conversa",
                "parameters": [
                    {"type": "string", "description": "ID da conversa", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessagesResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Estado da API",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ChatRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "conversationId": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.ChatResponse": {
            "type": "object",
            "properties": {
                "conversationId": {"type": "string"},
                "remainingQuestions": {"type": "integer"},
                "response": {"type": "string"}
            }
        },
        "dto.ConversationResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "lastMessageAt": {"type": "string"},
                "messageCount": {"type": "integer"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {},
                "error": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "dto.MessageItem": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "dto.MessagesResponse": {
            "type": "object",
            "properties": {
                "conversationId": {"type": "string"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/dto.MessageItem"}}
            }
        },
        "dto.QuotaResponse": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "limited": {"type": "boolean"},
                "remainingQuestions": {"type": "integer"},
                "used": {"type": "integer"}
            }
        },
        "dto.SigninRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.SigninResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "admin": {"type": "boolean"},
                "expires_at": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.SignupRequest": {
            "type": "object",
            "required": ["civilite", "email", "nom", "password", "prenom", "telephone"],
            "properties": {
                "civilite": {"type": "string"},
                "email": {"type": "string"},
                "nom": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "prenom": {"type": "string"},
                "telephone": {"type": "string"}
            }
        },
        "dto.SignupResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "civilite": {"type": "string"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "nom": {"type": "string"},
                "prenom": {"type": "string"},
                "telephone": {"type": "string"}
            }
        },
        "stats.Dashboard": {
            "type": "object",
            "properties": {
                "chartData": {"type": "array", "items": {"$ref": "#/definitions/stats.DailyQuestions"}},
                "conversationsThisMonth": {"type": "integer"},
                "recentConversations": {"type": "array", "items": {"$ref": "#/definitions/stats.RecentConversation"}},
                "recentUsers": {"type": "array", "items": {"$ref": "#/definitions/stats.RecentUser"}},
                "totalConversations": {"type": "integer"},
                "totalMessages": {"type": "integer"},
                "totalQuestions": {"type": "integer"},
                "totalUsers": {"type": "integer"},
                "userStats": {"type": "array", "items": {"$ref": "#/definitions/stats.UserStat"}},
                "usersThisMonth": {"type": "integer"}
            }
        },
        "stats.DailyQuestions": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "questions": {"type": "integer"}
            }
        },
        "stats.RecentConversation": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "messageCount": {"type": "integer"},
                "userEmail": {"type": "string"},
                "userNom": {"type": "string"},
                "userPrenom": {"type": "string"}
            }
        },
        "stats.RecentUser": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "nom": {"type": "string"},
                "prenom": {"type": "string"}
            }
        },
        "stats.UserStat": {
            "type": "object",
            "properties": {
                "civilite": {"type": "string"},
                "conversationsCount": {"type": "integer"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "nom": {"type": "string"},
                "prenom": {"type": "string"},
                "questionsCount": {"type": "integer"},
                "telephone": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo contém as informações exportadas do documento
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Assistant Juridique API",
	Description:      "API do assistente jurídico: perguntas gratuitas para visitantes, conta de cliente e painel administrativo",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
