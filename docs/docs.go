// Package docs содержит описание API в формате swagger для swag и http-swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка живости",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/users/auth": {
            "post": {
                "description": "Проверяет логин и пароль и выдаёт токен доступа. Отозванные пользователи войти не могут.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "parameters": [
                    {"description": "Учетные данные пользователя", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}
                ],
                "responses": {
                    "200": {"description": "Токен доступа", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректный JSON", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Отзывает все токены текущего пользователя и закрывает cookie-сессию. Повторный выход не является ошибкой.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Выход пользователя",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/get/active": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Логины неотозванных пользователей в порядке создания. Только для администраторов.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Активные пользователи",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Нет прав", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/get/older": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Логины пользователей, которым исполнилось age полных лет, в порядке создания. Пользователи без даты рождения не попадают в выборку.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Пользователи старше возраста",
                "parameters": [
                    {"type": "integer", "description": "Возраст в годах", "name": "age", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректный возраст", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Нет прав", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/get/current": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Профиль текущего пользователя. Отозванным пользователям недоступен.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Мой профиль",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Учётная запись отозвана", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/get/{login}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Профиль пользователя по логину, включая отозванных. Только для администраторов.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Профиль пользователя",
                "parameters": [
                    {"type": "string", "description": "Логин", "name": "login", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Нет прав", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Создаёт пользователя. Логин уникален без учёта регистра, в том числе среди отозванных. Только для администраторов.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Создание пользователя",
                "parameters": [
                    {"description": "Новый пользователь", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/create.Request"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "400": {"description": "Некорректный JSON", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Нет прав", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Логин занят", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/update": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Меняет переданные поля текущего пользователя. Поле с текущим значением изменением не считается.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Изменение своего профиля",
                "parameters": [
                    {"description": "Изменяемые поля", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/update.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ChangeResponse"}},
                    "400": {"description": "Некорректный JSON", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Учётная запись отозвана", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Логин занят", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/update/{login}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Меняет переданные поля пользователя. Смена логина отзывает токены пользователя. Только для администраторов.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Изменение пользователя",
                "parameters": [
                    {"type": "string", "description": "Логин", "name": "login", "in": "path", "required": true},
                    {"description": "Изменяемые поля", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/update.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ChangeResponse"}},
                    "400": {"description": "Некорректный JSON", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Нет прав", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Логин занят", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/delete/{login}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "По умолчанию отзывает пользователя. С hard=true удаляет запись и освобождает логин. Только для администраторов.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Удаление пользователя",
                "parameters": [
                    {"type": "string", "description": "Логин", "name": "login", "in": "path", "required": true},
                    {"type": "boolean", "description": "Безвозвратное удаление", "name": "hard", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректный параметр hard", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Нет прав", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/restore/{login}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Снимает отзыв с пользователя. Только для администраторов.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Восстановление пользователя",
                "parameters": [
                    {"type": "string", "description": "Логин", "name": "login", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Не авторизован", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Нет прав", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "create.Request": {
            "type": "object",
            "required": ["login", "name", "password"],
            "properties": {
                "admin": {"type": "boolean"},
                "birthday": {"type": "string", "example": "1990-05-17"},
                "gender": {"type": "string", "enum": ["female", "male", "unknown"]},
                "login": {"type": "string", "maxLength": 256},
                "name": {"type": "string", "maxLength": 256},
                "password": {"type": "string", "maxLength": 72}
            }
        },
        "login.Request": {
            "type": "object",
            "required": ["login", "password"],
            "properties": {
                "login": {"type": "string", "maxLength": 256},
                "password": {"type": "string", "maxLength": 72}
            }
        },
        "update.Request": {
            "type": "object",
            "properties": {
                "birthday": {"type": "string", "example": "1990-05-17"},
                "gender": {"type": "string", "enum": ["female", "male", "unknown"]},
                "login": {"type": "string", "maxLength": 256, "minLength": 1},
                "name": {"type": "string", "maxLength": 256, "minLength": 1},
                "password": {"type": "string", "maxLength": 72, "minLength": 1}
            }
        },
        "models.Profile": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "admin": {"type": "boolean"},
                "birthday": {"type": "string"},
                "created_by": {"type": "string"},
                "created_on": {"type": "string"},
                "gender": {"type": "string"},
                "id": {"type": "string"},
                "login": {"type": "string"},
                "modified_by": {"type": "string"},
                "modified_on": {"type": "string"},
                "name": {"type": "string"},
                "revoked_by": {"type": "string"},
                "revoked_on": {"type": "string"}
            }
        },
        "response.ChangeResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "string", "example": "modified"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid request body"},
                "status": {"type": "string", "example": "Error"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Access token, optionally prefixed with \"Bearer \".",
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Users CRUD API",
	Description:      "API для управления учётными записями пользователей",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
