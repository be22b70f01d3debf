// Package docs is generated by swaggo/swag from the handler annotations of
// internal/transport/http. Regenerate with:
//
//	swag init -g cmd/atelier/main.go -o docs
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
        "/api/v1/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Состояние подключения к хранилищу",
                "parameters": [
                    {"type": "boolean", "description": "Перепроверить, минуя кэш", "name": "refresh", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.StatusView"}}}
                            ]
                        }
                    }
                }
            }
        },
        "/api/v1/paintings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["paintings"],
                "summary": "Список картин",
                "parameters": [
                    {"type": "string", "description": "en | ar", "name": "lang", "in": "query"},
                    {"type": "string", "description": "Коллекция", "name": "collection", "in": "query"},
                    {"type": "boolean", "description": "Только избранные", "name": "featured", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/dto.PaintingView"}}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/paintings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["paintings"],
                "summary": "Картина по ID",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "UUID картины", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "en | ar", "name": "lang", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.PaintingView"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/collections": {
            "get": {
                "produces": ["application/json"],
                "tags": ["paintings"],
                "summary": "Коллекции картин",
                "parameters": [
                    {"type": "string", "description": "en | ar", "name": "lang", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/dto.CollectionView"}}}}
                            ]
                        }
                    },
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Опубликованные страницы",
                "parameters": [
                    {"type": "string", "description": "en | ar", "name": "lang", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/dto.PageView"}}}}
                            ]
                        }
                    },
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pages/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Опубликованная страница по slug",
                "parameters": [
                    {"type": "string", "description": "Slug страницы", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "description": "en | ar", "name": "lang", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.PageView"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/settings/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Настройка галереи по имени",
                "parameters": [
                    {"type": "string", "description": "Имя настройки", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "en | ar", "name": "lang", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.SettingView"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/pages/{id}/publish": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Публикация страницы",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "UUID страницы", "name": "id", "in": "path", "required": true},
                    {"description": "Флаг публикации", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.PublishRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.Page"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/images": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Загрузка изображения",
                "parameters": [
                    {"type": "file", "description": "Изображение", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/response.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.ImageUploadResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Удаление изображения",
                "parameters": [
                    {"type": "string", "description": "Ссылка, которую вернула загрузка", "name": "url", "in": "query", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/paintings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Все записи сущности, обе локали",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Хранилище недоступно", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Создание записи",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/paintings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Запись по ID",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "UUID записи", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Частичное обновление записи",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "UUID записи", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Удаление записи",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "UUID записи", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.CollectionView": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "dto.ImageUploadResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"}
            }
        },
        "dto.PageView": {
            "type": "object",
            "properties": {
                "content": {"type": "object", "additionalProperties": true},
                "meta_description": {"type": "string"},
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.PaintingView": {
            "type": "object",
            "properties": {
                "collection": {"type": "string"},
                "description": {"type": "string"},
                "dimensions": {"type": "string"},
                "display_order": {"type": "integer"},
                "id": {"type": "string", "format": "uuid"},
                "image_url": {"type": "string"},
                "is_featured": {"type": "boolean"},
                "medium": {"type": "string"},
                "theme": {"type": "string"},
                "title": {"type": "string"},
                "year": {"type": "string"}
            }
        },
        "dto.SettingView": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "dto.StatusView": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "hint": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "models.Page": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "slug": {"type": "string"},
                "is_published": {"type": "boolean"}
            }
        },
        "request.PublishRequest": {
            "type": "object",
            "required": ["is_published"],
            "properties": {
                "is_published": {"type": "boolean"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string", "example": "painting not found"},
                "error": {"type": "string", "example": "not_found"},
                "status": {"type": "string", "example": "error"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string", "example": "refreshed"},
                "status": {"type": "string", "example": "success"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Atelier API",
	Description:      "Bilingual portfolio content: paintings, pages and gallery settings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
