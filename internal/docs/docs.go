// Package docs registers the OpenAPI document served under /swagger.
// Keep it in step with the @Router annotations in internal/handler.
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
        "/geocode": {
            "get": {
                "produces": ["application/json"],
                "summary": "Search addresses by name",
                "parameters": [
                    {
                        "type": "string",
                        "description": "address text, e.g. 東京都千代田区丸の内",
                        "name": "q",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.Location"}
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/error"}
                    }
                }
            }
        },
        "/reverse-geocode": {
            "get": {
                "produces": ["application/json"],
                "summary": "Find the nearest address within 10km",
                "parameters": [
                    {
                        "type": "number",
                        "description": "latitude",
                        "name": "lat",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "longitude",
                        "name": "lon",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "geohash, used instead of lat/lon",
                        "name": "geohash",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.Location"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/error"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/error"}
                    }
                }
            }
        },
        "/postal-code/{code}": {
            "get": {
                "produces": ["application/json"],
                "summary": "List addresses of a postal code",
                "parameters": [
                    {
                        "type": "string",
                        "description": "7-digit postal code, hyphen allowed",
                        "name": "code",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.Location"}
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/error"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/error"}
                    }
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "prefecture_code": {"type": "string"},
                "prefecture": {"type": "string"},
                "prefecture_kana": {"type": "string"},
                "prefecture_rome": {"type": "string"},
                "city_code": {"type": "string"},
                "city": {"type": "string"},
                "city_kana": {"type": "string"},
                "city_rome": {"type": "string"},
                "postal_code": {"type": "string"},
                "district_code": {"type": "string"},
                "district": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "geohash": {"type": "string"}
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
	Title:            "Japanese Address Geocoding API",
	Description:      "Geocoding, reverse geocoding and postal code lookup over the Japanese address dataset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
