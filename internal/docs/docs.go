// Package docs registers the OpenAPI document the daemon serves under /swagger.
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
        "/config": {
            "get": {
                "description": "Returns the current sampling and capture settings on GET and updates selected fields on PUT.",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Get or update configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.Config"}}
                }
            },
            "put": {
                "description": "Returns the current sampling and capture settings on GET and updates selected fields on PUT.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Get or update configuration",
                "parameters": [
                    {"description": "Fields to update (PUT only)", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/daemon.ConfigUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Update acknowledgment", "schema": {"$ref": "#/definitions/daemon.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/folders": {
            "post": {
                "description": "Scans a folder (optionally recursively) and registers each video file found.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["folders"],
                "summary": "Register every video in a folder",
                "parameters": [
                    {"description": "Folder to scan", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/daemon.AddFolderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.AddFolderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns service health and version.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.HealthResponse"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "description": "Returns all rip jobs with progress, oldest first.",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/daemon.Job"}}}
                }
            }
        },
        "/plans": {
            "post": {
                "description": "Resolves start, end, step and count against a duration, given directly or probed from a video file.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "Resolve a sampling plan",
                "parameters": [
                    {"description": "Sampling request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/daemon.PlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sampling.Plan"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/videos": {
            "get": {
                "description": "GET lists tracked videos; POST registers a new video for ripping.",
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "List or register videos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/daemon.Video"}}}
                }
            },
            "post": {
                "description": "GET lists tracked videos; POST registers a new video for ripping.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "List or register videos",
                "parameters": [
                    {"description": "Video to register", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/daemon.AddVideoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.AddVideoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/videos/{videoID}": {
            "get": {
                "description": "Returns stored metadata and rip status for a video.",
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Get video details",
                "parameters": [
                    {"type": "string", "description": "Video ID", "name": "videoID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.Video"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/videos/{videoID}/cancel": {
            "post": {
                "description": "Attempts to cancel an active rip for the given video.",
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Cancel rip job",
                "parameters": [
                    {"type": "string", "description": "Video ID", "name": "videoID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.CancelJobResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        },
        "/videos/{videoID}/rip": {
            "post": {
                "description": "Probes the video, resolves the sampling request, writes the plan record and captures every planned frame.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Start a rip job",
                "parameters": [
                    {"type": "string", "description": "Video ID", "name": "videoID", "in": "path", "required": true},
                    {"description": "Sampling request", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/sampling.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daemon.StartJobResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/daemon.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "daemon.AddFolderRequest": {
            "type": "object",
            "properties": {
                "path": {"type": "string", "example": "/videos"},
                "recursive": {"type": "boolean", "example": true}
            }
        },
        "daemon.AddFolderResponse": {
            "type": "object",
            "properties": {
                "folder_id": {"type": "string", "example": "fld_abcd1234"},
                "status": {"type": "string", "example": "scanned"},
                "videos": {"type": "integer", "example": 3}
            }
        },
        "daemon.AddVideoRequest": {
            "type": "object",
            "properties": {
                "path": {"type": "string", "example": "/videos/sample.mp4"}
            }
        },
        "daemon.AddVideoResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "registered"},
                "video_id": {"type": "string", "example": "vid_abcd1234"}
            }
        },
        "daemon.CancelJobResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "cancelling"}
            }
        },
        "daemon.Config": {
            "type": "object",
            "properties": {
                "capture_format": {"type": "string", "example": "png"},
                "default_step": {"type": "number", "example": 1},
                "frames_root": {"type": "string", "example": "frames"},
                "min_step": {"type": "number", "example": 0.001},
                "precision": {"type": "integer", "example": 3},
                "safety_margin": {"type": "number", "example": 1}
            }
        },
        "daemon.ConfigUpdateRequest": {
            "type": "object",
            "properties": {
                "capture_format": {"type": "string", "example": "jpg"},
                "default_step": {"type": "number", "example": 2},
                "min_step": {"type": "number", "example": 0.01},
                "precision": {"type": "integer", "example": 3},
                "safety_margin": {"type": "number", "example": 0.5}
            }
        },
        "daemon.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "description of the error"}
            }
        },
        "daemon.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "version": {"type": "string", "example": "0.1.0"}
            }
        },
        "daemon.Job": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string", "example": "2024-01-01T12:00:00Z"},
                "diagnostics": {"type": "array", "items": {"$ref": "#/definitions/sampling.Diagnostic"}},
                "job_id": {"type": "string", "example": "job_abcd1234"},
                "progress": {"type": "number", "example": 0.42},
                "request": {"$ref": "#/definitions/sampling.Request"},
                "status": {"type": "string", "example": "running"},
                "type": {"type": "string", "example": "rip"},
                "updated_at": {"type": "string", "example": "2024-01-01T12:05:00Z"},
                "video_id": {"type": "string", "example": "vid_abcd1234"}
            }
        },
        "daemon.PlanRequest": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 5},
                "duration": {"type": "number", "example": 120},
                "end": {"type": "number", "example": 60},
                "path": {"type": "string", "example": "/videos/sample.mp4"},
                "start": {"type": "number", "example": 0},
                "step": {"type": "number", "example": 1.5}
            }
        },
        "daemon.StartJobResponse": {
            "type": "object",
            "properties": {
                "job_id": {"type": "string", "example": "job_abcd1234"},
                "status": {"type": "string", "example": "started"}
            }
        },
        "daemon.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "daemon.Video": {
            "type": "object",
            "properties": {
                "duration_seconds": {"type": "number", "example": 120.5},
                "frames_captured": {"type": "integer", "example": 80},
                "frames_dir": {"type": "string", "example": "frames/sample"},
                "frames_failed": {"type": "integer", "example": 0},
                "last_error": {"type": "string", "example": "2 frames could not be captured"},
                "last_ripped_at": {"type": "string", "example": "2024-01-01T12:00:00Z"},
                "path": {"type": "string", "example": "/videos/sample.mp4"},
                "record_path": {"type": "string", "example": "frames/sample/sample_plan.yaml"},
                "rip_status": {"type": "string", "example": "ripping"},
                "total_frames_planned": {"type": "integer", "example": 120},
                "video_id": {"type": "string", "example": "vid_abcd1234"}
            }
        },
        "sampling.Diagnostic": {
            "type": "object",
            "properties": {
                "applied": {"type": "number"},
                "kind": {"type": "string"},
                "message": {"type": "string"},
                "requested": {"type": "number"}
            }
        },
        "sampling.Plan": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "diagnostics": {"type": "array", "items": {"$ref": "#/definitions/sampling.Diagnostic"}},
                "duration": {"type": "number"},
                "duration_bound": {"type": "number"},
                "end": {"type": "number"},
                "start": {"type": "number"},
                "step": {"type": "number"},
                "timestamps": {"type": "array", "items": {"type": "number"}}
            }
        },
        "sampling.Request": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "end": {"type": "number"},
                "start": {"type": "number"},
                "step": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "framerip API",
	Description:      "API for resolving frame sampling plans and ripping frames from registered videos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
