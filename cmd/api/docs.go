//go:generate swag init -g docs.go -o ../../docs --parseDependency --parseInternal --dir .,../../internal/httpapi

package main

// @title userdir_api API
// @version 1.0
// @description userdir_api HTTP API.
// @BasePath /api
