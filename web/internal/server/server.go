package server

import "github.com/labstack/echo/v4"

type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type Server interface {
	Index(c echo.Context) error
	Health(c echo.Context) error
	ListUsers(c echo.Context) error
	GetUser(c echo.Context) error
	CreateUser(c echo.Context) error
	UpdateUser(c echo.Context) error
	DeleteUser(c echo.Context) error
}

func RegisterHandlers(router EchoRouter, si Server, _ ...echo.MiddlewareFunc) {
	router.GET("/", si.Index).Name = "index"
	router.GET("/health", si.Health).Name = "health"
	router.GET("/api/users", si.ListUsers).Name = "list-users"
	router.GET("/api/users/:id", si.GetUser).Name = "get-user"
	router.POST("/api/users", si.CreateUser).Name = "create-user"
	router.PUT("/api/users/:id", si.UpdateUser).Name = "update-user"
	router.DELETE("/api/users/:id", si.DeleteUser).Name = "delete-user"
}
