package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/99tech/users-api/models"
	"github.com/99tech/users-api/user"
	"github.com/99tech/users-api/web/utils"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       any                `json:"data,omitempty"`
	Errors     []string           `json:"errors,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type server struct {
	svc    *user.Service
	logger *zap.Logger
}

func NewServer(svc *user.Service, logger *zap.Logger) Server {
	ans := server{
		svc:    svc,
		logger: logger,
	}

	return &ans
}

func (s *server) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Users CRUD API",
		Data: map[string]any{
			"health": "GET /health",
			"users": map[string]string{
				"list":   "GET /api/users",
				"get":    "GET /api/users/:id",
				"create": "POST /api/users",
				"update": "PUT /api/users/:id",
				"delete": "DELETE /api/users/:id",
			},
		},
	})
}

func (s *server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *server) ListUsers(c echo.Context) error {
	filters, err := utils.ValidateFilters(c.QueryParams())
	if err != nil {
		return s.validationFailed(c, err)
	}

	users, pagination, err := s.svc.List(c.Request().Context(), filters)
	if err != nil {
		return s.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    "Users retrieved successfully",
		Data:       users,
		Pagination: &pagination,
	})
}

func (s *server) GetUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	found, err := s.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return s.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "User retrieved successfully",
		Data:    found,
	})
}

func (s *server) CreateUser(c echo.Context) error {
	var input utils.CreateUserInput

	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid JSON body",
		})
	}

	req, err := utils.ValidateCreate(input)
	if err != nil {
		return s.validationFailed(c, err)
	}

	created, err := s.svc.Create(c.Request().Context(), req)
	if err != nil {
		return s.serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "User created successfully",
		Data:    created,
	})
}

func (s *server) UpdateUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var input utils.UpdateUserInput

	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid JSON body",
		})
	}

	patch, err := utils.ValidateUpdate(input)
	if err != nil {
		return s.validationFailed(c, err)
	}

	updated, err := s.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return s.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "User updated successfully",
		Data:    updated,
	})
}

func (s *server) DeleteUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	deleted, err := s.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return s.serviceError(c, err)
	}

	if !deleted {
		return c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "User deleted successfully",
	})
}

func (s *server) validationFailed(c echo.Context, err error) error {
	verr, ok := models.AsValidationError(err)
	if !ok {
		return s.serviceError(c, err)
	}

	return c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  verr.Messages,
	})
}

// serviceError maps expected domain outcomes to their status codes.
// Anything else is logged here, and only here, and surfaced as a
// generic 500 so internal detail never reaches the client.
func (s *server) serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, Response{
			Success: false,
			Message: "Email already exists",
		})
	case errors.Is(err, models.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
	case errors.Is(err, models.ErrNoFieldsToUpdate):
		return c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "No fields to update",
		})
	default:
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)

		return c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Internal server error",
		})
	}
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Invalid user ID",
	})
}
