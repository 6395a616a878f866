// Package handlers binds the users and spreadsheets services to their REST
// and document/RPC transports.
package handlers

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/service"
)

// UsersHTTPServer exposes a Users service under /rest/users.
type UsersHTTPServer struct {
	users  interfaces.Users
	logger log.Logger
}

// NewUsersHTTPServer creates a new UsersHTTPServer.
func NewUsersHTTPServer(users interfaces.Users, logger log.Logger) *UsersHTTPServer {
	return &UsersHTTPServer{
		users:  users,
		logger: log.WithPrefix(logger, "component", "UsersHTTPServer"),
	}
}

// Register wires the routes onto the echo instance.
func (h *UsersHTTPServer) Register(e *echo.Echo) {
	g := e.Group("/rest")
	g.POST("/users", h.CreateUser)
	g.GET("/users", h.SearchUsers)
	g.GET("/users/:userId", h.GetUser)
	g.PUT("/users/:userId", h.UpdateUser)
	g.DELETE("/users/:userId", h.DeleteUser)
	g.GET("/users/:userId/verify", h.VerifyUser)
}

// CreateUser (POST /rest/users) registers a user and returns the qualified id.
func (h *UsersHTTPServer) CreateUser(ectx echo.Context) error {
	var user domain.User
	if err := ectx.Bind(&user); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	userID, err := h.users.CreateUser(ectx.Request().Context(), user)
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, userID)
}

// GetUser (GET /rest/users/{userId}) returns the record; the password
// travels as a query parameter.
func (h *UsersHTTPServer) GetUser(ectx echo.Context) error {
	user, err := h.users.GetUser(ectx.Request().Context(), ectx.Param("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, user)
}

// UpdateUser (PUT /rest/users/{userId}) applies a partial update and
// returns the previous record.
func (h *UsersHTTPServer) UpdateUser(ectx echo.Context) error {
	var update domain.User
	if err := ectx.Bind(&update); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	previous, err := h.users.UpdateUser(ectx.Request().Context(), ectx.Param("userId"), ectx.QueryParam("password"), update)
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, previous)
}

// DeleteUser (DELETE /rest/users/{userId}) removes and returns the record.
func (h *UsersHTTPServer) DeleteUser(ectx echo.Context) error {
	removed, err := h.users.DeleteUser(ectx.Request().Context(), ectx.Param("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, removed)
}

// SearchUsers (GET /rest/users?query=) returns matches with scrubbed
// passwords.
func (h *UsersHTTPServer) SearchUsers(ectx echo.Context) error {
	users, err := h.users.SearchUsers(ectx.Request().Context(), ectx.QueryParam("query"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, users)
}

// VerifyUser (GET /rest/users/{userId}/verify) reports whether the
// password matches.
func (h *UsersHTTPServer) VerifyUser(ectx echo.Context) error {
	valid, err := h.users.VerifyUser(ectx.Request().Context(), ectx.Param("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, valid)
}
