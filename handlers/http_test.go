package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces/mock"
	"github.com/RjRDRG/sd2021-tp1/service"
)

func newTestServer(users *mock.UsersMock, sheets *mock.SpreadsheetsMock) *echo.Echo {
	e := echo.New()
	logger := log.NewNopLogger()
	service.RegisterErrorHandler(e, logger)
	if users != nil {
		NewUsersHTTPServer(users, logger).Register(e)
	}
	if sheets != nil {
		NewSpreadsheetsHTTPServer(sheets, logger).Register(e)
	}
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateUserRoute(t *testing.T) {
	users := &mock.UsersMock{
		CreateUserFunc: func(_ context.Context, user domain.User) (string, error) {
			assert.Equal(t, "alice", user.UserID)
			return "alice@alpha", nil
		},
	}
	e := newTestServer(users, nil)

	rec := doJSON(e, http.MethodPost, "/rest/users",
		`{"userId":"alice","fullName":"Alice","email":"a@x","password":"pw"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"alice@alpha"`, rec.Body.String())
}

func TestCreateUserConflictMapsTo409(t *testing.T) {
	users := &mock.UsersMock{
		CreateUserFunc: func(_ context.Context, user domain.User) (string, error) {
			return "", service.NewConflictError("user already exists", nil)
		},
	}
	e := newTestServer(users, nil)

	rec := doJSON(e, http.MethodPost, "/rest/users",
		`{"userId":"alice","fullName":"Alice","email":"a@x","password":"pw"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrConflict)
}

func TestGetUserRoute(t *testing.T) {
	users := &mock.UsersMock{
		GetUserFunc: func(_ context.Context, userID, password string) (domain.User, error) {
			assert.Equal(t, "alice@alpha", userID)
			assert.Equal(t, "pw", password)
			return domain.User{UserID: userID, FullName: "Alice"}, nil
		},
	}
	e := newTestServer(users, nil)

	rec := doJSON(e, http.MethodGet, "/rest/users/alice@alpha?password=pw", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fullName":"Alice"`)
}

func TestGetUserForbiddenMapsTo403(t *testing.T) {
	users := &mock.UsersMock{
		GetUserFunc: func(_ context.Context, userID, password string) (domain.User, error) {
			return domain.User{}, service.NewForbiddenError("password does not match", nil)
		},
	}
	e := newTestServer(users, nil)

	rec := doJSON(e, http.MethodGet, "/rest/users/alice@alpha?password=bad", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerifyUserRoute(t *testing.T) {
	users := &mock.UsersMock{
		VerifyUserFunc: func(_ context.Context, userID, password string) (bool, error) {
			return password == "pw", nil
		},
	}
	e := newTestServer(users, nil)

	rec := doJSON(e, http.MethodGet, "/rest/users/alice@alpha/verify?password=pw", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true\n", rec.Body.String())
}

func TestSearchUsersRoute(t *testing.T) {
	users := &mock.UsersMock{
		SearchUsersFunc: func(_ context.Context, pattern string) ([]domain.User, error) {
			assert.Equal(t, "ali", pattern)
			return []domain.User{{UserID: "alice@alpha", FullName: "Alice"}}, nil
		},
	}
	e := newTestServer(users, nil)

	rec := doJSON(e, http.MethodGet, "/rest/users?query=ali", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@alpha")
}

func TestCreateSpreadsheetRoute(t *testing.T) {
	sheets := &mock.SpreadsheetsMock{
		CreateSpreadsheetFunc: func(_ context.Context, sheet domain.Spreadsheet, password string) (string, error) {
			assert.Equal(t, "alice@alpha", sheet.Owner)
			assert.Equal(t, "pw", password)
			return "sheet-1", nil
		},
	}
	e := newTestServer(nil, sheets)

	rec := doJSON(e, http.MethodPost, "/rest/spreadsheets?password=pw",
		`{"owner":"alice@alpha","rows":2,"columns":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"sheet-1"`, rec.Body.String())
}

func TestUpdateCellRoute(t *testing.T) {
	sheets := &mock.SpreadsheetsMock{
		UpdateCellFunc: func(_ context.Context, sheetID, cellID, rawValue, userID, password string) error {
			assert.Equal(t, "sheet-1", sheetID)
			assert.Equal(t, "B2", cellID)
			assert.Equal(t, "=A1+1", rawValue)
			assert.Equal(t, "alice@alpha", userID)
			return nil
		},
	}
	e := newTestServer(nil, sheets)

	rec := doJSON(e, http.MethodPut, "/rest/spreadsheets/sheet-1/cell/B2?userId=alice@alpha&password=pw",
		`"=A1+1"`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetReferencedValuesRoute(t *testing.T) {
	sheets := &mock.SpreadsheetsMock{
		GetReferencedSpreadsheetValuesFunc: func(_ context.Context, sheetID, userID, rangeRef string) ([][]string, error) {
			assert.Equal(t, "A1:B1", rangeRef)
			return [][]string{{"1", "2"}}, nil
		},
	}
	e := newTestServer(nil, sheets)

	rec := doJSON(e, http.MethodGet, "/rest/spreadsheets/sheet-1/referencedvalues?userId=carol@beta&range=A1%3AB1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[["1","2"]]`, rec.Body.String())
}

func TestGetSpreadsheetNotFoundMapsTo404(t *testing.T) {
	sheets := &mock.SpreadsheetsMock{
		GetSpreadsheetFunc: func(_ context.Context, sheetID, userID, password string) (domain.Spreadsheet, error) {
			return domain.Spreadsheet{}, service.NewEntityNotFoundError("spreadsheet does not exist", nil)
		},
	}
	e := newTestServer(nil, sheets)

	rec := doJSON(e, http.MethodGet, "/rest/spreadsheets/missing?userId=a&password=b", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrEntityNotFound)
}

func TestShareRoutes(t *testing.T) {
	shared := map[string]bool{}
	sheets := &mock.SpreadsheetsMock{
		ShareSpreadsheetFunc: func(_ context.Context, sheetID, userID, password string) error {
			if shared[userID] {
				return service.NewConflictError("spreadsheet is already shared with this user", nil)
			}
			shared[userID] = true
			return nil
		},
		UnshareSpreadsheetFunc: func(_ context.Context, sheetID, userID, password string) error {
			if !shared[userID] {
				return service.NewEntityNotFoundError("spreadsheet is not shared with this user", nil)
			}
			delete(shared, userID)
			return nil
		},
	}
	e := newTestServer(nil, sheets)

	rec := doJSON(e, http.MethodPost, "/rest/spreadsheets/sheet-1/share/bob@alpha?password=pw", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/rest/spreadsheets/sheet-1/share/bob@alpha?password=pw", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/rest/spreadsheets/sheet-1/share/bob@alpha?password=pw", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/rest/spreadsheets/sheet-1/share/bob@alpha?password=pw", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
