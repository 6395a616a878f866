package handlers

import (
	"net/http"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/service"
)

// SpreadsheetsHTTPServer exposes a Spreadsheets service under
// /rest/spreadsheets.
type SpreadsheetsHTTPServer struct {
	sheets interfaces.Spreadsheets
	logger log.Logger
}

// NewSpreadsheetsHTTPServer creates a new SpreadsheetsHTTPServer.
func NewSpreadsheetsHTTPServer(sheets interfaces.Spreadsheets, logger log.Logger) *SpreadsheetsHTTPServer {
	return &SpreadsheetsHTTPServer{
		sheets: sheets,
		logger: log.WithPrefix(logger, "component", "SpreadsheetsHTTPServer"),
	}
}

// Register wires the routes onto the echo instance.
func (h *SpreadsheetsHTTPServer) Register(e *echo.Echo) {
	g := e.Group("/rest")
	g.POST("/spreadsheets", h.CreateSpreadsheet)
	g.GET("/spreadsheets/:sheetId", h.GetSpreadsheet)
	g.DELETE("/spreadsheets/:sheetId", h.DeleteSpreadsheet)
	g.GET("/spreadsheets/:sheetId/values", h.GetSpreadsheetValues)
	g.GET("/spreadsheets/:sheetId/referencedvalues", h.GetReferencedSpreadsheetValues)
	g.PUT("/spreadsheets/:sheetId/cell/:cellId", h.UpdateCell)
	g.POST("/spreadsheets/:sheetId/share/:userId", h.ShareSpreadsheet)
	g.DELETE("/spreadsheets/:sheetId/share/:userId", h.UnshareSpreadsheet)
}

// CreateSpreadsheet (POST /rest/spreadsheets) stores a sheet and returns
// its generated id. The owner's password travels as a query parameter.
func (h *SpreadsheetsHTTPServer) CreateSpreadsheet(ectx echo.Context) error {
	var sheet domain.Spreadsheet
	if err := ectx.Bind(&sheet); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	sheetID, err := h.sheets.CreateSpreadsheet(ectx.Request().Context(), sheet, ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, sheetID)
}

// DeleteSpreadsheet (DELETE /rest/spreadsheets/{sheetId}) removes a sheet.
func (h *SpreadsheetsHTTPServer) DeleteSpreadsheet(ectx echo.Context) error {
	err := h.sheets.DeleteSpreadsheet(ectx.Request().Context(), ectx.Param("sheetId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.NoContent(http.StatusOK)
}

// GetSpreadsheet (GET /rest/spreadsheets/{sheetId}) returns the raw sheet.
func (h *SpreadsheetsHTTPServer) GetSpreadsheet(ectx echo.Context) error {
	sheet, err := h.sheets.GetSpreadsheet(ectx.Request().Context(),
		ectx.Param("sheetId"), ectx.QueryParam("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, sheet)
}

// GetSpreadsheetValues (GET /rest/spreadsheets/{sheetId}/values) returns
// the computed display matrix.
func (h *SpreadsheetsHTTPServer) GetSpreadsheetValues(ectx echo.Context) error {
	values, err := h.sheets.GetSpreadsheetValues(ectx.Request().Context(),
		ectx.Param("sheetId"), ectx.QueryParam("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, values)
}

// GetReferencedSpreadsheetValues (GET /rest/spreadsheets/{sheetId}/referencedvalues)
// returns the computed submatrix for a range; this is the path other
// domains call, so there is no password parameter.
func (h *SpreadsheetsHTTPServer) GetReferencedSpreadsheetValues(ectx echo.Context) error {
	values, err := h.sheets.GetReferencedSpreadsheetValues(ectx.Request().Context(),
		ectx.Param("sheetId"), ectx.QueryParam("userId"), ectx.QueryParam("range"))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, values)
}

// UpdateCell (PUT /rest/spreadsheets/{sheetId}/cell/{cellId}) replaces one
// cell's raw content; the body is a JSON string.
func (h *SpreadsheetsHTTPServer) UpdateCell(ectx echo.Context) error {
	var rawValue string
	if err := ectx.Bind(&rawValue); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	err := h.sheets.UpdateCell(ectx.Request().Context(),
		ectx.Param("sheetId"), ectx.Param("cellId"), rawValue,
		ectx.QueryParam("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.NoContent(http.StatusOK)
}

// ShareSpreadsheet (POST /rest/spreadsheets/{sheetId}/share/{userId})
// grants read access to a user.
func (h *SpreadsheetsHTTPServer) ShareSpreadsheet(ectx echo.Context) error {
	err := h.sheets.ShareSpreadsheet(ectx.Request().Context(),
		ectx.Param("sheetId"), ectx.Param("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.NoContent(http.StatusOK)
}

// UnshareSpreadsheet (DELETE /rest/spreadsheets/{sheetId}/share/{userId})
// revokes a share.
func (h *SpreadsheetsHTTPServer) UnshareSpreadsheet(ectx echo.Context) error {
	err := h.sheets.UnshareSpreadsheet(ectx.Request().Context(),
		ectx.Param("sheetId"), ectx.Param("userId"), ectx.QueryParam("password"))
	if err != nil {
		return err
	}
	return ectx.NoContent(http.StatusOK)
}
