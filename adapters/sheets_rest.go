package adapters

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
)

// SpreadsheetsRESTClient talks to a remote Spreadsheets service over its
// REST binding.
type SpreadsheetsRESTClient struct {
	restClient
}

var _ interfaces.Spreadsheets = (*SpreadsheetsRESTClient)(nil)

// NewSpreadsheetsRESTClient creates a client for the service behind
// endpointURI (the announced ".../rest" base).
func NewSpreadsheetsRESTClient(endpointURI string) *SpreadsheetsRESTClient {
	return &SpreadsheetsRESTClient{restClient: newRESTClient(endpointURI)}
}

func (c *SpreadsheetsRESTClient) CreateSpreadsheet(ctx context.Context, sheet domain.Spreadsheet, password string) (string, error) {
	var sheetID string
	err := c.call(ctx, http.MethodPost, "/spreadsheets",
		url.Values{"password": {password}}, sheet, &sheetID)
	return sheetID, err
}

func (c *SpreadsheetsRESTClient) DeleteSpreadsheet(ctx context.Context, sheetID, password string) error {
	return c.call(ctx, http.MethodDelete, "/spreadsheets/"+url.PathEscape(sheetID),
		url.Values{"password": {password}}, nil, nil)
}

func (c *SpreadsheetsRESTClient) GetSpreadsheet(ctx context.Context, sheetID, userID, password string) (domain.Spreadsheet, error) {
	var sheet domain.Spreadsheet
	err := c.call(ctx, http.MethodGet, "/spreadsheets/"+url.PathEscape(sheetID),
		url.Values{"userId": {userID}, "password": {password}}, nil, &sheet)
	return sheet, err
}

func (c *SpreadsheetsRESTClient) GetSpreadsheetValues(ctx context.Context, sheetID, userID, password string) ([][]string, error) {
	var values [][]string
	err := c.call(ctx, http.MethodGet, "/spreadsheets/"+url.PathEscape(sheetID)+"/values",
		url.Values{"userId": {userID}, "password": {password}}, nil, &values)
	return values, err
}

func (c *SpreadsheetsRESTClient) GetReferencedSpreadsheetValues(ctx context.Context, sheetID, userID, rangeRef string) ([][]string, error) {
	var values [][]string
	err := c.call(ctx, http.MethodGet, "/spreadsheets/"+url.PathEscape(sheetID)+"/referencedvalues",
		url.Values{"userId": {userID}, "range": {rangeRef}}, nil, &values)
	return values, err
}

func (c *SpreadsheetsRESTClient) UpdateCell(ctx context.Context, sheetID, cellID, rawValue, userID, password string) error {
	return c.call(ctx, http.MethodPut,
		"/spreadsheets/"+url.PathEscape(sheetID)+"/cell/"+url.PathEscape(cellID),
		url.Values{"userId": {userID}, "password": {password}}, rawValue, nil)
}

func (c *SpreadsheetsRESTClient) ShareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	return c.call(ctx, http.MethodPost,
		"/spreadsheets/"+url.PathEscape(sheetID)+"/share/"+url.PathEscape(userID),
		url.Values{"password": {password}}, nil, nil)
}

func (c *SpreadsheetsRESTClient) UnshareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	return c.call(ctx, http.MethodDelete,
		"/spreadsheets/"+url.PathEscape(sheetID)+"/share/"+url.PathEscape(userID),
		url.Values{"password": {password}}, nil, nil)
}
