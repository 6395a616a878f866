package adapters

import (
	"context"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/rpc"
	"github.com/RjRDRG/sd2021-tp1/service"
)

// SpreadsheetsGRPCClient talks to a remote Spreadsheets service over its
// document/RPC binding. Every call goes through the retry wrapper.
type SpreadsheetsGRPCClient struct {
	grpcClient
}

var _ interfaces.Spreadsheets = (*SpreadsheetsGRPCClient)(nil)

// NewSpreadsheetsGRPCClient creates a client for the service behind
// endpointURI (the announced "grpc://host:port").
func NewSpreadsheetsGRPCClient(endpointURI string) (*SpreadsheetsGRPCClient, error) {
	gc, err := newGRPCClient(endpointURI)
	if err != nil {
		return nil, err
	}
	return &SpreadsheetsGRPCClient{grpcClient: gc}, nil
}

func (c *SpreadsheetsGRPCClient) CreateSpreadsheet(ctx context.Context, sheet domain.Spreadsheet, password string) (string, error) {
	resp, err := service.Retry(ctx, func() (*rpc.CreateSpreadsheetResponse, error) {
		out := new(rpc.CreateSpreadsheetResponse)
		req := &rpc.CreateSpreadsheetRequest{Sheet: sheet, Password: password}
		if err := c.invoke(ctx, rpc.SheetsMethodCreate, req, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return resp.SheetID, nil
}

func (c *SpreadsheetsGRPCClient) DeleteSpreadsheet(ctx context.Context, sheetID, password string) error {
	return service.RetryVoid(ctx, func() error {
		req := &rpc.DeleteSpreadsheetRequest{SheetID: sheetID, Password: password}
		return c.invoke(ctx, rpc.SheetsMethodDelete, req, new(rpc.DeleteSpreadsheetResponse))
	})
}

func (c *SpreadsheetsGRPCClient) GetSpreadsheet(ctx context.Context, sheetID, userID, password string) (domain.Spreadsheet, error) {
	resp, err := service.Retry(ctx, func() (*rpc.GetSpreadsheetResponse, error) {
		out := new(rpc.GetSpreadsheetResponse)
		req := &rpc.GetSpreadsheetRequest{SheetID: sheetID, UserID: userID, Password: password}
		if err := c.invoke(ctx, rpc.SheetsMethodGet, req, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return domain.Spreadsheet{}, err
	}
	return resp.Sheet, nil
}

func (c *SpreadsheetsGRPCClient) GetSpreadsheetValues(ctx context.Context, sheetID, userID, password string) ([][]string, error) {
	resp, err := service.Retry(ctx, func() (*rpc.ValuesResponse, error) {
		out := new(rpc.ValuesResponse)
		req := &rpc.GetSpreadsheetValuesRequest{SheetID: sheetID, UserID: userID, Password: password}
		if err := c.invoke(ctx, rpc.SheetsMethodGetValues, req, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *SpreadsheetsGRPCClient) GetReferencedSpreadsheetValues(ctx context.Context, sheetID, userID, rangeRef string) ([][]string, error) {
	resp, err := service.Retry(ctx, func() (*rpc.ValuesResponse, error) {
		out := new(rpc.ValuesResponse)
		req := &rpc.GetReferencedValuesRequest{SheetID: sheetID, UserID: userID, Range: rangeRef}
		if err := c.invoke(ctx, rpc.SheetsMethodGetReferenced, req, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *SpreadsheetsGRPCClient) UpdateCell(ctx context.Context, sheetID, cellID, rawValue, userID, password string) error {
	return service.RetryVoid(ctx, func() error {
		req := &rpc.UpdateCellRequest{
			SheetID:  sheetID,
			CellID:   cellID,
			RawValue: rawValue,
			UserID:   userID,
			Password: password,
		}
		return c.invoke(ctx, rpc.SheetsMethodUpdateCell, req, new(rpc.UpdateCellResponse))
	})
}

func (c *SpreadsheetsGRPCClient) ShareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	return service.RetryVoid(ctx, func() error {
		req := &rpc.ShareSpreadsheetRequest{SheetID: sheetID, UserID: userID, Password: password}
		return c.invoke(ctx, rpc.SheetsMethodShare, req, new(rpc.ShareSpreadsheetResponse))
	})
}

func (c *SpreadsheetsGRPCClient) UnshareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	return service.RetryVoid(ctx, func() error {
		req := &rpc.UnshareSpreadsheetRequest{SheetID: sheetID, UserID: userID, Password: password}
		return c.invoke(ctx, rpc.SheetsMethodUnshare, req, new(rpc.UnshareSpreadsheetResponse))
	})
}
