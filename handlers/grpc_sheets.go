package handlers

import (
	"context"

	"github.com/go-kit/log"

	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/rpc"
)

// SpreadsheetsGRPCServer exposes a Spreadsheets service over the
// document/RPC binding.
type SpreadsheetsGRPCServer struct {
	sheets interfaces.Spreadsheets
	logger log.Logger
}

var _ rpc.SpreadsheetsServer = (*SpreadsheetsGRPCServer)(nil)

// NewSpreadsheetsGRPCServer creates a new SpreadsheetsGRPCServer.
func NewSpreadsheetsGRPCServer(sheets interfaces.Spreadsheets, logger log.Logger) *SpreadsheetsGRPCServer {
	return &SpreadsheetsGRPCServer{
		sheets: sheets,
		logger: log.WithPrefix(logger, "component", "SpreadsheetsGRPCServer"),
	}
}

func (h *SpreadsheetsGRPCServer) CreateSpreadsheet(ctx context.Context, req *rpc.CreateSpreadsheetRequest) (*rpc.CreateSpreadsheetResponse, error) {
	sheetID, err := h.sheets.CreateSpreadsheet(ctx, req.Sheet, req.Password)
	if err != nil {
		return nil, err
	}
	return &rpc.CreateSpreadsheetResponse{SheetID: sheetID}, nil
}

func (h *SpreadsheetsGRPCServer) DeleteSpreadsheet(ctx context.Context, req *rpc.DeleteSpreadsheetRequest) (*rpc.DeleteSpreadsheetResponse, error) {
	if err := h.sheets.DeleteSpreadsheet(ctx, req.SheetID, req.Password); err != nil {
		return nil, err
	}
	return &rpc.DeleteSpreadsheetResponse{}, nil
}

func (h *SpreadsheetsGRPCServer) GetSpreadsheet(ctx context.Context, req *rpc.GetSpreadsheetRequest) (*rpc.GetSpreadsheetResponse, error) {
	sheet, err := h.sheets.GetSpreadsheet(ctx, req.SheetID, req.UserID, req.Password)
	if err != nil {
		return nil, err
	}
	return &rpc.GetSpreadsheetResponse{Sheet: sheet}, nil
}

func (h *SpreadsheetsGRPCServer) GetSpreadsheetValues(ctx context.Context, req *rpc.GetSpreadsheetValuesRequest) (*rpc.ValuesResponse, error) {
	values, err := h.sheets.GetSpreadsheetValues(ctx, req.SheetID, req.UserID, req.Password)
	if err != nil {
		return nil, err
	}
	return &rpc.ValuesResponse{Values: values}, nil
}

func (h *SpreadsheetsGRPCServer) GetReferencedSpreadsheetValues(ctx context.Context, req *rpc.GetReferencedValuesRequest) (*rpc.ValuesResponse, error) {
	values, err := h.sheets.GetReferencedSpreadsheetValues(ctx, req.SheetID, req.UserID, req.Range)
	if err != nil {
		return nil, err
	}
	return &rpc.ValuesResponse{Values: values}, nil
}

func (h *SpreadsheetsGRPCServer) UpdateCell(ctx context.Context, req *rpc.UpdateCellRequest) (*rpc.UpdateCellResponse, error) {
	if err := h.sheets.UpdateCell(ctx, req.SheetID, req.CellID, req.RawValue, req.UserID, req.Password); err != nil {
		return nil, err
	}
	return &rpc.UpdateCellResponse{}, nil
}

func (h *SpreadsheetsGRPCServer) ShareSpreadsheet(ctx context.Context, req *rpc.ShareSpreadsheetRequest) (*rpc.ShareSpreadsheetResponse, error) {
	if err := h.sheets.ShareSpreadsheet(ctx, req.SheetID, req.UserID, req.Password); err != nil {
		return nil, err
	}
	return &rpc.ShareSpreadsheetResponse{}, nil
}

func (h *SpreadsheetsGRPCServer) UnshareSpreadsheet(ctx context.Context, req *rpc.UnshareSpreadsheetRequest) (*rpc.UnshareSpreadsheetResponse, error) {
	if err := h.sheets.UnshareSpreadsheet(ctx, req.SheetID, req.UserID, req.Password); err != nil {
		return nil, err
	}
	return &rpc.UnshareSpreadsheetResponse{}, nil
}
