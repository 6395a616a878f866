package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Full method names of the Spreadsheets service.
const (
	SheetsMethodCreate        = "/sheets.Spreadsheets/CreateSpreadsheet"
	SheetsMethodDelete        = "/sheets.Spreadsheets/DeleteSpreadsheet"
	SheetsMethodGet           = "/sheets.Spreadsheets/GetSpreadsheet"
	SheetsMethodGetValues     = "/sheets.Spreadsheets/GetSpreadsheetValues"
	SheetsMethodGetReferenced = "/sheets.Spreadsheets/GetReferencedSpreadsheetValues"
	SheetsMethodUpdateCell    = "/sheets.Spreadsheets/UpdateCell"
	SheetsMethodShare         = "/sheets.Spreadsheets/ShareSpreadsheet"
	SheetsMethodUnshare       = "/sheets.Spreadsheets/UnshareSpreadsheet"
)

// SpreadsheetsServer is the server-side contract of the Spreadsheets RPC
// service.
type SpreadsheetsServer interface {
	CreateSpreadsheet(ctx context.Context, req *CreateSpreadsheetRequest) (*CreateSpreadsheetResponse, error)
	DeleteSpreadsheet(ctx context.Context, req *DeleteSpreadsheetRequest) (*DeleteSpreadsheetResponse, error)
	GetSpreadsheet(ctx context.Context, req *GetSpreadsheetRequest) (*GetSpreadsheetResponse, error)
	GetSpreadsheetValues(ctx context.Context, req *GetSpreadsheetValuesRequest) (*ValuesResponse, error)
	GetReferencedSpreadsheetValues(ctx context.Context, req *GetReferencedValuesRequest) (*ValuesResponse, error)
	UpdateCell(ctx context.Context, req *UpdateCellRequest) (*UpdateCellResponse, error)
	ShareSpreadsheet(ctx context.Context, req *ShareSpreadsheetRequest) (*ShareSpreadsheetResponse, error)
	UnshareSpreadsheet(ctx context.Context, req *UnshareSpreadsheetRequest) (*UnshareSpreadsheetResponse, error)
}

// RegisterSpreadsheetsServer registers srv on the grpc server under the
// Spreadsheets service descriptor.
func RegisterSpreadsheetsServer(s *grpc.Server, srv SpreadsheetsServer) {
	s.RegisterService(&SpreadsheetsServiceDesc, srv)
}

func sheetsHandler[Req any](
	full string,
	call func(srv SpreadsheetsServer, ctx context.Context, req *Req) (any, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SpreadsheetsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SpreadsheetsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SpreadsheetsServiceDesc is the hand-written grpc service descriptor for
// the Spreadsheets service.
var SpreadsheetsServiceDesc = grpc.ServiceDesc{
	ServiceName: "sheets.Spreadsheets",
	HandlerType: (*SpreadsheetsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateSpreadsheet",
			Handler: sheetsHandler(SheetsMethodCreate, func(srv SpreadsheetsServer, ctx context.Context, req *CreateSpreadsheetRequest) (any, error) {
				return srv.CreateSpreadsheet(ctx, req)
			}),
		},
		{
			MethodName: "DeleteSpreadsheet",
			Handler: sheetsHandler(SheetsMethodDelete, func(srv SpreadsheetsServer, ctx context.Context, req *DeleteSpreadsheetRequest) (any, error) {
				return srv.DeleteSpreadsheet(ctx, req)
			}),
		},
		{
			MethodName: "GetSpreadsheet",
			Handler: sheetsHandler(SheetsMethodGet, func(srv SpreadsheetsServer, ctx context.Context, req *GetSpreadsheetRequest) (any, error) {
				return srv.GetSpreadsheet(ctx, req)
			}),
		},
		{
			MethodName: "GetSpreadsheetValues",
			Handler: sheetsHandler(SheetsMethodGetValues, func(srv SpreadsheetsServer, ctx context.Context, req *GetSpreadsheetValuesRequest) (any, error) {
				return srv.GetSpreadsheetValues(ctx, req)
			}),
		},
		{
			MethodName: "GetReferencedSpreadsheetValues",
			Handler: sheetsHandler(SheetsMethodGetReferenced, func(srv SpreadsheetsServer, ctx context.Context, req *GetReferencedValuesRequest) (any, error) {
				return srv.GetReferencedSpreadsheetValues(ctx, req)
			}),
		},
		{
			MethodName: "UpdateCell",
			Handler: sheetsHandler(SheetsMethodUpdateCell, func(srv SpreadsheetsServer, ctx context.Context, req *UpdateCellRequest) (any, error) {
				return srv.UpdateCell(ctx, req)
			}),
		},
		{
			MethodName: "ShareSpreadsheet",
			Handler: sheetsHandler(SheetsMethodShare, func(srv SpreadsheetsServer, ctx context.Context, req *ShareSpreadsheetRequest) (any, error) {
				return srv.ShareSpreadsheet(ctx, req)
			}),
		},
		{
			MethodName: "UnshareSpreadsheet",
			Handler: sheetsHandler(SheetsMethodUnshare, func(srv SpreadsheetsServer, ctx context.Context, req *UnshareSpreadsheetRequest) (any, error) {
				return srv.UnshareSpreadsheet(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sheets/spreadsheets",
}
