package interfaces

import (
	"context"

	"github.com/RjRDRG/sd2021-tp1/domain"
)

// Users is the protocol-agnostic capability surface of a domain's Users
// service. Local services, REST clients and gRPC clients all implement it.
type Users interface {
	CreateUser(ctx context.Context, user domain.User) (string, error)
	GetUser(ctx context.Context, userID, password string) (domain.User, error)
	UpdateUser(ctx context.Context, userID, password string, user domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, userID, password string) (domain.User, error)
	SearchUsers(ctx context.Context, pattern string) ([]domain.User, error)
	VerifyUser(ctx context.Context, userID, password string) (bool, error)
}

// Spreadsheets is the protocol-agnostic capability surface of a domain's
// Spreadsheets service.
type Spreadsheets interface {
	CreateSpreadsheet(ctx context.Context, sheet domain.Spreadsheet, password string) (string, error)
	DeleteSpreadsheet(ctx context.Context, sheetID, password string) error
	GetSpreadsheet(ctx context.Context, sheetID, userID, password string) (domain.Spreadsheet, error)
	GetSpreadsheetValues(ctx context.Context, sheetID, userID, password string) ([][]string, error)
	GetReferencedSpreadsheetValues(ctx context.Context, sheetID, userID, rangeRef string) ([][]string, error)
	UpdateCell(ctx context.Context, sheetID, cellID, rawValue, userID, password string) error
	ShareSpreadsheet(ctx context.Context, sheetID, userID, password string) error
	UnshareSpreadsheet(ctx context.Context, sheetID, userID, password string) error
}

// ClientFactory lazily builds and caches remote clients for a domain,
// consulting Discovery for the endpoint and picking the transport from the
// endpoint's shape.
type ClientFactory interface {
	UsersFor(domainID string) (Users, error)
	SpreadsheetsFor(domainID string) (Spreadsheets, error)
}
