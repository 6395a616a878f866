package rpc

import "github.com/RjRDRG/sd2021-tp1/domain"

// One request/response document pair per operation of the capability
// surface. Field names follow the REST binding's JSON vocabulary.

type CreateUserRequest struct {
	User domain.User `msgpack:"user"`
}

type CreateUserResponse struct {
	UserID string `msgpack:"userId"`
}

type GetUserRequest struct {
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type GetUserResponse struct {
	User domain.User `msgpack:"user"`
}

type UpdateUserRequest struct {
	UserID   string      `msgpack:"userId"`
	Password string      `msgpack:"password"`
	User     domain.User `msgpack:"user"`
}

type UpdateUserResponse struct {
	User domain.User `msgpack:"user"`
}

type DeleteUserRequest struct {
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type DeleteUserResponse struct {
	User domain.User `msgpack:"user"`
}

type SearchUsersRequest struct {
	Pattern string `msgpack:"pattern"`
}

type SearchUsersResponse struct {
	Users []domain.User `msgpack:"users"`
}

type VerifyUserRequest struct {
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type VerifyUserResponse struct {
	Valid bool `msgpack:"valid"`
}

type CreateSpreadsheetRequest struct {
	Sheet    domain.Spreadsheet `msgpack:"sheet"`
	Password string             `msgpack:"password"`
}

type CreateSpreadsheetResponse struct {
	SheetID string `msgpack:"sheetId"`
}

type DeleteSpreadsheetRequest struct {
	SheetID  string `msgpack:"sheetId"`
	Password string `msgpack:"password"`
}

type DeleteSpreadsheetResponse struct{}

type GetSpreadsheetRequest struct {
	SheetID  string `msgpack:"sheetId"`
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type GetSpreadsheetResponse struct {
	Sheet domain.Spreadsheet `msgpack:"sheet"`
}

type GetSpreadsheetValuesRequest struct {
	SheetID  string `msgpack:"sheetId"`
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type GetReferencedValuesRequest struct {
	SheetID string `msgpack:"sheetId"`
	UserID  string `msgpack:"userId"`
	Range   string `msgpack:"range"`
}

type ValuesResponse struct {
	Values [][]string `msgpack:"values"`
}

type UpdateCellRequest struct {
	SheetID  string `msgpack:"sheetId"`
	CellID   string `msgpack:"cellId"`
	RawValue string `msgpack:"rawValue"`
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type UpdateCellResponse struct{}

type ShareSpreadsheetRequest struct {
	SheetID  string `msgpack:"sheetId"`
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type ShareSpreadsheetResponse struct{}

type UnshareSpreadsheetRequest struct {
	SheetID  string `msgpack:"sheetId"`
	UserID   string `msgpack:"userId"`
	Password string `msgpack:"password"`
}

type UnshareSpreadsheetResponse struct{}
