// Package mock provides hand-rolled function-field mocks for the interfaces
// package, for use in table-driven tests.
package mock

import (
	"context"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
)

// DiscoveryMock implements interfaces.Discovery.
type DiscoveryMock struct {
	ResolveFunc func(domainID, serviceKind string) []string
}

func (m *DiscoveryMock) Resolve(domainID, serviceKind string) []string {
	if m.ResolveFunc == nil {
		return nil
	}
	return m.ResolveFunc(domainID, serviceKind)
}

// UsersMock implements interfaces.Users.
type UsersMock struct {
	CreateUserFunc  func(ctx context.Context, user domain.User) (string, error)
	GetUserFunc     func(ctx context.Context, userID, password string) (domain.User, error)
	UpdateUserFunc  func(ctx context.Context, userID, password string, user domain.User) (domain.User, error)
	DeleteUserFunc  func(ctx context.Context, userID, password string) (domain.User, error)
	SearchUsersFunc func(ctx context.Context, pattern string) ([]domain.User, error)
	VerifyUserFunc  func(ctx context.Context, userID, password string) (bool, error)
}

func (m *UsersMock) CreateUser(ctx context.Context, user domain.User) (string, error) {
	return m.CreateUserFunc(ctx, user)
}

func (m *UsersMock) GetUser(ctx context.Context, userID, password string) (domain.User, error) {
	return m.GetUserFunc(ctx, userID, password)
}

func (m *UsersMock) UpdateUser(ctx context.Context, userID, password string, user domain.User) (domain.User, error) {
	return m.UpdateUserFunc(ctx, userID, password, user)
}

func (m *UsersMock) DeleteUser(ctx context.Context, userID, password string) (domain.User, error) {
	return m.DeleteUserFunc(ctx, userID, password)
}

func (m *UsersMock) SearchUsers(ctx context.Context, pattern string) ([]domain.User, error) {
	return m.SearchUsersFunc(ctx, pattern)
}

func (m *UsersMock) VerifyUser(ctx context.Context, userID, password string) (bool, error) {
	return m.VerifyUserFunc(ctx, userID, password)
}

// SpreadsheetsMock implements interfaces.Spreadsheets.
type SpreadsheetsMock struct {
	CreateSpreadsheetFunc              func(ctx context.Context, sheet domain.Spreadsheet, password string) (string, error)
	DeleteSpreadsheetFunc              func(ctx context.Context, sheetID, password string) error
	GetSpreadsheetFunc                 func(ctx context.Context, sheetID, userID, password string) (domain.Spreadsheet, error)
	GetSpreadsheetValuesFunc           func(ctx context.Context, sheetID, userID, password string) ([][]string, error)
	GetReferencedSpreadsheetValuesFunc func(ctx context.Context, sheetID, userID, rangeRef string) ([][]string, error)
	UpdateCellFunc                     func(ctx context.Context, sheetID, cellID, rawValue, userID, password string) error
	ShareSpreadsheetFunc               func(ctx context.Context, sheetID, userID, password string) error
	UnshareSpreadsheetFunc             func(ctx context.Context, sheetID, userID, password string) error
}

func (m *SpreadsheetsMock) CreateSpreadsheet(ctx context.Context, sheet domain.Spreadsheet, password string) (string, error) {
	return m.CreateSpreadsheetFunc(ctx, sheet, password)
}

func (m *SpreadsheetsMock) DeleteSpreadsheet(ctx context.Context, sheetID, password string) error {
	return m.DeleteSpreadsheetFunc(ctx, sheetID, password)
}

func (m *SpreadsheetsMock) GetSpreadsheet(ctx context.Context, sheetID, userID, password string) (domain.Spreadsheet, error) {
	return m.GetSpreadsheetFunc(ctx, sheetID, userID, password)
}

func (m *SpreadsheetsMock) GetSpreadsheetValues(ctx context.Context, sheetID, userID, password string) ([][]string, error) {
	return m.GetSpreadsheetValuesFunc(ctx, sheetID, userID, password)
}

func (m *SpreadsheetsMock) GetReferencedSpreadsheetValues(ctx context.Context, sheetID, userID, rangeRef string) ([][]string, error) {
	return m.GetReferencedSpreadsheetValuesFunc(ctx, sheetID, userID, rangeRef)
}

func (m *SpreadsheetsMock) UpdateCell(ctx context.Context, sheetID, cellID, rawValue, userID, password string) error {
	return m.UpdateCellFunc(ctx, sheetID, cellID, rawValue, userID, password)
}

func (m *SpreadsheetsMock) ShareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	return m.ShareSpreadsheetFunc(ctx, sheetID, userID, password)
}

func (m *SpreadsheetsMock) UnshareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	return m.UnshareSpreadsheetFunc(ctx, sheetID, userID, password)
}

// ClientFactoryMock implements interfaces.ClientFactory.
type ClientFactoryMock struct {
	UsersForFunc        func(domainID string) (interfaces.Users, error)
	SpreadsheetsForFunc func(domainID string) (interfaces.Spreadsheets, error)
}

func (m *ClientFactoryMock) UsersFor(domainID string) (interfaces.Users, error) {
	return m.UsersForFunc(domainID)
}

func (m *ClientFactoryMock) SpreadsheetsFor(domainID string) (interfaces.Spreadsheets, error) {
	return m.SpreadsheetsForFunc(domainID)
}

// UserStoreMock implements interfaces.UserStore.
type UserStoreMock struct {
	CreateFunc func(ctx context.Context, user domain.User) error
	GetFunc    func(ctx context.Context, userID string) (domain.User, error)
	UpdateFunc func(ctx context.Context, user domain.User) error
	DeleteFunc func(ctx context.Context, userID string) error
	ListFunc   func(ctx context.Context) ([]domain.User, error)
}

func (m *UserStoreMock) Create(ctx context.Context, user domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *UserStoreMock) Get(ctx context.Context, userID string) (domain.User, error) {
	return m.GetFunc(ctx, userID)
}

func (m *UserStoreMock) Update(ctx context.Context, user domain.User) error {
	return m.UpdateFunc(ctx, user)
}

func (m *UserStoreMock) Delete(ctx context.Context, userID string) error {
	return m.DeleteFunc(ctx, userID)
}

func (m *UserStoreMock) List(ctx context.Context) ([]domain.User, error) {
	return m.ListFunc(ctx)
}
