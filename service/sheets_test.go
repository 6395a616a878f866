package service

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/interfaces/mock"
)

// newTestSheetsService builds a service for domain "alpha" with two local
// users (alice, bob) and no reachable foreign domains.
func newTestSheetsService() *SpreadsheetsService {
	passwords := map[string]string{
		"alice@alpha": "pw-alice",
		"bob@alpha":   "pw-bob",
	}
	users := &mock.UsersMock{
		VerifyUserFunc: func(_ context.Context, userID, password string) (bool, error) {
			stored, ok := passwords[userID]
			if !ok {
				return false, NewEntityNotFoundError("user does not exist", nil)
			}
			return stored == password, nil
		},
	}
	factory := &mock.ClientFactoryMock{
		UsersForFunc: func(domainID string) (interfaces.Users, error) {
			return users, nil
		},
		SpreadsheetsForFunc: func(domainID string) (interfaces.Spreadsheets, error) {
			return nil, NewRemoteUnavailableError("no known endpoint", nil)
		},
	}
	logger := log.NewNopLogger()
	return NewSpreadsheetsService("alpha", factory, NewEngine(factory, logger), logger)
}

func mustCreateSheet(t *testing.T, s *SpreadsheetsService, raw [][]string) string {
	t.Helper()
	rows, cols := 2, 2
	if raw != nil {
		rows, cols = len(raw), len(raw[0])
	}
	id, err := s.CreateSpreadsheet(context.Background(), domain.Spreadsheet{
		Owner:     "alice@alpha",
		Rows:      rows,
		Columns:   cols,
		RawValues: raw,
	}, "pw-alice")
	require.NoError(t, err)
	return id
}

func TestCreateSpreadsheet(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()

	id := mustCreateSheet(t, s, nil)
	assert.NotEmpty(t, id)

	sheet, err := s.GetSpreadsheet(ctx, id, "alice@alpha", "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, id, sheet.SheetID)
	assert.Equal(t, "alpha", sheet.DomainID)
	assert.Equal(t, "alice@alpha", sheet.Owner)
}

func TestCreateSpreadsheetValidation(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()

	tests := []struct {
		name     string
		sheet    domain.Spreadsheet
		password string
		check    func(error) bool
	}{
		{"missing owner", domain.Spreadsheet{Rows: 2, Columns: 2}, "pw", IsBadParameterError},
		{"zero rows", domain.Spreadsheet{Owner: "alice@alpha", Columns: 2}, "pw-alice", IsBadParameterError},
		{"zero columns", domain.Spreadsheet{Owner: "alice@alpha", Rows: 2}, "pw-alice", IsBadParameterError},
		{"foreign owner", domain.Spreadsheet{Owner: "carol@beta", Rows: 2, Columns: 2}, "pw", IsBadParameterError},
		{"unknown owner", domain.Spreadsheet{Owner: "nobody@alpha", Rows: 2, Columns: 2}, "pw", IsBadParameterError},
		{"wrong password", domain.Spreadsheet{Owner: "alice@alpha", Rows: 2, Columns: 2}, "wrong", IsForbiddenError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateSpreadsheet(ctx, tc.sheet, tc.password)
			assert.True(t, tc.check(err), "got %v", err)
		})
	}
}

func TestGetSpreadsheetAccessRules(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, nil)

	_, err := s.GetSpreadsheet(ctx, "missing", "alice@alpha", "pw-alice")
	assert.True(t, IsEntityNotFoundError(err))

	// Not shared yet.
	_, err = s.GetSpreadsheet(ctx, id, "bob@alpha", "pw-bob")
	assert.True(t, IsForbiddenError(err))

	require.NoError(t, s.ShareSpreadsheet(ctx, id, "bob@alpha", "pw-alice"))
	_, err = s.GetSpreadsheet(ctx, id, "bob@alpha", "pw-bob")
	assert.NoError(t, err)

	_, err = s.GetSpreadsheet(ctx, id, "bob@alpha", "wrong")
	assert.True(t, IsForbiddenError(err))
}

func TestGetSpreadsheetRejectsCrossDomainReader(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, nil)

	// Even a shared user of another domain cannot read the raw sheet; only
	// the referenced-values path crosses domains.
	require.NoError(t, s.ShareSpreadsheet(ctx, id, "carol@beta", "pw-alice"))
	_, err := s.GetSpreadsheet(ctx, id, "carol@beta", "whatever")
	assert.True(t, IsForbiddenError(err))
}

func TestGetSpreadsheetValues(t *testing.T) {
	s := newTestSheetsService()
	id := mustCreateSheet(t, s, [][]string{{"5", "=A1+10"}})

	values, err := s.GetSpreadsheetValues(context.Background(), id, "alice@alpha", "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"5", "15"}}, values)
}

func TestGetReferencedSpreadsheetValues(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, [][]string{{"1", "2"}, {"3", "4"}})

	_, err := s.GetReferencedSpreadsheetValues(ctx, id, "alice@alpha", "nonsense")
	assert.True(t, IsInvalidRangeError(err))

	_, err = s.GetReferencedSpreadsheetValues(ctx, id, "carol@beta", "A1:B1")
	assert.True(t, IsForbiddenError(err))

	// Share membership alone authorizes, with no password and no domain rule.
	require.NoError(t, s.ShareSpreadsheet(ctx, id, "carol@beta", "pw-alice"))
	values, err := s.GetReferencedSpreadsheetValues(ctx, id, "carol@beta", "A1:B1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}}, values)

	values, err = s.GetReferencedSpreadsheetValues(ctx, id, "alice@alpha", "A2:B2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"3", "4"}}, values)
}

func TestUpdateCell(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, [][]string{{"1", "2"}, {"3", "4"}})

	require.NoError(t, s.UpdateCell(ctx, id, "B2", "=A1+1", "alice@alpha", "pw-alice"))
	values, err := s.GetSpreadsheetValues(ctx, id, "alice@alpha", "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, "2", values[1][1])

	assert.True(t, IsInvalidCellIDError(s.UpdateCell(ctx, id, "2B", "x", "alice@alpha", "pw-alice")))
	assert.True(t, IsBadParameterError(s.UpdateCell(ctx, id, "Z9", "x", "alice@alpha", "pw-alice")))
	assert.True(t, IsForbiddenError(s.UpdateCell(ctx, id, "A1", "x", "alice@alpha", "wrong")))
	assert.True(t, IsForbiddenError(s.UpdateCell(ctx, id, "A1", "x", "bob@alpha", "pw-bob")))
	assert.True(t, IsEntityNotFoundError(s.UpdateCell(ctx, "missing", "A1", "x", "alice@alpha", "pw-alice")))
}

func TestShareSpreadsheet(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, nil)

	assert.True(t, IsBadParameterError(s.ShareSpreadsheet(ctx, id, "unqualified", "pw-alice")))
	assert.True(t, IsForbiddenError(s.ShareSpreadsheet(ctx, id, "bob@alpha", "wrong")))
	assert.True(t, IsEntityNotFoundError(s.ShareSpreadsheet(ctx, "missing", "bob@alpha", "pw-alice")))

	require.NoError(t, s.ShareSpreadsheet(ctx, id, "bob@alpha", "pw-alice"))
	assert.True(t, IsConflictError(s.ShareSpreadsheet(ctx, id, "bob@alpha", "pw-alice")))
}

func TestUnshareSpreadsheet(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, nil)

	assert.True(t, IsEntityNotFoundError(s.UnshareSpreadsheet(ctx, id, "bob@alpha", "pw-alice")))

	require.NoError(t, s.ShareSpreadsheet(ctx, id, "bob@alpha", "pw-alice"))
	assert.True(t, IsForbiddenError(s.UnshareSpreadsheet(ctx, id, "bob@alpha", "wrong")))
	require.NoError(t, s.UnshareSpreadsheet(ctx, id, "bob@alpha", "pw-alice"))

	_, err := s.GetSpreadsheet(ctx, id, "bob@alpha", "pw-bob")
	assert.True(t, IsForbiddenError(err))
}

func TestDeleteSpreadsheet(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, nil)

	assert.True(t, IsForbiddenError(s.DeleteSpreadsheet(ctx, id, "wrong")))
	require.NoError(t, s.DeleteSpreadsheet(ctx, id, "pw-alice"))
	assert.True(t, IsEntityNotFoundError(s.DeleteSpreadsheet(ctx, id, "pw-alice")))

	_, err := s.GetSpreadsheet(ctx, id, "alice@alpha", "pw-alice")
	assert.True(t, IsEntityNotFoundError(err))
}

func TestGetSpreadsheetReturnsCopy(t *testing.T) {
	s := newTestSheetsService()
	ctx := context.Background()
	id := mustCreateSheet(t, s, [][]string{{"1", "2"}, {"3", "4"}})

	sheet, err := s.GetSpreadsheet(ctx, id, "alice@alpha", "pw-alice")
	require.NoError(t, err)
	sheet.RawValues[0][0] = "tampered"

	again, err := s.GetSpreadsheet(ctx, id, "alice@alpha", "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, "1", again.RawValues[0][0])
}
