package service

import (
	"context"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
)

// SpreadsheetsService manages the spreadsheets of one domain. Credential
// checks and formula evaluation run outside the store mutex; the mutex only
// guards the sheet map, with the relevant preconditions re-checked after it
// is reacquired.
type SpreadsheetsService struct {
	domainID string
	factory  interfaces.ClientFactory
	engine   *Engine
	logger   log.Logger

	mu     sync.RWMutex
	sheets map[string]*domain.Spreadsheet
}

var _ interfaces.Spreadsheets = (*SpreadsheetsService)(nil)

// NewSpreadsheetsService creates the spreadsheets service for domainID.
// Users are verified through the factory against this domain's own Users
// service; the engine resolves foreign references.
func NewSpreadsheetsService(domainID string, factory interfaces.ClientFactory, engine *Engine, logger log.Logger) *SpreadsheetsService {
	return &SpreadsheetsService{
		domainID: domainID,
		factory:  factory,
		engine:   engine,
		logger:   log.WithPrefix(logger, "component", "spreadsheets_service"),
		sheets:   make(map[string]*domain.Spreadsheet),
	}
}

// verifyLocalUser checks userID's password against this domain's Users
// service. Absent users surface as entity-not-found.
func (s *SpreadsheetsService) verifyLocalUser(ctx context.Context, userID, password string) error {
	users, err := s.factory.UsersFor(s.domainID)
	if err != nil {
		return err
	}
	valid, err := users.VerifyUser(ctx, userID, password)
	if err != nil {
		return err
	}
	if !valid {
		return NewForbiddenError("password does not match", nil)
	}
	return nil
}

// getSheet returns a deep copy of the stored sheet, so callers can read and
// evaluate it without holding the lock.
func (s *SpreadsheetsService) getSheet(sheetID string) (domain.Spreadsheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[sheetID]
	if !ok {
		return domain.Spreadsheet{}, NewEntityNotFoundError("spreadsheet does not exist", nil)
	}
	return sheet.Clone(), nil
}

// authorizeRead applies the read access rule: the owner always may; anyone
// else needs to be in sharedWith and to belong to the owner's domain.
func authorizeRead(sheet domain.Spreadsheet, userID string) error {
	if userID == sheet.Owner {
		return nil
	}
	if sheet.IsSharedWith(userID) && domain.ExtractDomain(userID) == sheet.OwnerDomain() {
		return nil
	}
	return NewForbiddenError("user has no access to this spreadsheet", nil)
}

// CreateSpreadsheet stores a new sheet owned by a user of this domain and
// returns its generated id.
func (s *SpreadsheetsService) CreateSpreadsheet(ctx context.Context, sheet domain.Spreadsheet, password string) (string, error) {
	if sheet.Owner == "" || sheet.Rows < 1 || sheet.Columns < 1 {
		return "", NewBadParameterError("owner, rows and columns are required", nil)
	}
	if domain.ExtractDomain(sheet.Owner) != s.domainID {
		return "", NewBadParameterError("owner must belong to this domain", nil)
	}

	if err := s.verifyLocalUser(ctx, sheet.Owner, password); err != nil {
		if IsEntityNotFoundError(err) {
			return "", NewBadParameterError("owner does not exist", err)
		}
		return "", err
	}

	stored := sheet.Clone()
	stored.DomainID = s.domainID
	stored.SharedWith = nil

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		stored.SheetID = uuid.NewString()
		if _, exists := s.sheets[stored.SheetID]; !exists {
			break
		}
	}
	s.sheets[stored.SheetID] = &stored

	level.Info(s.logger).Log("msg", "spreadsheet created", "sheet", stored.SheetID, "owner", stored.Owner)
	return stored.SheetID, nil
}

// DeleteSpreadsheet removes a sheet after authenticating its owner.
func (s *SpreadsheetsService) DeleteSpreadsheet(ctx context.Context, sheetID, password string) error {
	sheet, err := s.getSheet(sheetID)
	if err != nil {
		return err
	}
	if err := s.verifyLocalUser(ctx, sheet.Owner, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[sheetID]; !ok {
		return NewEntityNotFoundError("spreadsheet does not exist", nil)
	}
	delete(s.sheets, sheetID)

	level.Info(s.logger).Log("msg", "spreadsheet deleted", "sheet", sheetID)
	return nil
}

// GetSpreadsheet returns the raw sheet for an authorized user.
func (s *SpreadsheetsService) GetSpreadsheet(ctx context.Context, sheetID, userID, password string) (domain.Spreadsheet, error) {
	sheet, err := s.getSheet(sheetID)
	if err != nil {
		return domain.Spreadsheet{}, err
	}
	if err := s.verifyRequester(ctx, userID, password); err != nil {
		return domain.Spreadsheet{}, err
	}
	if err := authorizeRead(sheet, userID); err != nil {
		return domain.Spreadsheet{}, err
	}
	return sheet, nil
}

// GetSpreadsheetValues returns the computed display matrix for an
// authorized user. Evaluation happens on a private copy, off the lock.
func (s *SpreadsheetsService) GetSpreadsheetValues(ctx context.Context, sheetID, userID, password string) ([][]string, error) {
	sheet, err := s.GetSpreadsheet(ctx, sheetID, userID, password)
	if err != nil {
		return nil, err
	}
	return s.engine.ComputeValues(ctx, sheet), nil
}

// GetReferencedSpreadsheetValues serves the cross-domain fetch path: the
// requesting user authorizes by share membership alone, with no password
// and no domain rule, because the caller may live in another domain.
func (s *SpreadsheetsService) GetReferencedSpreadsheetValues(ctx context.Context, sheetID, userID, rangeRef string) ([][]string, error) {
	rng, err := ParseRange(rangeRef)
	if err != nil {
		return nil, err
	}

	sheet, err := s.getSheet(sheetID)
	if err != nil {
		return nil, err
	}
	if userID != sheet.Owner && !sheet.IsSharedWith(userID) {
		return nil, NewForbiddenError("spreadsheet is not shared with this user", nil)
	}

	values := s.engine.ComputeValues(ctx, sheet)
	return ExtractRange(values, rng), nil
}

// UpdateCell replaces one cell's raw content for an authorized user.
func (s *SpreadsheetsService) UpdateCell(ctx context.Context, sheetID, cellID, rawValue, userID, password string) error {
	coord, err := ParseCellID(cellID)
	if err != nil {
		return err
	}

	sheet, err := s.getSheet(sheetID)
	if err != nil {
		return err
	}
	if err := s.verifyRequester(ctx, userID, password); err != nil {
		return err
	}
	if err := authorizeRead(sheet, userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sheets[sheetID]
	if !ok {
		return NewEntityNotFoundError("spreadsheet does not exist", nil)
	}
	if !stored.PlaceCellRawValue(coord.Row, coord.Col, rawValue) {
		return NewBadParameterError("cell is outside the spreadsheet", nil)
	}
	return nil
}

// ShareSpreadsheet grants read access to a user, possibly of another
// domain. Only the owner may share; sharing twice is a conflict.
func (s *SpreadsheetsService) ShareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	if userID == "" || domain.ExtractDomain(userID) == "" {
		return NewBadParameterError("target user must be a qualified id", nil)
	}

	sheet, err := s.getSheet(sheetID)
	if err != nil {
		return err
	}
	if err := s.verifyLocalUser(ctx, sheet.Owner, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sheets[sheetID]
	if !ok {
		return NewEntityNotFoundError("spreadsheet does not exist", nil)
	}
	if stored.IsSharedWith(userID) {
		return NewConflictError("spreadsheet is already shared with this user", nil)
	}
	stored.SharedWith = append(stored.SharedWith, userID)

	level.Info(s.logger).Log("msg", "spreadsheet shared", "sheet", sheetID, "user", userID)
	return nil
}

// UnshareSpreadsheet revokes a previously granted share.
func (s *SpreadsheetsService) UnshareSpreadsheet(ctx context.Context, sheetID, userID, password string) error {
	sheet, err := s.getSheet(sheetID)
	if err != nil {
		return err
	}
	if err := s.verifyLocalUser(ctx, sheet.Owner, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sheets[sheetID]
	if !ok {
		return NewEntityNotFoundError("spreadsheet does not exist", nil)
	}
	for i, shared := range stored.SharedWith {
		if shared == userID {
			stored.SharedWith = append(stored.SharedWith[:i], stored.SharedWith[i+1:]...)
			level.Info(s.logger).Log("msg", "spreadsheet unshared", "sheet", sheetID, "user", userID)
			return nil
		}
	}
	return NewEntityNotFoundError("spreadsheet is not shared with this user", nil)
}

// verifyRequester authenticates the requesting user against this domain's
// Users service. Requesters unknown here are rejected rather than reported
// absent, so sheet ids leak nothing about user ids.
func (s *SpreadsheetsService) verifyRequester(ctx context.Context, userID, password string) error {
	err := s.verifyLocalUser(ctx, userID, password)
	if IsEntityNotFoundError(err) {
		return NewForbiddenError("unknown user", err)
	}
	return err
}
