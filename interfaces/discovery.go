package interfaces

// Service kinds announced over discovery, independent of transport.
const (
	ServiceKindUsers        = "UsersService"
	ServiceKindSpreadsheets = "SpreadsheetsService"
)

// Discovery resolves the last-known contact endpoints for a
// (domain, service kind) pair. An empty result means "service currently
// unknown", not an error: announcements may simply not have arrived yet.
type Discovery interface {
	Resolve(domainID, serviceKind string) []string
}
