package adapters

import (
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/service"
)

// transportKind is the binding a client speaks, decided once from the shape
// of the announced endpoint and never re-sniffed afterwards.
type transportKind int

const (
	transportREST transportKind = iota
	transportGRPC
)

func sniffTransport(endpointURI string) transportKind {
	if strings.Contains(endpointURI, "/rest") {
		return transportREST
	}
	return transportGRPC
}

// clientEntry is one cached remote client together with the endpoint it was
// built from. The endpoint is what decides whether the entry is still valid.
type clientEntry struct {
	endpoint string
	client   any
}

// ClientFactory builds and caches one remote client per (domain, service
// kind), consulting Discovery for endpoints. A cached client whose endpoint
// is no longer being announced is closed and rebuilt on next use.
type ClientFactory struct {
	discovery interfaces.Discovery
	logger    log.Logger

	mu     sync.Mutex
	users  map[string]clientEntry
	sheets map[string]clientEntry
}

var _ interfaces.ClientFactory = (*ClientFactory)(nil)

// NewClientFactory creates a factory backed by the given discovery.
func NewClientFactory(discovery interfaces.Discovery, logger log.Logger) *ClientFactory {
	return &ClientFactory{
		discovery: discovery,
		logger:    log.WithPrefix(logger, "component", "client_factory"),
		users:     make(map[string]clientEntry),
		sheets:    make(map[string]clientEntry),
	}
}

// UsersFor returns a Users client for the given domain.
func (f *ClientFactory) UsersFor(domainID string) (interfaces.Users, error) {
	entry, err := f.clientFor(f.users, domainID, interfaces.ServiceKindUsers, func(endpoint string) (any, error) {
		if sniffTransport(endpoint) == transportREST {
			return NewUsersRESTClient(endpoint), nil
		}
		return NewUsersGRPCClient(endpoint)
	})
	if err != nil {
		return nil, err
	}
	return entry.client.(interfaces.Users), nil
}

// SpreadsheetsFor returns a Spreadsheets client for the given domain.
func (f *ClientFactory) SpreadsheetsFor(domainID string) (interfaces.Spreadsheets, error) {
	entry, err := f.clientFor(f.sheets, domainID, interfaces.ServiceKindSpreadsheets, func(endpoint string) (any, error) {
		if sniffTransport(endpoint) == transportREST {
			return NewSpreadsheetsRESTClient(endpoint), nil
		}
		return NewSpreadsheetsGRPCClient(endpoint)
	})
	if err != nil {
		return nil, err
	}
	return entry.client.(interfaces.Spreadsheets), nil
}

// clientFor implements the resolve/validate/build cycle over one cache map.
// Endpoints are sorted so repeated resolutions of an unchanged set pick the
// same endpoint.
func (f *ClientFactory) clientFor(cache map[string]clientEntry, domainID, kind string, build func(endpoint string) (any, error)) (clientEntry, error) {
	endpoints := f.discovery.Resolve(domainID, kind)
	if len(endpoints) == 0 {
		return clientEntry{}, service.NewRemoteUnavailableError("no known endpoint for "+kind+" of domain "+domainID, nil)
	}
	sort.Strings(endpoints)

	f.mu.Lock()
	defer f.mu.Unlock()

	if entry, ok := cache[domainID]; ok {
		for _, e := range endpoints {
			if e == entry.endpoint {
				return entry, nil
			}
		}
		// The endpoint this client was built from has gone away.
		if closer, ok := entry.client.(io.Closer); ok {
			_ = closer.Close()
		}
		delete(cache, domainID)
		level.Info(f.logger).Log(
			"msg", "discarding stale client",
			"domain", domainID,
			"service", kind,
			"endpoint", entry.endpoint,
		)
	}

	endpoint := endpoints[0]
	client, err := build(endpoint)
	if err != nil {
		return clientEntry{}, service.NewRemoteUnavailableError("cannot build client for "+endpoint, err)
	}

	entry := clientEntry{endpoint: endpoint, client: client}
	cache[domainID] = entry
	return entry, nil
}
