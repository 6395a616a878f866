package adapters

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Discovery constants shared by every domain. The multicast group and the
// announcement format are a fixed, pre-agreed protocol; changing either
// partitions the deployment.
const (
	DefaultDiscoveryAddr = "226.226.226.226:2266"
	AnnouncePeriod       = 1 * time.Second
	// EntryTTL is three announcement periods: an endpoint that misses that
	// many announcements in a row is treated as gone.
	EntryTTL = 3 * AnnouncePeriod

	maxDatagramSize = 1024
	uriDelimiter    = "\t"
	domainDelimiter = ":"
)

// encodeAnnouncement renders the single-line announcement datagram:
// "<domainId>:<serviceKind>\t<endpointUri>".
func encodeAnnouncement(domainID, serviceKind, endpointURI string) []byte {
	return []byte(domainID + domainDelimiter + serviceKind + uriDelimiter + endpointURI)
}

// parseAnnouncement decodes a datagram, reporting ok=false for anything
// that is not exactly the two-field shape.
func parseAnnouncement(datagram []byte) (key, endpointURI string, ok bool) {
	msg := string(datagram)
	name, uri, found := strings.Cut(msg, uriDelimiter)
	if !found || name == "" || uri == "" || strings.Contains(uri, uriDelimiter) {
		return "", "", false
	}
	if !strings.Contains(name, domainDelimiter) {
		return "", "", false
	}
	return name, uri, true
}

// MulticastDiscovery implements interfaces.Discovery on top of periodic
// announcements over a UDP multicast group. One announcer and one listener
// goroutine run per process, started once and stopped only by context
// cancellation at shutdown.
type MulticastDiscovery struct {
	addr   *net.UDPAddr
	logger log.Logger
	now    func() time.Time

	mu sync.RWMutex
	// endpoints maps "domainId:serviceKind" to the set of announced
	// endpoint URIs with the instant each was last heard.
	endpoints map[string]map[string]time.Time
}

// NewMulticastDiscovery creates a discovery bound to the multicast group at
// addr ("host:port"; DefaultDiscoveryAddr for the pre-agreed group).
func NewMulticastDiscovery(addr string, logger log.Logger) (*MulticastDiscovery, error) {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("invalid discovery address %q: %w", addr, err)
	}
	return &MulticastDiscovery{
		addr:      udpAddr,
		logger:    log.WithPrefix(logger, "component", "discovery"),
		now:       time.Now,
		endpoints: make(map[string]map[string]time.Time),
	}, nil
}

// StartAnnouncing begins the periodic broadcast of this node's own
// (domain, service kind, endpoint). Send failures are logged and retried
// on the next tick; announcing is best-effort and never stops the process.
func (d *MulticastDiscovery) StartAnnouncing(ctx context.Context, domainID, serviceKind, endpointURI string) error {
	conn, err := net.DialUDP("udp4", nil, d.addr)
	if err != nil {
		return fmt.Errorf("cannot open announcement socket: %w", err)
	}

	payload := encodeAnnouncement(domainID, serviceKind, endpointURI)
	level.Info(d.logger).Log(
		"msg", "starting announcements",
		"group", d.addr.String(),
		"domain", domainID,
		"service", serviceKind,
		"endpoint", endpointURI,
	)

	go func() {
		defer conn.Close()
		ticker := time.NewTicker(AnnouncePeriod)
		defer ticker.Stop()
		for {
			if _, err := conn.Write(payload); err != nil {
				level.Debug(d.logger).Log("msg", "announcement send failed", "err", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return nil
}

// StartListening begins the receive loop collecting announcements from the
// group, plus a sweeper that drops endpoints unseen for EntryTTL.
func (d *MulticastDiscovery) StartListening(ctx context.Context) error {
	conn, err := net.ListenMulticastUDP("udp4", nil, d.addr)
	if err != nil {
		return fmt.Errorf("cannot join multicast group %s: %w", d.addr, err)
	}
	if err := conn.SetReadBuffer(maxDatagramSize); err != nil {
		level.Debug(d.logger).Log("msg", "cannot set read buffer", "err", err)
	}

	level.Info(d.logger).Log("msg", "listening for announcements", "group", d.addr.String())

	go func() {
		defer conn.Close()
		buf := make([]byte, maxDatagramSize)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				level.Debug(d.logger).Log("msg", "announcement receive failed", "err", err)
				continue
			}
			d.handleAnnouncement(buf[:n])
		}
	}()

	go func() {
		ticker := time.NewTicker(EntryTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.sweep()
			}
		}
	}()
	return nil
}

// handleAnnouncement upserts the registry from one datagram. The endpoint
// set grows by union; malformed datagrams are silently discarded.
func (d *MulticastDiscovery) handleAnnouncement(datagram []byte) {
	key, uri, ok := parseAnnouncement(datagram)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	set, exists := d.endpoints[key]
	if !exists {
		set = make(map[string]time.Time)
		d.endpoints[key] = set
	}
	set[uri] = d.now()
}

// Resolve returns the endpoints last heard for (domainID, serviceKind)
// within the TTL. An empty result means the service is currently unknown.
func (d *MulticastDiscovery) Resolve(domainID, serviceKind string) []string {
	key := domainID + domainDelimiter + serviceKind
	deadline := d.now().Add(-EntryTTL)

	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []string
	for uri, seen := range d.endpoints[key] {
		if seen.Before(deadline) {
			continue
		}
		out = append(out, uri)
	}
	return out
}

// sweep evicts endpoints that have not been re-announced within EntryTTL.
func (d *MulticastDiscovery) sweep() {
	deadline := d.now().Add(-EntryTTL)

	d.mu.Lock()
	defer d.mu.Unlock()
	for key, set := range d.endpoints {
		for uri, seen := range set {
			if seen.Before(deadline) {
				delete(set, uri)
			}
		}
		if len(set) == 0 {
			delete(d.endpoints, key)
		}
	}
}
