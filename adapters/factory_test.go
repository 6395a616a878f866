package adapters

import (
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RjRDRG/sd2021-tp1/interfaces/mock"
	"github.com/RjRDRG/sd2021-tp1/service"
)

func TestSniffTransport(t *testing.T) {
	tests := []struct {
		uri  string
		want transportKind
	}{
		{"http://host:8080/rest", transportREST},
		{"https://host:8443/rest", transportREST},
		{"grpc://host:9090", transportGRPC},
		{"host:9090", transportGRPC},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, sniffTransport(tc.uri), tc.uri)
	}
}

func TestFactoryUnknownDomain(t *testing.T) {
	disc := &mock.DiscoveryMock{ResolveFunc: func(domainID, serviceKind string) []string {
		return nil
	}}
	f := NewClientFactory(disc, log.NewNopLogger())

	_, err := f.UsersFor("nowhere")
	assert.True(t, service.IsRemoteUnavailableError(err))

	_, err = f.SpreadsheetsFor("nowhere")
	assert.True(t, service.IsRemoteUnavailableError(err))
}

func TestFactorySelectsTransportFromEndpoint(t *testing.T) {
	endpoints := map[string][]string{
		"alpha": {"http://h1:8080/rest"},
		"beta":  {"grpc://h2:9090"},
	}
	disc := &mock.DiscoveryMock{ResolveFunc: func(domainID, serviceKind string) []string {
		return endpoints[domainID]
	}}
	f := NewClientFactory(disc, log.NewNopLogger())

	alpha, err := f.SpreadsheetsFor("alpha")
	require.NoError(t, err)
	assert.IsType(t, &SpreadsheetsRESTClient{}, alpha)

	beta, err := f.SpreadsheetsFor("beta")
	require.NoError(t, err)
	assert.IsType(t, &SpreadsheetsGRPCClient{}, beta)
}

func TestFactoryCachesClientPerDomain(t *testing.T) {
	calls := 0
	disc := &mock.DiscoveryMock{ResolveFunc: func(domainID, serviceKind string) []string {
		calls++
		return []string{"http://h1:8080/rest"}
	}}
	f := NewClientFactory(disc, log.NewNopLogger())

	first, err := f.UsersFor("alpha")
	require.NoError(t, err)
	second, err := f.UsersFor("alpha")
	require.NoError(t, err)

	assert.Same(t, first, second)
	// Discovery is consulted on every call to validate the cached endpoint.
	assert.Equal(t, 2, calls)
}

func TestFactoryRebuildsWhenEndpointGone(t *testing.T) {
	current := []string{"http://h1:8080/rest"}
	disc := &mock.DiscoveryMock{ResolveFunc: func(domainID, serviceKind string) []string {
		return current
	}}
	f := NewClientFactory(disc, log.NewNopLogger())

	first, err := f.UsersFor("alpha")
	require.NoError(t, err)

	current = []string{"http://h2:8080/rest"}
	second, err := f.UsersFor("alpha")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, "http://h2:8080/rest", f.users["alpha"].endpoint)
}

func TestFactoryKeepsClientWhileEndpointAnnounced(t *testing.T) {
	current := []string{"http://h1:8080/rest"}
	disc := &mock.DiscoveryMock{ResolveFunc: func(domainID, serviceKind string) []string {
		return current
	}}
	f := NewClientFactory(disc, log.NewNopLogger())

	first, err := f.UsersFor("alpha")
	require.NoError(t, err)

	// A second replica showing up must not invalidate the existing client.
	current = []string{"http://h0:8080/rest", "http://h1:8080/rest"}
	second, err := f.UsersFor("alpha")
	require.NoError(t, err)

	assert.Same(t, first, second)
}
