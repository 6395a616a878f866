package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DOMAIN_ID", "alpha")
	t.Setenv("SERVICE_PORT", "9090")
	t.Setenv("PUBLIC_HOST", "node1")
	t.Setenv("BINDING", "")
	t.Setenv("DISCOVERY_ADDR", "")
}

func TestLoadConfig(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BINDING", "grpc")
	t.Setenv("DISCOVERY_ADDR", "230.0.0.1:7000")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "alpha", config.DomainID)
	assert.Equal(t, bindingGRPC, config.Binding)
	assert.Equal(t, "230.0.0.1:7000", config.DiscoveryAddr)
	assert.Equal(t, "grpc://node1:9090", config.EndpointURI())
}

func TestLoadConfigMissingDomain(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DOMAIN_ID", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
