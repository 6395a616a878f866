package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RjRDRG/sd2021-tp1/adapters"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DOMAIN_ID", "alpha")
	t.Setenv("SERVICE_PORT", "8080")
	t.Setenv("PUBLIC_HOST", "node1")
	t.Setenv("BINDING", "")
	t.Setenv("DISCOVERY_ADDR", "")
	t.Setenv("REDIS_ADDR", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "alpha", config.DomainID)
	assert.Equal(t, bindingREST, config.Binding)
	assert.Equal(t, 8080, config.ServicePort)
	assert.Equal(t, adapters.DefaultDiscoveryAddr, config.DiscoveryAddr)
	assert.Empty(t, config.RedisAddr)
	assert.Equal(t, "http://node1:8080/rest", config.EndpointURI())
}

func TestLoadConfigGRPCBinding(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BINDING", "grpc")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "grpc://node1:8080", config.EndpointURI())
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DOMAIN_ID", "")
	_, err := LoadConfig()
	assert.Error(t, err)

	setBaseEnv(t)
	t.Setenv("SERVICE_PORT", "not-a-port")
	_, err = LoadConfig()
	assert.Error(t, err)

	setBaseEnv(t)
	t.Setenv("BINDING", "soap")
	_, err = LoadConfig()
	assert.Error(t, err)
}
