package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/RjRDRG/sd2021-tp1/adapters"
)

const (
	bindingREST = "rest"
	bindingGRPC = "grpc"
)

type UsersdConfig struct {
	DomainID      string
	Binding       string
	ServicePort   int
	PublicHost    string
	DiscoveryAddr string
	RedisAddr     string
}

// LoadConfig loads configuration from environment variables.
// DOMAIN_ID and SERVICE_PORT are required; BINDING defaults to "rest",
// PUBLIC_HOST to the hostname, DISCOVERY_ADDR to the pre-agreed multicast
// group. REDIS_ADDR is optional; without it users live in memory.
func LoadConfig() (*UsersdConfig, error) {
	domainID := os.Getenv("DOMAIN_ID")
	if domainID == "" {
		return nil, fmt.Errorf("DOMAIN_ID is required")
	}

	binding := os.Getenv("BINDING")
	if binding == "" {
		binding = bindingREST
	}
	if binding != bindingREST && binding != bindingGRPC {
		return nil, fmt.Errorf("invalid BINDING %q: want %q or %q", binding, bindingREST, bindingGRPC)
	}

	portStr := os.Getenv("SERVICE_PORT")
	if portStr == "" {
		return nil, fmt.Errorf("SERVICE_PORT is required")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICE_PORT: %w", err)
	}

	publicHost := os.Getenv("PUBLIC_HOST")
	if publicHost == "" {
		publicHost, err = os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("PUBLIC_HOST is not set and hostname lookup failed: %w", err)
		}
	}

	discoveryAddr := os.Getenv("DISCOVERY_ADDR")
	if discoveryAddr == "" {
		discoveryAddr = adapters.DefaultDiscoveryAddr
	}

	return &UsersdConfig{
		DomainID:      domainID,
		Binding:       binding,
		ServicePort:   port,
		PublicHost:    publicHost,
		DiscoveryAddr: discoveryAddr,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
	}, nil
}

// EndpointURI is the address announced over discovery. The "/rest" suffix
// is what tells clients this endpoint speaks the REST binding.
func (c *UsersdConfig) EndpointURI() string {
	if c.Binding == bindingREST {
		return fmt.Sprintf("http://%s:%d/rest", c.PublicHost, c.ServicePort)
	}
	return fmt.Sprintf("grpc://%s:%d", c.PublicHost, c.ServicePort)
}
