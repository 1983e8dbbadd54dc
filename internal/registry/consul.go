// Package registry registers the service with Consul for discovery.
package registry

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/piggybank-api/internal/config"
)

// Registrar owns one Consul service registration.
type Registrar struct {
	client    *api.Client
	serviceID string
	logger    *zerolog.Logger
}

// Register registers the service with the Consul agent at cfg.Consul.Addr,
// with an HTTP health check on /healthz. It returns nil when no Consul
// address is configured.
func Register(cfg *config.Config, logger *zerolog.Logger) (*Registrar, error) {
	if cfg.Consul.Addr == "" {
		return nil, nil
	}

	consulCfg := api.DefaultConfig()
	consulCfg.Address = cfg.Consul.Addr

	client, err := api.NewClient(consulCfg)
	if err != nil {
		return nil, err
	}

	serviceID := fmt.Sprintf("%s-%s:%d", cfg.ServiceName, cfg.Consul.ServiceHost, cfg.Consul.ServicePort)

	registration := &api.AgentServiceRegistration{
		ID:      serviceID,
		Name:    cfg.ServiceName,
		Address: cfg.Consul.ServiceHost,
		Port:    cfg.Consul.ServicePort,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/healthz", cfg.Consul.ServiceHost, cfg.Consul.ServicePort),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return nil, err
	}

	logger.Info().Str("service_id", serviceID).Msg("registered with consul")

	return &Registrar{
		client:    client,
		serviceID: serviceID,
		logger:    logger,
	}, nil
}

// Deregister removes the service registration. Safe to call on a nil
// Registrar.
func (r *Registrar) Deregister() {
	if r == nil {
		return
	}

	if err := r.client.Agent().ServiceDeregister(r.serviceID); err != nil {
		r.logger.Error().Err(err).Msg("failed to deregister from consul")
		return
	}

	r.logger.Info().Str("service_id", r.serviceID).Msg("deregistered from consul")
}
