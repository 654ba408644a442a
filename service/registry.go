package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/riskreporter/config"
)

// ServiceMeta carries the config-level identity of a service instance.
type ServiceMeta struct {
	Name        string
	Description string
}

// ServiceFactory builds a service from its meta and decoded options.
type ServiceFactory func(meta ServiceMeta, opts interface{}) (Service, error)

var serviceRegistry = struct {
	mu       sync.RWMutex
	services map[ServiceType]ServiceFactory
}{
	services: make(map[ServiceType]ServiceFactory),
}

// RegisterService registers a factory for a service type. Called from
// the init func of each implementation package.
func RegisterService(serviceType ServiceType, factory ServiceFactory) {
	serviceRegistry.mu.Lock()
	defer serviceRegistry.mu.Unlock()

	if _, exists := serviceRegistry.services[serviceType]; exists {
		slog.Warn("service.factory.already_registered", "type", serviceType)
		return
	}
	serviceRegistry.services[serviceType] = factory
}

func getServiceFactory(serviceType ServiceType) (ServiceFactory, bool) {
	serviceRegistry.mu.RLock()
	defer serviceRegistry.mu.RUnlock()
	factory, ok := serviceRegistry.services[serviceType]
	return factory, ok
}

// Registry holds the initialized service instances of one application.
type Registry struct {
	mu       sync.RWMutex
	services map[string]Service
}

func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]Service),
	}
}

// InitFromConfig creates every enabled service declared in config.
func (r *Registry) InitFromConfig(loader *config.Loader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := loader.Get()
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	for name, serviceCfg := range cfg.Services {
		if !serviceCfg.Enabled {
			slog.Info("service.disabled", "name", name)
			continue
		}

		primitive, meta, err := loader.GetServiceOptions(name)
		if err != nil {
			return fmt.Errorf("get options for %s: %w", name, err)
		}

		serviceType := ServiceType(serviceCfg.Type)
		parser, ok := GetOptionsParser(serviceType)
		if !ok {
			return fmt.Errorf("no parser registered for service type: %s", serviceType)
		}

		opts, err := parser(meta, primitive)
		if err != nil {
			return fmt.Errorf("parse options for %s: %w", name, err)
		}

		serviceMeta := ServiceMeta{
			Name:        name,
			Description: serviceCfg.Description,
		}
		svc, err := r.createService(serviceType, serviceMeta, opts)
		if err != nil {
			return fmt.Errorf("create service %s: %w", name, err)
		}

		r.services[svc.Name()] = svc
		slog.Info("service.initialized", "name", name, "type", serviceType)
	}

	return nil
}

func (r *Registry) createService(serviceType ServiceType, meta ServiceMeta, opts interface{}) (Service, error) {
	factory, ok := getServiceFactory(serviceType)
	if !ok {
		return nil, fmt.Errorf("unknown service type: %s (no factory registered)", serviceType)
	}
	return factory(meta, opts)
}

// All returns every initialized service.
func (r *Registry) All() []Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Service, 0, len(r.services))
	for _, s := range r.services {
		result = append(result, s)
	}
	return result
}

// Close closes all services.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, s := range r.services {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
