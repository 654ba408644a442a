package service

import (
	"context"

	"github.com/go-kratos/blades/tools"
)

type ServiceType string

const (
	DuckDuckGo ServiceType = "duckduckgo"
)

// Service is an external capability handed to an agent as a tool.
type Service interface {
	Name() string
	Description() string
	Type() ServiceType
	AsTool() (tools.Tool, error)
	Health(ctx context.Context) error
	Close() error
}
