package handlers

import (
	"context"
	"encoding/json"

	"framecraft/internal/composer"
	"framecraft/internal/pkg/logger"
)

// Composer is the render workflow behind the API.
type Composer interface {
	Submit(ctx context.Context, sub composer.Submission) (json.RawMessage, error)
	Status(ctx context.Context, id string) (json.RawMessage, error)
}

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Composer Composer
	// Cache is the search cache, nil when caching is disabled.
	Cache   Pinger
	Log     *logger.Logger
	Version string
}

type Handler struct {
	composer Composer
	cache    Pinger
	log      *logger.Logger
	version  string
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}
	version := d.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		composer: d.Composer,
		cache:    d.Cache,
		log:      log,
		version:  version,
	}
}
