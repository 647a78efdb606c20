package indexer

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"gopagefind/internal/system"
)

// Service composes resolution and execution into the one-shot indexing
// pipeline shared by the CLI, the site-generation hook, and the public API.
type Service struct {
	Resolver Resolver
	Runner   Runner
}

// NewService wires a service over the given gateway and logger.
func NewService(sys system.System, log zerolog.Logger) Service {
	return Service{
		Resolver: NewResolver(sys, log),
		Runner:   Runner{Sys: sys},
	}
}

// RunIndex resolves the configured invocation and runs it once against the
// site directory. The site flag is always appended here, after sanitization
// has dropped any caller-supplied copies.
func (s Service) RunIndex(ctx context.Context, rw RunWith, requiredVersion, site string, extraArgs []string) (string, error) {
	if site == "" {
		return "", errors.New("no site directory configured to index")
	}

	exe, args, err := s.Resolver.Resolve(ctx, rw, requiredVersion, true)
	if err != nil {
		return "", err
	}

	args = append(args, SanitizeArgs(extraArgs)...)
	args = append(args, "--site", site)
	return s.Runner.Run(ctx, exe, args)
}

// Version reports the version of the binary the configuration resolves to.
func (s Service) Version(ctx context.Context, rw RunWith, requiredVersion string) (string, error) {
	return s.Resolver.DiscoverVersion(ctx, rw, requiredVersion)
}
