package cli

import (
	"context"
	"fmt"

	"github.com/rshade/countrydex/internal/config"
	"github.com/rshade/countrydex/internal/country"
	"github.com/rshade/countrydex/internal/logging"
	"github.com/rshade/countrydex/internal/source"
)

// newLoader builds a dataset loader from the effective configuration.
func newLoader(ctx context.Context) *source.Loader {
	cfg := config.GetGlobalConfig()
	return source.New(cfg.Source.URL,
		source.WithTimeout(fetchTimeout()),
		source.WithLogger(*logging.FromContext(ctx)),
	)
}

// loadCatalog fetches the dataset once for a non-interactive command.
func loadCatalog(ctx context.Context) (*country.Catalog, error) {
	log := logging.FromContext(ctx)
	loader := newLoader(ctx)

	cat, err := loader.Load(ctx)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("source", loader.Location()).Msg("failed to load countries")
		return nil, fmt.Errorf("loading countries from %s: %w", loader.Location(), err)
	}
	log.Debug().Ctx(ctx).Int("countries", cat.Len()).Msg("catalog loaded")
	return cat, nil
}
