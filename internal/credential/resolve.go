package credential

import (
	"context"
	"os"

	"lol-overlay/internal/constants"
	"lol-overlay/internal/repository"

	"github.com/rs/zerolog"
)

// Resolve loads the startup credential: stored value first, then the
// RIOT_API_KEY environment variable. A missing or placeholder key yields
// an empty credential; the first polling cycle then fails and triggers
// recovery instead of aborting startup.
func Resolve(repo *repository.CredentialRepository, logger zerolog.Logger) (*Credential, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	key, err := repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if Usable(key) {
		logger.Info().Msg("using stored credential")
		return New(key), nil
	}

	key = os.Getenv("RIOT_API_KEY")
	if Usable(key) {
		logger.Info().Msg("using credential from environment")
		return New(key), nil
	}

	logger.Warn().Msg("no usable credential configured, recovery will run on the first cycle")
	return New(""), nil
}
