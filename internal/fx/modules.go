package fx

import (
	"lol-overlay/internal/api"
	"lol-overlay/internal/config"
	"lol-overlay/internal/credential"
	"lol-overlay/internal/database"
	"lol-overlay/internal/logger"
	"lol-overlay/internal/metrics"
	"lol-overlay/internal/recovery"
	"lol-overlay/internal/repository"
	"lol-overlay/internal/server"
	"lol-overlay/internal/service"
	"lol-overlay/internal/store"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

func ProvideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func ProvideCadence(cfg *config.Config) backoff.BackOff {
	return backoff.NewConstantBackOff(cfg.UpdateInterval)
}

func ProvideRiotAPI(client *api.RiotClient) service.RiotAPI {
	return client
}

func ProvideMetadataAPI(client *api.DataDragonClient) service.MetadataAPI {
	return client
}

func ProvideBuilder(builder *service.SnapshotBuilder) service.Builder {
	return builder
}

func ProvideWriter(s *store.SnapshotStore) service.SnapshotWriter {
	return s
}

func ProvideCredentialStore(repo *repository.CredentialRepository) service.CredentialStore {
	return repo
}

func ProvideRecoverer(r *recovery.PromptRecoverer) service.CredentialRecoverer {
	return r
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(metrics.New),
	fx.Provide(ProvideClock),
	fx.Provide(ProvideCadence),
	// credential handling
	fx.Provide(repository.NewCredentialRepository),
	fx.Provide(credential.Resolve),
	fx.Provide(recovery.NewPromptRecoverer),
	fx.Provide(ProvideCredentialStore),
	fx.Provide(ProvideRecoverer),
	// api clients
	fx.Provide(api.NewRiotClient),
	fx.Provide(api.NewDataDragonClient),
	fx.Provide(ProvideRiotAPI),
	fx.Provide(ProvideMetadataAPI),
	// snapshot pipeline
	fx.Provide(store.NewSnapshotStore),
	fx.Provide(service.NewSnapshotBuilder),
	fx.Provide(ProvideBuilder),
	fx.Provide(ProvideWriter),
	fx.Provide(service.NewScheduler),
	// overlay server
	fx.Provide(server.NewOverlayServer),
)
