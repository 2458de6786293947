package service

import (
	"context"
	"fmt"

	"lol-overlay/internal/api"
	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"
	"lol-overlay/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RiotAPI is the slice of the Riot client the builder needs.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*api.Account, error)
	GetSummonerByPUUID(ctx context.Context, puuid string) (*api.Summoner, error)
	GetLeagueEntries(ctx context.Context, puuid string) ([]api.LeagueEntry, error)
	GetChampionMasteries(ctx context.Context, puuid string, top int) ([]api.ChampionMastery, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*api.Match, error)
}

// MetadataAPI provides the champion catalog.
type MetadataAPI interface {
	Catalog(ctx context.Context) (*api.ChampionCatalog, error)
}

// SnapshotBuilder runs one aggregation cycle: it resolves the tracked
// player, fetches profile, ranked, mastery and recent-match data, and
// joins everything into a single Snapshot. Identity and profile are
// mandatory; everything else degrades to empty on failure.
type SnapshotBuilder struct {
	riot   RiotAPI
	meta   MetadataAPI
	cfg    *config.Config
	clock  clockwork.Clock
	logger zerolog.Logger
}

func NewSnapshotBuilder(riot RiotAPI, meta MetadataAPI, cfg *config.Config, clock clockwork.Clock, logger zerolog.Logger) *SnapshotBuilder {
	return &SnapshotBuilder{riot: riot, meta: meta, cfg: cfg, clock: clock, logger: logger}
}

func (b *SnapshotBuilder) Build(ctx context.Context) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CycleTimeout)
	defer cancel()

	catalog, err := b.meta.Catalog(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("champion catalog unavailable, names will resolve to Unknown")
		catalog = api.EmptyCatalog()
	}

	account, err := b.riot.GetAccountByRiotID(ctx, b.cfg.GameName, b.cfg.TagLine)
	if err != nil {
		b.logger.Error().Err(err).Str("game_name", b.cfg.GameName).Str("tag_line", b.cfg.TagLine).Msg("failed to resolve account")
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	summoner, err := b.riot.GetSummonerByPUUID(ctx, account.Puuid)
	if err != nil {
		b.logger.Error().Err(err).Str("puuid", account.Puuid).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("failed to fetch summoner: %w", err)
	}

	ranked, masteries := b.fetchEnrichments(ctx, account.Puuid)

	matches, lastGame := b.fetchMatches(ctx, account.Puuid, catalog)

	snapshot := &domain.Snapshot{
		PlayerName:  fmt.Sprintf("%s#%s", account.GameName, account.TagLine),
		Level:       summoner.SummonerLevel,
		ProfileIcon: catalog.ProfileIconURL(summoner.ProfileIconID),
		Ranked:      b.toRankedEntries(ranked),
		Champions:   b.toMasteryChamps(masteries, catalog),
		Matches:     matches,
		LastGame:    lastGame,
		LastUpdate:  b.clock.Now().Unix(),
	}

	b.logger.Info().
		Str("player", snapshot.PlayerName).
		Int("ranked_queues", len(snapshot.Ranked)).
		Int("champions", len(snapshot.Champions)).
		Int("matches", len(snapshot.Matches)).
		Msg("snapshot built")

	return snapshot, nil
}

// fetchEnrichments runs the two independent platform lookups in parallel.
// Both are best-effort: a failed fetch becomes an empty list.
func (b *SnapshotBuilder) fetchEnrichments(ctx context.Context, puuid string) ([]api.LeagueEntry, []api.ChampionMastery) {
	var ranked []api.LeagueEntry
	var masteries []api.ChampionMastery

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := b.riot.GetLeagueEntries(gCtx, puuid)
		if err != nil {
			b.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to fetch ranked entries, continuing without")
			return nil
		}
		ranked = entries
		return nil
	})
	g.Go(func() error {
		entries, err := b.riot.GetChampionMasteries(gCtx, puuid, b.cfg.MasteryCount)
		if err != nil {
			b.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to fetch champion mastery, continuing without")
			return nil
		}
		masteries = entries
		return nil
	})
	_ = g.Wait()

	return ranked, masteries
}

// fetchMatches walks the recent match ids in order. A match whose detail
// fetch fails, or whose participant list unexpectedly lacks the tracked
// player, is skipped without failing the cycle. The first surviving match
// also yields the extended last-game record.
func (b *SnapshotBuilder) fetchMatches(ctx context.Context, puuid string, catalog *api.ChampionCatalog) ([]domain.MatchSummary, *domain.LastGame) {
	ids, err := b.riot.GetMatchIDs(ctx, puuid, b.cfg.MatchCount)
	if err != nil {
		b.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to fetch match ids, continuing without")
		return []domain.MatchSummary{}, nil
	}

	matches := make([]domain.MatchSummary, 0, len(ids))
	var lastGame *domain.LastGame

	for _, matchID := range ids {
		match, err := b.riot.GetMatch(ctx, matchID)
		if err != nil {
			b.logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to fetch match detail, skipping")
			continue
		}

		participant := findParticipant(match.Info.Participants, puuid)
		if participant == nil {
			b.logger.Warn().Str("match_id", matchID).Str("puuid", puuid).Msg("player missing from match participants, skipping")
			continue
		}

		champ := catalog.ChampionByID(participant.ChampionID)
		summary := domain.MatchSummary{
			Champion:     champ.Name,
			ChampionIcon: catalog.ChampionIconURL(champ.Slug),
			Kills:        participant.Kills,
			Deaths:       participant.Deaths,
			Assists:      participant.Assists,
			Win:          participant.Win,
			GameDuration: match.Info.GameDuration / 60,
			GameMode:     match.Info.GameMode,
		}
		matches = append(matches, summary)

		if lastGame == nil {
			lastGame = &domain.LastGame{
				MatchSummary:                summary,
				TotalMinionsKilled:          participant.TotalMinionsKilled,
				NeutralMinionsKilled:        participant.NeutralMinionsKilled,
				GoldEarned:                  participant.GoldEarned,
				TotalDamageDealtToChampions: participant.TotalDamageDealtToChampions,
				VisionScore:                 participant.VisionScore,
				ChampLevel:                  participant.ChampLevel,
				Items:                       participant.Items(),
			}
		}
	}

	return matches, lastGame
}

func (b *SnapshotBuilder) toRankedEntries(entries []api.LeagueEntry) []domain.RankedEntry {
	ranked := make([]domain.RankedEntry, 0, len(entries))
	for _, entry := range entries {
		tier := entry.Tier
		if tier == "" {
			tier = "UNRANKED"
		}
		ranked = append(ranked, domain.RankedEntry{
			QueueType:    entry.QueueType,
			Tier:         tier,
			Rank:         entry.Rank,
			LeaguePoints: entry.LeaguePoints,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
			Winrate:      domain.Winrate(entry.Wins, entry.Losses),
		})
	}
	return ranked
}

func (b *SnapshotBuilder) toMasteryChamps(masteries []api.ChampionMastery, catalog *api.ChampionCatalog) []domain.MasteryChamp {
	champs := make([]domain.MasteryChamp, 0, len(masteries))
	for _, mastery := range masteries {
		champ := catalog.ChampionByID(mastery.ChampionID)
		champs = append(champs, domain.MasteryChamp{
			Name:   champ.Name,
			Icon:   catalog.ChampionIconURL(champ.Slug),
			Level:  mastery.ChampionLevel,
			Points: mastery.ChampionPoints,
		})
	}
	return champs
}

func findParticipant(participants []api.Participant, puuid string) *api.Participant {
	for i := range participants {
		if participants[i].Puuid == puuid {
			return &participants[i]
		}
	}
	return nil
}
