package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// DataDragonClient fetches static game reference data (content version and
// the champion catalog). The catalog is fetched lazily once and cached for
// the process lifetime.
type DataDragonClient struct {
	locale      string
	versionsURL string
	cdnBase     string
	client      *fasthttp.Client
	logger      zerolog.Logger

	mu      sync.Mutex
	catalog *ChampionCatalog
}

// Champion is one catalog entry. Slug is the icon-path key (the ddragon
// id, e.g. "MonkeyKing"), Name the display name (e.g. "Wukong").
type Champion struct {
	Name string
	Slug string
}

// ChampionCatalog maps numeric champion ids to display data for one
// content version.
type ChampionCatalog struct {
	version string
	cdnBase string
	byID    map[int64]Champion
}

func NewDataDragonClient(cfg *config.Config, logger zerolog.Logger) *DataDragonClient {
	return &DataDragonClient{
		locale:      cfg.DDragonLocale,
		versionsURL: "https://ddragon.leagueoflegends.com/api/versions.json",
		cdnBase:     "https://ddragon.leagueoflegends.com/cdn",
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Catalog returns the cached champion catalog, fetching it on first use.
func (c *DataDragonClient) Catalog(ctx context.Context) (*ChampionCatalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil {
		return c.catalog, nil
	}

	version := c.latestVersion(ctx)

	var payload struct {
		Data map[string]struct {
			Key  string `json:"key"`
			Name string `json:"name"`
			ID   string `json:"id"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/%s/data/%s/champion.json", c.cdnBase, version, c.locale)
	if err := c.get(ctx, url, &payload); err != nil {
		c.logger.Warn().Err(err).Str("version", version).Msg("failed to fetch champion catalog")
		return nil, fmt.Errorf("failed to fetch champion catalog: %w", err)
	}

	byID := make(map[int64]Champion, len(payload.Data))
	for _, champ := range payload.Data {
		id, err := strconv.ParseInt(champ.Key, 10, 64)
		if err != nil {
			continue
		}
		byID[id] = Champion{Name: champ.Name, Slug: champ.ID}
	}

	c.catalog = &ChampionCatalog{version: version, cdnBase: c.cdnBase, byID: byID}
	c.logger.Info().Str("version", version).Int("champions", len(byID)).Msg("champion catalog loaded")
	return c.catalog, nil
}

func (c *DataDragonClient) latestVersion(ctx context.Context) string {
	var versions []string
	if err := c.get(ctx, c.versionsURL, &versions); err != nil || len(versions) == 0 {
		c.logger.Warn().Err(err).Str("fallback", constants.FallbackDataDragonVersion).Msg("failed to fetch ddragon versions, using fallback")
		return constants.FallbackDataDragonVersion
	}
	return versions[0]
}

func (c *DataDragonClient) get(ctx context.Context, url string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return &StatusError{Code: resp.StatusCode()}
	}
	return json.Unmarshal(resp.Body(), out)
}

// EmptyCatalog is used when the catalog could not be fetched: every lookup
// resolves to Unknown but icon URLs still form.
func EmptyCatalog() *ChampionCatalog {
	return &ChampionCatalog{
		version: constants.FallbackDataDragonVersion,
		cdnBase: "https://ddragon.leagueoflegends.com/cdn",
		byID:    map[int64]Champion{},
	}
}

// ChampionByID resolves a numeric champion id. Ids missing from the
// catalog (stale cache, newly released champion) resolve to "Unknown";
// callers render that as-is rather than treating it as an error.
func (cat *ChampionCatalog) ChampionByID(id int64) Champion {
	if champ, ok := cat.byID[id]; ok {
		return champ
	}
	return Champion{Name: "Unknown", Slug: "Unknown"}
}

func (cat *ChampionCatalog) ChampionIconURL(slug string) string {
	return fmt.Sprintf("%s/%s/img/champion/%s.png", cat.cdnBase, cat.version, slug)
}

func (cat *ChampionCatalog) ProfileIconURL(iconID int) string {
	return fmt.Sprintf("%s/%s/img/profileicon/%d.png", cat.cdnBase, cat.version, iconID)
}

func (cat *ChampionCatalog) Version() string {
	return cat.version
}
