package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lol-overlay/internal/config"
	"lol-overlay/internal/credential"

	"github.com/valyala/fasthttp"
)

// RiotClient wraps the Riot Games REST API. Account and match lookups go
// to the regional host, summoner/league/mastery lookups to the platform
// host. Each call issues one GET and reports the outcome as-is; retry and
// status interpretation are the caller's job.
type RiotClient struct {
	cred         *credential.Credential
	regionalBase string
	platformBase string
	client       *fasthttp.Client
}

func NewRiotClient(cfg *config.Config, cred *credential.Credential) *RiotClient {
	return &RiotClient{
		cred:         cred,
		regionalBase: cfg.RegionalBaseURL,
		platformBase: cfg.PlatformBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Account is the response of the account-v1 by-riot-id lookup.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type Summoner struct {
	ProfileIconID int `json:"profileIconId"`
	SummonerLevel int `json:"summonerLevel"`
}

type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

type ChampionMastery struct {
	ChampionID     int64 `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
}

type Match struct {
	Info MatchInfo `json:"info"`
}

type MatchInfo struct {
	GameDuration int           `json:"gameDuration"` // seconds
	GameMode     string        `json:"gameMode"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	Puuid                       string `json:"puuid"`
	ChampionID                  int64  `json:"championId"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	Win                         bool   `json:"win"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	VisionScore                 int    `json:"visionScore"`
	ChampLevel                  int    `json:"champLevel"`
	Item0                       int    `json:"item0"`
	Item1                       int    `json:"item1"`
	Item2                       int    `json:"item2"`
	Item3                       int    `json:"item3"`
	Item4                       int    `json:"item4"`
	Item5                       int    `json:"item5"`
	Item6                       int    `json:"item6"`
}

func (p *Participant) Items() [7]int {
	return [7]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6}
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	url := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s", c.regionalBase, gameName, tagLine)
	return doRequest[Account](ctx, c, url)
}

func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error) {
	url := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformBase, puuid)
	return doRequest[Summoner](ctx, c, url)
}

func (c *RiotClient) GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	url := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformBase, puuid)
	entries, err := doRequest[[]LeagueEntry](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *RiotClient) GetChampionMasteries(ctx context.Context, puuid string, top int) ([]ChampionMastery, error) {
	url := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d", c.platformBase, puuid, top)
	masteries, err := doRequest[[]ChampionMastery](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *RiotClient) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?count=%d", c.regionalBase, puuid, count)
	ids, err := doRequest[[]string](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalBase, matchID)
	return doRequest[Match](ctx, c, url)
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.cred.Get())

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &StatusError{Code: resp.StatusCode()}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
