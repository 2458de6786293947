package domain

import "math"

// Snapshot is the aggregated stats document written to disk for the
// overlay. Field names and nesting are the wire contract consumed by the
// overlay page and must stay stable.
type Snapshot struct {
	PlayerName  string         `json:"playerName"`
	Level       int            `json:"level"`
	ProfileIcon string         `json:"profileIcon"`
	Ranked      []RankedEntry  `json:"ranked"`
	Champions   []MasteryChamp `json:"champions"`
	Matches     []MatchSummary `json:"matches"`
	LastGame    *LastGame      `json:"lastGame"`
	LastUpdate  int64          `json:"lastUpdate"`
}

// RankedEntry is the standing in one competitive queue.
type RankedEntry struct {
	QueueType    string  `json:"queueType"`
	Tier         string  `json:"tier"`
	Rank         string  `json:"rank"`
	LeaguePoints int     `json:"leaguePoints"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Winrate      float64 `json:"winrate"`
}

type MasteryChamp struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Level  int    `json:"level"`
	Points int    `json:"points"`
}

type MatchSummary struct {
	Champion     string `json:"champion"`
	ChampionIcon string `json:"championIcon"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	Win          bool   `json:"win"`
	GameDuration int    `json:"gameDuration"` // whole minutes
	GameMode     string `json:"gameMode"`
}

// LastGame extends MatchSummary with the detail fields shown for the most
// recent match only. Items holds the 7 item slots, 0 for an empty slot.
type LastGame struct {
	MatchSummary
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	VisionScore                 int    `json:"visionScore"`
	ChampLevel                  int    `json:"champLevel"`
	Items                       [7]int `json:"items"`
}

// Winrate is wins/(wins+losses) as a percentage rounded to one decimal,
// 0 when no games were played.
func Winrate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return round1(float64(wins) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
