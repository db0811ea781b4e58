// Package cricsheet handles the raw Cricsheet corpus: checking the upstream
// archive for new match files, and parsing individual match JSON files into
// the summaries the narrator consumes.
package cricsheet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

// matchFile mirrors the subset of the Cricsheet JSON schema we consume.
type matchFile struct {
	Info struct {
		City   string   `json:"city"`
		Venue  string   `json:"venue"`
		Dates  []string `json:"dates"`
		Teams  []string `json:"teams"`
		Event struct {
			Name string `json:"name"`
		} `json:"event"`
		Toss struct {
			Winner   string `json:"winner"`
			Decision string `json:"decision"`
		} `json:"toss"`
		Outcome struct {
			Winner string `json:"winner"`
			Result string `json:"result"`
			Method string `json:"method"`
			By     struct {
				Runs    int `json:"runs"`
				Wickets int `json:"wickets"`
			} `json:"by"`
			Eliminator string `json:"eliminator"`
		} `json:"outcome"`
		PlayerOfMatch []string `json:"player_of_match"`
	} `json:"info"`
	Innings []struct {
		Team      string `json:"team"`
		SuperOver bool   `json:"super_over"`
		Overs     []struct {
			Over       int `json:"over"`
			Deliveries []struct {
				Batter string `json:"batter"`
				Bowler string `json:"bowler"`
				Runs   struct {
					Batter int `json:"batter"`
					Extras int `json:"extras"`
					Total  int `json:"total"`
				} `json:"runs"`
				Wickets []struct {
					PlayerOut string `json:"player_out"`
					Kind      string `json:"kind"`
					Fielders  []struct {
						Name string `json:"name"`
					} `json:"fielders"`
				} `json:"wickets"`
			} `json:"deliveries"`
		} `json:"overs"`
	} `json:"innings"`
}

// topBatterMinRuns is the threshold for a batting performance to appear in
// the narrative prompt.
const topBatterMinRuns = 20

// ParseMatch reads a Cricsheet match file and aggregates it into a summary.
// The match ID is the file's base name without extension, matching Cricsheet
// naming.
func ParseMatch(path string) (*model.MatchSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read match file: %w", err)
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Summarize(id, data)
}

// Summarize aggregates raw Cricsheet JSON into a MatchSummary: innings
// totals, notable batting and bowling figures, and the fall of wickets.
func Summarize(matchID string, data []byte) (*model.MatchSummary, error) {
	var m matchFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse match %s: %w", matchID, err)
	}

	summary := &model.MatchSummary{
		MatchID:        matchID,
		Event:          m.Info.Event.Name,
		Venue:          m.Info.Venue,
		City:           m.Info.City,
		Teams:          m.Info.Teams,
		TossWinner:     m.Info.Toss.Winner,
		TossDecision:   m.Info.Toss.Decision,
		Winner:         m.Info.Outcome.Winner,
		ResultType:     m.Info.Outcome.Result,
		Method:         m.Info.Outcome.Method,
		MarginRuns:     m.Info.Outcome.By.Runs,
		MarginWickets:  m.Info.Outcome.By.Wickets,
		Eliminator:     m.Info.Outcome.Eliminator,
		PlayersOfMatch: m.Info.PlayerOfMatch,
	}
	if len(m.Info.Dates) > 0 {
		summary.StartDate = m.Info.Dates[0]
	}

	for i, innings := range m.Innings {
		number := i + 1
		is := model.InningsSummary{
			Number:      number,
			BattingTeam: innings.Team,
			SuperOver:   innings.SuperOver,
			Overs:       len(innings.Overs),
		}

		batters := make(map[string]*model.BattingPerformance)
		bowlers := make(map[string]*model.BowlingPerformance)

		for _, over := range innings.Overs {
			for ball, delivery := range over.Deliveries {
				is.Runs += delivery.Runs.Total

				bat := batters[delivery.Batter]
				if bat == nil {
					bat = &model.BattingPerformance{Innings: number, Batter: delivery.Batter}
					batters[delivery.Batter] = bat
				}
				bat.Runs += delivery.Runs.Batter
				bat.Balls++
				switch delivery.Runs.Batter {
				case 4:
					bat.Fours++
				case 6:
					bat.Sixes++
				}

				bowl := bowlers[delivery.Bowler]
				if bowl == nil {
					bowl = &model.BowlingPerformance{Innings: number, Bowler: delivery.Bowler}
					bowlers[delivery.Bowler] = bowl
				}
				bowl.Balls++
				bowl.RunsConceded += delivery.Runs.Total

				for _, w := range delivery.Wickets {
					is.Wickets++
					bowl.Wickets++
					fow := model.FallOfWicket{
						Innings:   number,
						Over:      over.Over,
						Ball:      ball + 1,
						PlayerOut: w.PlayerOut,
						Kind:      w.Kind,
						Bowler:    delivery.Bowler,
					}
					for _, f := range w.Fielders {
						fow.Fielders = append(fow.Fielders, f.Name)
					}
					summary.Wickets = append(summary.Wickets, fow)
				}
			}
		}

		summary.Innings = append(summary.Innings, is)

		for _, bat := range batters {
			if bat.Runs >= topBatterMinRuns {
				summary.TopBatters = append(summary.TopBatters, *bat)
			}
		}
		for _, bowl := range bowlers {
			if bowl.Wickets > 0 {
				summary.TopBowlers = append(summary.TopBowlers, *bowl)
			}
		}
	}

	sort.Slice(summary.TopBatters, func(i, j int) bool {
		a, b := summary.TopBatters[i], summary.TopBatters[j]
		if a.Innings != b.Innings {
			return a.Innings < b.Innings
		}
		if a.Runs != b.Runs {
			return a.Runs > b.Runs
		}
		return a.Batter < b.Batter
	})
	sort.Slice(summary.TopBowlers, func(i, j int) bool {
		a, b := summary.TopBowlers[i], summary.TopBowlers[j]
		if a.Innings != b.Innings {
			return a.Innings < b.Innings
		}
		if a.Wickets != b.Wickets {
			return a.Wickets > b.Wickets
		}
		if a.RunsConceded != b.RunsConceded {
			return a.RunsConceded < b.RunsConceded
		}
		return a.Bowler < b.Bowler
	})

	return summary, nil
}
