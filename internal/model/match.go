package model

import "fmt"

// MatchSummary is the aggregated view of one match that the narrator turns
// into a prompt. It is derived from a raw Cricsheet match file by
// cricsheet.Summarize.
type MatchSummary struct {
	MatchID        string
	Event          string
	Venue          string
	City           string
	StartDate      string
	Teams          []string
	TossWinner     string
	TossDecision   string
	Winner         string
	ResultType     string // e.g. "tie", "no result"; empty for an outright win
	Method         string // e.g. "D/L"
	MarginRuns     int
	MarginWickets  int
	Eliminator     string // winner after a super over, if any
	PlayersOfMatch []string

	Innings    []InningsSummary
	TopBatters []BattingPerformance
	TopBowlers []BowlingPerformance
	Wickets    []FallOfWicket
}

// InningsSummary totals one innings.
type InningsSummary struct {
	Number      int
	BattingTeam string
	SuperOver   bool
	Runs        int
	Wickets     int
	Overs       int // overs in which at least one delivery was recorded
}

// BattingPerformance is a batter's aggregate within one innings.
type BattingPerformance struct {
	Innings int
	Batter  string
	Runs    int
	Balls   int
	Fours   int
	Sixes   int
}

// StrikeRate returns runs per 100 balls, 0 if no balls were faced.
func (b BattingPerformance) StrikeRate() float64 {
	if b.Balls == 0 {
		return 0
	}
	return float64(b.Runs) / float64(b.Balls) * 100
}

// BowlingPerformance is a bowler's aggregate within one innings.
type BowlingPerformance struct {
	Innings      int
	Bowler       string
	Balls        int
	RunsConceded int
	Wickets      int
}

// Overs renders the balls bowled in overs.balls notation.
func (b BowlingPerformance) Overs() string {
	return fmt.Sprintf("%d.%d", b.Balls/6, b.Balls%6)
}

// FallOfWicket records one dismissal.
type FallOfWicket struct {
	Innings   int
	Over      int
	Ball      int
	PlayerOut string
	Kind      string
	Bowler    string
	Fielders  []string
}
