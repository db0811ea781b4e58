package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

func sampleSummary() model.MatchSummary {
	return model.MatchSummary{
		MatchID:        "1384439",
		Event:          "ICC Men's T20 World Cup",
		Venue:          "Kensington Oval",
		City:           "Bridgetown",
		StartDate:      "2024-06-29",
		Teams:          []string{"India", "South Africa"},
		TossWinner:     "India",
		TossDecision:   "bat",
		Winner:         "India",
		MarginRuns:     7,
		PlayersOfMatch: []string{"V Kohli"},
		Innings: []model.InningsSummary{
			{Number: 1, BattingTeam: "India", Runs: 176, Wickets: 7, Overs: 20},
			{Number: 2, BattingTeam: "South Africa", Runs: 169, Wickets: 8, Overs: 20},
		},
		TopBatters: []model.BattingPerformance{
			{Innings: 1, Batter: "V Kohli", Runs: 76, Balls: 59, Fours: 6, Sixes: 2},
		},
		TopBowlers: []model.BowlingPerformance{
			{Innings: 2, Bowler: "JJ Bumrah", Balls: 24, RunsConceded: 18, Wickets: 2},
		},
		Wickets: []model.FallOfWicket{
			{Innings: 2, Over: 19, Ball: 2, PlayerOut: "DA Miller", Kind: "caught",
				Bowler: "HH Pandya", Fielders: []string{"SA Yadav"}},
		},
	}
}

func TestBuildMatchPrompt_IncludesHeadlineFacts(t *testing.T) {
	prompt := BuildMatchPrompt(sampleSummary())

	for _, want := range []string{
		"Kensington Oval, Bridgetown",
		"India vs South Africa",
		"India won and chose to bat",
		"- Winner: India",
		"- Margin: 7 runs",
		"V Kohli - 76 runs (59 balls, 6 fours, 2 sixes",
		"JJ Bumrah - 2/18 (4.0 overs)",
		"DA Miller caught b HH Pandya (c SA Yadav)",
		"Write the narrative now:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildMatchPrompt_TieAndWicketMargin(t *testing.T) {
	s := sampleSummary()
	s.Winner = ""
	s.Eliminator = "South Africa"
	s.MarginRuns = 0
	s.MarginWickets = 5

	prompt := BuildMatchPrompt(s)
	if !strings.Contains(prompt, "- Winner: South Africa") {
		t.Errorf("super-over winner not used:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Margin: 5 wickets") {
		t.Errorf("wicket margin not rendered:\n%s", prompt)
	}

	s.Eliminator = ""
	s.MarginWickets = 0
	prompt = BuildMatchPrompt(s)
	if !strings.Contains(prompt, "- Winner: Tie/No Result") || !strings.Contains(prompt, "- Margin: N/A") {
		t.Errorf("tie fallback missing:\n%s", prompt)
	}
}

func TestBuildMatchPrompt_BoundsPerformanceLists(t *testing.T) {
	s := sampleSummary()
	s.TopBatters = nil
	for i := 0; i < 10; i++ {
		s.TopBatters = append(s.TopBatters, model.BattingPerformance{
			Innings: 1, Batter: fmt.Sprintf("Batter%02d", i), Runs: 30 - i, Balls: 20,
		})
	}

	prompt := BuildMatchPrompt(s)
	if !strings.Contains(prompt, "Batter05") {
		t.Error("expected sixth batter present")
	}
	if strings.Contains(prompt, "Batter06") {
		t.Error("expected seventh batter truncated")
	}
}
