package llm

import (
	"fmt"
	"strings"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

const (
	promptMaxBatters = 6
	promptMaxBowlers = 6
	promptMaxWickets = 8
)

// BuildMatchPrompt renders a match summary into the narrative prompt: the
// headline facts first, then innings totals, notable performances and the
// fall of wickets.
func BuildMatchPrompt(s model.MatchSummary) string {
	var b strings.Builder

	b.WriteString("Write a short, punchy, pithy narrative of this cricket match in two or three paragraphs. ")
	b.WriteString("Don't be flowery; be direct, briefing-like. Start with the most important information. ")
	b.WriteString("Pay attention to the match structure, including innings number for batting sequence. ")
	b.WriteString("Focus on the key moments, standout performances, and the flow of the game. ")
	b.WriteString("Pick out the important turning points of the game.\n\n")

	b.WriteString("Match Details:\n")
	fmt.Fprintf(&b, "- Event: %s\n", s.Event)
	fmt.Fprintf(&b, "- Venue: %s, %s\n", s.Venue, s.City)
	fmt.Fprintf(&b, "- Date: %s\n", s.StartDate)
	fmt.Fprintf(&b, "- Teams: %s\n", strings.Join(s.Teams, " vs "))
	fmt.Fprintf(&b, "- Toss: %s won and chose to %s\n", s.TossWinner, s.TossDecision)
	fmt.Fprintf(&b, "- Winner: %s\n", winnerLine(s))
	fmt.Fprintf(&b, "- Margin: %s\n", marginLine(s))
	if s.Method != "" {
		fmt.Fprintf(&b, "- Method: %s\n", s.Method)
	}
	if len(s.PlayersOfMatch) > 0 {
		fmt.Fprintf(&b, "- Player(s) of the Match: %s\n", strings.Join(s.PlayersOfMatch, ", "))
	}

	b.WriteString("\nInnings Summaries:\n")
	for _, in := range s.Innings {
		superOver := ""
		if in.SuperOver {
			superOver = " (Super Over)"
		}
		fmt.Fprintf(&b, "Innings %d%s: %s scored %d/%d in %d overs\n",
			in.Number, superOver, in.BattingTeam, in.Runs, in.Wickets, in.Overs)
	}

	b.WriteString("\nTop Batting Performances:\n")
	for i, bat := range s.TopBatters {
		if i >= promptMaxBatters {
			break
		}
		fmt.Fprintf(&b, "- Innings %d: %s - %d runs (%d balls, %d fours, %d sixes, SR: %.1f)\n",
			bat.Innings, bat.Batter, bat.Runs, bat.Balls, bat.Fours, bat.Sixes, bat.StrikeRate())
	}

	b.WriteString("\nTop Bowling Performances:\n")
	for i, bowl := range s.TopBowlers {
		if i >= promptMaxBowlers {
			break
		}
		fmt.Fprintf(&b, "- Innings %d: %s - %d/%d (%s overs)\n",
			bowl.Innings, bowl.Bowler, bowl.Wickets, bowl.RunsConceded, bowl.Overs())
	}

	fmt.Fprintf(&b, "\nKey Wickets: %d total dismissals\n", len(s.Wickets))
	for i, w := range s.Wickets {
		if i >= promptMaxWickets {
			break
		}
		fielders := ""
		if len(w.Fielders) > 0 {
			fielders = fmt.Sprintf(" (c %s)", strings.Join(w.Fielders, " & "))
		}
		fmt.Fprintf(&b, "- Over %d.%d: %s %s b %s%s\n",
			w.Over, w.Ball, w.PlayerOut, w.Kind, w.Bowler, fielders)
	}

	b.WriteString("\nWrite the narrative now:")
	return b.String()
}

func winnerLine(s model.MatchSummary) string {
	switch {
	case s.Winner != "":
		return s.Winner
	case s.Eliminator != "":
		return s.Eliminator
	default:
		return "Tie/No Result"
	}
}

func marginLine(s model.MatchSummary) string {
	switch {
	case s.MarginRuns > 0:
		return fmt.Sprintf("%d runs", s.MarginRuns)
	case s.MarginWickets > 0:
		return fmt.Sprintf("%d wickets", s.MarginWickets)
	default:
		return "N/A"
	}
}
