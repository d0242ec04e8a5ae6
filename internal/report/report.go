// Package report renders simulation results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/boardwalklabs/tycoon/internal/sim"
)

// Write renders the win and performance tables for a finished batch.
func Write(w io.Writer, results *sim.Results, agg *sim.Aggregate) {
	fmt.Fprintf(w, "=== SIMULATION RESULTS (%d games) ===\n", agg.Games)
	fmt.Fprintf(w, "Run %s, seed %d, finished in %s\n", results.Tag, results.MasterSeed, results.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Endings: %d last player standing, %d turn limit\n", agg.LastStanding, agg.TurnLimit)
	fmt.Fprintf(w, "Turns: %.1f average, %.1f median\n", agg.AvgTurns, agg.MedianTurns)

	fmt.Fprintf(w, "\nWin Statistics:\n")
	for _, s := range agg.BySeat {
		fmt.Fprintf(w, "%s: %d wins (%.1f%%)\n", s.Seat, s.Wins, s.WinRate*100)
	}

	fmt.Fprintf(w, "\nDetailed Statistics:\n")
	for _, s := range agg.BySeat {
		fmt.Fprintf(w, "\n%s (%s):\n", s.Seat, s.Strategy)
		fmt.Fprintf(w, "  Wins: %d (%.1f%%)\n", s.Wins, s.WinRate*100)
		fmt.Fprintf(w, "  Average final money: $%.0f\n", s.AvgCash)
		fmt.Fprintf(w, "  Median final money: $%.0f\n", s.MedianCash)
		fmt.Fprintf(w, "  Average net worth: $%.0f\n", s.AvgNetWorth)
		fmt.Fprintf(w, "  Average properties owned: %.1f\n", s.AvgProperties)
		fmt.Fprintf(w, "  Average houses built: %.1f\n", s.AvgHouses)
		fmt.Fprintf(w, "  Average hotels built: %.1f\n", s.AvgHotels)
		fmt.Fprintf(w, "  Bankruptcies: %d\n", s.Bankruptcies)
	}
}

// WriteJSON renders the batch and its aggregate as indented JSON.
func WriteJSON(w io.Writer, results *sim.Results, agg *sim.Aggregate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Run       *sim.Results   `json:"run"`
		Aggregate *sim.Aggregate `json:"aggregate"`
	}{results, agg})
}
