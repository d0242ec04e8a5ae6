package sim

import (
	"github.com/montanaflynn/stats"

	"github.com/boardwalklabs/tycoon/internal/game/engine"
	"github.com/boardwalklabs/tycoon/internal/game/models"
)

// StrategyStats aggregates one seat's results across a batch.
type StrategyStats struct {
	Seat          string          `json:"seat"`
	Strategy      models.Strategy `json:"strategy"`
	Wins          int             `json:"wins"`
	WinRate       float64         `json:"winRate"`
	AvgCash       float64         `json:"avgCash"`
	MedianCash    float64         `json:"medianCash"`
	AvgNetWorth   float64         `json:"avgNetWorth"`
	AvgProperties float64         `json:"avgProperties"`
	AvgHouses     float64         `json:"avgHouses"`
	AvgHotels     float64         `json:"avgHotels"`
	Bankruptcies  int             `json:"bankruptcies"`
}

// Aggregate summarizes a whole batch, seat by seat.
type Aggregate struct {
	Games        int             `json:"games"`
	BySeat       []StrategyStats `json:"bySeat"`
	AvgTurns     float64         `json:"avgTurns"`
	MedianTurns  float64         `json:"medianTurns"`
	LastStanding int             `json:"lastStanding"`
	TurnLimit    int             `json:"turnLimit"`
}

// Summarize folds a batch of game records into per-seat statistics.
// Records must all come from the same roster; seats are reported in
// roster order.
func Summarize(records []GameRecord) *Aggregate {
	agg := &Aggregate{Games: len(records)}
	if len(records) == 0 {
		return agg
	}

	roster := records[0].Players
	agg.BySeat = make([]StrategyStats, len(roster))
	for i, p := range roster {
		agg.BySeat[i] = StrategyStats{Seat: p.Name, Strategy: p.Strategy}
	}

	cash := newSeries(len(roster), len(records))
	netWorth := newSeries(len(roster), len(records))
	properties := newSeries(len(roster), len(records))
	houses := newSeries(len(roster), len(records))
	hotels := newSeries(len(roster), len(records))
	turns := make([]float64, 0, len(records))

	for _, rec := range records {
		turns = append(turns, float64(rec.Turns))
		switch rec.Reason {
		case engine.ReasonLastStanding:
			agg.LastStanding++
		case engine.ReasonTurnLimit:
			agg.TurnLimit++
		}
		if rec.WinnerSeat >= 0 && rec.WinnerSeat < len(agg.BySeat) {
			agg.BySeat[rec.WinnerSeat].Wins++
		}

		for i, p := range rec.Players {
			if i >= len(agg.BySeat) {
				break
			}
			cash[i] = append(cash[i], float64(p.Cash))
			netWorth[i] = append(netWorth[i], float64(p.NetWorth))
			properties[i] = append(properties[i], float64(p.Properties))
			houses[i] = append(houses[i], float64(p.Houses))
			hotels[i] = append(hotels[i], float64(p.Hotels))
			if p.Bankrupt {
				agg.BySeat[i].Bankruptcies++
			}
		}
	}

	games := float64(len(records))
	for i := range agg.BySeat {
		s := &agg.BySeat[i]
		s.WinRate = float64(s.Wins) / games
		s.AvgCash = meanOf(cash[i])
		s.MedianCash = medianOf(cash[i])
		s.AvgNetWorth = meanOf(netWorth[i])
		s.AvgProperties = meanOf(properties[i])
		s.AvgHouses = meanOf(houses[i])
		s.AvgHotels = meanOf(hotels[i])
	}
	agg.AvgTurns = meanOf(turns)
	agg.MedianTurns = medianOf(turns)

	return agg
}

func newSeries(seats, capacity int) [][]float64 {
	out := make([][]float64, seats)
	for i := range out {
		out[i] = make([]float64, 0, capacity)
	}
	return out
}

func meanOf(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

func medianOf(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return m
}
