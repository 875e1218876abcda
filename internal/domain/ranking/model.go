package ranking

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
	TrendNew  Trend = "new"
)

// ComputeTrend compares the current poll position with the previous one.
// A lower number is a better rank. A missing or zero previous rank is new.
func ComputeTrend(current int, previous *int) Trend {
	if previous == nil || *previous == 0 {
		return TrendNew
	}
	switch {
	case current < *previous:
		return TrendUp
	case current > *previous:
		return TrendDown
	default:
		return TrendSame
	}
}

// RankedTeam is one entry of a poll.
type RankedTeam struct {
	Rank            int
	PreviousRank    int
	Trend           Trend
	Points          int
	FirstPlaceVotes int
	TeamID          string
	Name            string
	DisplayName     string
	Abbreviation    string
	Logo            string
	Record          string
}
