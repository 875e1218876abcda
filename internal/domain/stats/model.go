package stats

import (
	"fmt"
	"strconv"
	"strings"
)

type Tab string

const (
	TabBatting  Tab = "bat"
	TabPitching Tab = "pit"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

const (
	PageSize          = 50
	AllConferences    = "0"
	defaultBatSortKey = "wRC+"
	defaultPitSortKey = "ERA"
)

// Query selects one page of the college leaderboard.
type Query struct {
	Tab          Tab
	SortStat     string
	SortDir      SortDir
	Qualified    bool
	Page         int
	ConferenceID string
	TeamID       int
	Season       int
}

// Normalize fills defaults and enforces that a school filter and a conference
// filter are never sent together. A school selection resets the conference.
func (q Query) Normalize(defaultSeason int) Query {
	if q.Tab == "" {
		q.Tab = TabBatting
	}
	if strings.TrimSpace(q.SortStat) == "" {
		q.SortStat = DefaultSortStat(q.Tab)
	}
	if q.SortDir == "" {
		q.SortDir = SortDesc
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Season <= 0 {
		q.Season = defaultSeason
	}
	if q.TeamID > 0 {
		q.ConferenceID = AllConferences
	}
	if strings.TrimSpace(q.ConferenceID) == "" {
		q.ConferenceID = AllConferences
	}
	return q
}

func (q Query) Validate() error {
	switch q.Tab {
	case TabBatting, TabPitching:
	default:
		return fmt.Errorf("unknown stat tab %q", q.Tab)
	}
	switch q.SortDir {
	case SortAsc, SortDesc:
	default:
		return fmt.Errorf("unknown sort direction %q", q.SortDir)
	}
	if q.Page < 1 {
		return fmt.Errorf("page must be >= 1")
	}
	if q.TeamID < 0 {
		return fmt.Errorf("team must be >= 0")
	}
	if q.TeamID > 0 && q.ConferenceID != "" && q.ConferenceID != AllConferences {
		return fmt.Errorf("team and conference filters are mutually exclusive")
	}
	return nil
}

// Key identifies the query for polling and caching.
func (q Query) Key() string {
	return strings.Join([]string{
		string(q.Tab),
		q.SortStat,
		string(q.SortDir),
		strconv.FormatBool(q.Qualified),
		strconv.Itoa(q.Page),
		q.ConferenceID,
		strconv.Itoa(q.TeamID),
		strconv.Itoa(q.Season),
	}, "|")
}

func DefaultSortStat(tab Tab) string {
	if tab == TabPitching {
		return defaultPitSortKey
	}
	return defaultBatSortKey
}

// Row is one leaderboard line. Columns differ per tab so rows stay keyed by
// the upstream column name.
type Row map[string]any

func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric value of a column. Null columns report false.
func (r Row) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

type Leaderboard struct {
	Rows       []Row
	TotalCount int
	SortStat   string
	SortDir    string
	PageSize   int
}
