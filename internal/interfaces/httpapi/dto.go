package httpapi

import (
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/gamedetail"
	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
	"github.com/riskibarqy/college-baseball-live/internal/domain/ranking"
	"github.com/riskibarqy/college-baseball-live/internal/domain/schedule"
	"github.com/riskibarqy/college-baseball-live/internal/domain/standing"
	"github.com/riskibarqy/college-baseball-live/internal/domain/stats"
	"github.com/riskibarqy/college-baseball-live/internal/domain/team"
	"github.com/riskibarqy/college-baseball-live/internal/platform/dates"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

type notificationPrefsRequest struct {
	Enabled     *bool `json:"enabled" validate:"required"`
	GameStart   *bool `json:"gameStart" validate:"required"`
	ScoreChange *bool `json:"scoreChange" validate:"required"`
	GameEnd     *bool `json:"gameEnd" validate:"required"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}

type standingsConferenceRequest struct {
	ConferenceID string `json:"conferenceId" validate:"omitempty,max=32"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

type teamScoreDTO struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Location     string `json:"location"`
	Logo         string `json:"logo,omitempty"`
	Color        string `json:"color,omitempty"`
	Score        int    `json:"score"`
	Hits         int    `json:"hits"`
	Errors       int    `json:"errors"`
	Rank         *int   `json:"rank,omitempty"`
	Record       string `json:"record,omitempty"`
	Linescores   []int  `json:"linescores,omitempty"`
	IsWinner     bool   `json:"isWinner"`
	ConferenceID string `json:"conferenceId,omitempty"`
	IsFavorite   bool   `json:"isFavorite"`
}

type situationDTO struct {
	Balls    int    `json:"balls"`
	Strikes  int    `json:"strikes"`
	Outs     int    `json:"outs"`
	OnFirst  bool   `json:"onFirst"`
	OnSecond bool   `json:"onSecond"`
	OnThird  bool   `json:"onThird"`
	Batter   string `json:"batter,omitempty"`
	Pitcher  string `json:"pitcher,omitempty"`
	LastPlay string `json:"lastPlay,omitempty"`
}

type gameDTO struct {
	ID               string        `json:"id"`
	Date             time.Time     `json:"date"`
	Name             string        `json:"name"`
	ShortName        string        `json:"shortName"`
	State            game.State    `json:"state"`
	Detail           string        `json:"detail"`
	ShortDetail      string        `json:"shortDetail"`
	Inning           int           `json:"inning"`
	HalfInning       string        `json:"halfInning,omitempty"`
	Venue            string        `json:"venue,omitempty"`
	Broadcasts       []string      `json:"broadcasts,omitempty"`
	IsConferenceGame bool          `json:"isConferenceGame"`
	Away             teamScoreDTO  `json:"away"`
	Home             teamScoreDTO  `json:"home"`
	Situation        *situationDTO `json:"situation,omitempty"`
}

type scoreboardDTO struct {
	Date         string    `json:"date"`
	Games        []gameDTO `json:"games"`
	HasLiveGames bool      `json:"hasLiveGames"`
	IsLoading    bool      `json:"isLoading"`
	Error        string    `json:"error,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type conferenceDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type rankedTeamDTO struct {
	Rank            int           `json:"rank"`
	PreviousRank    int           `json:"previousRank"`
	Trend           ranking.Trend `json:"trend"`
	Points          int           `json:"points"`
	FirstPlaceVotes int           `json:"firstPlaceVotes"`
	TeamID          string        `json:"teamId"`
	DisplayName     string        `json:"displayName"`
	Abbreviation    string        `json:"abbreviation"`
	Logo            string        `json:"logo,omitempty"`
	Record          string        `json:"record,omitempty"`
}

type standingEntryDTO struct {
	TeamID           string  `json:"teamId"`
	DisplayName      string  `json:"displayName"`
	Abbreviation     string  `json:"abbreviation"`
	Logo             string  `json:"logo,omitempty"`
	ConferenceWins   int     `json:"conferenceWins"`
	ConferenceLosses int     `json:"conferenceLosses"`
	ConferenceWinPct float64 `json:"conferenceWinPct"`
	OverallWins      int     `json:"overallWins"`
	OverallLosses    int     `json:"overallLosses"`
	OverallWinPct    float64 `json:"overallWinPct"`
	GamesPlayed      int     `json:"gamesPlayed"`
	Streak           string  `json:"streak,omitempty"`
	RunDifferential  string  `json:"runDifferential,omitempty"`
}

type conferenceStandingsDTO struct {
	ConferenceID           string             `json:"conferenceId"`
	ConferenceName         string             `json:"conferenceName"`
	ConferenceAbbreviation string             `json:"conferenceAbbreviation"`
	Entries                []standingEntryDTO `json:"entries"`
}

type standingsDTO struct {
	Season               int                      `json:"season,omitempty"`
	IsFallback           bool                     `json:"isFallback"`
	SelectedConferenceID string                   `json:"selectedConferenceId,omitempty"`
	Selected             *conferenceStandingsDTO  `json:"selected,omitempty"`
	Conferences          []conferenceStandingsDTO `json:"conferences"`
}

type teamDTO struct {
	ID               string   `json:"id"`
	Abbreviation     string   `json:"abbreviation"`
	DisplayName      string   `json:"displayName"`
	ShortDisplayName string   `json:"shortDisplayName"`
	Location         string   `json:"location"`
	Nickname         string   `json:"nickname,omitempty"`
	Logo             string   `json:"logo,omitempty"`
	TeamColor        []string `json:"teamColor,omitempty"`
	ConferenceID     string   `json:"conferenceId,omitempty"`
	IsFavorite       bool     `json:"isFavorite"`
}

type scheduleGameDTO struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	OpponentID    string     `json:"opponentId"`
	OpponentName  string     `json:"opponentName"`
	OpponentAbbr  string     `json:"opponentAbbreviation"`
	OpponentLogo  string     `json:"opponentLogo,omitempty"`
	IsHome        bool       `json:"isHome"`
	TeamScore     *int       `json:"teamScore,omitempty"`
	OpponentScore *int       `json:"opponentScore,omitempty"`
	IsWin         *bool      `json:"isWin,omitempty"`
	State         game.State `json:"state"`
}

type teamScheduleDTO struct {
	TeamID string            `json:"teamId"`
	Name   string            `json:"name"`
	Season int               `json:"season"`
	Filter schedule.Filter   `json:"filter"`
	Wins   int               `json:"wins"`
	Losses int               `json:"losses"`
	Games  []scheduleGameDTO `json:"games"`
}

type favoriteGameDTO struct {
	scheduleGameDTO
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	TeamLogo string `json:"teamLogo,omitempty"`
}

type dateGroupDTO struct {
	DateKey   string            `json:"dateKey"`
	DateLabel string            `json:"dateLabel"`
	IsToday   bool              `json:"isToday"`
	Games     []favoriteGameDTO `json:"games"`
}

type favoritesDTO struct {
	TeamIDs []string `json:"teamIds"`
}

type toggleFavoriteDTO struct {
	TeamID     string   `json:"teamId"`
	IsFavorite bool     `json:"isFavorite"`
	TeamIDs    []string `json:"teamIds"`
}

type notificationPrefsDTO struct {
	Enabled     bool `json:"enabled"`
	GameStart   bool `json:"gameStart"`
	ScoreChange bool `json:"scoreChange"`
	GameEnd     bool `json:"gameEnd"`
}

type statsDTO struct {
	Tab          stats.Tab   `json:"tab"`
	SortStat     string      `json:"sortStat"`
	SortDir      string      `json:"sortDir"`
	Page         int         `json:"page"`
	PageSize     int         `json:"pageSize"`
	TotalCount   int         `json:"totalCount"`
	Season       int         `json:"season"`
	ConferenceID string      `json:"conferenceId"`
	TeamID       int         `json:"teamId"`
	Rows         []stats.Row `json:"rows"`
	IsLoading    bool        `json:"isLoading"`
	Error        string      `json:"error,omitempty"`
}

type playDTO struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Period    string `json:"period,omitempty"`
	AwayScore int    `json:"awayScore"`
	HomeScore int    `json:"homeScore"`
	IsScoring bool   `json:"isScoring"`
}

type statDTO struct {
	Name         string `json:"name"`
	DisplayValue string `json:"displayValue"`
}

type playerTableDTO struct {
	Labels   []string         `json:"labels"`
	Athletes []athleteLineDTO `json:"athletes"`
}

type athleteLineDTO struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Stats []string `json:"stats"`
}

type boxScoreTeamDTO struct {
	TeamID      string          `json:"teamId"`
	DisplayName string          `json:"displayName"`
	Logo        string          `json:"logo,omitempty"`
	Totals      []statDTO       `json:"totals,omitempty"`
	Batting     *playerTableDTO `json:"batting,omitempty"`
	Pitching    *playerTableDTO `json:"pitching,omitempty"`
}

type leaderDTO struct {
	AthleteName  string `json:"athleteName"`
	DisplayValue string `json:"displayValue"`
}

type leaderCategoryDTO struct {
	TeamID      string      `json:"teamId"`
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Leaders     []leaderDTO `json:"leaders"`
}

type gameDetailDTO struct {
	EventID   string              `json:"eventId"`
	Game      *gameDTO            `json:"game,omitempty"`
	BoxScore  []boxScoreTeamDTO   `json:"boxScore,omitempty"`
	Plays     []playDTO           `json:"plays"`
	Leaders   []leaderCategoryDTO `json:"leaders,omitempty"`
	IsLoading bool                `json:"isLoading"`
	Error     string              `json:"error,omitempty"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type pollerStatusDTO struct {
	Name                string     `json:"name"`
	State               string     `json:"state"`
	Ready               bool       `json:"ready"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	LastError           string     `json:"lastError,omitempty"`
	LastSuccess         *time.Time `json:"lastSuccess,omitempty"`
}

type statusDTO struct {
	Visible bool              `json:"visible"`
	Pollers []pollerStatusDTO `json:"pollers"`
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func teamScoreToDTO(v game.TeamScore, favorites preference.Favorites) teamScoreDTO {
	return teamScoreDTO{
		ID:           v.ID,
		DisplayName:  v.DisplayName,
		Abbreviation: v.Abbreviation,
		Location:     v.Location,
		Logo:         v.Logo,
		Color:        v.Color,
		Score:        v.Score,
		Hits:         v.Hits,
		Errors:       v.Errors,
		Rank:         v.Rank,
		Record:       v.Record,
		Linescores:   v.Linescores,
		IsWinner:     v.IsWinner,
		ConferenceID: v.ConferenceID,
		IsFavorite:   favorites.Has(v.ID),
	}
}

func gameToDTO(v game.Game, favorites preference.Favorites) gameDTO {
	out := gameDTO{
		ID:               v.ID,
		Date:             v.Date,
		Name:             v.Name,
		ShortName:        v.ShortName,
		State:            v.Status.State,
		Detail:           v.Status.Detail,
		ShortDetail:      v.Status.ShortDetail,
		Inning:           v.Status.Inning,
		HalfInning:       string(v.Status.HalfInning),
		Venue:            v.Venue.Name,
		Broadcasts:       v.Broadcasts,
		IsConferenceGame: v.IsConferenceGame,
		Away:             teamScoreToDTO(v.Away, favorites),
		Home:             teamScoreToDTO(v.Home, favorites),
	}
	if s := v.Situation; s != nil {
		out.Situation = &situationDTO{
			Balls:    s.Balls,
			Strikes:  s.Strikes,
			Outs:     s.Outs,
			OnFirst:  s.OnFirst,
			OnSecond: s.OnSecond,
			OnThird:  s.OnThird,
			Batter:   s.Batter,
			Pitcher:  s.Pitcher,
			LastPlay: s.LastPlay,
		}
	}
	return out
}

func scoreboardToDTO(v usecase.ScoreboardSnapshot, favorites preference.Favorites) scoreboardDTO {
	games := make([]gameDTO, 0, len(v.Games))
	for _, g := range v.Games {
		games = append(games, gameToDTO(g, favorites))
	}
	return scoreboardDTO{
		Date:         dates.ToUpstream(v.Date),
		Games:        games,
		HasLiveGames: v.HasLiveGames,
		IsLoading:    v.IsLoading,
		Error:        errorText(v.Err),
		UpdatedAt:    v.UpdatedAt,
	}
}

func conferencesToDTO(items []standing.Conference) []conferenceDTO {
	out := make([]conferenceDTO, 0, len(items))
	for _, c := range items {
		out = append(out, conferenceDTO{ID: c.ID, Name: c.Name, Abbreviation: c.Abbreviation})
	}
	return out
}

func rankingsToDTO(items []ranking.RankedTeam) []rankedTeamDTO {
	out := make([]rankedTeamDTO, 0, len(items))
	for _, r := range items {
		out = append(out, rankedTeamDTO{
			Rank:            r.Rank,
			PreviousRank:    r.PreviousRank,
			Trend:           r.Trend,
			Points:          r.Points,
			FirstPlaceVotes: r.FirstPlaceVotes,
			TeamID:          r.TeamID,
			DisplayName:     r.DisplayName,
			Abbreviation:    r.Abbreviation,
			Logo:            r.Logo,
			Record:          r.Record,
		})
	}
	return out
}

func conferenceStandingsToDTO(v standing.ConferenceStandings) conferenceStandingsDTO {
	entries := make([]standingEntryDTO, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, standingEntryDTO{
			TeamID:           e.TeamID,
			DisplayName:      e.DisplayName,
			Abbreviation:     e.Abbreviation,
			Logo:             e.Logo,
			ConferenceWins:   e.ConferenceWins,
			ConferenceLosses: e.ConferenceLosses,
			ConferenceWinPct: e.ConferenceWinPct,
			OverallWins:      e.OverallWins,
			OverallLosses:    e.OverallLosses,
			OverallWinPct:    e.OverallWinPct,
			GamesPlayed:      e.GamesPlayed,
			Streak:           e.Streak,
			RunDifferential:  e.RunDifferential,
		})
	}
	return conferenceStandingsDTO{
		ConferenceID:           v.ConferenceID,
		ConferenceName:         v.ConferenceName,
		ConferenceAbbreviation: v.ConferenceAbbreviation,
		Entries:                entries,
	}
}

func standingsToDTO(v usecase.StandingsView) standingsDTO {
	out := standingsDTO{
		Season:               v.Season,
		IsFallback:           v.IsFallback,
		SelectedConferenceID: v.SelectedConferenceID,
		Conferences:          make([]conferenceStandingsDTO, 0, len(v.Conferences)),
	}
	for _, c := range v.Conferences {
		out.Conferences = append(out.Conferences, conferenceStandingsToDTO(c))
	}
	if v.Selected != nil {
		selected := conferenceStandingsToDTO(*v.Selected)
		out.Selected = &selected
	}
	return out
}

func teamColorArray(primary, secondary string) []string {
	out := make([]string, 0, 2)
	for _, c := range []string{primary, secondary} {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func teamToDTO(v team.Team, favorites preference.Favorites) teamDTO {
	return teamDTO{
		ID:               v.ID,
		Abbreviation:     v.Abbreviation,
		DisplayName:      v.DisplayName,
		ShortDisplayName: v.ShortDisplayName,
		Location:         v.Location,
		Nickname:         v.Nickname,
		Logo:             v.Logo,
		TeamColor:        teamColorArray(v.Color, v.AlternateColor),
		ConferenceID:     v.ConferenceID,
		IsFavorite:       favorites.Has(v.ID),
	}
}

func scheduleGameToDTO(v schedule.Game) scheduleGameDTO {
	return scheduleGameDTO{
		ID:            v.ID,
		Date:          v.Date,
		OpponentID:    v.Opponent.ID,
		OpponentName:  v.Opponent.DisplayName,
		OpponentAbbr:  v.Opponent.Abbreviation,
		OpponentLogo:  v.Opponent.Logo,
		IsHome:        v.IsHome,
		TeamScore:     v.TeamScore,
		OpponentScore: v.OpponentScore,
		IsWin:         v.IsWin,
		State:         v.State,
	}
}

func teamScheduleToDTO(v usecase.TeamScheduleView) teamScheduleDTO {
	games := make([]scheduleGameDTO, 0, len(v.Schedule.Games))
	for _, g := range v.Schedule.Games {
		games = append(games, scheduleGameToDTO(g))
	}
	return teamScheduleDTO{
		TeamID: v.Schedule.TeamID,
		Name:   v.Schedule.TeamName,
		Season: v.Schedule.Season,
		Filter: v.Filter,
		Wins:   v.Record.Wins,
		Losses: v.Record.Losses,
		Games:  games,
	}
}

func dateGroupsToDTO(groups []schedule.DateGroup) []dateGroupDTO {
	out := make([]dateGroupDTO, 0, len(groups))
	for _, g := range groups {
		games := make([]favoriteGameDTO, 0, len(g.Games))
		for _, fg := range g.Games {
			games = append(games, favoriteGameDTO{
				scheduleGameDTO: scheduleGameToDTO(fg.Game),
				TeamID:          fg.Team.ID,
				TeamName:        fg.Team.Name,
				TeamLogo:        fg.Team.Logo,
			})
		}
		out = append(out, dateGroupDTO{
			DateKey:   g.DateKey,
			DateLabel: g.DateLabel,
			IsToday:   g.IsToday,
			Games:     games,
		})
	}
	return out
}

func notificationPrefsToDTO(v preference.NotificationPrefs) notificationPrefsDTO {
	return notificationPrefsDTO{
		Enabled:     v.Enabled,
		GameStart:   v.GameStart,
		ScoreChange: v.ScoreChange,
		GameEnd:     v.GameEnd,
	}
}

func playerTableToDTO(v *gamedetail.PlayerTable) *playerTableDTO {
	if v == nil {
		return nil
	}
	athletes := make([]athleteLineDTO, 0, len(v.Athletes))
	for _, a := range v.Athletes {
		athletes = append(athletes, athleteLineDTO{ID: a.ID, Name: a.Name, Stats: a.Stats})
	}
	return &playerTableDTO{Labels: v.Labels, Athletes: athletes}
}

func summaryToDTO(v gamedetail.Summary, favorites preference.Favorites) gameDetailDTO {
	out := gameDetailDTO{
		EventID: v.EventID,
		Plays:   make([]playDTO, 0, len(v.Plays)),
	}
	if v.HasGame {
		g := gameToDTO(v.Game, favorites)
		out.Game = &g
	}
	for _, b := range v.BoxScore {
		totals := make([]statDTO, 0, len(b.Totals))
		for _, s := range b.Totals {
			totals = append(totals, statDTO{Name: s.Name, DisplayValue: s.DisplayValue})
		}
		out.BoxScore = append(out.BoxScore, boxScoreTeamDTO{
			TeamID:      b.TeamID,
			DisplayName: b.DisplayName,
			Logo:        b.Logo,
			Totals:      totals,
			Batting:     playerTableToDTO(b.Batting),
			Pitching:    playerTableToDTO(b.Pitching),
		})
	}
	for _, p := range v.Plays {
		out.Plays = append(out.Plays, playDTO{
			ID:        p.ID,
			Text:      p.Text,
			Period:    p.Period,
			AwayScore: p.AwayScore,
			HomeScore: p.HomeScore,
			IsScoring: p.IsScoring(),
		})
	}
	for _, c := range v.Leaders {
		leaders := make([]leaderDTO, 0, len(c.Leaders))
		for _, l := range c.Leaders {
			leaders = append(leaders, leaderDTO{AthleteName: l.AthleteName, DisplayValue: l.DisplayValue})
		}
		out.Leaders = append(out.Leaders, leaderCategoryDTO{
			TeamID:      c.TeamID,
			Name:        c.Name,
			DisplayName: c.DisplayName,
			Leaders:     leaders,
		})
	}
	return out
}

func pollerStatusToDTO(items []usecase.PollerStatus) []pollerStatusDTO {
	out := make([]pollerStatusDTO, 0, len(items))
	for _, item := range items {
		dto := pollerStatusDTO{
			Name:                item.Name,
			State:               string(item.State),
			Ready:               item.Status.IsReady(),
			ConsecutiveFailures: item.Status.ConsecutiveFailures,
			LastError:           item.Status.LastError,
		}
		if !item.Status.LastSuccess.IsZero() {
			last := item.Status.LastSuccess
			dto.LastSuccess = &last
		}
		out = append(out, dto)
	}
	return out
}
