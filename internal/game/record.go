package game

import (
	"fmt"
	"strconv"
)

// Genre is the numeric game category used by the management service.
type Genre int

const (
	GenreAction    Genre = 101
	GenreAdventure Genre = 102
	GenreSim       Genre = 103
	GenreRPG       Genre = 104
	GenreCasual    Genre = 105
	GenreOther     Genre = 106
)

var genreLabels = map[Genre]string{
	GenreAction:    "动作",
	GenreAdventure: "冒险",
	GenreSim:       "模拟",
	GenreRPG:       "角色扮演",
	GenreCasual:    "休闲",
	GenreOther:     "其他",
}

// Genres returns all genres in display order.
func Genres() []Genre {
	return []Genre{GenreAction, GenreAdventure, GenreSim, GenreRPG, GenreCasual, GenreOther}
}

// Label returns the human-readable name for the genre, or its numeric value
// when the genre is unknown.
func (g Genre) Label() string {
	if label, ok := genreLabels[g]; ok {
		return label
	}
	return strconv.Itoa(int(g))
}

// ParseGenreLabel resolves a display label back to its Genre.
func ParseGenreLabel(label string) (Genre, error) {
	for g, l := range genreLabels {
		if l == label {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown genre %q", label)
}

// Record is a game entry as the management service accepts it.
type Record struct {
	AppID           string   `json:"appId"`
	AppSecret       string   `json:"appSecret"`
	ClientVersion   string   `json:"clientVersion"`
	CnName          string   `json:"cnName"`
	ContentProvider string   `json:"contentProvider"`
	DisplayWeight   int      `json:"displayWeight"`
	Genre           Genre    `json:"genre"`
	HostAppCode     string   `json:"hostAppCode"`
	IconURL         string   `json:"iconUrl"`
	LocalizedName   string   `json:"localizedName"`
	Tags            []string `json:"tags"`
}

// HostApp is a host application the service can attach games to.
type HostApp struct {
	AppCode string `json:"appCode"`
	AppName string `json:"appName"`
}

// Detail is a game entry with operating statistics.
type Detail struct {
	Record
	ActiveUsers int64 `json:"activeUsers"`
	OpenCount   int64 `json:"openCount"`
}

// StatsPage is one page of the game-with-stats listing.
type StatsPage struct {
	List        []Detail `json:"list"`
	TotalCount  int      `json:"totalCount"`
	PageCount   int      `json:"pageCount"`
	CurrentPage int      `json:"currentPage"`
}
