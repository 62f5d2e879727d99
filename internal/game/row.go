package game

import (
	"strconv"

	"github.com/samber/lo"
)

// Row is the loosely-typed field set scraped from one listing-table row.
// Known keys are "iconUrl", "localizedName", "appId" and "cnName"; any other
// key is a table-header label mapped to that column's text.
type Row map[string]string

// requiredFields are the record fields the form cannot submit without.
// Tags stay optional.
var requiredFields = []string{
	"appId",
	"appSecret",
	"clientVersion",
	"cnName",
	"contentProvider",
	"displayWeight",
	"genre",
	"hostAppCode",
	"iconUrl",
	"localizedName",
}

// FromRow builds a partial Record from scraped row data. Mapping is
// best-effort: absent keys leave zero values, and the returned missing list
// names every required field the row could not fill. Validation happens
// here, at the record boundary, not during scraping.
func FromRow(row Row) (Record, []string) {
	rec := Record{
		AppID:         row["appId"],
		CnName:        row["cnName"],
		IconURL:       row["iconUrl"],
		LocalizedName: row["localizedName"],
	}

	missing := lo.Filter(requiredFields, func(field string, _ int) bool {
		switch field {
		case "appId":
			return rec.AppID == ""
		case "cnName":
			return rec.CnName == ""
		case "iconUrl":
			return rec.IconURL == ""
		case "localizedName":
			return rec.LocalizedName == ""
		default:
			// Never present in scraped rows; always user input.
			return true
		}
	})
	return rec, missing
}

// MissingFields reports which required fields a record still lacks.
func MissingFields(rec Record) []string {
	var missing []string
	checks := map[string]bool{
		"appId":           rec.AppID == "",
		"appSecret":       rec.AppSecret == "",
		"clientVersion":   rec.ClientVersion == "",
		"cnName":          rec.CnName == "",
		"contentProvider": rec.ContentProvider == "",
		"displayWeight":   rec.DisplayWeight < 0,
		"genre":           genreLabels[rec.Genre] == "",
		"hostAppCode":     rec.HostAppCode == "",
		"iconUrl":         rec.IconURL == "",
		"localizedName":   rec.LocalizedName == "",
	}
	for _, field := range requiredFields {
		if checks[field] {
			missing = append(missing, field)
		}
	}
	return missing
}

// ParseWeight parses a display-weight input, rejecting negatives.
func ParseWeight(s string) (int, error) {
	w, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if w < 0 {
		return 0, strconv.ErrRange
	}
	return w, nil
}
