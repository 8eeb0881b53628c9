package controller

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/util"
)

// LogSort is the ordering of the all-logs listing
type LogSort string

const (
	SortByDate  LogSort = "date"
	SortByTitle LogSort = "title"
	SortByWords LogSort = "words"
)

// AllLogsResult is the all-logs listing split by status
type AllLogsResult struct {
	Total    int               `json:"total"`
	Ongoing  []core.ArchiveLog `json:"ongoing"`
	Finished []core.ArchiveLog `json:"finished"`
}

// DraftsResult is the content of the drafts screen
type DraftsResult struct {
	Logs       []core.ArchiveLog `json:"logs"`
	Characters []core.Character  `json:"characters"`
}

func listed(logs []core.ArchiveLog) []core.ArchiveLog {
	out := []core.ArchiveLog{}
	for _, l := range logs {
		if l.Status.IsListed() {
			out = append(out, l)
		}
	}
	return out
}

func searchLogs(logs []core.ArchiveLog, query string) []core.ArchiveLog {
	if strings.TrimSpace(query) == "" {
		return logs
	}
	out := []core.ArchiveLog{}
	for _, l := range logs {
		fields := append([]string{l.Title, l.Summary}, l.Participants...)
		if util.MatchesQuery(query, fields...) {
			out = append(out, l)
		}
	}
	return out
}

// DashboardLogs lists every non-standby log matching query
func DashboardLogs(logs []core.ArchiveLog, query string) []core.ArchiveLog {
	return searchLogs(listed(logs), query)
}

// AllLogs lists non-standby logs matching query, sorted and split into ongoing and finished
func AllLogs(logs []core.ArchiveLog, query string, by LogSort) AllLogsResult {
	result := searchLogs(listed(logs), query)
	sorted := make([]core.ArchiveLog, len(result))
	copy(sorted, result)

	switch by {
	case SortByTitle:
		collator := collate.New(language.Chinese)
		sort.SliceStable(sorted, func(i, j int) bool {
			return collator.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	case SortByWords:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].WordCount > sorted[j].WordCount
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return laterDate(sorted[i].Timestamp, sorted[j].Timestamp)
		})
	}

	out := AllLogsResult{
		Total:    len(sorted),
		Ongoing:  []core.ArchiveLog{},
		Finished: []core.ArchiveLog{},
	}
	for _, l := range sorted {
		switch l.Status {
		case core.LogStatusOngoing:
			out.Ongoing = append(out.Ongoing, l)
		case core.LogStatusFinished:
			out.Finished = append(out.Finished, l)
		}
	}
	return out
}

// laterDate orders display dates newest first, falling back to string order for unparsable ones
func laterDate(a, b string) bool {
	ta, errA := time.Parse("2006/1/2", a)
	tb, errB := time.Parse("2006/1/2", b)
	if errA == nil && errB == nil {
		return ta.After(tb)
	}
	return a > b
}

// CharacterList lists published characters matching query over name, title and tags
func CharacterList(characters []core.Character, query string) []core.Character {
	out := []core.Character{}
	for _, c := range characters {
		if c.IsDraft {
			continue
		}
		fields := append([]string{c.Name, c.Title}, c.Tags...)
		if util.MatchesQuery(query, fields...) {
			out = append(out, c)
		}
	}
	return out
}

// Drafts returns the ongoing logs and the draft characters of the user
func Drafts(logs []core.ArchiveLog, myCharacters []core.Character) DraftsResult {
	out := DraftsResult{
		Logs:       []core.ArchiveLog{},
		Characters: []core.Character{},
	}
	for _, l := range logs {
		if l.Status == core.LogStatusOngoing {
			out.Logs = append(out.Logs, l)
		}
	}
	for _, c := range myCharacters {
		if c.IsDraft {
			out.Characters = append(out.Characters, c)
		}
	}
	return out
}

// SavedArchive lists favorite logs
func SavedArchive(logs []core.ArchiveLog) []core.ArchiveLog {
	out := []core.ArchiveLog{}
	for _, l := range listed(logs) {
		if l.IsFavorite {
			out = append(out, l)
		}
	}
	return out
}

// MyCharacters lists the published characters of the user
func MyCharacters(myCharacters []core.Character) []core.Character {
	return CharacterList(myCharacters, "")
}
