package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// DisplayDate renders t the way log timestamps are shown
func DisplayDate(t time.Time) string {
	return t.Format("2006/1/2")
}

// ContentLength returns the length of s in UTF-16 code units
func ContentLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// CountWords sums the content lengths of every entry
func CountWords(entries []LogEntry) int {
	total := 0
	for _, e := range entries {
		total += ContentLength(e.Content)
	}
	return total
}

// FormatWordCount renders n with thousands separators ("1,234")
func FormatWordCount(n int) string {
	return printer.Sprintf("%d", n)
}

// ParseWordCount reads a separator-formatted count; anything non-numeric is 0
func ParseWordCount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatStatWordCount renders a total for the profile statistics block
func FormatStatWordCount(total int) string {
	if total >= 1000 {
		// one decimal, ties rounded up
		tenths := (total + 50) / 100
		return fmt.Sprintf("%d.%dk", tenths/10, tenths%10)
	}
	return strconv.Itoa(total)
}

// ComputeStats derives the profile statistics from the loaded collections
func ComputeStats(logs []ArchiveLog, characters []Character) Stats {
	published := 0
	words := 0
	for _, l := range logs {
		if !l.Status.IsListed() {
			continue
		}
		published++
		words += l.WordCount
	}

	count := 0
	for _, c := range characters {
		if !c.IsDraft {
			count++
		}
	}

	return Stats{
		LogsCount:       published,
		WordCount:       FormatStatWordCount(words),
		CharactersCount: count,
	}
}

// Role returns the wire role string of the entry
func (e LogEntry) Role() string {
	switch e.Kind {
	case EntryNarration:
		return RoleNarrator
	case EntryChapter:
		return RoleChapter
	default:
		return e.Speaker
	}
}

// EntryFromRow decodes the role-string wire form into a typed entry
func EntryFromRow(row EntryRow) LogEntry {
	entry := LogEntry{
		Timestamp: row.Timestamp,
		Content:   row.Content,
		AvatarURL: row.AvatarURL,
	}
	switch row.Role {
	case RoleNarrator:
		entry.Kind = EntryNarration
	case RoleChapter:
		entry.Kind = EntryChapter
	default:
		entry.Kind = EntrySpeech
		entry.Speaker = row.Role
		entry.ParticipantID = row.ParticipantID
	}
	return entry
}

// EntryToRow encodes a typed entry into its wire form
func EntryToRow(entry LogEntry) EntryRow {
	row := EntryRow{
		Role:      entry.Role(),
		Timestamp: entry.Timestamp,
		Content:   entry.Content,
		AvatarURL: entry.AvatarURL,
	}
	if entry.Kind == EntrySpeech {
		row.ParticipantID = entry.ParticipantID
	}
	return row
}

// TableOfContents returns the chapter entries of a transcript in order
func TableOfContents(entries []LogEntry) []LogEntry {
	chapters := []LogEntry{}
	for _, e := range entries {
		if e.Kind == EntryChapter {
			chapters = append(chapters, e)
		}
	}
	return chapters
}

// SpeakingParticipants returns the distinct speakers of a transcript in first-appearance order
func SpeakingParticipants(entries []LogEntry) []string {
	seen := map[string]bool{}
	speakers := []string{}
	for _, e := range entries {
		if e.Kind != EntrySpeech || e.Speaker == "" || seen[e.Speaker] {
			continue
		}
		seen[e.Speaker] = true
		speakers = append(speakers, e.Speaker)
	}
	return speakers
}

// MergeParticipants keeps the declared participants and appends speakers not yet listed
func MergeParticipants(declared []string, entries []LogEntry) []string {
	merged := []string{}
	seen := map[string]bool{}
	for _, name := range append(append([]string{}, declared...), SpeakingParticipants(entries)...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	return merged
}

func (k EntryKind) String() string {
	switch k {
	case EntryNarration:
		return "narration"
	case EntryChapter:
		return "chapter"
	case EntrySpeech:
		return "speech"
	default:
		return "unknown"
	}
}

func (k EntryKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *EntryKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "narration":
		*k = EntryNarration
	case "chapter":
		*k = EntryChapter
	case "speech":
		*k = EntrySpeech
	default:
		return NewErrorInvalidInput("unknown entry kind " + s)
	}
	return nil
}
