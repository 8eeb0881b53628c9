package archivelog

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/util"
)

func decodeEntries(row core.LogRow) []core.LogEntry {
	entries := []core.LogEntry{}
	if row.Entries == nil || *row.Entries == "" {
		return entries
	}

	var wire []core.EntryRow
	err := json.Unmarshal([]byte(*row.Entries), &wire)
	if err != nil {
		slog.Warn(
			"malformed log entries",
			slog.String("id", row.ID),
			slog.String("error", err.Error()),
		)
		return entries
	}

	for _, e := range wire {
		entries = append(entries, core.EntryFromRow(e))
	}
	return entries
}

func encodeEntries(entries []core.LogEntry) *string {
	wire := make([]core.EntryRow, len(entries))
	for i, e := range entries {
		wire[i] = core.EntryToRow(e)
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func rowToLog(row core.LogRow) core.ArchiveLog {
	return core.ArchiveLog{
		ID:           row.ID,
		Title:        row.Title,
		Status:       core.LogStatus(row.Status),
		Timestamp:    util.Deref(row.Timestamp, ""),
		WordCount:    core.ParseWordCount(row.WordCount),
		Summary:      util.Deref(row.Summary, ""),
		ImageURL:     util.Deref(row.ImageURL, ""),
		Participants: util.NonNil([]string(row.Participants)),
		Entries:      decodeEntries(row),
		IsFavorite:   row.IsFavorite,
		Comments:     []core.Comment{},
	}
}

func logToRow(log core.ArchiveLog, owner string) core.LogRow {
	status := log.Status
	if status == "" {
		status = core.LogStatusOngoing
	}
	return core.LogRow{
		UserID:       owner,
		Title:        log.Title,
		Status:       string(status),
		Timestamp:    util.PtrOrNil(log.Timestamp),
		WordCount:    core.FormatWordCount(log.WordCount),
		Summary:      util.PtrOrNil(log.Summary),
		ImageURL:     util.PtrOrNil(log.ImageURL),
		Participants: pq.StringArray(util.NonNil(log.Participants)),
		Entries:      encodeEntries(log.Entries),
		IsFavorite:   log.IsFavorite,
	}
}

// patchToFields lists only the columns present in the patch, plus updated_at
func patchToFields(patch core.LogPatch) map[string]any {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Status != nil {
		fields["status"] = string(*patch.Status)
	}
	if patch.Timestamp != nil {
		fields["timestamp"] = util.PtrOrNil(*patch.Timestamp)
	}
	if patch.WordCount != nil {
		fields["word_count"] = core.FormatWordCount(*patch.WordCount)
	}
	if patch.Summary != nil {
		fields["summary"] = util.PtrOrNil(*patch.Summary)
	}
	if patch.ImageURL != nil {
		fields["image_url"] = util.PtrOrNil(*patch.ImageURL)
	}
	if patch.Participants != nil {
		fields["participants"] = pq.StringArray(util.NonNil(*patch.Participants))
	}
	if patch.Entries != nil {
		fields["entries"] = encodeEntries(*patch.Entries)
	}
	if patch.IsFavorite != nil {
		fields["is_favorite"] = *patch.IsFavorite
	}
	fields["updated_at"] = time.Now()
	return fields
}

func validStatus(status core.LogStatus) bool {
	switch status {
	case core.LogStatusOngoing, core.LogStatusFinished, core.LogStatusStandby:
		return true
	}
	return false
}
