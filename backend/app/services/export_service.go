package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"team-attendance/backend/app/apperr"
	"team-attendance/backend/app/repo"
)

type ExportService struct{ events *repo.EventRepository }

func NewExportService(events *repo.EventRepository) *ExportService {
	return &ExportService{events: events}
}

var csvHeader = []string{"event_id", "id_number", "full_name", "event_date", "start_time", "end_time", "type", "notes"}

// Render produces the full event table as CSV: every field double-quoted with
// embedded quotes doubled, CRLF line endings, ordered by date then owner
// name. Returns the body and the dated attachment filename.
func (s *ExportService) Render() ([]byte, string, error) {
	rows, err := s.events.ListForExport()
	if err != nil {
		return nil, "", apperr.ServerError(err)
	}
	var b strings.Builder
	writeRecord(&b, csvHeader)
	for _, row := range rows {
		writeRecord(&b, []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.IDNumber,
			row.FullName,
			row.EventDate,
			deref(row.StartTime),
			deref(row.EndTime),
			row.Type,
			deref(row.Notes),
		})
	}
	filename := fmt.Sprintf("team-calendar-%s.csv", time.Now().Format("2006-01-02"))
	return []byte(b.String()), filename, nil
}

func writeRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
