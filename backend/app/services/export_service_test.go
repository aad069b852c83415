package services

import (
	"strings"
	"testing"
)

func TestWriteRecordQuotesEveryField(t *testing.T) {
	var b strings.Builder
	writeRecord(&b, []string{"1", `note with "quotes"`, ""})
	got := b.String()
	want := `"1","note with ""quotes""",""` + "\r\n"
	if got != want {
		t.Errorf("record = %q, want %q", got, want)
	}
}
