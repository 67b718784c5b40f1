package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sheetRow builds a full-width row from the given cells.
func sheetRow(cells map[Column]string) []string {
	r := make([]string, ColSubmissionSource+1)
	for c, v := range cells {
		r[c] = v
	}
	return r
}

var header = []string{"Transaction Date", "Name", "DOB"}

func TestParse(t *testing.T) {
	rows := [][]string{
		header,
		sheetRow(map[Column]string{
			ColTransactionDate:  "10/05/2023 14:22:01",
			ColName:             "  Jane   DOE ",
			ColBirthDate:        "1980-01-01",
			ColEmail:            "Jane@X.com",
			ColCity:             "Vancouver",
			ColRegistryNumber:   "01234",
			ColConfirmationCode: "ABC",
			ColPaymentTotal:     "$25.00",
			ColPaymentName:      "Jane Doe",
			ColPurchaseDetail:   "Membership x1",
			ColSubmissionSource: "web",
		}),
		sheetRow(map[Column]string{ColTransactionDate: "2024-01-01", ColConfirmationCode: "NONAME"}),
		sheetRow(map[Column]string{ColTransactionDate: "2024-01-01", ColName: "no code"}),
		sheetRow(map[Column]string{ColName: "no date", ColConfirmationCode: "D1"}),
		sheetRow(map[Column]string{ColTransactionDate: "someday", ColName: "bad date", ColConfirmationCode: "D2"}),
		sheetRow(map[Column]string{
			ColTransactionDate:  "2024-02-02",
			ColName:             "Ted Moens",
			ColBirthDate:        "not a date",
			ColRegistryNumber:   "9999999",
			ColConfirmationCode: "T1",
		}),
		{"", "  ", ""},
		{"2024-03-03", "Short Row"},
	}

	stats := NewJobStats("test")
	entries := Parse(rows, 1, stats, zap.NewNop())
	require.Len(t, entries, 2)

	jane := entries[0]
	assert.Equal(t, 2, jane.RowNumber)
	assert.Equal(t, "jane doe", jane.Record.FullName)
	assert.Equal(t, "1234", jane.Record.RegistryNumber)
	assert.Equal(t, "jane@x.com", jane.Record.Email)
	assert.Equal(t, "vancouver", jane.Record.City)
	assert.Equal(t, time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), jane.Record.BirthDate)
	assert.Equal(t, "ABC", jane.Record.ConfirmationCode)
	assert.Equal(t, time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC), jane.Record.ValidFrom)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), jane.Record.ValidUntil)
	assert.Equal(t, "ABC", jane.Payment.ConfirmationCode)
	assert.Equal(t, "$25.00", jane.Payment.Amount)
	assert.Equal(t, "web", jane.Payment.Source)
	assert.Equal(t, "Membership x1", jane.Payment.Detail)

	ted := entries[1]
	assert.Equal(t, "ted moens", ted.Record.FullName)
	assert.Empty(t, ted.Record.RegistryNumber)
	assert.True(t, ted.Record.BirthDate.IsZero())
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), ted.Record.ValidUntil)

	assert.Equal(t, 7, stats.ToDo)
	assert.Equal(t, 7, stats.Count(CountRowsRead))
	assert.Equal(t, 2, stats.Count(CountRowsValidated))
	assert.Equal(t, 5, stats.Count(CountRowsSkipped))
	assert.Equal(t, 1, stats.Count(CountMissingName))
	assert.Equal(t, 2, stats.Count(CountMissingCode))
	assert.Equal(t, 1, stats.Count(CountMissingDate))
	assert.Equal(t, 1, stats.Count(CountInvalidDate))
	assert.Equal(t, 1, stats.Count(CountInvalidNumber))
	assert.Equal(t, 1, stats.Count(CountInvalidBirthDate))
}

func TestParse_HeaderOnly(t *testing.T) {
	stats := NewJobStats("test")
	assert.Empty(t, Parse([][]string{header}, 1, stats, zap.NewNop()))
	assert.Empty(t, Parse(nil, 1, stats, zap.NewNop()))
}

func TestJobStats_Finish(t *testing.T) {
	s := NewJobStats("x")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, JobInProgress, s.Status)

	s.SetActivity("working")
	s.Finish(nil)
	assert.Equal(t, JobDone, s.Status)
	assert.Empty(t, s.CurrentActivity)
	assert.NotEmpty(t, s.Duration)

	f := NewJobStats("y")
	f.Finish(assert.AnError)
	assert.Equal(t, JobFailed, f.Status)
	assert.Equal(t, assert.AnError.Error(), f.Error)
}
