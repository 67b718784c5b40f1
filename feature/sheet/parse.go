package sheet

import (
	"strings"

	"bcds-membership/core/membership"
	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"
	"bcds-membership/feature/memberships/models"

	"go.uber.org/zap"
)

// Entry is one validated sheet row: a player claim plus the payment it made.
type Entry struct {
	// RowNumber is the 1-based row on the sheet.
	RowNumber int
	Record    reconcile.ImportRecord
	Payment   models.Payment
}

// Parse validates the rows after the header, bumping counters in stats for
// everything it drops. Rows without a name, confirmation code or valid
// transaction date are skipped; a bad registry number or birth date only
// drops that field.
func Parse(rows [][]string, headerRows int, stats *JobStats, logger *zap.Logger) []Entry {
	if headerRows < 0 {
		headerRows = 0
	}
	if headerRows >= len(rows) {
		return nil
	}
	data := rows[headerRows:]
	stats.SetToDo(len(data))

	entries := make([]Entry, 0, len(data))
	for i, raw := range data {
		rowNum := headerRows + i + 1

		r := make(row, len(raw))
		for j, cell := range raw {
			r[j] = strings.TrimSpace(cell)
		}
		if isBlank(r) {
			stats.AddToDo(-1)
			continue
		}
		stats.Bump(CountRowsRead)

		l := logger.With(zap.Int("row", rowNum))

		name := utils.NormalizeName(r.get(ColName))
		if name == "" {
			l.Error("Row has no player name, skipping")
			stats.Bump(CountMissingName)
			stats.Bump(CountRowsSkipped)
			continue
		}
		l = l.With(zap.String("name", name))

		rec := reconcile.ImportRecord{
			FullName: name,
			Email:    utils.NormalizeText(r.get(ColEmail)),
			Address:  utils.NormalizeText(r.get(ColAddress)),
			City:     utils.NormalizeText(r.get(ColCity)),
		}

		if raw := r.get(ColRegistryNumber); raw != "" {
			if number, ok := utils.ParseRegistryNumber(raw); ok {
				rec.RegistryNumber = number
			} else {
				l.Error("Invalid registry number", zap.String("value", raw))
				stats.Bump(CountInvalidNumber)
			}
		}

		if raw := r.get(ColBirthDate); raw != "" {
			if dob, err := utils.ParseDate(raw); err == nil {
				rec.BirthDate = dob
			} else {
				l.Error("Bad birth date", zap.String("value", raw))
				stats.Bump(CountInvalidBirthDate)
			}
		}

		code := r.get(ColConfirmationCode)
		if code == "" {
			l.Error("Missing confirmation code, skipping")
			stats.Bump(CountMissingCode)
			stats.Bump(CountRowsSkipped)
			continue
		}
		rec.ConfirmationCode = code

		rawDate := r.get(ColTransactionDate)
		if rawDate == "" {
			l.Error("Missing transaction date, skipping")
			stats.Bump(CountMissingDate)
			stats.Bump(CountRowsSkipped)
			continue
		}
		txDate, err := utils.ParseDate(rawDate)
		if err != nil {
			l.Error("Invalid transaction date, skipping", zap.String("value", rawDate))
			stats.Bump(CountInvalidDate)
			stats.Bump(CountRowsSkipped)
			continue
		}

		coverage := membership.Coverage(txDate)
		rec.ValidFrom = coverage.ValidFrom
		rec.ValidUntil = coverage.ValidUntil

		entries = append(entries, Entry{
			RowNumber: rowNum,
			Record:    rec,
			Payment: models.Payment{
				ConfirmationCode: code,
				Name:             r.get(ColPaymentName),
				Address:          r.get(ColPaymentAddress),
				Email:            r.get(ColPaymentEmail),
				Date:             txDate,
				Amount:           r.get(ColPaymentTotal),
				Source:           r.get(ColSubmissionSource),
				Detail:           r.get(ColPurchaseDetail),
			},
		})
		stats.Bump(CountRowsValidated)
	}
	return entries
}

func isBlank(r row) bool {
	for _, cell := range r {
		if cell != "" {
			return false
		}
	}
	return true
}
