package sheet

// Column is a column index of the membership sheet. The order is fixed by the
// payment form that feeds the sheet.
type Column int

const (
	ColTransactionDate Column = iota
	ColName
	ColBirthDate
	ColAddress
	ColEmail
	ColClub
	ColRegistryNumber
	ColPaymentReceived
	ColPaymentName
	ColPaymentAddress
	ColPaymentEmail
	ColPaymentTotal
	ColPaymentQuantity
	ColBillingAddress
	ColCity
	ColProvince
	ColCountry
	ColPurchaseDetail
	ColPurchaseType
	ColConfirmationCode
	ColMemo
	ColLocale
	ColSubmissionSource
)

// row gives trimmed access to the cells of one sheet row. Short rows read as
// empty cells.
type row []string

func (r row) get(c Column) string {
	if int(c) >= len(r) {
		return ""
	}
	return r[c]
}
