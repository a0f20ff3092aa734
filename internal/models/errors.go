// internal/models/errors.go
package models

// LedgerError is a terminal, call-aborting failure. The code is surfaced
// verbatim to the external caller as the call's failure reason; the
// transaction wrapping the call guarantees no partial charge.
type LedgerError struct {
	Code    string
	Message string
}

func (e *LedgerError) Error() string {
	return e.Message
}

var (
	ErrUnauthorized               = &LedgerError{"UNAUTHORIZED", "caller lacks the required role"}
	ErrDuplicateSeries            = &LedgerError{"DUPLICATE_SERIES", "series id already exists"}
	ErrSeriesNotFound             = &LedgerError{"SERIES_NOT_FOUND", "series does not exist"}
	ErrSeriesSoldOut              = &LedgerError{"SERIES_SOLD_OUT", "series copies cap reached"}
	ErrInvalidRoyalty             = &LedgerError{"INVALID_ROYALTY", "royalty shares exceed 10000 basis points"}
	ErrInsufficientStorageDeposit = &LedgerError{"INSUFFICIENT_STORAGE_DEPOSIT", "attached deposit does not cover storage cost"}
	ErrInsufficientFunds          = &LedgerError{"INSUFFICIENT_FUNDS", "attached deposit does not cover price plus storage cost"}
)
