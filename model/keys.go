package model

import "time"

const (
	PrefixUser        = "user:"
	PrefixTransaction = "transaction:"
	PrefixSession     = "session:"
	PrefixAlertFeed   = "alertfeed:"
)

const (
	SessionTTL = 24 * time.Hour
	// OutcomeTTL is effectively permanent.
	OutcomeTTL = 7 * 365 * 24 * time.Hour
)

func UserKey(userID string) string {
	return PrefixUser + userID
}

func TransactionKey(transactionID string) string {
	return PrefixTransaction + transactionID
}

func SessionKey(reference string) string {
	return PrefixSession + reference
}

func AlertFeedKey(name string) string {
	return PrefixAlertFeed + name
}
