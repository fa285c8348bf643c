package model

import "time"

const SessionPending = "PENDING"

// SessionRecord tracks a pending verification session under session:<Reference>.
// Nothing transitions Status away from PENDING; the record simply expires.
type SessionRecord struct {
	UserID      string    `json:"userId"`
	AccountType string    `json:"accountType"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
}

type CreateSessionRequest struct {
	UserID      string `json:"userId"`
	AccountType string `json:"accountType"`
	Country     string `json:"country,omitempty"`
	Via         string `json:"via,omitempty"`
}

// SessionResponse is what the provider returns for a new session, handed back to the caller unchanged.
type SessionResponse struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
	QRCode    string `json:"qrCode"`
}
