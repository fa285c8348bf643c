package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/provider"
)

const DefaultAccountType = "trading"

// SessionCreator is the part of the provider client used to open sessions.
type SessionCreator interface {
	CreateSession(ctx context.Context, profile string, userID string) (*model.SessionResponse, error)
}

type SessionManager struct {
	store    db.Store
	provider SessionCreator
	profile  string
	Now      func() time.Time
}

// NewSessionManager returns a manager. A nil creator means no provider credentials
// are configured and every creation fails as ProviderUnavailable.
func NewSessionManager(store db.Store, creator SessionCreator, profile string) *SessionManager {
	return &SessionManager{
		store:    store,
		provider: creator,
		profile:  profile,
		Now:      time.Now,
	}
}

func (m *SessionManager) CreateSession(ctx context.Context, userID string, accountType string) (*model.SessionResponse, error) {
	if userID == "" {
		return nil, newError(KindMissingParameter, nil, "userId is required")
	}
	if accountType == "" {
		accountType = DefaultAccountType
	}
	if m.provider == nil {
		return nil, newError(KindProviderUnavailable, nil, "verification provider is not configured")
	}

	resp, err := m.provider.CreateSession(ctx, m.profile, userID)
	if err != nil {
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) {
			log.Warn("CreateSession: provider replied %v for user %v: %v", statusErr.StatusCode, userID, statusErr.Body)
			kind := KindProviderUnavailable
			if statusErr.StatusCode == http.StatusBadRequest {
				kind = KindProviderRejected
			}
			e := newError(kind, err, "failed to create verification session")
			e.Diag = statusErr.Body
			return nil, e
		}
		log.Warn("CreateSession: provider request for user %v: %v", userID, err)
		return nil, newError(KindProviderUnavailable, err, "failed to create verification session")
	}

	record := model.SessionRecord{
		UserID:      userID,
		AccountType: accountType,
		Reference:   resp.Reference,
		CreatedAt:   m.Now().UTC(),
		Status:      model.SessionPending,
	}
	if err := m.store.Set(ctx, model.SessionKey(resp.Reference), record, model.SessionTTL); err != nil {
		return nil, newError(KindInternal, err, "failed to store verification session")
	}
	log.Info("CreateSession: user %v (%v) got reference %v", userID, accountType, resp.Reference)
	return resp, nil
}
