package service

import (
	"context"
	"errors"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
)

type StatusReporter struct {
	store db.Store
}

func NewStatusReporter(store db.Store) *StatusReporter {
	return &StatusReporter{store: store}
}

// Record returns the latest stored outcome of userID, or db.ErrKeyNotFound.
func (s *StatusReporter) Record(ctx context.Context, userID string) (*model.VerificationRecord, error) {
	var r model.VerificationRecord
	if err := s.store.Get(ctx, model.UserKey(userID), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetStatus projects the latest outcome of userID. Absence is not an error.
func (s *StatusReporter) GetStatus(ctx context.Context, userID string) (*model.StatusReport, error) {
	if userID == "" {
		return nil, newError(KindMissingParameter, nil, "userId is required")
	}
	r, err := s.Record(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return model.NotFoundReport(), nil
		}
		return nil, newError(KindInternal, err, "failed to read verification status")
	}
	return r.Report(), nil
}

// GetStatusByTransaction resolves transactionID through the transaction index.
// It returns the owning user together with the report.
func (s *StatusReporter) GetStatusByTransaction(ctx context.Context, transactionID string) (string, *model.StatusReport, error) {
	var userID string
	if err := s.store.Get(ctx, model.TransactionKey(transactionID), &userID); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", model.NotFoundReport(), nil
		}
		return "", nil, newError(KindInternal, err, "failed to read transaction index")
	}
	report, err := s.GetStatus(ctx, userID)
	if err != nil {
		return userID, nil, err
	}
	return userID, report, nil
}
