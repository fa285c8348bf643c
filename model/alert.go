package model

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
)

// Alert is sent to the operator channel for high-risk outcomes.
type Alert struct {
	Severity      Severity  `json:"severity"`
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId"`
	Decision      Decision  `json:"decision"`
	AMLWarnings   []Warning `json:"amlWarnings"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AlertFor decides whether a record warrants an alert: AML hits are CRITICAL, a plain reject is HIGH.
func AlertFor(r *VerificationRecord) *Alert {
	var severity Severity
	switch {
	case len(r.AMLWarnings) > 0:
		severity = SeverityCritical
	case r.Decision == DecisionReject:
		severity = SeverityHigh
	default:
		return nil
	}
	return &Alert{
		Severity:      severity,
		UserID:        r.UserID,
		TransactionID: r.TransactionID,
		Decision:      r.Decision,
		AMLWarnings:   r.AMLWarnings,
		CreatedAt:     time.Now(),
	}
}

func (a *Alert) Title() string {
	return fmt.Sprintf("[%v] KYC %v: user %v", a.Severity, a.Decision, a.UserID)
}

// Text renders the alert as a plain chat message.
func (a *Alert) Text() string {
	var sb strings.Builder
	sb.WriteString(a.Title())
	sb.WriteString("\nTransaction: ")
	sb.WriteString(a.TransactionID)
	for _, w := range a.AMLWarnings {
		sb.WriteString("\n- ")
		sb.WriteString(w.Code)
		if w.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(w.Description)
		}
	}
	return sb.String()
}
