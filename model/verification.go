package model

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReview Decision = "review"
	DecisionReject Decision = "reject"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionAccept, DecisionReview, DecisionReject:
		return true
	}
	return false
}

const AMLWarningPrefix = "AML_"

type Warning struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

func (w Warning) IsAML() bool {
	return w.Code != "" && strings.HasPrefix(w.Code, AMLWarningPrefix)
}

// AMLWarnings returns the warnings whose code is AML_ prefixed, keeping the provider order.
func AMLWarnings(warnings []Warning) []Warning {
	res := make([]Warning, 0)
	for _, w := range warnings {
		if w.IsAML() {
			res = append(res, w)
		}
	}
	return res
}

// ExtractedData is the fixed projection of document fields kept from a decision.
type ExtractedData struct {
	FullName       *string `json:"fullName,omitempty"`
	DOB            *string `json:"dob,omitempty"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
	Country        *string `json:"country,omitempty"`
	Address        *string `json:"address,omitempty"`
}

// VerificationRecord is the outcome of one verification attempt, stored under user:<UserID>.
type VerificationRecord struct {
	UserID        string              `json:"userId"`
	TransactionID string              `json:"transactionId"`
	Decision      Decision            `json:"decision"`
	Timestamp     string              `json:"timestamp"`
	Warnings      []Warning           `json:"warnings"`
	AMLWarnings   []Warning           `json:"amlWarnings"`
	ReviewScore   *float64            `json:"reviewScore,omitempty"`
	RejectScore   *float64            `json:"rejectScore,omitempty"`
	ExtractedData ExtractedData       `json:"extractedData"`
	Images        jsoniter.RawMessage `json:"images,omitempty"`
	AuditReport   jsoniter.RawMessage `json:"auditReport,omitempty"`
}

const (
	StatusFound    = "FOUND"
	StatusNotFound = "NOT_FOUND"
)

// StatusReport is the reduced projection of a VerificationRecord returned to callers.
type StatusReport struct {
	Status        string         `json:"status"`
	Decision      Decision       `json:"decision"`
	Timestamp     string         `json:"timestamp"`
	Warnings      []Warning      `json:"warnings"`
	ExtractedData *ExtractedData `json:"extractedData"`
}

func NotFoundReport() *StatusReport {
	return &StatusReport{Status: StatusNotFound}
}

// MarshalJSON renders a NOT_FOUND report as {"status":"NOT_FOUND"} only.
func (r StatusReport) MarshalJSON() ([]byte, error) {
	if r.Status == StatusNotFound {
		return jsoniter.Marshal(map[string]string{"status": StatusNotFound})
	}
	type plain StatusReport
	return jsoniter.Marshal(plain(r))
}

func (r *VerificationRecord) Report() *StatusReport {
	data := r.ExtractedData
	warnings := r.Warnings
	if warnings == nil {
		warnings = []Warning{}
	}
	return &StatusReport{
		Status:        StatusFound,
		Decision:      r.Decision,
		Timestamp:     r.Timestamp,
		Warnings:      warnings,
		ExtractedData: &data,
	}
}
