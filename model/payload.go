package model

import (
	jsoniter "github.com/json-iterator/go"
)

// FieldValue is one candidate extraction of a document field.
type FieldValue struct {
	Value      string   `json:"value"`
	Confidence *float64 `json:"confidence,omitempty"`
	Index      *int     `json:"index,omitempty"`
}

// FieldValues holds every candidate the provider extracted for a field, best first.
type FieldValues []FieldValue

// First returns the first candidate, or nil if there is none.
func (v FieldValues) First() *string {
	if len(v) == 0 {
		return nil
	}
	s := v[0].Value
	return &s
}

type DecisionData struct {
	FullName       FieldValues `json:"fullName"`
	DOB            FieldValues `json:"dob"`
	DocumentNumber FieldValues `json:"documentNumber"`
	CountryFull    FieldValues `json:"countryFull"`
	CountryIso2    FieldValues `json:"countryIso2"`
	Address1       FieldValues `json:"address1"`
}

// DecisionPayload is the body of a decision webhook pushed by the provider.
type DecisionPayload struct {
	TransactionID string              `json:"transactionId"`
	Decision      Decision            `json:"decision"`
	CustomData    string              `json:"customData"`
	Warning       []Warning           `json:"warning"`
	ReviewScore   *float64            `json:"reviewScore"`
	RejectScore   *float64            `json:"rejectScore"`
	Data          *DecisionData       `json:"data"`
	OutputImage   jsoniter.RawMessage `json:"outputImage"`
	OutputFile    jsoniter.RawMessage `json:"outputFile"`
}

// Extract projects the document fields, keeping only the first candidate of each.
func (p *DecisionPayload) Extract() ExtractedData {
	if p.Data == nil {
		return ExtractedData{}
	}
	country := p.Data.CountryFull.First()
	if country == nil {
		country = p.Data.CountryIso2.First()
	}
	return ExtractedData{
		FullName:       p.Data.FullName.First(),
		DOB:            p.Data.DOB.First(),
		DocumentNumber: p.Data.DocumentNumber.First(),
		Country:        country,
		Address:        p.Data.Address1.First(),
	}
}
