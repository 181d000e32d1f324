package dto

import "time"

type VerifyResponse struct {
	BatchID         string     `json:"batch_id"`
	Found           bool       `json:"found"`
	Verdict         string     `json:"verdict"`
	Product         string     `json:"product,omitempty"`
	ManufactureDate *time.Time `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	SealStatus      string     `json:"seal_status,omitempty"`
}
