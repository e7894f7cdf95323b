package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy and LastUpdatedBy carry the operator id taken from the auth token.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps both creation and update fields.
func NewAuditFields(by string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     by,
		LastUpdatedAt: now,
		LastUpdatedBy: by,
	}
}

// Touch records an update.
func (a *AuditFields) Touch(by string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = by
}
