package models

import "time"

// Client is the persisted form of a bank client.
type Client struct {
	ClientID  string     `db:"client_id"`
	Name      string     `db:"name"`
	CPF       string     `db:"cpf"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	Address   string     `db:"address"`
	BirthDate *time.Time `db:"birth_date"` // Nullable
	IsActive  bool       `db:"is_active"`
	AuditFields
}
