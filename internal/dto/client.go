package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	Name      string     `json:"name" binding:"required,min=3,max=100"`
	CPF       string     `json:"cpf" binding:"required,cpf"`
	Email     string     `json:"email" binding:"required,email,max=100"`
	Phone     string     `json:"phone" binding:"omitempty,br_phone"`
	Address   string     `json:"address" binding:"max=255"`
	BirthDate *time.Time `json:"birthDate"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=3,max=100"`
	Email   *string `json:"email" binding:"omitempty,email,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,br_phone"`
	Address *string `json:"address" binding:"omitempty,max=255"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string     `json:"clientID"`
	Name          string     `json:"name"`
	CPF           string     `json:"cpf"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	BirthDate     *time.Time `json:"birthDate,omitempty"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		CPF:           c.CPF,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		BirthDate:     c.BirthDate,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClientsResponse converts a slice of domain.Client to ListClientsResponse DTO
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return ListClientsResponse{Clients: res}
}
