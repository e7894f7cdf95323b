package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientByCPF retrieves a client by national tax id.
	FindClientByCPF(ctx context.Context, cpf string) (*domain.Client, error)

	// FindClientByEmail retrieves a client by email address.
	FindClientByEmail(ctx context.Context, email string) (*domain.Client, error)

	// ListActiveClients retrieves active clients ordered by name.
	ListActiveClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client. CPF or email collisions return apperrors.ErrDuplicate.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client. Accounts referencing it are not touched.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
