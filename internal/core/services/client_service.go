package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/platform/observability"
	"github.com/SscSPs/bank_ledger/internal/utils/validators"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type clientService struct {
	BaseService
	store portsrepo.LedgerStore
	newID func() string
}

// ClientServiceOption is a functional option for configuring the client service
type ClientServiceOption func(*clientService)

// WithClientMetrics records client operation counters.
func WithClientMetrics(m *observability.Metrics) ClientServiceOption {
	return func(s *clientService) {
		s.Metrics = m
	}
}

// WithClientClock replaces time.Now.
func WithClientClock(clock func() time.Time) ClientServiceOption {
	return func(s *clientService) {
		s.Clock = clock
	}
}

// WithClientIDGenerator replaces uuid.NewString for client ids.
func WithClientIDGenerator(fn func() string) ClientServiceOption {
	return func(s *clientService) {
		s.newID = fn
	}
}

// NewClientService creates the client service over store.
func NewClientService(store portsrepo.LedgerStore, options ...ClientServiceOption) portssvc.ClientSvcFacade {
	svc := &clientService{
		store: store,
		newID: uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// ensureUnique rejects a CPF or email already owned by a client other than selfID.
func (s *clientService) ensureUnique(ctx context.Context, cpf, email, selfID string) error {
	if cpf != "" {
		existing, err := s.store.Clients().FindClientByCPF(ctx, cpf)
		if err == nil && existing.ClientID != selfID {
			return fmt.Errorf("%w: cpf already registered", apperrors.ErrDuplicate)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	if email != "" {
		existing, err := s.store.Clients().FindClientByEmail(ctx, email)
		if err == nil && existing.ClientID != selfID {
			return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	return nil
}

// CreateClient registers an active client. CPF and email must be unique.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, operatorID string) (client *domain.Client, err error) {
	ctx, finish := s.startOperation(ctx, "create_client")
	defer func() { finish(err) }()

	cpf := validators.Digits(req.CPF)
	email := strings.TrimSpace(req.Email)
	if err := s.ensureUnique(ctx, cpf, email, ""); err != nil {
		return nil, err
	}

	client = &domain.Client{
		ClientID:    s.newID(),
		Name:        strings.TrimSpace(req.Name),
		CPF:         cpf,
		Email:       email,
		Phone:       req.Phone,
		Address:     req.Address,
		BirthDate:   req.BirthDate,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(operatorID, s.Now()),
	}
	if err := s.store.Clients().SaveClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to save client")
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.LogInfo(ctx, "Client created", "client_id", client.ClientID)
	return client, nil
}

// GetClientByID retrieves a client.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.store.Clients().FindClientByID(ctx, clientID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrClientNotFound, clientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", clientID, err)
	}
	return client, nil
}

// GetClientByCPF retrieves a client by CPF in any punctuation.
func (s *clientService) GetClientByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	client, err := s.store.Clients().FindClientByCPF(ctx, validators.Digits(cpf))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client by cpf: %w", err)
	}
	return client, nil
}

// ListActiveClients lists active clients ordered by name.
func (s *clientService) ListActiveClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	clients, err := s.store.Clients().ListActiveClients(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// UpdateClient applies the fields present in req.
func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, operatorID string) (client *domain.Client, err error) {
	ctx, finish := s.startOperation(ctx, "update_client", attribute.String("client.id", clientID))
	defer func() { finish(err) }()

	client, err = s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.EqualFold(email, client.Email) {
			if err := s.ensureUnique(ctx, "", email, clientID); err != nil {
				return nil, err
			}
		}
		client.Email = email
	}
	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	client.Touch(operatorID, s.Now())

	if err := s.store.Clients().UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", "client_id", clientID)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) setActive(ctx context.Context, clientID string, active bool, operatorID string) (*domain.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if active {
		client.Activate(operatorID, s.Now())
	} else {
		client.Deactivate(operatorID, s.Now())
	}
	if err := s.store.Clients().UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to change client status", "client_id", clientID, "active", active)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	s.LogInfo(ctx, "Client status changed", "client_id", clientID, "active", active)
	return client, nil
}

// ActivateClient marks the client active.
func (s *clientService) ActivateClient(ctx context.Context, clientID string, operatorID string) (client *domain.Client, err error) {
	ctx, finish := s.startOperation(ctx, "activate_client", attribute.String("client.id", clientID))
	defer func() { finish(err) }()
	return s.setActive(ctx, clientID, true, operatorID)
}

// DeactivateClient marks the client inactive. Their accounts stay as they are.
func (s *clientService) DeactivateClient(ctx context.Context, clientID string, operatorID string) (client *domain.Client, err error) {
	ctx, finish := s.startOperation(ctx, "deactivate_client", attribute.String("client.id", clientID))
	defer func() { finish(err) }()
	return s.setActive(ctx, clientID, false, operatorID)
}
