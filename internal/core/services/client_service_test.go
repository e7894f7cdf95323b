package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/core/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListActiveClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// mockStore serves the mocked client repository and runs transactions inline.
type mockStore struct {
	clients *MockClientRepository
}

func (s *mockStore) Clients() portsrepo.ClientRepositoryFacade     { return s.clients }
func (s *mockStore) Accounts() portsrepo.AccountRepositoryFacade   { return nil }
func (s *mockStore) Movements() portsrepo.MovementRepositoryFacade { return nil }
func (s *mockStore) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return fn(ctx, s)
}

type ClientServiceTestSuite struct {
	suite.Suite
	mockRepo *MockClientRepository
	service  portssvc.ClientSvcFacade
	now      time.Time
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockClientRepository)
	suite.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewClientService(&mockStore{clients: suite.mockRepo},
		services.WithClientClock(func() time.Time { return suite.now }),
		services.WithClientIDGenerator(func() string { return "client-1" }),
	)
}

func (suite *ClientServiceTestSuite) TestCreateClient_Success() {
	ctx := context.Background()
	req := dto.CreateClientRequest{
		Name:  " Maria Silva ",
		CPF:   "529.982.247-25",
		Email: "maria@example.com",
		Phone: "(11) 91234-5678",
	}

	suite.mockRepo.On("FindClientByCPF", mock.Anything, "52998224725").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindClientByEmail", mock.Anything, "maria@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.ClientID == "client-1" && c.CPF == "52998224725" && c.IsActive
	})).Return(nil).Once()

	client, err := suite.service.CreateClient(ctx, req, operator)

	suite.Require().NoError(err)
	suite.Equal("Maria Silva", client.Name)
	suite.Equal(operator, client.CreatedBy)
	suite.Equal(suite.now, client.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestCreateClient_DuplicateCPF() {
	ctx := context.Background()
	req := dto.CreateClientRequest{Name: "Maria", CPF: "52998224725", Email: "maria@example.com"}

	suite.mockRepo.On("FindClientByCPF", mock.Anything, "52998224725").Return(&domain.Client{ClientID: "other"}, nil).Once()

	client, err := suite.service.CreateClient(ctx, req, operator)

	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestCreateClient_SaveError() {
	ctx := context.Background()
	req := dto.CreateClientRequest{Name: "Maria", CPF: "52998224725", Email: "maria@example.com"}

	suite.mockRepo.On("FindClientByCPF", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindClientByEmail", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveClient", mock.Anything, mock.AnythingOfType("domain.Client")).Return(assert.AnError).Once()

	client, err := suite.service.CreateClient(ctx, req, operator)

	suite.Nil(client)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ClientServiceTestSuite) TestGetClientByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindClientByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	client, err := suite.service.GetClientByID(ctx, "missing")

	suite.Nil(client)
	suite.ErrorIs(err, domain.ErrClientNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ClientServiceTestSuite) TestGetClientByCPF_NormalizesInput() {
	ctx := context.Background()
	expected := &domain.Client{ClientID: "client-1", CPF: "52998224725"}
	suite.mockRepo.On("FindClientByCPF", ctx, "52998224725").Return(expected, nil).Once()

	client, err := suite.service.GetClientByCPF(ctx, "529.982.247-25")

	suite.Require().NoError(err)
	suite.Equal(expected, client)
}

func (suite *ClientServiceTestSuite) TestUpdateClient_EmailTaken() {
	ctx := context.Background()
	existing := &domain.Client{ClientID: "client-1", Email: "old@example.com", IsActive: true}
	email := "taken@example.com"

	suite.mockRepo.On("FindClientByID", mock.Anything, "client-1").Return(existing, nil).Once()
	suite.mockRepo.On("FindClientByEmail", mock.Anything, email).Return(&domain.Client{ClientID: "client-2"}, nil).Once()

	client, err := suite.service.UpdateClient(ctx, "client-1", dto.UpdateClientRequest{Email: &email}, operator)

	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestUpdateClient_AppliesPresentFields() {
	ctx := context.Background()
	existing := &domain.Client{ClientID: "client-1", Name: "Old", Email: "old@example.com", Phone: "11912345678"}
	name := "New Name"

	suite.mockRepo.On("FindClientByID", mock.Anything, "client-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Name == name && c.Phone == "11912345678" && c.LastUpdatedBy == operator
	})).Return(nil).Once()

	client, err := suite.service.UpdateClient(ctx, "client-1", dto.UpdateClientRequest{Name: &name}, operator)

	suite.Require().NoError(err)
	suite.Equal(name, client.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestDeactivateClient() {
	ctx := context.Background()
	existing := &domain.Client{ClientID: "client-1", IsActive: true}

	suite.mockRepo.On("FindClientByID", mock.Anything, "client-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return !c.IsActive
	})).Return(nil).Once()

	client, err := suite.service.DeactivateClient(ctx, "client-1", operator)

	suite.Require().NoError(err)
	suite.False(client.IsActive)
	suite.Equal(suite.now, client.LastUpdatedAt)
}

func (suite *ClientServiceTestSuite) TestListActiveClients_Error() {
	ctx := context.Background()
	suite.mockRepo.On("ListActiveClients", ctx, 10, 0).Return(nil, fmt.Errorf("db down")).Once()

	clients, err := suite.service.ListActiveClients(ctx, 10, 0)

	suite.Nil(clients)
	suite.ErrorContains(err, "db down")
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
