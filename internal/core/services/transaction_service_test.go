package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/centavoapp/centavo/internal/apperrors"
	"github.com/centavoapp/centavo/internal/core/domain"
	portsrepo "github.com/centavoapp/centavo/internal/core/ports/repositories"
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/core/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/platform/cache"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockAccountReader is a mock type for the AccountReader interface
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccountsByUser(ctx context.Context, userID string, onlyActive bool) ([]domain.Account, error) {
	args := m.Called(ctx, userID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockCategoryReader is a mock type for the CategoryReader interface
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategoriesByUser(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo  *MockTransactionRepository
	mockAccounts *MockAccountReader
	mockCats     *MockCategoryReader
	service      portssvc.TransactionSvcFacade

	userID     string
	accountID  string
	categoryID string
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockAccounts = new(MockAccountReader)
	s.mockCats = new(MockCategoryReader)
	s.service = services.NewTransactionService(s.mockTxnRepo, s.mockAccounts, s.mockCats, cache.New(), time.Minute)

	s.userID = uuid.NewString()
	s.accountID = uuid.NewString()
	s.categoryID = uuid.NewString()
}

func (s *TransactionServiceTestSuite) activeAccount() *domain.Account {
	return &domain.Account{
		AccountID:   s.accountID,
		UserID:      s.userID,
		Name:        "Checking",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString("100.00"),
		IsActive:    true,
	}
}

func (s *TransactionServiceTestSuite) ownedCategory() *domain.Category {
	return &domain.Category{
		CategoryID: s.categoryID,
		UserID:     s.userID,
		Name:       "Groceries",
		Kind:       domain.Expense,
	}
}

func amountEq(expected string) func(decimal.Decimal) bool {
	want := decimal.RequireFromString(expected)
	return func(got decimal.Decimal) bool { return got.Equal(want) }
}

// changesMatch asserts that a balance change map has exactly the expected
// per-account deltas.
func changesMatch(expected map[string]string) any {
	return mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		if len(changes) != len(expected) {
			return false
		}
		for id, want := range expected {
			got, ok := changes[id]
			if !ok || !got.Equal(decimal.RequireFromString(want)) {
				return false
			}
		}
		return true
	})
}

// --- Test Cases ---

func (s *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDecreasesBalance() {
	ctx := context.Background()
	s.mockAccounts.On("FindAccountByID", ctx, s.accountID).Return(s.activeAccount(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(s.ownedCategory(), nil)
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		changesMatch(map[string]string{s.accountID: "-25.40"})).Return(nil)

	txn, err := s.service.CreateTransaction(ctx, s.userID, dto.CreateTransactionRequest{
		AccountID:   s.accountID,
		CategoryID:  s.categoryID,
		Description: "Supermarket",
		Amount:      decimal.RequireFromString("25.40"),
		Kind:        domain.Expense,
		Date:        "2026-03-10",
	})

	s.NoError(err)
	s.NotNil(txn)
	s.True(txn.Amount.Equal(decimal.RequireFromString("25.40")))
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_IncomeIncreasesBalance() {
	ctx := context.Background()
	income := s.ownedCategory()
	income.Kind = domain.Income
	s.mockAccounts.On("FindAccountByID", ctx, s.accountID).Return(s.activeAccount(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(income, nil)
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		changesMatch(map[string]string{s.accountID: "1500.00"})).Return(nil)

	_, err := s.service.CreateTransaction(ctx, s.userID, dto.CreateTransactionRequest{
		AccountID:   s.accountID,
		CategoryID:  s.categoryID,
		Description: "Salary",
		Amount:      decimal.RequireFromString("1500.00"),
		Kind:        domain.Income,
		Date:        "2026-03-01",
	})

	s.NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	_, err := s.service.CreateTransaction(context.Background(), s.userID, dto.CreateTransactionRequest{
		AccountID:   s.accountID,
		CategoryID:  s.categoryID,
		Description: "Nothing",
		Amount:      decimal.Zero,
		Kind:        domain.Expense,
		Date:        "2026-03-10",
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RejectsInactiveAccount() {
	ctx := context.Background()
	inactive := s.activeAccount()
	inactive.IsActive = false
	s.mockAccounts.On("FindAccountByID", ctx, s.accountID).Return(inactive, nil)

	_, err := s.service.CreateTransaction(ctx, s.userID, dto.CreateTransactionRequest{
		AccountID:   s.accountID,
		CategoryID:  s.categoryID,
		Description: "Nope",
		Amount:      decimal.RequireFromString("10.00"),
		Kind:        domain.Expense,
		Date:        "2026-03-10",
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ForeignAccountReadsAsNotFound() {
	ctx := context.Background()
	foreign := s.activeAccount()
	foreign.UserID = uuid.NewString()
	s.mockAccounts.On("FindAccountByID", ctx, s.accountID).Return(foreign, nil)

	_, err := s.service.CreateTransaction(ctx, s.userID, dto.CreateTransactionRequest{
		AccountID:   s.accountID,
		CategoryID:  s.categoryID,
		Description: "Sneaky",
		Amount:      decimal.RequireFromString("10.00"),
		Kind:        domain.Expense,
		Date:        "2026-03-10",
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) existingExpense() *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        s.userID,
		AccountID:     s.accountID,
		CategoryID:    s.categoryID,
		Description:   "Dinner",
		Amount:        decimal.RequireFromString("50.00"),
		Kind:          domain.Expense,
		Date:          time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeYieldsNetDelta() {
	ctx := context.Background()
	old := s.existingExpense()
	s.mockTxnRepo.On("FindTransactionByID", ctx, old.TransactionID).Return(old, nil)
	// Expense 50 -> 80: reverse +50 then apply -80 nets to -30.
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		changesMatch(map[string]string{s.accountID: "-30.00"})).Return(nil)

	newAmount := decimal.RequireFromString("80.00")
	updated, err := s.service.UpdateTransaction(ctx, s.userID, old.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	s.NoError(err)
	s.True(updated.Amount.Equal(newAmount))
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_KindFlipReversesSign() {
	ctx := context.Background()
	old := s.existingExpense()
	s.mockTxnRepo.On("FindTransactionByID", ctx, old.TransactionID).Return(old, nil)
	// Expense 50 -> income 50: reverse +50 then apply +50 nets to +100.
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		changesMatch(map[string]string{s.accountID: "100.00"})).Return(nil)

	kind := domain.Income
	_, err := s.service.UpdateTransaction(ctx, s.userID, old.TransactionID, dto.UpdateTransactionRequest{
		Kind: &kind,
	})

	s.NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_AccountMoveTouchesBothAccounts() {
	ctx := context.Background()
	old := s.existingExpense()
	otherAccountID := uuid.NewString()
	other := &domain.Account{
		AccountID: otherAccountID,
		UserID:    s.userID,
		IsActive:  true,
	}
	s.mockTxnRepo.On("FindTransactionByID", ctx, old.TransactionID).Return(old, nil)
	s.mockAccounts.On("FindAccountByID", ctx, otherAccountID).Return(other, nil)
	// The old account gets the expense back, the new one absorbs it.
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		changesMatch(map[string]string{s.accountID: "50.00", otherAccountID: "-50.00"})).Return(nil)

	_, err := s.service.UpdateTransaction(ctx, s.userID, old.TransactionID, dto.UpdateTransactionRequest{
		AccountID: &otherAccountID,
	})

	s.NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_EmptyRequestRejected() {
	_, err := s.service.UpdateTransaction(context.Background(), s.userID, uuid.NewString(), dto.UpdateTransactionRequest{})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockTxnRepo.AssertNotCalled(s.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction_ReversesContribution() {
	ctx := context.Background()
	old := s.existingExpense()
	s.mockTxnRepo.On("FindTransactionByID", ctx, old.TransactionID).Return(old, nil)
	s.mockTxnRepo.On("DeleteTransaction", ctx, old.TransactionID,
		changesMatch(map[string]string{s.accountID: "50.00"})).Return(nil)

	err := s.service.DeleteTransaction(ctx, s.userID, old.TransactionID)

	s.NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCorrectBalance_CreatesCompensatingExpense() {
	ctx := context.Background()
	// Cached balance 100, target 80: the correction is an expense of 20.
	s.mockAccounts.On("FindAccountByID", ctx, s.accountID).Return(s.activeAccount(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(s.ownedCategory(), nil)
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Kind == domain.Expense && amountEq("20.00")(txn.Amount)
	}), changesMatch(map[string]string{s.accountID: "-20.00"})).Return(nil)

	txn, err := s.service.CorrectBalance(ctx, s.userID, s.accountID, dto.CorrectBalanceRequest{
		TargetBalance: decimal.RequireFromString("80.00"),
		CategoryID:    s.categoryID,
	})

	s.NoError(err)
	s.Equal(domain.Expense, txn.Kind)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCorrectBalance_AlreadyAtTarget() {
	ctx := context.Background()
	s.mockAccounts.On("FindAccountByID", ctx, s.accountID).Return(s.activeAccount(), nil)

	_, err := s.service.CorrectBalance(ctx, s.userID, s.accountID, dto.CorrectBalanceRequest{
		TargetBalance: decimal.RequireFromString("100.00"),
		CategoryID:    s.categoryID,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestBulkCreate_PartialImportReportsPerRecord() {
	ctx := context.Background()
	s.mockAccounts.On("FindAccountByID", ctx, s.accountID).Return(s.activeAccount(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(s.ownedCategory(), nil)
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).Return(nil)

	good := dto.CreateTransactionRequest{
		AccountID:   s.accountID,
		CategoryID:  s.categoryID,
		Description: "ok",
		Amount:      decimal.RequireFromString("10.00"),
		Kind:        domain.Expense,
		Date:        "2026-03-10",
	}
	bad := good
	bad.Amount = decimal.Zero

	resp := s.service.BulkCreateTransactions(ctx, s.userID, dto.BulkCreateTransactionsRequest{
		Transactions: []dto.CreateTransactionRequest{good, bad, good},
	})

	s.Equal(2, resp.Created)
	s.Equal(1, resp.Failed)
	s.Len(resp.Results, 3)
	s.Empty(resp.Results[0].Error)
	s.NotEmpty(resp.Results[1].Error)
	s.Equal(1, resp.Results[1].Index)
	s.Empty(resp.Results[2].Error)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
