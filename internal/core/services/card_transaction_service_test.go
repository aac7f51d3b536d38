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
	portssvc "github.com/centavoapp/centavo/internal/core/ports/services"
	"github.com/centavoapp/centavo/internal/core/services"
	"github.com/centavoapp/centavo/internal/dto"
	"github.com/centavoapp/centavo/internal/platform/cache"
)

// MockCardTransactionRepository is a mock type for the CardTransactionRepositoryFacade interface
type MockCardTransactionRepository struct {
	mock.Mock
}

func (m *MockCardTransactionRepository) SaveCardTransactionGroup(ctx context.Context, rows []domain.CardTransaction, amountChange decimal.Decimal) error {
	args := m.Called(ctx, rows, amountChange)
	return args.Error(0)
}

func (m *MockCardTransactionRepository) DeleteCardTransaction(ctx context.Context, cardTransactionID string, cardID string, amountChange decimal.Decimal) error {
	args := m.Called(ctx, cardTransactionID, cardID, amountChange)
	return args.Error(0)
}

func (m *MockCardTransactionRepository) DeleteCardTransactionGroup(ctx context.Context, groupID string, cardID string, amountChange decimal.Decimal) error {
	args := m.Called(ctx, groupID, cardID, amountChange)
	return args.Error(0)
}

func (m *MockCardTransactionRepository) FindCardTransactionByID(ctx context.Context, cardTransactionID string) (*domain.CardTransaction, error) {
	args := m.Called(ctx, cardTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CardTransaction), args.Error(1)
}

func (m *MockCardTransactionRepository) FindCardTransactionsByGroupID(ctx context.Context, groupID string) ([]domain.CardTransaction, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardTransaction), args.Error(1)
}

func (m *MockCardTransactionRepository) ListCardTransactions(ctx context.Context, cardID string) ([]domain.CardTransaction, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardTransaction), args.Error(1)
}

// MockCardReader is a mock type for the CardReader interface
type MockCardReader struct {
	mock.Mock
}

func (m *MockCardReader) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardReader) ListCardsByUser(ctx context.Context, userID string) ([]domain.Card, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

// --- Test Suite Setup ---

type CardTransactionServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockCardTransactionRepository
	mockCards *MockCardReader
	mockCats  *MockCategoryReader
	service   portssvc.CardTransactionSvcFacade

	userID     string
	cardID     string
	categoryID string
}

func (s *CardTransactionServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockCardTransactionRepository)
	s.mockCards = new(MockCardReader)
	s.mockCats = new(MockCategoryReader)
	s.service = services.NewCardTransactionService(s.mockRepo, s.mockCards, s.mockCats, cache.New(), time.Minute)

	s.userID = uuid.NewString()
	s.cardID = uuid.NewString()
	s.categoryID = uuid.NewString()
}

func (s *CardTransactionServiceTestSuite) ownedCard() *domain.Card {
	return &domain.Card{
		CardID: s.cardID,
		UserID: s.userID,
		Name:   "Visa",
		DueDay: 15,
		Amount: decimal.Zero,
	}
}

func (s *CardTransactionServiceTestSuite) expenseCategory() *domain.Category {
	return &domain.Category{
		CategoryID: s.categoryID,
		UserID:     s.userID,
		Name:       "Electronics",
		Kind:       domain.Expense,
	}
}

func (s *CardTransactionServiceTestSuite) purchaseRequest(amount string, installments int) dto.CreateCardPurchaseRequest {
	return dto.CreateCardPurchaseRequest{
		CardID:       s.cardID,
		CategoryID:   s.categoryID,
		Description:  "Laptop",
		Amount:       decimal.RequireFromString(amount),
		Kind:         domain.Expense,
		Date:         "2026-01-31",
		Installments: installments,
	}
}

// --- Test Cases ---

func (s *CardTransactionServiceTestSuite) TestCreateCardPurchase_SingleInstallment() {
	ctx := context.Background()
	s.mockCards.On("FindCardByID", ctx, s.cardID).Return(s.ownedCard(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(s.expenseCategory(), nil)
	s.mockRepo.On("SaveCardTransactionGroup", ctx, mock.MatchedBy(func(rows []domain.CardTransaction) bool {
		return len(rows) == 1 && rows[0].GroupID == nil &&
			rows[0].Installment == 1 && rows[0].InstallmentTotal == 1 &&
			rows[0].Amount.Equal(decimal.RequireFromString("99.90"))
	}), mock.MatchedBy(amountEq("99.90"))).Return(nil)

	rows, err := s.service.CreateCardPurchase(ctx, s.userID, s.purchaseRequest("99.90", 1))

	s.NoError(err)
	s.Len(rows, 1)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CardTransactionServiceTestSuite) TestCreateCardPurchase_AllocatesInstallmentGroup() {
	ctx := context.Background()
	s.mockCards.On("FindCardByID", ctx, s.cardID).Return(s.ownedCard(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(s.expenseCategory(), nil)
	s.mockRepo.On("SaveCardTransactionGroup", ctx, mock.Anything, mock.MatchedBy(amountEq("100.00"))).Return(nil)

	rows, err := s.service.CreateCardPurchase(ctx, s.userID, s.purchaseRequest("100.00", 7))
	s.Require().NoError(err)
	s.Require().Len(rows, 7)

	// Cent-exact allocation, front-loaded remainder.
	total := decimal.Zero
	for i, row := range rows {
		s.Equal(i+1, row.Installment)
		s.Equal(7, row.InstallmentTotal)
		s.Require().NotNil(row.GroupID)
		s.Equal(*rows[0].GroupID, *row.GroupID, "all rows share one group id")
		total = total.Add(row.Amount)
	}
	s.True(total.Equal(decimal.RequireFromString("100.00")))
	s.True(rows[0].Amount.Equal(decimal.RequireFromString("14.29")))
	s.True(rows[6].Amount.Equal(decimal.RequireFromString("14.28")))
}

func (s *CardTransactionServiceTestSuite) TestCreateCardPurchase_InstallmentDatesClampMonthEnds() {
	ctx := context.Background()
	s.mockCards.On("FindCardByID", ctx, s.cardID).Return(s.ownedCard(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(s.expenseCategory(), nil)
	s.mockRepo.On("SaveCardTransactionGroup", ctx, mock.Anything, mock.Anything).Return(nil)

	// Purchase on Jan 31: Feb clamps to 28, later months return to the 31st
	// where it exists.
	rows, err := s.service.CreateCardPurchase(ctx, s.userID, s.purchaseRequest("300.00", 3))
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal(time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC), rows[0].Date)
	s.Equal(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), rows[1].Date)
	s.Equal(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), rows[2].Date)
}

func (s *CardTransactionServiceTestSuite) TestCreateCardPurchase_RefundDecreasesCardAmount() {
	ctx := context.Background()
	incomeCat := s.expenseCategory()
	incomeCat.Kind = domain.Income
	s.mockCards.On("FindCardByID", ctx, s.cardID).Return(s.ownedCard(), nil)
	s.mockCats.On("FindCategoryByID", ctx, s.categoryID).Return(incomeCat, nil)
	s.mockRepo.On("SaveCardTransactionGroup", ctx, mock.Anything, mock.MatchedBy(amountEq("-45.00"))).Return(nil)

	req := s.purchaseRequest("45.00", 1)
	req.Kind = domain.Income

	_, err := s.service.CreateCardPurchase(ctx, s.userID, req)
	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CardTransactionServiceTestSuite) TestCreateCardPurchase_ForeignCardReadsAsNotFound() {
	ctx := context.Background()
	foreign := s.ownedCard()
	foreign.UserID = uuid.NewString()
	s.mockCards.On("FindCardByID", ctx, s.cardID).Return(foreign, nil)

	_, err := s.service.CreateCardPurchase(ctx, s.userID, s.purchaseRequest("10.00", 1))
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCardTransactionGroup", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CardTransactionServiceTestSuite) TestDeleteCardPurchase_GroupedRowRejected() {
	ctx := context.Background()
	groupID := uuid.NewString()
	row := &domain.CardTransaction{
		CardTransactionID: uuid.NewString(),
		UserID:            s.userID,
		CardID:            s.cardID,
		Amount:            decimal.RequireFromString("33.34"),
		Kind:              domain.Expense,
		Installment:       1,
		InstallmentTotal:  3,
		GroupID:           &groupID,
	}
	s.mockRepo.On("FindCardTransactionByID", ctx, row.CardTransactionID).Return(row, nil)

	err := s.service.DeleteCardPurchase(ctx, s.userID, row.CardTransactionID)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockRepo.AssertNotCalled(s.T(), "DeleteCardTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CardTransactionServiceTestSuite) TestDeleteCardPurchase_SingleRowReversesAmount() {
	ctx := context.Background()
	row := &domain.CardTransaction{
		CardTransactionID: uuid.NewString(),
		UserID:            s.userID,
		CardID:            s.cardID,
		Amount:            decimal.RequireFromString("75.00"),
		Kind:              domain.Expense,
		Installment:       1,
		InstallmentTotal:  1,
	}
	s.mockRepo.On("FindCardTransactionByID", ctx, row.CardTransactionID).Return(row, nil)
	s.mockRepo.On("DeleteCardTransaction", ctx, row.CardTransactionID, s.cardID,
		mock.MatchedBy(amountEq("-75.00"))).Return(nil)

	err := s.service.DeleteCardPurchase(ctx, s.userID, row.CardTransactionID)
	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CardTransactionServiceTestSuite) TestDeleteCardPurchaseGroup_ReversesWholeGroup() {
	ctx := context.Background()
	groupID := uuid.NewString()
	rows := []domain.CardTransaction{
		{CardTransactionID: uuid.NewString(), UserID: s.userID, CardID: s.cardID, Amount: decimal.RequireFromString("33.34"), Kind: domain.Expense, GroupID: &groupID},
		{CardTransactionID: uuid.NewString(), UserID: s.userID, CardID: s.cardID, Amount: decimal.RequireFromString("33.33"), Kind: domain.Expense, GroupID: &groupID},
		{CardTransactionID: uuid.NewString(), UserID: s.userID, CardID: s.cardID, Amount: decimal.RequireFromString("33.33"), Kind: domain.Expense, GroupID: &groupID},
	}
	s.mockRepo.On("FindCardTransactionsByGroupID", ctx, groupID).Return(rows, nil)
	s.mockRepo.On("DeleteCardTransactionGroup", ctx, groupID, s.cardID,
		mock.MatchedBy(amountEq("-100.00"))).Return(nil)

	err := s.service.DeleteCardPurchaseGroup(ctx, s.userID, groupID)
	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CardTransactionServiceTestSuite) TestDeleteCardPurchaseGroup_ForeignGroupReadsAsNotFound() {
	ctx := context.Background()
	groupID := uuid.NewString()
	rows := []domain.CardTransaction{
		{CardTransactionID: uuid.NewString(), UserID: uuid.NewString(), CardID: s.cardID, Amount: decimal.RequireFromString("10.00"), Kind: domain.Expense, GroupID: &groupID},
	}
	s.mockRepo.On("FindCardTransactionsByGroupID", ctx, groupID).Return(rows, nil)

	err := s.service.DeleteCardPurchaseGroup(ctx, s.userID, groupID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CardTransactionServiceTestSuite) TestListCardTransactions_StatementBucketing() {
	ctx := context.Background()
	card := s.ownedCard() // due day 15, closing day 9
	s.mockCards.On("FindCardByID", ctx, s.cardID).Return(card, nil)

	rows := []domain.CardTransaction{
		// March 8: before the closing day, March statement.
		{CardTransactionID: "in-cycle", UserID: s.userID, CardID: s.cardID, Date: time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)},
		// March 9: on the closing day, rolls to April.
		{CardTransactionID: "next-cycle", UserID: s.userID, CardID: s.cardID, Date: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)},
		// February 20: after February's closing, March statement.
		{CardTransactionID: "from-feb", UserID: s.userID, CardID: s.cardID, Date: time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)},
	}
	s.mockRepo.On("ListCardTransactions", ctx, s.cardID).Return(rows, nil)

	got, err := s.service.ListCardTransactions(ctx, s.userID, s.cardID, dto.ListCardTransactionsParams{Month: 3, Year: 2026})
	s.Require().NoError(err)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.CardTransactionID)
	}
	s.ElementsMatch(ids, []string{"in-cycle", "from-feb"})
}

func (s *CardTransactionServiceTestSuite) TestListCardTransactions_MonthWithoutYearRejected() {
	ctx := context.Background()
	s.mockCards.On("FindCardByID", ctx, s.cardID).Return(s.ownedCard(), nil)

	_, err := s.service.ListCardTransactions(ctx, s.userID, s.cardID, dto.ListCardTransactionsParams{Month: 3})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestCardTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CardTransactionServiceTestSuite))
}
