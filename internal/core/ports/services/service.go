package services

// ServiceContainer holds all the service facades handed to the HTTP layer.
type ServiceContainer struct {
	User            UserSvcFacade
	Account         AccountSvcFacade
	Category        CategorySvcFacade
	Budget          BudgetSvcFacade
	Transaction     TransactionSvcFacade
	Card            CardSvcFacade
	CardTransaction CardTransactionSvcFacade
	Reporting       ReportingSvcFacade
}
