package repository

// TxRepositories son los repositorios atados a una misma transacción.
type TxRepositories struct {
	Products    ProductRepository
	Assignments AssignmentRepository
	Invoices    InvoiceRepository
	Payments    PaymentRepository
	Movements   StockMovementRepository
	Activity    ActivityRepository
}
