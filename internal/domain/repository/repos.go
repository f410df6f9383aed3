package repository

// Repos agrupa los repositorios ligados a una misma transacción (o sin transacción).
type Repos struct {
	Employees     EmployeeRepository
	Clients       ClientRepository
	Parts         SparePartRepository
	Actions       ServiceActionRepository
	Orders        RepairOrderRepository
	Estimates     CostEstimateRepository
	PartOrders    PartOrderRepository
	Invoices      InvoiceRepository
	WorkLogs      WorkLogRepository
	Discrepancies DiscrepancyRepository
}
