package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Services() ServiceRepository
	Requests() RequestRepository
	Orders() OrderRepository
	Reconciliations() ReconciliationRepository
}
