package repositories

// RepositoryProvider bundles all repositories for injection into the service layer.
type RepositoryProvider struct {
	UserRepo    UserRepository
	ContactRepo ContactRepository
}
