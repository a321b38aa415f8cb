package repository

// Factory describes access to different domain repositories.
type Factory interface {
	SnapshotReader
	HealthChecker

	Users() UserRepository
	Activity() ActivityRepository
	Close() error
}
