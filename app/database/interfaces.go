package database

// PassRepository stores and reads pass telemetry.
type PassRepository interface {
	RecordPass(pass Pass) error
	GetRecentPasses(limit int) ([]Pass, error)
	GetPassCount() (int, error)
}
