package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Goal() GoalRepository
	PotentialRisk() PotentialRiskRepository
	RiskCause() RiskCauseRepository
	ControlMeasure() ControlMeasureRepository
	MonitoringSession() MonitoringSessionRepository
	RiskExposure() RiskExposureRepository
	UPR() UPRRepository
	User() UserRepository

	Close() error
}
