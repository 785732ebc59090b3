package memory

import (
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
)

// Memory is an in-memory repository for tests and local development
type Memory struct {
	goal           *goalRepository
	potentialRisk  *potentialRiskRepository
	riskCause      *riskCauseRepository
	controlMeasure *controlMeasureRepository
	session        *sessionRepository
	exposure       *exposureRepository
	upr            *uprRepository
	user           *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		goal:           newGoalRepository(),
		potentialRisk:  newPotentialRiskRepository(),
		riskCause:      newRiskCauseRepository(),
		controlMeasure: newControlMeasureRepository(),
		session:        newSessionRepository(),
		exposure:       newExposureRepository(),
		upr:            newUPRRepository(),
		user:           newUserRepository(),
	}
}

func (m *Memory) Goal() interfaces.GoalRepository {
	return m.goal
}

func (m *Memory) PotentialRisk() interfaces.PotentialRiskRepository {
	return m.potentialRisk
}

func (m *Memory) RiskCause() interfaces.RiskCauseRepository {
	return m.riskCause
}

func (m *Memory) ControlMeasure() interfaces.ControlMeasureRepository {
	return m.controlMeasure
}

func (m *Memory) MonitoringSession() interfaces.MonitoringSessionRepository {
	return m.session
}

func (m *Memory) RiskExposure() interfaces.RiskExposureRepository {
	return m.exposure
}

func (m *Memory) UPR() interfaces.UPRRepository {
	return m.upr
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Close() error {
	return nil
}
