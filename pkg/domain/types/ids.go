package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// GoalID identifies a Goal document
type GoalID string

// NewGoalID generates a new random GoalID
func NewGoalID() GoalID {
	return GoalID(uuid.NewString())
}

// Validate checks if the GoalID is valid
func (x GoalID) Validate() error {
	if x == "" {
		return goerr.New("goal ID cannot be empty")
	}
	return nil
}

// String returns the string representation of GoalID
func (x GoalID) String() string {
	return string(x)
}

// PotentialRiskID identifies a PotentialRisk document
type PotentialRiskID string

// NewPotentialRiskID generates a new random PotentialRiskID
func NewPotentialRiskID() PotentialRiskID {
	return PotentialRiskID(uuid.NewString())
}

// Validate checks if the PotentialRiskID is valid
func (x PotentialRiskID) Validate() error {
	if x == "" {
		return goerr.New("potential risk ID cannot be empty")
	}
	return nil
}

// String returns the string representation of PotentialRiskID
func (x PotentialRiskID) String() string {
	return string(x)
}

// RiskCauseID identifies a RiskCause document
type RiskCauseID string

// NewRiskCauseID generates a new random RiskCauseID
func NewRiskCauseID() RiskCauseID {
	return RiskCauseID(uuid.NewString())
}

// Validate checks if the RiskCauseID is valid
func (x RiskCauseID) Validate() error {
	if x == "" {
		return goerr.New("risk cause ID cannot be empty")
	}
	return nil
}

// String returns the string representation of RiskCauseID
func (x RiskCauseID) String() string {
	return string(x)
}

// ControlMeasureID identifies a ControlMeasure document
type ControlMeasureID string

// NewControlMeasureID generates a new random ControlMeasureID
func NewControlMeasureID() ControlMeasureID {
	return ControlMeasureID(uuid.NewString())
}

// Validate checks if the ControlMeasureID is valid
func (x ControlMeasureID) Validate() error {
	if x == "" {
		return goerr.New("control measure ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ControlMeasureID
func (x ControlMeasureID) String() string {
	return string(x)
}

// SessionID identifies a MonitoringSession document
type SessionID string

// NewSessionID generates a new random SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Validate checks if the SessionID is valid
func (x SessionID) Validate() error {
	if x == "" {
		return goerr.New("monitoring session ID cannot be empty")
	}
	return nil
}

// String returns the string representation of SessionID
func (x SessionID) String() string {
	return string(x)
}

// ExposureID identifies a RiskExposure document
type ExposureID string

// NewExposureID generates a new random ExposureID
func NewExposureID() ExposureID {
	return ExposureID(uuid.NewString())
}

// Validate checks if the ExposureID is valid
func (x ExposureID) Validate() error {
	if x == "" {
		return goerr.New("risk exposure ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ExposureID
func (x ExposureID) String() string {
	return string(x)
}

// UPRID identifies an organizational unit (Unit Pemilik Risiko)
type UPRID string

// NewUPRID generates a new random UPRID
func NewUPRID() UPRID {
	return UPRID(uuid.NewString())
}

// Validate checks if the UPRID is valid
func (x UPRID) Validate() error {
	if x == "" {
		return goerr.New("UPR ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UPRID
func (x UPRID) String() string {
	return string(x)
}

// UserID identifies an application user
type UserID string

// Validate checks if the UserID is valid
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (x UserID) String() string {
	return string(x)
}
