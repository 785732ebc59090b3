package usecase

import (
	"github.com/m-mizutani/gollem"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model/config"
)

type UseCases struct {
	repo      interfaces.Repository
	appConfig *config.AppConfig
	llmClient gollem.LLMClient

	Goal           *GoalUseCase
	PotentialRisk  *PotentialRiskUseCase
	RiskCause      *RiskCauseUseCase
	ControlMeasure *ControlMeasureUseCase
	Monitoring     *MonitoringUseCase
	UPR            *UPRUseCase
	User           *UserUseCase
	Suggest        *SuggestUseCase
}

type Option func(*UseCases)

// WithAppConfig overrides the default form vocabularies
func WithAppConfig(cfg *config.AppConfig) Option {
	return func(uc *UseCases) {
		uc.appConfig = cfg
	}
}

// WithLLMClient enables the AI control measure suggestion flow
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		appConfig: config.Default(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	// Cascades delegate downward, so managers are wired leaf-first
	uc.ControlMeasure = NewControlMeasureUseCase(repo)
	uc.RiskCause = NewRiskCauseUseCase(repo, uc.appConfig, uc.ControlMeasure)
	uc.PotentialRisk = NewPotentialRiskUseCase(repo, uc.appConfig, uc.RiskCause)
	uc.Goal = NewGoalUseCase(repo, uc.PotentialRisk)
	uc.Monitoring = NewMonitoringUseCase(repo)
	uc.UPR = NewUPRUseCase(repo)
	uc.User = NewUserUseCase(repo)
	uc.Suggest = NewSuggestUseCase(repo, uc.llmClient)

	return uc
}

// AppConfig returns the active form vocabularies
func (uc *UseCases) AppConfig() *config.AppConfig {
	return uc.appConfig
}
