package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

//go:embed prompt/suggest_control_measures.md
var suggestControlMeasuresTmpl string

var suggestControlMeasuresPrompt = template.Must(template.New("suggest_control_measures").Parse(suggestControlMeasuresTmpl))

// maxSuggestedControls caps how many control measure suggestions a single
// request returns, regardless of how many the model produced.
const maxSuggestedControls = 3

// notAnalyzedText is substituted into the prompt when a risk cause has no
// likelihood or impact assessment yet.
const notAnalyzedText = "Belum dianalisis"

// SuggestUseCase asks an LLM for control measure suggestions for a risk
// cause, using the cause's full ancestry as context.
type SuggestUseCase struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient
}

// NewSuggestUseCase creates a new SuggestUseCase. llmClient may be nil, in
// which case Suggest returns ErrSuggestionUnavailable.
func NewSuggestUseCase(repo interfaces.Repository, llmClient gollem.LLMClient) *SuggestUseCase {
	return &SuggestUseCase{
		repo:      repo,
		llmClient: llmClient,
	}
}

// suggestedControlsOutput is the JSON structure the LLM session is asked to
// produce. KCI and Target are decoded as any because models sometimes return
// null or non-string values for them.
type suggestedControlsOutput struct {
	SuggestedControls []struct {
		Description   string `json:"description"`
		ControlType   string `json:"suggestedControlType"`
		Justification string `json:"justification"`
		KCI           any    `json:"suggestedKCI"`
		Target        any    `json:"suggestedTarget"`
	} `json:"suggestedControls"`
}

// Suggest generates up to three control measure suggestions for the given
// risk cause. A missing or out-of-scope cause yields ErrParentNotFound. A
// response the model formats badly yields an empty slice, not an error.
func (uc *SuggestUseCase) Suggest(ctx context.Context, scope model.Scope, riskCauseID types.RiskCauseID) ([]model.SuggestedControl, error) {
	if uc.llmClient == nil {
		return nil, ErrSuggestionUnavailable
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	cause, err := uc.repo.RiskCause().Get(ctx, riskCauseID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrParentNotFound, "risk cause not found", goerr.V("riskCauseID", riskCauseID))
		}
		return nil, goerr.Wrap(err, "failed to get risk cause", goerr.V("riskCauseID", riskCauseID))
	}
	if !cause.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrParentNotFound, "risk cause not found in scope", goerr.V("riskCauseID", riskCauseID))
	}

	level, _ := cause.RiskLevel()
	req := model.SuggestionRequest{
		RiskCauseDescription: cause.Description,
		RiskLevelText:        level,
		Likelihood:           cause.Likelihood,
		Impact:               cause.Impact,
	}

	// The parent risk and the ancestor goal live in different collections,
	// so fetch them concurrently.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		risk, err := uc.repo.PotentialRisk().Get(egCtx, cause.PotentialRiskID)
		if err != nil {
			return goerr.Wrap(err, "failed to get parent potential risk", goerr.V("potentialRiskID", cause.PotentialRiskID))
		}
		req.PotentialRiskDescription = risk.Description
		return nil
	})
	eg.Go(func() error {
		goal, err := uc.repo.Goal().Get(egCtx, cause.GoalID)
		if err != nil {
			return goerr.Wrap(err, "failed to get ancestor goal", goerr.V("goalID", cause.GoalID))
		}
		req.GoalDescription = goal.Description
		if req.GoalDescription == "" {
			req.GoalDescription = goal.Name
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	prompt, err := buildSuggestPrompt(req)
	if err != nil {
		return nil, err
	}

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(suggestedControlsSchema()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session for control measure suggestions")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate control measure suggestions")
	}
	if len(resp.Texts) == 0 {
		logging.From(ctx).Warn("LLM returned no text for control measure suggestions", "riskCauseID", riskCauseID)
		return []model.SuggestedControl{}, nil
	}

	var output suggestedControlsOutput
	if err := json.Unmarshal([]byte(resp.Texts[0]), &output); err != nil {
		logging.From(ctx).Warn("failed to parse control measure suggestions, returning none",
			"riskCauseID", riskCauseID,
			"error", err,
		)
		return []model.SuggestedControl{}, nil
	}

	suggestions := make([]model.SuggestedControl, 0, len(output.SuggestedControls))
	for _, s := range output.SuggestedControls {
		if len(suggestions) >= maxSuggestedControls {
			break
		}
		if s.Description == "" {
			continue
		}
		suggestions = append(suggestions, model.SuggestedControl{
			Description:   s.Description,
			ControlType:   types.CoerceControlType(s.ControlType),
			Justification: s.Justification,
			KCI:           stringOrEmpty(s.KCI),
			Target:        stringOrEmpty(s.Target),
		})
	}

	return suggestions, nil
}

func buildSuggestPrompt(req model.SuggestionRequest) (string, error) {
	data := struct {
		RiskCauseDescription     string
		PotentialRiskDescription string
		GoalDescription          string
		RiskLevelText            string
		Likelihood               string
		Impact                   string
	}{
		RiskCauseDescription:     req.RiskCauseDescription,
		PotentialRiskDescription: req.PotentialRiskDescription,
		GoalDescription:          req.GoalDescription,
		RiskLevelText:            string(req.RiskLevelText),
		Likelihood:               notAnalyzedText,
		Impact:                   notAnalyzedText,
	}
	if req.Likelihood != "" {
		data.Likelihood = string(req.Likelihood)
	}
	if req.Impact != "" {
		data.Impact = string(req.Impact)
	}

	var buf bytes.Buffer
	if err := suggestControlMeasuresPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute control measure suggestion prompt template")
	}

	return buf.String(), nil
}

func suggestedControlsSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "SuggestedControls",
		Description: "Control measure suggestions for a risk cause",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"suggestedControls": {
				Type:        gollem.TypeArray,
				Description: "Up to 3 suggested control measures, all text in Indonesian",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"description": {
							Type:        gollem.TypeString,
							Description: "Description of the suggested control measure",
							Required:    true,
						},
						"suggestedControlType": {
							Type:        gollem.TypeString,
							Description: "Control type: 'Prv' (preventive), 'RM' (risk mitigation) or 'Crr' (corrective)",
							Required:    true,
						},
						"justification": {
							Type:        gollem.TypeString,
							Description: "Why this control measure is suggested",
							Required:    true,
						},
						"suggestedKCI": {
							Type:        gollem.TypeString,
							Description: "A SMART key control indicator, or null when none applies",
						},
						"suggestedTarget": {
							Type:        gollem.TypeString,
							Description: "A clear target for the KCI, or null when none applies",
						},
					},
				},
			},
		},
	}
}

func stringOrEmpty(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
