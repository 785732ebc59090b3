package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/repository/memory"
	"github.com/upr-lab/riskwise/pkg/usecase"
)

type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{`{"suggestedControls":[]}`}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// suggestFixture sets up use cases backed by the given canned LLM text and
// returns a fully analyzed risk cause to ask suggestions for.
func suggestFixture(t *testing.T, responseText string) (*usecase.UseCases, *model.RiskCause) {
	t.Helper()

	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{responseText}}, nil
				},
			}, nil
		},
	}
	uc := usecase.New(memory.New(), usecase.WithLLMClient(llm))

	cause := seedRiskCause(t, uc, testScope)
	likelihood := types.LikelihoodFrequent
	impact := types.ImpactSignificant
	_, err := uc.RiskCause.Update(context.Background(), cause.ID, testScope, model.RiskCauseUpdate{
		Likelihood: &likelihood,
		Impact:     &impact,
	})
	gt.NoError(t, err).Required()

	return uc, cause
}

func TestSuggestUseCase_Suggest(t *testing.T) {
	t.Run("parses suggestions from the model output", func(t *testing.T) {
		uc, cause := suggestFixture(t, `{"suggestedControls":[
			{"description":"Pelatihan rutin","suggestedControlType":"Prv","justification":"Meningkatkan kesadaran","suggestedKCI":"95% staf terlatih","suggestedTarget":"3 bulan"},
			{"description":"Rencana pemulihan","suggestedControlType":"RM","justification":"Mengurangi dampak","suggestedKCI":null,"suggestedTarget":null}
		]}`)

		suggestions, err := uc.Suggest.Suggest(context.Background(), testScope, cause.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, suggestions).Length(2).Required()

		gt.Value(t, suggestions[0].Description).Equal("Pelatihan rutin")
		gt.Value(t, suggestions[0].ControlType).Equal(types.ControlTypePreventive)
		gt.Value(t, suggestions[0].KCI).Equal("95% staf terlatih")

		gt.Value(t, suggestions[1].ControlType).Equal(types.ControlTypeMitigation)
		gt.Value(t, suggestions[1].KCI).Equal("")
		gt.Value(t, suggestions[1].Target).Equal("")
	})

	t.Run("coerces unknown control types to preventive", func(t *testing.T) {
		uc, cause := suggestFixture(t, `{"suggestedControls":[
			{"description":"Audit berkala","suggestedControlType":"Detektif","justification":"x"}
		]}`)

		suggestions, err := uc.Suggest.Suggest(context.Background(), testScope, cause.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, suggestions).Length(1).Required()
		gt.Value(t, suggestions[0].ControlType).Equal(types.ControlTypePreventive)
	})

	t.Run("truncates to three suggestions", func(t *testing.T) {
		uc, cause := suggestFixture(t, `{"suggestedControls":[
			{"description":"Satu","suggestedControlType":"Prv","justification":"a"},
			{"description":"Dua","suggestedControlType":"Prv","justification":"b"},
			{"description":"Tiga","suggestedControlType":"Prv","justification":"c"},
			{"description":"Empat","suggestedControlType":"Prv","justification":"d"}
		]}`)

		suggestions, err := uc.Suggest.Suggest(context.Background(), testScope, cause.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, suggestions).Length(3)
	})

	t.Run("malformed output yields empty suggestions", func(t *testing.T) {
		uc, cause := suggestFixture(t, `this is not JSON`)

		suggestions, err := uc.Suggest.Suggest(context.Background(), testScope, cause.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, suggestions).Length(0)
	})

	t.Run("non-string KCI and target become empty", func(t *testing.T) {
		uc, cause := suggestFixture(t, `{"suggestedControls":[
			{"description":"Pengendalian","suggestedControlType":"Crr","justification":"x","suggestedKCI":42,"suggestedTarget":{"v":1}}
		]}`)

		suggestions, err := uc.Suggest.Suggest(context.Background(), testScope, cause.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, suggestions).Length(1).Required()
		gt.Value(t, suggestions[0].KCI).Equal("")
		gt.Value(t, suggestions[0].Target).Equal("")
	})

	t.Run("without an LLM client suggestions are unavailable", func(t *testing.T) {
		uc := newTestUseCases()
		cause := seedRiskCause(t, uc, testScope)

		_, err := uc.Suggest.Suggest(context.Background(), testScope, cause.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrSuggestionUnavailable)).True()
	})

	t.Run("missing cause fails", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithLLMClient(&mockLLMClient{}))

		_, err := uc.Suggest.Suggest(context.Background(), testScope, "no-such-cause")
		gt.Bool(t, errors.Is(err, usecase.ErrParentNotFound)).True()
	})

	t.Run("prompt carries the cause context", func(t *testing.T) {
		var captured string
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						if text, ok := input[0].(gollem.Text); ok {
							captured = string(text)
						}
						return &gollem.Response{Texts: []string{`{"suggestedControls":[]}`}}, nil
					},
				}, nil
			},
		}
		uc := usecase.New(memory.New(), usecase.WithLLMClient(llm))
		cause := seedRiskCause(t, uc, testScope)

		_, err := uc.Suggest.Suggest(context.Background(), testScope, cause.ID)
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.Contains(captured, cause.Description)).True()
		// No analysis recorded yet, so both fields fall back
		gt.Bool(t, strings.Contains(captured, "Belum dianalisis")).True()
		gt.Bool(t, strings.Contains(captured, `"N/A"`)).True()
	})
}
