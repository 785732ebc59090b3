package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/upr-lab/riskwise/pkg/domain/interfaces"
	"github.com/upr-lab/riskwise/pkg/domain/model"
	"github.com/upr-lab/riskwise/pkg/domain/types"
	"github.com/upr-lab/riskwise/pkg/utils/logging"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// goalCodeFallbackPrefix is used when the goal name does not start with a
// Latin letter
const goalCodeFallbackPrefix = "S"

// GoalUseCase owns the top level of the entity hierarchy. Deleting a goal
// cascades through potential risks down to control measures.
type GoalUseCase struct {
	repo          interfaces.Repository
	potentialRisk *PotentialRiskUseCase
	collator      *collate.Collator
}

func NewGoalUseCase(repo interfaces.Repository, potentialRisk *PotentialRiskUseCase) *GoalUseCase {
	return &GoalUseCase{
		repo:          repo,
		potentialRisk: potentialRisk,
		collator:      collate.New(language.Und, collate.Numeric),
	}
}

// GenerateGoalCode computes the next goal code for the scope: the prefix is
// the upper-cased first letter of the name (or "S" when the name does not
// start with A-Z), followed by max existing numeric suffix + 1.
//
// A failed lookup does not block creation: the code falls back to a random
// numeric suffix. Two concurrent creations can also race on the same
// max value. Uniqueness is best effort, not enforced by the store.
func (uc *GoalUseCase) GenerateGoalCode(ctx context.Context, scope model.Scope, name string) string {
	prefix := goalCodePrefix(name)

	goals, err := uc.repo.Goal().List(ctx, scope)
	if err != nil {
		code := fmt.Sprintf("%s%d", prefix, 100+rand.IntN(900))
		logging.From(ctx).Warn("goal code lookup failed, using random fallback",
			"error", err.Error(),
			"code", code,
		)
		return code
	}

	maxNum := 0
	for _, g := range goals {
		if !strings.HasPrefix(g.Code, prefix) {
			continue
		}
		if n, err := strconv.Atoi(g.Code[len(prefix):]); err == nil && n > maxNum {
			maxNum = n
		}
	}

	return fmt.Sprintf("%s%d", prefix, maxNum+1)
}

func goalCodePrefix(name string) string {
	if name == "" {
		return goalCodeFallbackPrefix
	}
	c := name[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return string(c)
	case c >= 'a' && c <= 'z':
		return strings.ToUpper(string(c))
	default:
		return goalCodeFallbackPrefix
	}
}

// Add creates a goal with a freshly generated code
func (uc *GoalUseCase) Add(ctx context.Context, scope model.Scope, name, description string) (*model.Goal, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, goerr.New("goal name is required")
	}

	goal := &model.Goal{
		Scope:       scope,
		Name:        name,
		Description: description,
		Code:        uc.GenerateGoalCode(ctx, scope, name),
	}

	created, err := uc.repo.Goal().Create(ctx, goal)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create goal")
	}

	return created, nil
}

// List returns the scope's goals ordered by code with numeric-aware
// collation, so "S2" sorts before "S10"
func (uc *GoalUseCase) List(ctx context.Context, scope model.Scope) ([]*model.Goal, error) {
	goals, err := uc.repo.Goal().List(ctx, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list goals")
	}

	sort.SliceStable(goals, func(i, j int) bool {
		return uc.collator.CompareString(goals[i].Code, goals[j].Code) < 0
	})

	return goals, nil
}

// Get returns the goal, or nil when it does not exist or belongs to
// another scope. Invisible and absent are indistinguishable to callers.
func (uc *GoalUseCase) Get(ctx context.Context, id types.GoalID, scope model.Scope) (*model.Goal, error) {
	goal, err := uc.repo.Goal().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get goal")
	}
	if !goal.Scope.Matches(scope) {
		return nil, nil
	}

	return goal, nil
}

// Update patches name and description. Scope and code never change.
func (uc *GoalUseCase) Update(ctx context.Context, id types.GoalID, scope model.Scope, update model.GoalUpdate) (*model.Goal, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, goerr.New("goal name is required")
	}

	existing, err := uc.repo.Goal().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get goal", goerr.V("id", id))
	}
	if !existing.Scope.Matches(scope) {
		return nil, goerr.Wrap(ErrScopeMismatch, "cannot update goal", goerr.V("id", id))
	}

	updated, err := uc.repo.Goal().Update(ctx, id, update)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update goal", goerr.V("id", id))
	}

	return updated, nil
}

// Delete removes the goal and all of its descendants. The cascade is
// depth-first and sequential: each potential risk's subtree is fully
// removed before the goal document itself. A descendant that is already
// gone is logged and skipped; any other failure aborts the cascade
// naming the level that failed. There is no transaction around the
// walk, so an abort can leave the subtree partially deleted.
func (uc *GoalUseCase) Delete(ctx context.Context, id types.GoalID, scope model.Scope) error {
	logger := logging.From(ctx)

	existing, err := uc.repo.Goal().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("goal already deleted", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to get goal", goerr.V("id", id), goerr.V("level", "goal"))
	}
	if !existing.Scope.Matches(scope) {
		return goerr.Wrap(ErrScopeMismatch, "cannot delete goal", goerr.V("id", id))
	}

	risks, err := uc.repo.PotentialRisk().ListByGoal(ctx, id, scope)
	if err != nil {
		return goerr.Wrap(err, "failed to list potential risks for cascade",
			goerr.V("goalID", id), goerr.V("level", "potential_risk"))
	}

	for _, risk := range risks {
		if err := uc.potentialRisk.DeleteCascading(ctx, risk.ID, scope); err != nil {
			return goerr.Wrap(err, "cascade failed at potential risk",
				goerr.V("goalID", id),
				goerr.V("potentialRiskID", risk.ID),
				goerr.V("level", "potential_risk"))
		}
	}

	if err := uc.repo.Goal().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logger.Warn("goal vanished during cascade", "id", id)
			return nil
		}
		return goerr.Wrap(err, "failed to delete goal", goerr.V("id", id), goerr.V("level", "goal"))
	}

	return nil
}
