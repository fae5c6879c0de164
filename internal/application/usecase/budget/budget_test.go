// Package budget contains the monthly budget use cases.
package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

// fakeBudgetRepo is an in-memory BudgetRepository keyed by scope and month.
type fakeBudgetRepo struct {
	budgets map[uuid.UUID]*entity.Budget
}

func newFakeBudgetRepo(budgets ...*entity.Budget) *fakeBudgetRepo {
	repo := &fakeBudgetRepo{budgets: make(map[uuid.UUID]*entity.Budget)}
	for _, budget := range budgets {
		repo.budgets[budget.ID] = budget
	}
	return repo
}

func (r *fakeBudgetRepo) Create(_ context.Context, budget *entity.Budget) error {
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return budget, nil
}

func (r *fakeBudgetRepo) FindAll(context.Context) ([]*entity.Budget, error) {
	budgets := make([]*entity.Budget, 0, len(r.budgets))
	for _, budget := range r.budgets {
		budgets = append(budgets, budget)
	}
	return budgets, nil
}

func (r *fakeBudgetRepo) FindByCardAndMonth(_ context.Context, cardID *uuid.UUID, month string) (*entity.Budget, error) {
	for _, budget := range r.budgets {
		if budget.Month != month {
			continue
		}
		if (budget.CardID == nil) != (cardID == nil) {
			continue
		}
		if cardID == nil || *budget.CardID == *cardID {
			return budget, nil
		}
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepo) FindByCardAndYear(context.Context, *uuid.UUID, int) ([]*entity.Budget, error) {
	return nil, nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, budget *entity.Budget) error {
	if _, ok := r.budgets[budget.ID]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.budgets[id]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	delete(r.budgets, id)
	return nil
}

// fakeCardRepo only answers FindByID; the budget use cases need nothing else.
type fakeCardRepo struct {
	cards map[uuid.UUID]*entity.Card
}

func (r *fakeCardRepo) Create(context.Context, *entity.Card) error { return nil }

func (r *fakeCardRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Card, error) {
	card, ok := r.cards[id]
	if !ok {
		return nil, domainerror.ErrCardNotFound
	}
	return card, nil
}

func (r *fakeCardRepo) FindAll(context.Context) ([]*entity.Card, error) { return nil, nil }

func (r *fakeCardRepo) Update(context.Context, *entity.Card) error { return nil }

func (r *fakeCardRepo) Delete(context.Context, uuid.UUID) error { return nil }

func TestCreateBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an all-cards budget", func(t *testing.T) {
		repo := newFakeBudgetRepo()
		uc := NewCreateBudgetUseCase(repo, &fakeCardRepo{})

		output, err := uc.Execute(ctx, CreateBudgetInput{Month: "2026-09", Amount: decimal.NewFromInt(500)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.CardID != nil {
			t.Error("expected an all-cards budget")
		}
		if output.Month != "2026-09" {
			t.Errorf("expected month 2026-09, got %s", output.Month)
		}
		if len(repo.budgets) != 1 {
			t.Errorf("expected 1 stored budget, got %d", len(repo.budgets))
		}
	})

	t.Run("rejects a malformed month", func(t *testing.T) {
		uc := NewCreateBudgetUseCase(newFakeBudgetRepo(), &fakeCardRepo{})

		for _, month := range []string{"2026", "09-2026", "2026-13", "september"} {
			_, err := uc.Execute(ctx, CreateBudgetInput{Month: month, Amount: decimal.NewFromInt(100)})
			if !errors.Is(err, domainerror.ErrInvalidBudgetMonth) {
				t.Errorf("expected ErrInvalidBudgetMonth for %q, got %v", month, err)
			}
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		uc := NewCreateBudgetUseCase(newFakeBudgetRepo(), &fakeCardRepo{})

		for _, amount := range []int64{0, -50} {
			_, err := uc.Execute(ctx, CreateBudgetInput{Month: "2026-09", Amount: decimal.NewFromInt(amount)})
			if !errors.Is(err, domainerror.ErrInvalidBudgetAmount) {
				t.Errorf("expected ErrInvalidBudgetAmount for %d, got %v", amount, err)
			}
		}
	})

	t.Run("rejects a duplicate month in the same scope", func(t *testing.T) {
		existing := entity.NewBudget(nil, "2026-09", decimal.NewFromInt(500))
		uc := NewCreateBudgetUseCase(newFakeBudgetRepo(existing), &fakeCardRepo{})

		_, err := uc.Execute(ctx, CreateBudgetInput{Month: "2026-09", Amount: decimal.NewFromInt(700)})
		if !errors.Is(err, domainerror.ErrDuplicateBudget) {
			t.Fatalf("expected ErrDuplicateBudget, got %v", err)
		}
	})

	t.Run("a card budget does not collide with the all-cards budget", func(t *testing.T) {
		card := entity.NewCard("Main", "1111", valueobject.CurrencyUSD, "")
		existing := entity.NewBudget(nil, "2026-09", decimal.NewFromInt(500))
		uc := NewCreateBudgetUseCase(
			newFakeBudgetRepo(existing),
			&fakeCardRepo{cards: map[uuid.UUID]*entity.Card{card.ID: card}},
		)

		output, err := uc.Execute(ctx, CreateBudgetInput{CardID: &card.ID, Month: "2026-09", Amount: decimal.NewFromInt(200)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.CardID == nil || *output.CardID != card.ID {
			t.Error("expected the budget to be scoped to the card")
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		uc := NewCreateBudgetUseCase(newFakeBudgetRepo(), &fakeCardRepo{})

		missing := uuid.New()
		_, err := uc.Execute(ctx, CreateBudgetInput{CardID: &missing, Month: "2026-09", Amount: decimal.NewFromInt(100)})
		if !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Fatalf("expected ErrCardNotFound, got %v", err)
		}
	})
}

func TestUpdateBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the budget to a free month", func(t *testing.T) {
		budget := entity.NewBudget(nil, "2026-09", decimal.NewFromInt(500))
		uc := NewUpdateBudgetUseCase(newFakeBudgetRepo(budget))

		month := "2026-10"
		output, err := uc.Execute(ctx, UpdateBudgetInput{ID: budget.ID, Month: &month})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Month != "2026-10" {
			t.Errorf("expected month 2026-10, got %s", output.Month)
		}
	})

	t.Run("rejects moving onto an occupied month", func(t *testing.T) {
		budget := entity.NewBudget(nil, "2026-09", decimal.NewFromInt(500))
		occupied := entity.NewBudget(nil, "2026-10", decimal.NewFromInt(300))
		uc := NewUpdateBudgetUseCase(newFakeBudgetRepo(budget, occupied))

		month := "2026-10"
		_, err := uc.Execute(ctx, UpdateBudgetInput{ID: budget.ID, Month: &month})
		if !errors.Is(err, domainerror.ErrDuplicateBudget) {
			t.Fatalf("expected ErrDuplicateBudget, got %v", err)
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		budget := entity.NewBudget(nil, "2026-09", decimal.NewFromInt(500))
		uc := NewUpdateBudgetUseCase(newFakeBudgetRepo(budget))

		zero := decimal.Zero
		_, err := uc.Execute(ctx, UpdateBudgetInput{ID: budget.ID, Amount: &zero})
		if !errors.Is(err, domainerror.ErrInvalidBudgetAmount) {
			t.Fatalf("expected ErrInvalidBudgetAmount, got %v", err)
		}
	})

	t.Run("unknown budget", func(t *testing.T) {
		uc := NewUpdateBudgetUseCase(newFakeBudgetRepo())

		amount := decimal.NewFromInt(100)
		_, err := uc.Execute(ctx, UpdateBudgetInput{ID: uuid.New(), Amount: &amount})
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})
}

func TestDeleteBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing budget", func(t *testing.T) {
		budget := entity.NewBudget(nil, "2026-09", decimal.NewFromInt(500))
		repo := newFakeBudgetRepo(budget)
		uc := NewDeleteBudgetUseCase(repo)

		if err := uc.Execute(ctx, DeleteBudgetInput{ID: budget.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.budgets) != 0 {
			t.Errorf("expected the budget to be gone, got %d left", len(repo.budgets))
		}
	})

	t.Run("unknown budget", func(t *testing.T) {
		uc := NewDeleteBudgetUseCase(newFakeBudgetRepo())

		err := uc.Execute(ctx, DeleteBudgetInput{ID: uuid.New()})
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})
}

func TestListBudgets(t *testing.T) {
	first := entity.NewBudget(nil, "2026-08", decimal.NewFromInt(400))
	second := entity.NewBudget(nil, "2026-09", decimal.NewFromInt(500))
	uc := NewListBudgetsUseCase(newFakeBudgetRepo(first, second))

	output, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Budgets) != 2 {
		t.Errorf("expected 2 budgets, got %d", len(output.Budgets))
	}
}
