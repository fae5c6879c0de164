// Package card contains card-related use cases.
package card

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

// fakeCardRepo is an in-memory CardRepository preserving insertion order.
type fakeCardRepo struct {
	cards   map[uuid.UUID]*entity.Card
	order   []uuid.UUID
	deleted []uuid.UUID
}

func newFakeCardRepo(cards ...*entity.Card) *fakeCardRepo {
	repo := &fakeCardRepo{cards: make(map[uuid.UUID]*entity.Card)}
	for _, card := range cards {
		repo.cards[card.ID] = card
		repo.order = append(repo.order, card.ID)
	}
	return repo
}

func (r *fakeCardRepo) Create(_ context.Context, card *entity.Card) error {
	r.cards[card.ID] = card
	r.order = append(r.order, card.ID)
	return nil
}

func (r *fakeCardRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Card, error) {
	card, ok := r.cards[id]
	if !ok {
		return nil, domainerror.ErrCardNotFound
	}
	return card, nil
}

func (r *fakeCardRepo) FindAll(context.Context) ([]*entity.Card, error) {
	cards := make([]*entity.Card, 0, len(r.order))
	for _, id := range r.order {
		cards = append(cards, r.cards[id])
	}
	return cards, nil
}

func (r *fakeCardRepo) Update(_ context.Context, card *entity.Card) error {
	if _, ok := r.cards[card.ID]; !ok {
		return domainerror.ErrCardNotFound
	}
	r.cards[card.ID] = card
	return nil
}

func (r *fakeCardRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cards[id]; !ok {
		return domainerror.ErrCardNotFound
	}
	delete(r.cards, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// fakeTotalsRepo serves per-card totals and the in-use flag.
type fakeTotalsRepo struct {
	totals map[uuid.UUID]adapter.CardTotals
	inUse  map[uuid.UUID]bool
}

func (r *fakeTotalsRepo) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTotalsRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*entity.TransactionPage, error) {
	return &entity.TransactionPage{}, nil
}

func (r *fakeTotalsRepo) FindByCard(context.Context, uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTotalsRepo) HasTransactions(_ context.Context, cardID uuid.UUID) (bool, error) {
	return r.inUse[cardID], nil
}

func (r *fakeTotalsRepo) TotalsByCard(context.Context) (map[uuid.UUID]adapter.CardTotals, error) {
	return r.totals, nil
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("opens with a zero balance", func(t *testing.T) {
		repo := newFakeCardRepo()
		uc := NewCreateCardUseCase(repo)

		output, err := uc.Execute(ctx, CreateCardInput{
			Name:     "  Daily spending  ",
			Number:   "4412",
			Currency: "THB",
			Color:    "#f59e0b",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Card.Name != "Daily spending" {
			t.Errorf("expected trimmed name, got %q", output.Card.Name)
		}
		if !output.Card.Balance.IsZero() {
			t.Errorf("expected zero opening balance, got %s", output.Card.Balance)
		}
		if output.Card.FormattedBalance != "฿0" {
			t.Errorf("expected ฿0, got %s", output.Card.FormattedBalance)
		}
		if len(repo.cards) != 1 {
			t.Errorf("expected 1 stored card, got %d", len(repo.cards))
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		uc := NewCreateCardUseCase(newFakeCardRepo())

		_, err := uc.Execute(ctx, CreateCardInput{Name: "   ", Currency: "USD"})
		if !errors.Is(err, domainerror.ErrInvalidCardName) {
			t.Fatalf("expected ErrInvalidCardName, got %v", err)
		}
	})

	t.Run("rejects an overlong name", func(t *testing.T) {
		uc := NewCreateCardUseCase(newFakeCardRepo())

		_, err := uc.Execute(ctx, CreateCardInput{
			Name:     strings.Repeat("n", MaxCardNameLength+1),
			Currency: "USD",
		})
		if !errors.Is(err, domainerror.ErrInvalidCardName) {
			t.Fatalf("expected ErrInvalidCardName, got %v", err)
		}
	})

	t.Run("rejects an unsupported currency", func(t *testing.T) {
		uc := NewCreateCardUseCase(newFakeCardRepo())

		_, err := uc.Execute(ctx, CreateCardInput{Name: "Euros", Currency: "EUR"})
		if !errors.Is(err, domainerror.ErrInvalidCurrency) {
			t.Fatalf("expected ErrInvalidCurrency, got %v", err)
		}
	})
}

func TestListCards(t *testing.T) {
	ctx := context.Background()

	first := entity.NewCard("Salary", "1111", valueobject.CurrencyUSD, "#16a34a")
	second := entity.NewCard("Travel", "2222", valueobject.CurrencyTHB, "#2563eb")
	cardRepo := newFakeCardRepo(first, second)
	transactionRepo := &fakeTotalsRepo{totals: map[uuid.UUID]adapter.CardTotals{
		first.ID: {Income: decimal.NewFromInt(900), Expense: decimal.NewFromInt(400)},
	}}
	uc := NewListCardsUseCase(cardRepo, transactionRepo)

	output, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Cards) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(output.Cards))
	}
	if !output.Cards[0].Net.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected net 500 for the first card, got %s", output.Cards[0].Net)
	}
	if !output.Cards[1].Income.IsZero() || !output.Cards[1].Expense.IsZero() {
		t.Errorf("expected zero totals for the untouched card, got %+v", output.Cards[1])
	}
}

func TestUpdateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("edits only the requested fields", func(t *testing.T) {
		card := entity.NewCard("Old name", "3333", valueobject.CurrencyIDR, "#dc2626")
		repo := newFakeCardRepo(card)
		uc := NewUpdateCardUseCase(repo)

		name := "New name"
		output, err := uc.Execute(ctx, UpdateCardInput{CardID: card.ID, Name: &name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Card.Name != "New name" {
			t.Errorf("expected the new name, got %q", output.Card.Name)
		}
		if output.Card.Number != "3333" || output.Card.Color != "#dc2626" {
			t.Errorf("expected untouched fields to survive, got %+v", output.Card)
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		uc := NewUpdateCardUseCase(newFakeCardRepo())

		name := "Anything"
		_, err := uc.Execute(ctx, UpdateCardInput{CardID: uuid.New(), Name: &name})
		if !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Fatalf("expected ErrCardNotFound, got %v", err)
		}
	})

	t.Run("rejects a blank name edit", func(t *testing.T) {
		card := entity.NewCard("Kept", "4444", valueobject.CurrencyUSD, "")
		uc := NewUpdateCardUseCase(newFakeCardRepo(card))

		blank := "  "
		_, err := uc.Execute(ctx, UpdateCardInput{CardID: card.ID, Name: &blank})
		if !errors.Is(err, domainerror.ErrInvalidCardName) {
			t.Fatalf("expected ErrInvalidCardName, got %v", err)
		}
	})
}

func TestDeleteCard(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an unused card", func(t *testing.T) {
		card := entity.NewCard("Empty", "5555", valueobject.CurrencyUSD, "")
		repo := newFakeCardRepo(card)
		uc := NewDeleteCardUseCase(repo, &fakeTotalsRepo{inUse: map[uuid.UUID]bool{}})

		if err := uc.Execute(ctx, DeleteCardInput{CardID: card.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.deleted) != 1 || repo.deleted[0] != card.ID {
			t.Errorf("expected the card to be deleted, got %v", repo.deleted)
		}
	})

	t.Run("blocks deletion while transactions reference the card", func(t *testing.T) {
		card := entity.NewCard("Busy", "6666", valueobject.CurrencyUSD, "")
		repo := newFakeCardRepo(card)
		uc := NewDeleteCardUseCase(repo, &fakeTotalsRepo{inUse: map[uuid.UUID]bool{card.ID: true}})

		err := uc.Execute(ctx, DeleteCardInput{CardID: card.ID})
		if !errors.Is(err, domainerror.ErrCardInUse) {
			t.Fatalf("expected ErrCardInUse, got %v", err)
		}
		if len(repo.deleted) != 0 {
			t.Error("expected the card to survive")
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		uc := NewDeleteCardUseCase(newFakeCardRepo(), &fakeTotalsRepo{})

		err := uc.Execute(ctx, DeleteCardInput{CardID: uuid.New()})
		if !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Fatalf("expected ErrCardNotFound, got %v", err)
		}
	})
}
