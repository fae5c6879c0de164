// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

func TestCardRepositoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewCardRepository(db)

	card := entity.NewCard("Groceries", "4421", valueobject.CurrencyIDR, "#dc2626")
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, card.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "Groceries" || found.Currency != valueobject.CurrencyIDR {
		t.Errorf("unexpected card: %+v", found)
	}
	if !found.Balance.IsZero() || found.Version != 0 {
		t.Errorf("expected a fresh card, got balance %s version %d", found.Balance, found.Version)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCardRepositoryFindAllKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewCardRepository(db)

	first := entity.NewCard("First", "1111", valueobject.CurrencyUSD, "")
	second := entity.NewCard("Second", "2222", valueobject.CurrencyTHB, "")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cards, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Name != "First" || cards[1].Name != "Second" {
		t.Errorf("expected creation order, got %s then %s", cards[0].Name, cards[1].Name)
	}
}

func TestCardRepositoryUpdateLeavesBalanceAlone(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewCardRepository(db)

	card := entity.NewCard("Before", "3333", valueobject.CurrencyUSD, "#000000")
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An edit carrying a tampered balance must not write it.
	card.Name = "After"
	card.Balance = decimal.NewFromInt(12345)
	card.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, card); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, card.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "After" {
		t.Errorf("expected the new name, got %q", found.Name)
	}
	if !found.Balance.IsZero() {
		t.Errorf("expected the stored balance to stay zero, got %s", found.Balance)
	}
}

func TestCardRepositoryUpdateUnknownCard(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewCardRepository(db)

	ghost := entity.NewCard("Ghost", "0000", valueobject.CurrencyUSD, "")
	if err := repo.Update(ctx, ghost); !errors.Is(err, domainerror.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCardRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewCardRepository(db)

	card := entity.NewCard("Doomed", "9999", valueobject.CurrencyTHB, "")
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, card.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, card.ID); !errors.Is(err, domainerror.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}
