package workflow

import (
	"errors"
	"testing"

	"github.com/senyabanana/rfq-desk/internal/models"
)

func TestSetOfferPrice(t *testing.T) {
	tests := []struct {
		name      string
		offerType models.OfferType
		raw       string
		ceiling   float64
		wantErr   error
		wantValue float64
	}{
		{name: "valid price", offerType: models.PriceOffer, raw: "95", ceiling: 100, wantValue: 95},
		{name: "equal to ceiling", offerType: models.PriceOffer, raw: "100", ceiling: 100, wantValue: 100},
		{name: "zero", offerType: models.PriceOffer, raw: "0", ceiling: 100, wantValue: 0},
		{name: "decimal with spaces", offerType: models.PriceOffer, raw: " 99.5 ", ceiling: 100, wantValue: 99.5},
		{name: "above ceiling", offerType: models.PriceOffer, raw: "150", ceiling: 100, wantErr: ErrAboveCostPrice},
		{name: "negative", offerType: models.PriceOffer, raw: "-1", ceiling: 100, wantErr: ErrNegativePrice},
		{name: "not a number", offerType: models.PriceOffer, raw: "abc", ceiling: 100, wantErr: ErrNotANumber},
		{name: "empty", offerType: models.PriceOffer, raw: "", ceiling: 100, wantErr: ErrNotANumber},
		{name: "NaN", offerType: models.PriceOffer, raw: "NaN", ceiling: 100, wantErr: ErrNotANumber},
		{name: "valid percentage", offerType: models.PercentageOffer, raw: "10", ceiling: 100, wantValue: 10},
		{name: "percentage 100", offerType: models.PercentageOffer, raw: "100", ceiling: 100, wantValue: 100},
		{name: "percentage above 100", offerType: models.PercentageOffer, raw: "101", ceiling: 500, wantErr: ErrPercentOutOfRange},
		{name: "negative percentage", offerType: models.PercentageOffer, raw: "-5", ceiling: 100, wantErr: ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOfferStaging()
			if err := s.SetOfferType(tt.offerType); err != nil {
				t.Fatalf("SetOfferType: %v", err)
			}

			err := s.SetOfferPrice("vendor-a", "item-1", "io-a1", tt.raw, tt.ceiling)
			staged, ok := s.Staged("item-1", "vendor-a")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if ok {
					t.Fatalf("value staged on invalid input: %+v", staged)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok || staged.Value != tt.wantValue || staged.Unit != tt.offerType || staged.LineItemOfferID != "io-a1" {
				t.Fatalf("staged = %+v, %v; want value %v", staged, ok, tt.wantValue)
			}
		})
	}
}

func TestSetOfferPriceInvalidKeepsPreviousValue(t *testing.T) {
	s := NewOfferStaging()
	if err := s.SetOfferPrice("vendor-a", "item-1", "io-a1", "90", 100); err != nil {
		t.Fatalf("SetOfferPrice: %v", err)
	}
	if err := s.SetOfferPrice("vendor-a", "item-1", "io-a1", "150", 100); !errors.Is(err, ErrAboveCostPrice) {
		t.Fatalf("err = %v, want ErrAboveCostPrice", err)
	}

	staged, _ := s.Staged("item-1", "vendor-a")
	if staged.Value != 90 {
		t.Fatalf("staged value = %v, want 90", staged.Value)
	}
}

func TestOfferTypeToggleKeepsUnit(t *testing.T) {
	s := NewOfferStaging()
	if err := s.SetOfferPrice("vendor-a", "item-1", "io-a1", "80", 100); err != nil {
		t.Fatalf("SetOfferPrice: %v", err)
	}
	if err := s.SetOfferType(models.PercentageOffer); err != nil {
		t.Fatalf("SetOfferType: %v", err)
	}
	if err := s.SetOfferPrice("vendor-b", "item-1", "io-b1", "10", 120); err != nil {
		t.Fatalf("SetOfferPrice: %v", err)
	}

	a, _ := s.Staged("item-1", "vendor-a")
	if a.Unit != models.PriceOffer || a.RevisedPrice() != 80 {
		t.Fatalf("price-mode value changed after toggle: %+v", a)
	}
	b, _ := s.Staged("item-1", "vendor-b")
	if b.Unit != models.PercentageOffer || b.RevisedPrice() != 108 {
		t.Fatalf("percentage value = %+v revised %v, want 108", b, b.RevisedPrice())
	}

	if err := s.SetOfferType("bogus"); !errors.Is(err, ErrInvalidOfferType) {
		t.Fatalf("err = %v, want ErrInvalidOfferType", err)
	}
}

func TestCollectIsSnapshot(t *testing.T) {
	s := NewOfferStaging()
	if err := s.Collect(paracetamol()); !errors.Is(err, ErrNothingStaged) {
		t.Fatalf("err = %v, want ErrNothingStaged", err)
	}

	if err := s.SetOfferPrice("vendor-a", "item-1", "io-a1", "95", 100); err != nil {
		t.Fatalf("SetOfferPrice: %v", err)
	}
	if err := s.Collect(paracetamol()); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if err := s.SetOfferPrice("vendor-a", "item-1", "io-a1", "70", 100); err != nil {
		t.Fatalf("SetOfferPrice: %v", err)
	}

	collected := s.Collected()
	if len(collected) != 1 || collected[0].Offers["vendor-a"].Value != 95 || collected[0].ItemCode != "MED001" {
		t.Fatalf("collected = %+v, want snapshot with 95", collected)
	}

	if err := s.RemoveCollected("item-1"); err != nil {
		t.Fatalf("RemoveCollected: %v", err)
	}
	if s.IsCollected("item-1") {
		t.Fatal("item still collected after removal")
	}
	if _, ok := s.Staged("item-1", "vendor-a"); ok {
		t.Fatal("staged value kept after removal")
	}
}

func TestRemoveCollectedKeepsDraftOfUncollectedItem(t *testing.T) {
	s := NewOfferStaging()
	if err := s.SetOfferPrice("vendor-a", "item-1", "io-a1", "95", 100); err != nil {
		t.Fatalf("SetOfferPrice: %v", err)
	}

	if err := s.RemoveCollected("item-1"); !errors.Is(err, ErrNotCollected) {
		t.Fatalf("err = %v, want ErrNotCollected", err)
	}
	if staged, ok := s.Staged("item-1", "vendor-a"); !ok || staged.Value != 95 {
		t.Fatalf("staged = %+v, %v, want draft 95 kept", staged, ok)
	}
}
