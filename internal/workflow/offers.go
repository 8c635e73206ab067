package workflow

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/senyabanana/rfq-desk/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// StagedOffer - встречная цена, введённая закупщиком, но ещё не отправленная.
// Значение хранится вместе с единицей, в которой оно было введено.
type StagedOffer struct {
	Value           float64          `json:"value"`
	Unit            models.OfferType `json:"unit"`
	LineItemOfferID string           `json:"lineItemOfferId"`
	CostPrice       float64          `json:"costPrice"`
}

// RevisedPrice возвращает абсолютную встречную цену.
// Процент трактуется как скидка от себестоимости.
func (o StagedOffer) RevisedPrice() float64 {
	if o.Unit != models.PercentageOffer {
		return o.Value
	}
	cost := decimal.NewFromFloat(o.CostPrice)
	share := hundred.Sub(decimal.NewFromFloat(o.Value)).Div(hundred)
	return cost.Mul(share).Round(2).InexactFloat64()
}

// CollectedOffer - копия встречных цен позиции, добавленной в пакет.
type CollectedOffer struct {
	ItemID   string                 `json:"itemId"`
	ItemCode string                 `json:"itemCode"`
	Offers   map[string]StagedOffer `json:"offers"`
}

// OfferStaging хранит черновые и собранные встречные предложения.
type OfferStaging struct {
	offerType models.OfferType
	staged    map[string]map[string]StagedOffer
	collected map[string]CollectedOffer
}

// NewOfferStaging создает пустое хранилище в режиме абсолютной цены.
func NewOfferStaging() *OfferStaging {
	return &OfferStaging{
		offerType: models.PriceOffer,
		staged:    make(map[string]map[string]StagedOffer),
		collected: make(map[string]CollectedOffer),
	}
}

// OfferType возвращает текущий режим ввода.
func (s *OfferStaging) OfferType() models.OfferType {
	return s.offerType
}

// SetOfferType переключает режим ввода для всей сессии.
// Уже введённые значения сохраняют свою единицу.
func (s *OfferStaging) SetOfferType(offerType models.OfferType) error {
	if !offerType.Valid() {
		return ErrInvalidOfferType
	}
	s.offerType = offerType
	return nil
}

// SetOfferPrice проверяет и сохраняет встречную цену поставщика по позиции.
func (s *OfferStaging) SetOfferPrice(vendorId, itemId, lineItemOfferId, rawValue string, costPriceCeiling float64) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %q", ErrNotANumber, rawValue)
	}
	if value < 0 {
		return ErrNegativePrice
	}
	if s.offerType == models.PercentageOffer && value > 100 {
		return ErrPercentOutOfRange
	}

	offer := StagedOffer{
		Value:           value,
		Unit:            s.offerType,
		LineItemOfferID: lineItemOfferId,
		CostPrice:       costPriceCeiling,
	}
	if price := offer.RevisedPrice(); price > costPriceCeiling {
		return fmt.Errorf("%w: %.2f > %.2f", ErrAboveCostPrice, price, costPriceCeiling)
	}

	if s.staged[itemId] == nil {
		s.staged[itemId] = make(map[string]StagedOffer)
	}
	s.staged[itemId][vendorId] = offer
	return nil
}

// Staged возвращает черновую цену поставщика по позиции.
func (s *OfferStaging) Staged(itemId, vendorId string) (StagedOffer, bool) {
	offer, ok := s.staged[itemId][vendorId]
	return offer, ok
}

// Collect копирует черновые цены позиции в пакет встречных предложений.
// Последующие правки черновика не влияют на собранную копию.
func (s *OfferStaging) Collect(item models.LineItem) error {
	staged := s.staged[item.ID]
	if len(staged) == 0 {
		return ErrNothingStaged
	}

	offers := make(map[string]StagedOffer, len(staged))
	for vendorId, offer := range staged {
		offers[vendorId] = offer
	}
	s.collected[item.ID] = CollectedOffer{ItemID: item.ID, ItemCode: item.ItemCode, Offers: offers}
	return nil
}

// RemoveCollected убирает позицию из пакета и отбрасывает её черновик.
// Черновик позиции, не добавленной в пакет, не трогается.
func (s *OfferStaging) RemoveCollected(itemId string) error {
	if !s.IsCollected(itemId) {
		return ErrNotCollected
	}
	delete(s.collected, itemId)
	delete(s.staged, itemId)
	return nil
}

// IsCollected сообщает, добавлена ли позиция в пакет.
func (s *OfferStaging) IsCollected(itemId string) bool {
	_, ok := s.collected[itemId]
	return ok
}

// Collected возвращает собранные позиции, упорядоченные по ID.
func (s *OfferStaging) Collected() []CollectedOffer {
	collected := make([]CollectedOffer, 0, len(s.collected))
	for _, c := range s.collected {
		collected = append(collected, c)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].ItemID < collected[j].ItemID })
	return collected
}

// Reset очищает черновики и пакет.
func (s *OfferStaging) Reset() {
	s.staged = make(map[string]map[string]StagedOffer)
	s.collected = make(map[string]CollectedOffer)
}
