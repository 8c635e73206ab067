package workflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"
)

// Desk - контейнер состояния сравнения предложений по одному RFQ.
// Каждое действие закупщика - отдельный метод; Desk не потокобезопасен.
type Desk struct {
	rfq        models.RFQEvent
	comparison models.ComparisonData
	expired    bool

	nav        *Navigator
	offers     *OfferStaging
	priorities *PriorityStore
	arc        *ArcStaging

	now func() time.Time
}

// NewDesk создает Desk по загруженным данным RFQ.
func NewDesk(rfq models.RFQEvent, comparison models.ComparisonData, buckets models.ItemBuckets, now func() time.Time) *Desk {
	if now == nil {
		now = time.Now
	}
	d := &Desk{
		nav:        NewNavigator(buckets),
		offers:     NewOfferStaging(),
		priorities: NewPriorityStore(),
		arc:        NewArcStaging(),
		now:        now,
	}
	d.Reload(rfq, comparison, buckets)
	return d
}

// Reload подменяет данные RFQ и пересчитывает истечение. Черновики сохраняются.
func (d *Desk) Reload(rfq models.RFQEvent, comparison models.ComparisonData, buckets models.ItemBuckets) {
	d.rfq = rfq
	d.comparison = comparison
	d.nav.SetBuckets(buckets)
	d.expired = IsExpired(rfq, d.now())
}

func (d *Desk) RFQ() models.RFQEvent { return d.rfq }
func (d *Desk) Expired() bool        { return d.isExpired() }

// isExpired сверяет окно RFQ с текущим временем. Истечение необратимо до Reload.
func (d *Desk) isExpired() bool {
	if !d.expired && IsExpired(d.rfq, d.now()) {
		d.expired = true
	}
	return d.expired
}

// Navigator возвращает навигатор позиций. Навигация доступна и после истечения RFQ.
func (d *Desk) Navigator() *Navigator { return d.nav }

// SetOfferType переключает режим ввода встречных цен.
func (d *Desk) SetOfferType(offerType models.OfferType) error {
	if d.isExpired() {
		return ErrExpired
	}
	return d.offers.SetOfferType(offerType)
}

// CurrentOffers возвращает актуальные предложения поставщиков по позиции:
// для каждого поставщика берётся предложение последнего раунда.
func (d *Desk) CurrentOffers(itemId string) []models.VendorOffer {
	latest := make(map[string]int)
	var offers []models.VendorOffer
	for _, offer := range d.comparison.OffersForItem(itemId) {
		if i, ok := latest[offer.Vendor.ID]; ok {
			if offer.Round > offers[i].Round {
				offers[i] = offer
			}
			continue
		}
		latest[offer.Vendor.ID] = len(offers)
		offers = append(offers, offer)
	}
	return offers
}

func (d *Desk) lookup(itemId, vendorId string) (models.LineItem, models.VendorOffer, models.ItemOffer, error) {
	item, ok := d.nav.Buckets().Find(itemId)
	if !ok {
		return models.LineItem{}, models.VendorOffer{}, models.ItemOffer{}, ErrUnknownItem
	}
	for _, offer := range d.CurrentOffers(itemId) {
		if offer.Vendor.ID == vendorId {
			itemOffer, _ := offer.ItemOffer(itemId)
			return item, offer, itemOffer, nil
		}
	}
	return item, models.VendorOffer{}, models.ItemOffer{}, ErrUnknownVendor
}

// StageOffer проверяет и сохраняет черновую встречную цену.
// Потолок и предложение по позиции берутся из данных сравнения.
func (d *Desk) StageOffer(vendorId, itemId, rawValue string) error {
	if d.isExpired() {
		return ErrExpired
	}
	_, _, itemOffer, err := d.lookup(itemId, vendorId)
	if err != nil {
		return err
	}
	return d.offers.SetOfferPrice(vendorId, itemId, itemOffer.ID, rawValue, itemOffer.CostPrice)
}

// StagedOffer возвращает черновую цену поставщика по позиции.
func (d *Desk) StagedOffer(itemId, vendorId string) (StagedOffer, bool) {
	return d.offers.Staged(itemId, vendorId)
}

// CollectOffer добавляет позицию в пакет встречных предложений.
func (d *Desk) CollectOffer(itemId string) error {
	if d.isExpired() {
		return ErrExpired
	}
	item, ok := d.nav.Buckets().Find(itemId)
	if !ok {
		return ErrUnknownItem
	}
	return d.offers.Collect(item)
}

// RemoveCollectedOffer убирает позицию из пакета встречных предложений.
func (d *Desk) RemoveCollectedOffer(itemId string) error {
	if d.isExpired() {
		return ErrExpired
	}
	return d.offers.RemoveCollected(itemId)
}

// StagePriority задает приоритет и замечание поставщика по позиции.
func (d *Desk) StagePriority(itemId, vendorId string, rank int, remark string) error {
	if d.isExpired() {
		return ErrExpired
	}
	if _, _, _, err := d.lookup(itemId, vendorId); err != nil {
		return err
	}
	return d.priorities.Set(itemId, vendorId, rank, remark)
}

// CollectArc добавляет позицию в пакет на согласование.
func (d *Desk) CollectArc(itemId string) error {
	if d.isExpired() {
		return ErrExpired
	}
	item, ok := d.nav.Buckets().Find(itemId)
	if !ok {
		return ErrUnknownItem
	}
	return d.arc.Collect(item, d.CurrentOffers(itemId), d.priorities)
}

// RemoveArc убирает позицию из пакета на согласование.
func (d *Desk) RemoveArc(itemId string) error {
	if d.isExpired() {
		return ErrExpired
	}
	d.arc.Remove(itemId)
	return nil
}

// ArcApprovals возвращает слепок решений по позиции.
func (d *Desk) ArcApprovals(itemId string) []models.ArcApproval {
	return d.arc.Approvals(itemId)
}

// SubmitCounterOffers отправляет все собранные встречные предложения одним вызовом.
// При успехе черновики и пакет очищаются, при ошибке остаются для повтора.
// Тело запроса возвращается, если вызов бэкенда состоялся.
func (d *Desk) SubmitCounterOffers(ctx context.Context, backend Submitter) (models.CounterOfferRequest, error) {
	if d.isExpired() {
		return models.CounterOfferRequest{}, ErrExpired
	}
	req, err := BuildCounterOfferRequest(d.offers.Collected(), d.priorities, d.rfq.ID)
	if err != nil {
		return models.CounterOfferRequest{}, err
	}
	if err := backend.SubmitCollectiveCounterOffer(ctx, req); err != nil {
		return req, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	d.offers.Reset()
	return req, nil
}

// SubmitArc отправляет все собранные решения на согласование одним вызовом.
func (d *Desk) SubmitArc(ctx context.Context, backend Submitter, approvedById string) (models.ArcApprovalRequest, error) {
	if d.isExpired() {
		return models.ArcApprovalRequest{}, ErrExpired
	}
	req, err := BuildArcApprovalRequest(d.arc, d.rfq.ID, approvedById)
	if err != nil {
		return models.ArcApprovalRequest{}, err
	}
	if err := backend.SubmitCollectiveArcApproval(ctx, req); err != nil {
		return req, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	d.arc.Reset()
	return req, nil
}

// Round - предложения поставщиков по позиции в одном раунде переговоров.
type Round struct {
	Number int        `json:"round"`
	Offers []RoundBid `json:"offers"`
}

// RoundBid - цена поставщика в раунде.
type RoundBid struct {
	VendorOfferID string                   `json:"vendorOfferId"`
	VendorID      string                   `json:"vendorId"`
	VendorName    string                   `json:"vendorName"`
	Status        models.VendorOfferStatus `json:"status"`
	CostPrice     float64                  `json:"costPrice"`
	MRP           float64                  `json:"mrp"`
}

// Rounds группирует предложения по позиции по раундам в порядке возрастания.
func (d *Desk) Rounds(itemId string) ([]Round, error) {
	if _, ok := d.nav.Buckets().Find(itemId); !ok {
		return nil, ErrUnknownItem
	}

	byRound := make(map[int][]RoundBid)
	for _, offer := range d.comparison.OffersForItem(itemId) {
		itemOffer, _ := offer.ItemOffer(itemId)
		byRound[offer.Round] = append(byRound[offer.Round], RoundBid{
			VendorOfferID: offer.ID,
			VendorID:      offer.Vendor.ID,
			VendorName:    offer.Vendor.CompanyName,
			Status:        offer.Status,
			CostPrice:     itemOffer.CostPrice,
			MRP:           itemOffer.MRP,
		})
	}

	rounds := make([]Round, 0, len(byRound))
	for number, bids := range byRound {
		rounds = append(rounds, Round{Number: number, Offers: bids})
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
	return rounds, nil
}
