package workflow

import (
	"sort"

	"github.com/senyabanana/rfq-desk/internal/models"
)

// ArcStaging хранит собранные для согласования решения по позициям.
type ArcStaging struct {
	collected map[string][]models.ArcApproval
}

// NewArcStaging создает пустое хранилище.
func NewArcStaging() *ArcStaging {
	return &ArcStaging{collected: make(map[string][]models.ArcApproval)}
}

// Collect снимает слепок предложений поставщиков по позиции, отсортированных по приоритету.
// Последующие изменения приоритетов не влияют на слепок.
func (a *ArcStaging) Collect(item models.LineItem, offers []models.VendorOffer, priorities *PriorityStore) error {
	type ranked struct {
		offer     models.VendorOffer
		itemOffer models.ItemOffer
		priority  int
	}

	var candidates []ranked
	for _, offer := range offers {
		itemOffer, ok := offer.ItemOffer(item.ID)
		if !ok {
			continue
		}
		candidates = append(candidates, ranked{
			offer:     offer,
			itemOffer: itemOffer,
			priority:  priorities.Effective(item.ID, offer),
		})
	}
	if len(candidates) == 0 {
		return ErrNoVendorOffers
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].priority < candidates[j].priority })

	approvals := make([]models.ArcApproval, 0, len(candidates))
	for _, c := range candidates {
		remark := priorities.Remark(item.ID, c.offer.Vendor.ID)
		if remark == "" {
			remark = DefaultRemark
		}
		approvals = append(approvals, models.ArcApproval{
			VendorOfferID:      c.offer.ID,
			LineItemOfferID:    c.itemOffer.ID,
			RFQItemID:          item.ID,
			Rank:               c.offer.Rank,
			PreferedVendorRank: c.priority,
			Remarks:            remark,
		})
	}
	a.collected[item.ID] = approvals
	return nil
}

// Remove убирает позицию из пакета целиком.
func (a *ArcStaging) Remove(itemId string) {
	delete(a.collected, itemId)
}

// Has сообщает, добавлена ли позиция в пакет.
func (a *ArcStaging) Has(itemId string) bool {
	_, ok := a.collected[itemId]
	return ok
}

// Approvals возвращает копию слепка по позиции.
func (a *ArcStaging) Approvals(itemId string) []models.ArcApproval {
	return append([]models.ArcApproval(nil), a.collected[itemId]...)
}

// ItemIDs возвращает ID собранных позиций по возрастанию.
func (a *ArcStaging) ItemIDs() []string {
	ids := make([]string, 0, len(a.collected))
	for id := range a.collected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Flatten разворачивает пакет в плоский список решений и список ID позиций.
func (a *ArcStaging) Flatten() ([]models.ArcApproval, []string) {
	var approvals []models.ArcApproval
	var itemIds []string
	for _, id := range a.ItemIDs() {
		list := a.collected[id]
		if len(list) == 0 {
			continue
		}
		approvals = append(approvals, list...)
		itemIds = append(itemIds, id)
	}
	return approvals, itemIds
}

// Reset очищает пакет.
func (a *ArcStaging) Reset() {
	a.collected = make(map[string][]models.ArcApproval)
}
