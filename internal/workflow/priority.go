package workflow

import "github.com/senyabanana/rfq-desk/internal/models"

// DefaultRemark подставляется в согласование, если замечание не задано.
const DefaultRemark = "No remarks provided"

// Priority - приоритет (P1/P2/P3) и замечание закупщика по поставщику.
type Priority struct {
	Rank   int    `json:"rank"`
	Remark string `json:"remark"`
}

// PriorityStore хранит приоритеты по позициям и поставщикам.
type PriorityStore struct {
	entries map[string]map[string]Priority
}

// NewPriorityStore создает пустое хранилище.
func NewPriorityStore() *PriorityStore {
	return &PriorityStore{entries: make(map[string]map[string]Priority)}
}

// Set перезаписывает приоритет поставщика по позиции.
// Одинаковые приоритеты у разных поставщиков допустимы.
func (p *PriorityStore) Set(itemId, vendorId string, rank int, remark string) error {
	if rank < 1 || rank > 3 {
		return ErrInvalidPriority
	}
	if p.entries[itemId] == nil {
		p.entries[itemId] = make(map[string]Priority)
	}
	p.entries[itemId][vendorId] = Priority{Rank: rank, Remark: remark}
	return nil
}

// Get возвращает заданный закупщиком приоритет.
func (p *PriorityStore) Get(itemId, vendorId string) (Priority, bool) {
	priority, ok := p.entries[itemId][vendorId]
	return priority, ok
}

// Effective возвращает приоритет поставщика: заданный закупщиком,
// затем preferedVendor из предложения, затем LowestPriority.
func (p *PriorityStore) Effective(itemId string, offer models.VendorOffer) int {
	if priority, ok := p.Get(itemId, offer.Vendor.ID); ok {
		return priority.Rank
	}
	if offer.PreferedVendor != nil && *offer.PreferedVendor > 0 {
		return *offer.PreferedVendor
	}
	return models.LowestPriority
}

// Remark возвращает замечание закупщика или пустую строку.
func (p *PriorityStore) Remark(itemId, vendorId string) string {
	return p.entries[itemId][vendorId].Remark
}
