package models

type (
	VendorOfferStatus string // Статус предложения поставщика
	ItemOfferStatus   string // Статус предложения по позиции
	OfferType         string // Режим ввода встречной цены
)

const (
	PendingOffer      VendorOfferStatus = "PENDING"       // Ожидается предложение
	SubmittedOffer    VendorOfferStatus = "SUBMITTED"     // Предложение подано
	AcceptedOffer     VendorOfferStatus = "ACCEPTED"      // Предложение принято
	RejectedOffer     VendorOfferStatus = "REJECTED"      // Предложение отклонено
	CounterOfferOffer VendorOfferStatus = "COUNTER_OFFER" // Отправлено встречное предложение

	ActionPendingItemOffer ItemOfferStatus = "ACTION_PENDING" // Позиция ждёт действия закупщика

	PriceOffer      OfferType = "price"      // Абсолютная цена
	PercentageOffer OfferType = "percentage" // Скидка в процентах от себестоимости

	// LowestPriority используется, когда приоритет поставщика не задан.
	LowestPriority = 999
)

// Valid проверяет, что статус входит в закрытый набор значений.
func (s VendorOfferStatus) Valid() bool {
	switch s {
	case PendingOffer, SubmittedOffer, AcceptedOffer, RejectedOffer, CounterOfferOffer:
		return true
	default:
		return false
	}
}

// Valid проверяет статус предложения по позиции.
func (s ItemOfferStatus) Valid() bool {
	return s == ActionPendingItemOffer || VendorOfferStatus(s).Valid()
}

// Valid проверяет режим ввода цены.
func (t OfferType) Valid() bool {
	return t == PriceOffer || t == PercentageOffer
}

// Vendor описывает поставщика.
type Vendor struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	VendorCode  string `json:"vendorCode"`
}

// ItemOffer представляет цену поставщика по одной позиции.
type ItemOffer struct {
	ID        string          `json:"id"`
	RFQItemID string          `json:"rfqItemId"`
	CostPrice float64         `json:"costPrice"`
	MRP       float64         `json:"mrp"`
	BrandName string          `json:"brandName,omitempty"`
	Status    ItemOfferStatus `json:"status"`
}

// VendorOffer представляет предложение поставщика.
type VendorOffer struct {
	ID             string            `json:"id"`
	Vendor         Vendor            `json:"vendor"`
	Status         VendorOfferStatus `json:"status"`
	PreferedVendor *int              `json:"preferedVendor,omitempty"`
	Rank           int               `json:"rank"`
	Round          int               `json:"round"`
	Items          []ItemOffer       `json:"items"`
}

// ItemOffer возвращает предложение поставщика по позиции.
func (o VendorOffer) ItemOffer(itemId string) (ItemOffer, bool) {
	for _, io := range o.Items {
		if io.RFQItemID == itemId {
			return io, true
		}
	}
	return ItemOffer{}, false
}

// ComparisonData - данные сравнения предложений по RFQ.
type ComparisonData struct {
	TopVendors []VendorOffer `json:"topVendors"`
}

// OffersForItem возвращает предложения поставщиков, содержащие позицию.
func (c ComparisonData) OffersForItem(itemId string) []VendorOffer {
	var offers []VendorOffer
	for _, offer := range c.TopVendors {
		if _, ok := offer.ItemOffer(itemId); ok {
			offers = append(offers, offer)
		}
	}
	return offers
}
