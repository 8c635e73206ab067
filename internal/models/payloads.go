package models

// RevisedItemPrice - встречная цена по одной позиции.
type RevisedItemPrice struct {
	RFQItemID        string  `json:"rfqItemId"`
	RevisedCostPrice float64 `json:"revisedCostPrice"`
	RevisionRemarks  string  `json:"revisionRemarks"`
}

// VendorCounterOffer группирует встречные цены одного поставщика.
type VendorCounterOffer struct {
	VendorID          string             `json:"vendorId"`
	RFQEventID        string             `json:"rfqEventId"`
	RevisedItemPrices []RevisedItemPrice `json:"revisedItemPrices"`
}

// CounterOfferRequest - тело пакетной отправки встречных предложений.
type CounterOfferRequest struct {
	VendorOffers []VendorCounterOffer `json:"vendorOffers"`
}

// ArcApproval - решение по предложению поставщика для согласования.
type ArcApproval struct {
	VendorOfferID      string `json:"vendorOfferId"`
	LineItemOfferID    string `json:"-"`
	RFQItemID          string `json:"rfqItemId"`
	Rank               int    `json:"rank"`
	PreferedVendorRank int    `json:"preferedVendorRank"`
	Remarks            string `json:"remarks"`
}

// ArcApprovalRequest - тело пакетной отправки на согласование.
type ArcApprovalRequest struct {
	ItemsWithTopVendors []ArcApproval `json:"itemsWithTopVendors"`
	RFQItemIDs          []string      `json:"rfqItemIds"`
	RFQEventID          string        `json:"rfqEventId"`
	ApprovedByID        string        `json:"approvedById"`
}
