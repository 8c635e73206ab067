package workflow

import "github.com/senyabanana/rfq-desk/internal/models"

// ComparisonRow - строка таблицы сравнения: предложение одного поставщика по позиции.
type ComparisonRow struct {
	VendorOfferID    string                   `json:"vendorOfferId"`
	VendorID         string                   `json:"vendorId"`
	VendorName       string                   `json:"vendorName"`
	VendorCode       string                   `json:"vendorCode"`
	Status           models.VendorOfferStatus `json:"status"`
	ItemStatus       models.ItemOfferStatus   `json:"itemStatus"`
	Badge            Badge                    `json:"badge"`
	LineItemOfferID  string                   `json:"lineItemOfferId"`
	BrandName        string                   `json:"brandName,omitempty"`
	CostPrice        float64                  `json:"costPrice"`
	MRP              float64                  `json:"mrp"`
	MarginAmount     string                   `json:"marginAmount"`
	MarginPercentage string                   `json:"marginPercentage"`
	Rank             int                      `json:"rank"`
	Round            int                      `json:"round"`
	Priority         int                      `json:"priority"`
	Remark           string                   `json:"remark"`
	StagedOffer      *StagedOffer             `json:"stagedOffer,omitempty"`
	RevisedPrice     *float64                 `json:"revisedPrice,omitempty"`
	Savings          string                   `json:"savings,omitempty"`
	Disabled         bool                     `json:"disabled"`
}

// View - снимок состояния Desk для отображения.
type View struct {
	RFQ          models.RFQEvent  `json:"rfq"`
	ReadOnly     bool             `json:"readOnly"`
	Tab          models.Tab       `json:"tab"`
	TabName      string           `json:"tabName"`
	Search       string           `json:"search"`
	Index        int              `json:"index"`
	Total        int              `json:"total"`
	CurrentItem  *models.LineItem `json:"currentItem"`
	OfferType    models.OfferType `json:"offerType"`
	Rows         []ComparisonRow  `json:"rows"`
	InCounter    bool             `json:"inCounterBatch"`
	InArc        bool             `json:"inArcBatch"`
	CounterBatch []string         `json:"counterBatch"`
	ArcBatch     []string         `json:"arcBatch"`
}

// Rows строит строки сравнения по позиции. Для истёкшего RFQ все строки недоступны для ввода.
func (d *Desk) Rows(itemId string) []ComparisonRow {
	disabled := d.isExpired()
	offers := d.CurrentOffers(itemId)
	rows := make([]ComparisonRow, 0, len(offers))
	for _, offer := range offers {
		itemOffer, _ := offer.ItemOffer(itemId)
		margin := MarginOf(itemOffer)

		row := ComparisonRow{
			VendorOfferID:    offer.ID,
			VendorID:         offer.Vendor.ID,
			VendorName:       offer.Vendor.CompanyName,
			VendorCode:       offer.Vendor.VendorCode,
			Status:           offer.Status,
			ItemStatus:       itemOffer.Status,
			Badge:            BadgeFor(itemOffer.Status),
			LineItemOfferID:  itemOffer.ID,
			BrandName:        itemOffer.BrandName,
			CostPrice:        itemOffer.CostPrice,
			MRP:              itemOffer.MRP,
			MarginAmount:     margin.Amount.StringFixed(2),
			MarginPercentage: margin.Percentage,
			Rank:             offer.Rank,
			Round:            offer.Round,
			Priority:         d.priorities.Effective(itemId, offer),
			Remark:           d.priorities.Remark(itemId, offer.Vendor.ID),
			Disabled:         disabled,
		}
		if staged, ok := d.offers.Staged(itemId, offer.Vendor.ID); ok {
			revised := staged.RevisedPrice()
			row.StagedOffer = &staged
			row.RevisedPrice = &revised
			row.Savings = Savings(staged).StringFixed(2)
		}
		rows = append(rows, row)
	}
	return rows
}

// View возвращает состояние для текущей позиции навигатора.
// Пустой список позиций дает пустую таблицу без ошибки.
func (d *Desk) View() View {
	collected := d.offers.Collected()
	counterBatch := make([]string, 0, len(collected))
	for _, c := range collected {
		counterBatch = append(counterBatch, c.ItemID)
	}

	view := View{
		RFQ:          d.rfq,
		ReadOnly:     d.isExpired(),
		Tab:          d.nav.Tab(),
		TabName:      d.nav.Tab().String(),
		Search:       d.nav.Search(),
		Total:        len(d.nav.Items()),
		OfferType:    d.offers.OfferType(),
		Rows:         []ComparisonRow{},
		CounterBatch: counterBatch,
		ArcBatch:     d.arc.ItemIDs(),
	}
	if item, ok := d.nav.Current(); ok {
		view.Index = d.nav.Index()
		view.CurrentItem = &item
		view.Rows = d.Rows(item.ID)
		view.InCounter = d.offers.IsCollected(item.ID)
		view.InArc = d.arc.Has(item.ID)
	}
	return view
}
