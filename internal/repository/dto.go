package repository

import (
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"
)

// Форматы ответов бэкенда. Значения проверяются при преобразовании в модели.

type rfqDetailDTO struct {
	ID            string `json:"id"`
	EventCode     string `json:"eventCode"`
	Title         string `json:"title"`
	OverAllStatus string `json:"overAllStatus"`
	TechnicalSpec *struct {
		StartDate    *time.Time `json:"startDate"`
		EndDate      *time.Time `json:"endDate"`
		PaymentTerms string     `json:"paymentTerms"`
	} `json:"technicalSpec"`
}

func (d rfqDetailDTO) toModel() (*models.RFQEvent, error) {
	if d.ID == "" {
		return nil, &MalformedResponseError{Resource: "rfq", Field: "id", Value: d.ID}
	}
	status := models.RFQStatus(d.OverAllStatus)
	if !status.Valid() {
		return nil, &MalformedResponseError{Resource: "rfq", Field: "overAllStatus", Value: d.OverAllStatus}
	}

	rfq := &models.RFQEvent{
		ID:            d.ID,
		EventCode:     d.EventCode,
		Title:         d.Title,
		OverAllStatus: status,
	}
	if spec := d.TechnicalSpec; spec != nil {
		if spec.StartDate != nil {
			rfq.TechnicalSpec.StartDate = *spec.StartDate
		}
		if spec.EndDate != nil {
			rfq.TechnicalSpec.EndDate = *spec.EndDate
		}
		rfq.TechnicalSpec.PaymentTerms = spec.PaymentTerms
	}
	return rfq, nil
}

type bucketItemDTO struct {
	ID   string `json:"id"`
	Item struct {
		ID            string `json:"id"`
		ItemCode      string `json:"itemCode"`
		ItemTag       string `json:"itemTag"`
		MasterGeneric struct {
			Name string `json:"name"`
		} `json:"MasterGeneric"`
	} `json:"item"`
}

type bucketDTO struct {
	Items []bucketItemDTO `json:"items"`
}

type itemBucketsDTO struct {
	AllItems            bucketDTO `json:"allItems"`
	CounterOfferedItems bucketDTO `json:"counterOfferedItems"`
	ActionPendingItems  bucketDTO `json:"actionPendingItems"`
	SentArcItems        bucketDTO `json:"sentArcItems"`
}

func (b bucketDTO) toModel() ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(b.Items))
	for _, it := range b.Items {
		if it.ID == "" {
			return nil, &MalformedResponseError{Resource: "items", Field: "id", Value: it.ID}
		}
		items = append(items, models.LineItem{
			ID:       it.ID,
			ItemID:   it.Item.ID,
			ItemCode: it.Item.ItemCode,
			Name:     it.Item.MasterGeneric.Name,
			ItemTag:  models.ItemTag(it.Item.ItemTag),
		})
	}
	return items, nil
}

func (d itemBucketsDTO) toModel() (*models.ItemBuckets, error) {
	var buckets models.ItemBuckets
	var err error
	if buckets.AllItems, err = d.AllItems.toModel(); err != nil {
		return nil, err
	}
	if buckets.CounterOfferedItems, err = d.CounterOfferedItems.toModel(); err != nil {
		return nil, err
	}
	if buckets.ActionPendingItems, err = d.ActionPendingItems.toModel(); err != nil {
		return nil, err
	}
	if buckets.SentArcItems, err = d.SentArcItems.toModel(); err != nil {
		return nil, err
	}
	return &buckets, nil
}

type itemOfferDTO struct {
	ID        string   `json:"id"`
	RFQItemID string   `json:"rfqItemId"`
	CostPrice float64  `json:"costPrice"`
	MRP       *float64 `json:"mrp"`
	BrandName string   `json:"brandName"`
	Status    string   `json:"status"`
}

type vendorOfferDTO struct {
	ID     string `json:"id"`
	Vendor struct {
		ID          string `json:"id"`
		CompanyName string `json:"companyName"`
		VendorCode  string `json:"vendorCode"`
	} `json:"vendor"`
	Status         string         `json:"status"`
	PreferedVendor *int           `json:"preferedVendor"`
	Rank           int            `json:"rank"`
	Round          int            `json:"round"`
	Items          []itemOfferDTO `json:"items"`
}

type comparisonDTO struct {
	TopVendors []vendorOfferDTO `json:"topVendors"`
}

func (d comparisonDTO) toModel() (*models.ComparisonData, error) {
	comparison := &models.ComparisonData{TopVendors: make([]models.VendorOffer, 0, len(d.TopVendors))}
	for _, vo := range d.TopVendors {
		offer, err := vo.toModel()
		if err != nil {
			return nil, err
		}
		comparison.TopVendors = append(comparison.TopVendors, offer)
	}
	return comparison, nil
}

func (d vendorOfferDTO) toModel() (models.VendorOffer, error) {
	if d.ID == "" {
		return models.VendorOffer{}, &MalformedResponseError{Resource: "comparison", Field: "vendor offer id", Value: d.ID}
	}
	if d.Vendor.ID == "" {
		return models.VendorOffer{}, &MalformedResponseError{Resource: "comparison", Field: "vendor id", Value: d.Vendor.ID}
	}
	status := models.VendorOfferStatus(d.Status)
	if !status.Valid() {
		return models.VendorOffer{}, &MalformedResponseError{Resource: "comparison", Field: "vendor offer status", Value: d.Status}
	}

	round := d.Round
	if round < 1 {
		round = 1
	}
	offer := models.VendorOffer{
		ID:             d.ID,
		Vendor:         models.Vendor{ID: d.Vendor.ID, CompanyName: d.Vendor.CompanyName, VendorCode: d.Vendor.VendorCode},
		Status:         status,
		PreferedVendor: d.PreferedVendor,
		Rank:           d.Rank,
		Round:          round,
		Items:          make([]models.ItemOffer, 0, len(d.Items)),
	}

	for _, io := range d.Items {
		if io.ID == "" || io.RFQItemID == "" {
			return models.VendorOffer{}, &MalformedResponseError{Resource: "comparison", Field: "item offer id", Value: io.ID}
		}
		if io.CostPrice < 0 {
			return models.VendorOffer{}, &MalformedResponseError{Resource: "comparison", Field: "costPrice", Value: io.ID}
		}
		itemStatus := models.ItemOfferStatus(io.Status)
		if itemStatus == "" {
			itemStatus = models.ItemOfferStatus(status)
		}
		if !itemStatus.Valid() {
			return models.VendorOffer{}, &MalformedResponseError{Resource: "comparison", Field: "item offer status", Value: io.Status}
		}

		var mrp float64
		if io.MRP != nil {
			mrp = *io.MRP
		}
		offer.Items = append(offer.Items, models.ItemOffer{
			ID:        io.ID,
			RFQItemID: io.RFQItemID,
			CostPrice: io.CostPrice,
			MRP:       mrp,
			BrandName: io.BrandName,
			Status:    itemStatus,
		})
	}
	return offer, nil
}

type backendErrorDTO struct {
	Message string `json:"message"`
}
