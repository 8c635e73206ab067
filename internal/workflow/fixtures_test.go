package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func paracetamol() models.LineItem {
	return models.LineItem{ID: "item-1", ItemID: "m-1", ItemCode: "MED001", Name: "Paracetamol 500mg", ItemTag: models.CostBasedItem}
}

func amoxicillin() models.LineItem {
	return models.LineItem{ID: "item-2", ItemID: "m-2", ItemCode: "MED002", Name: "Amoxicillin 250mg"}
}

func ibuprofen() models.LineItem {
	return models.LineItem{ID: "item-3", ItemID: "m-3", ItemCode: "MED003", Name: "Ibuprofen 400mg"}
}

func testRFQ(endDate time.Time) models.RFQEvent {
	return models.RFQEvent{
		ID:            "rfq-1",
		EventCode:     "RFQ-2026-001",
		Title:         "Q2 pharma",
		OverAllStatus: models.InNegotiationsRFQ,
		TechnicalSpec: models.TechnicalSpec{StartDate: testNow.Add(-48 * time.Hour), EndDate: endDate},
	}
}

func testBuckets() models.ItemBuckets {
	return models.ItemBuckets{
		AllItems:            []models.LineItem{paracetamol(), amoxicillin(), ibuprofen()},
		CounterOfferedItems: []models.LineItem{amoxicillin()},
		ActionPendingItems:  []models.LineItem{paracetamol(), ibuprofen()},
	}
}

func testComparison() models.ComparisonData {
	return models.ComparisonData{TopVendors: []models.VendorOffer{
		{
			ID:     "vo-a",
			Vendor: models.Vendor{ID: "vendor-a", CompanyName: "VendorA", VendorCode: "VA"},
			Status: models.SubmittedOffer,
			Rank:   1,
			Round:  1,
			Items: []models.ItemOffer{
				{ID: "io-a1", RFQItemID: "item-1", CostPrice: 100, MRP: 120, Status: models.ActionPendingItemOffer},
				{ID: "io-a2", RFQItemID: "item-2", CostPrice: 50, MRP: 0, Status: models.ItemOfferStatus(models.CounterOfferOffer)},
			},
		},
		{
			ID:             "vo-b",
			Vendor:         models.Vendor{ID: "vendor-b", CompanyName: "VendorB", VendorCode: "VB"},
			Status:         models.SubmittedOffer,
			PreferedVendor: intPtr(1),
			Rank:           2,
			Round:          1,
			Items: []models.ItemOffer{
				{ID: "io-b1", RFQItemID: "item-1", CostPrice: 120, MRP: 150, Status: models.ItemOfferStatus(models.AcceptedOffer)},
			},
		},
	}}
}

func newTestDesk() *Desk {
	return NewDesk(testRFQ(testNow.Add(24*time.Hour)), testComparison(), testBuckets(), func() time.Time { return testNow })
}

type fakeSubmitter struct {
	counterCalls []models.CounterOfferRequest
	arcCalls     []models.ArcApprovalRequest
	err          error
}

func (f *fakeSubmitter) SubmitCollectiveCounterOffer(_ context.Context, req models.CounterOfferRequest) error {
	f.counterCalls = append(f.counterCalls, req)
	return f.err
}

func (f *fakeSubmitter) SubmitCollectiveArcApproval(_ context.Context, req models.ArcApprovalRequest) error {
	f.arcCalls = append(f.arcCalls, req)
	return f.err
}

var errBackendDown = errors.New("backend down")
