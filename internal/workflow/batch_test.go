package workflow

import (
	"errors"
	"reflect"
	"testing"

	"github.com/senyabanana/rfq-desk/internal/models"
)

func TestBuildCounterOfferRequestGroupsByVendor(t *testing.T) {
	collected := []CollectedOffer{
		{ItemID: "item-1", ItemCode: "MED001", Offers: map[string]StagedOffer{
			"vendor-a": {Value: 95, Unit: models.PriceOffer, CostPrice: 100},
			"vendor-b": {Value: 10, Unit: models.PercentageOffer, CostPrice: 120},
		}},
		{ItemID: "item-2", ItemCode: "MED002", Offers: map[string]StagedOffer{
			"vendor-a": {Value: 45, Unit: models.PriceOffer, CostPrice: 50},
		}},
	}
	priorities := NewPriorityStore()
	if err := priorities.Set("item-2", "vendor-a", 1, "match market price"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	req, err := BuildCounterOfferRequest(collected, priorities, "rfq-1")
	if err != nil {
		t.Fatalf("BuildCounterOfferRequest: %v", err)
	}

	want := models.CounterOfferRequest{VendorOffers: []models.VendorCounterOffer{
		{VendorID: "vendor-a", RFQEventID: "rfq-1", RevisedItemPrices: []models.RevisedItemPrice{
			{RFQItemID: "item-1", RevisedCostPrice: 95, RevisionRemarks: "Counter offer for MED001"},
			{RFQItemID: "item-2", RevisedCostPrice: 45, RevisionRemarks: "match market price"},
		}},
		{VendorID: "vendor-b", RFQEventID: "rfq-1", RevisedItemPrices: []models.RevisedItemPrice{
			{RFQItemID: "item-1", RevisedCostPrice: 108, RevisionRemarks: "Counter offer for MED001"},
		}},
	}}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("request = %+v\nwant %+v", req, want)
	}
}

func TestBuildCounterOfferRequestEmpty(t *testing.T) {
	if _, err := BuildCounterOfferRequest(nil, NewPriorityStore(), "rfq-1"); !errors.Is(err, ErrEmptyCounterBatch) {
		t.Fatalf("err = %v, want ErrEmptyCounterBatch", err)
	}
	empty := []CollectedOffer{{ItemID: "item-1", Offers: map[string]StagedOffer{}}}
	if _, err := BuildCounterOfferRequest(empty, NewPriorityStore(), "rfq-1"); !errors.Is(err, ErrEmptyCounterBatch) {
		t.Fatalf("err = %v, want ErrEmptyCounterBatch", err)
	}
}

func TestBuildArcApprovalRequest(t *testing.T) {
	arc := NewArcStaging()
	if _, err := BuildArcApprovalRequest(arc, "rfq-1", "buyer-1"); !errors.Is(err, ErrEmptyArcBatch) {
		t.Fatalf("err = %v, want ErrEmptyArcBatch", err)
	}

	offers := testComparison().TopVendors
	priorities := NewPriorityStore()
	if err := arc.Collect(paracetamol(), offers, priorities); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if err := arc.Collect(amoxicillin(), offers, priorities); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if _, err := BuildArcApprovalRequest(arc, "rfq-1", ""); !errors.Is(err, ErrMissingApprover) {
		t.Fatalf("err = %v, want ErrMissingApprover", err)
	}

	req, err := BuildArcApprovalRequest(arc, "rfq-1", "buyer-1")
	if err != nil {
		t.Fatalf("BuildArcApprovalRequest: %v", err)
	}
	if len(req.ItemsWithTopVendors) != 3 {
		t.Fatalf("flattened approvals = %d, want 3", len(req.ItemsWithTopVendors))
	}
	if !reflect.DeepEqual(req.RFQItemIDs, []string{"item-1", "item-2"}) {
		t.Fatalf("rfqItemIds = %v", req.RFQItemIDs)
	}
	if req.RFQEventID != "rfq-1" || req.ApprovedByID != "buyer-1" {
		t.Fatalf("request header = %+v", req)
	}
}
