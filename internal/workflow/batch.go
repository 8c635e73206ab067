package workflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/senyabanana/rfq-desk/internal/models"
)

// Submitter - бэкенд, принимающий пакетные отправки.
type Submitter interface {
	SubmitCollectiveCounterOffer(ctx context.Context, req models.CounterOfferRequest) error
	SubmitCollectiveArcApproval(ctx context.Context, req models.ArcApprovalRequest) error
}

// CounterOfferRemark формирует замечание по умолчанию для встречной цены.
func CounterOfferRemark(itemCode string) string {
	return fmt.Sprintf("Counter offer for %s", itemCode)
}

// BuildCounterOfferRequest группирует собранные встречные цены по поставщикам:
// один поставщик получает одну запись со всеми своими позициями.
func BuildCounterOfferRequest(collected []CollectedOffer, priorities *PriorityStore, rfqEventId string) (models.CounterOfferRequest, error) {
	if len(collected) == 0 {
		return models.CounterOfferRequest{}, ErrEmptyCounterBatch
	}

	byVendor := make(map[string][]models.RevisedItemPrice)
	for _, item := range collected {
		itemCode := item.ItemCode
		if itemCode == "" {
			itemCode = item.ItemID
		}
		for vendorId, offer := range item.Offers {
			remark := priorities.Remark(item.ItemID, vendorId)
			if remark == "" {
				remark = CounterOfferRemark(itemCode)
			}
			byVendor[vendorId] = append(byVendor[vendorId], models.RevisedItemPrice{
				RFQItemID:        item.ItemID,
				RevisedCostPrice: offer.RevisedPrice(),
				RevisionRemarks:  remark,
			})
		}
	}

	vendorIds := make([]string, 0, len(byVendor))
	for vendorId := range byVendor {
		vendorIds = append(vendorIds, vendorId)
	}
	sort.Strings(vendorIds)

	var req models.CounterOfferRequest
	for _, vendorId := range vendorIds {
		prices := byVendor[vendorId]
		sort.Slice(prices, func(i, j int) bool { return prices[i].RFQItemID < prices[j].RFQItemID })
		req.VendorOffers = append(req.VendorOffers, models.VendorCounterOffer{
			VendorID:          vendorId,
			RFQEventID:        rfqEventId,
			RevisedItemPrices: prices,
		})
	}
	if len(req.VendorOffers) == 0 {
		return models.CounterOfferRequest{}, ErrEmptyCounterBatch
	}
	return req, nil
}

// BuildArcApprovalRequest разворачивает собранные решения в тело запроса.
func BuildArcApprovalRequest(arc *ArcStaging, rfqEventId, approvedById string) (models.ArcApprovalRequest, error) {
	if len(arc.collected) == 0 {
		return models.ArcApprovalRequest{}, ErrEmptyArcBatch
	}
	if approvedById == "" {
		return models.ArcApprovalRequest{}, ErrMissingApprover
	}

	approvals, itemIds := arc.Flatten()
	if len(approvals) == 0 || len(itemIds) == 0 {
		return models.ArcApprovalRequest{}, ErrEmptyArcBatch
	}
	return models.ArcApprovalRequest{
		ItemsWithTopVendors: approvals,
		RFQItemIDs:          itemIds,
		RFQEventID:          rfqEventId,
		ApprovedByID:        approvedById,
	}, nil
}
