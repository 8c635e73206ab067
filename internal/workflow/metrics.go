package workflow

import (
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"

	"github.com/shopspring/decimal"
)

// NotAvailable выводится вместо процента маржи при нулевой MRP.
const NotAvailable = "N/A"

// Badge - цвет отметки статуса в таблице сравнения.
type Badge string

const (
	SuccessBadge Badge = "success"
	InfoBadge    Badge = "info"
	WarningBadge Badge = "warning"
	PrimaryBadge Badge = "primary"
)

// Margin - маржа предложения по позиции.
type Margin struct {
	Amount     decimal.Decimal
	Percentage string
}

// MarginOf считает маржу MRP - costPrice и её долю от MRP.
func MarginOf(offer models.ItemOffer) Margin {
	mrp := decimal.NewFromFloat(offer.MRP)
	amount := mrp.Sub(decimal.NewFromFloat(offer.CostPrice))
	if mrp.IsZero() {
		return Margin{Amount: amount, Percentage: NotAvailable}
	}
	return Margin{
		Amount:     amount,
		Percentage: amount.Div(mrp).Mul(hundred).StringFixed(2),
	}
}

// Savings возвращает экономию встречной цены относительно себестоимости.
func Savings(offer StagedOffer) decimal.Decimal {
	return decimal.NewFromFloat(offer.CostPrice).Sub(decimal.NewFromFloat(offer.RevisedPrice()))
}

// BadgeFor сопоставляет статусу цвет отметки.
func BadgeFor(status models.ItemOfferStatus) Badge {
	switch status {
	case models.ItemOfferStatus(models.AcceptedOffer):
		return SuccessBadge
	case models.ItemOfferStatus(models.CounterOfferOffer):
		return InfoBadge
	case models.ActionPendingItemOffer:
		return WarningBadge
	default:
		return PrimaryBadge
	}
}

// IsExpired сообщает, истекло ли окно RFQ.
func IsExpired(rfq models.RFQEvent, now time.Time) bool {
	return rfq.IsExpired(now)
}
