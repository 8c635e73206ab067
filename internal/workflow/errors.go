package workflow

import "errors"

// Ошибки валидации действий закупщика. Состояние при них не меняется.
var (
	ErrNotANumber        = errors.New("offer value must be a number")
	ErrNegativePrice     = errors.New("offer value must not be negative")
	ErrPercentOutOfRange = errors.New("offer percentage must be between 0 and 100")
	ErrAboveCostPrice    = errors.New("counter offer exceeds the vendor's cost price")
	ErrInvalidOfferType  = errors.New("offer type must be 'price' or 'percentage'")
	ErrInvalidPriority   = errors.New("priority must be 1, 2 or 3")
	ErrInvalidTab        = errors.New("tab must be between 0 and 3")
	ErrUnknownItem       = errors.New("item not found in rfq")
	ErrUnknownVendor     = errors.New("vendor has no offer for this item")
	ErrNoVendorOffers    = errors.New("item has no vendor offers")
	ErrNothingStaged     = errors.New("no counter offer prices entered for this item")
	ErrNotCollected      = errors.New("item is not in the counter offer batch")
	ErrEmptyCounterBatch = errors.New("no items added to the counter offer batch")
	ErrEmptyArcBatch     = errors.New("no items added to the ARC batch")
	ErrMissingApprover   = errors.New("approver is required")
)

// ErrExpired возвращается при любой попытке изменить истёкший RFQ.
var ErrExpired = errors.New("rfq has expired, negotiation is read-only")

// ErrSubmitFailed оборачивает ошибку бэкенда при пакетной отправке.
var ErrSubmitFailed = errors.New("batch submission failed")
