package models

import (
	"fmt"
	"time"
)

type (
	RFQStatus string // Общий статус RFQ
	ItemTag   string // Классификация позиции
	Tab       int    // Вкладка навигатора позиций
)

const (
	DraftRFQ          RFQStatus = "DRAFT"           // RFQ в черновике
	PublishedRFQ      RFQStatus = "PUBLISHED"       // RFQ опубликован
	InNegotiationsRFQ RFQStatus = "IN_NEGOTIATIONS" // Идут переговоры
	InApprovalRFQ     RFQStatus = "IN_APPROVAL"     // RFQ на согласовании
	CompletedRFQ      RFQStatus = "COMPLETED"       // RFQ завершён
	CancelledRFQ      RFQStatus = "CANCELLED"       // RFQ отменён

	CostBasedItem   ItemTag = "COST_BASED"
	MarketBasedItem ItemTag = "MARKET_BASED"

	AllItemsTab       Tab = 0 // Все позиции
	CounterOfferedTab Tab = 1 // Позиции со встречным предложением
	ActionPendingTab  Tab = 2 // Позиции, ожидающие действия закупщика
	SentArcTab        Tab = 3 // Позиции, отправленные на согласование
)

var tabNames = map[Tab]string{
	AllItemsTab:       "all",
	CounterOfferedTab: "counter-offered",
	ActionPendingTab:  "action-pending",
	SentArcTab:        "sent-arc",
}

// Valid проверяет, что статус входит в закрытый набор значений.
func (s RFQStatus) Valid() bool {
	switch s {
	case DraftRFQ, PublishedRFQ, InNegotiationsRFQ, InApprovalRFQ, CompletedRFQ, CancelledRFQ:
		return true
	default:
		return false
	}
}

// Valid проверяет индекс вкладки.
func (t Tab) Valid() bool {
	_, ok := tabNames[t]
	return ok
}

// String возвращает имя вкладки.
func (t Tab) String() string {
	if name, ok := tabNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tab(%d)", int(t))
}

// ParseTab принимает индекс 0-3 или имя вкладки.
func ParseTab(s string) (Tab, error) {
	for tab, name := range tabNames {
		if name == s || fmt.Sprint(int(tab)) == s {
			return tab, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q", s)
}

// TechnicalSpec описывает окно проведения RFQ.
type TechnicalSpec struct {
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	PaymentTerms string    `json:"paymentTerms,omitempty"`
}

// RFQEvent представляет модель закупочной процедуры.
type RFQEvent struct {
	ID            string        `json:"id"`
	EventCode     string        `json:"eventCode"`
	Title         string        `json:"title"`
	OverAllStatus RFQStatus     `json:"overAllStatus"`
	TechnicalSpec TechnicalSpec `json:"technicalSpec"`
}

// IsExpired сообщает, истекло ли окно RFQ на момент now.
func (e RFQEvent) IsExpired(now time.Time) bool {
	return !e.TechnicalSpec.EndDate.IsZero() && e.TechnicalSpec.EndDate.Before(now)
}

// LineItem представляет позицию RFQ.
type LineItem struct {
	ID       string  `json:"id"`
	ItemID   string  `json:"itemId"`
	ItemCode string  `json:"itemCode"`
	Name     string  `json:"name"`
	ItemTag  ItemTag `json:"itemTag,omitempty"`
}

// ItemBuckets группирует позиции по вкладкам навигатора.
type ItemBuckets struct {
	AllItems            []LineItem `json:"allItems"`
	CounterOfferedItems []LineItem `json:"counterOfferedItems"`
	ActionPendingItems  []LineItem `json:"actionPendingItems"`
	SentArcItems        []LineItem `json:"sentArcItems"`
}

// ForTab возвращает список позиций вкладки.
func (b ItemBuckets) ForTab(tab Tab) []LineItem {
	switch tab {
	case CounterOfferedTab:
		return b.CounterOfferedItems
	case ActionPendingTab:
		return b.ActionPendingItems
	case SentArcTab:
		return b.SentArcItems
	default:
		return b.AllItems
	}
}

// Find ищет позицию по ID среди всех позиций.
func (b ItemBuckets) Find(itemId string) (LineItem, bool) {
	for _, item := range b.AllItems {
		if item.ID == itemId {
			return item, true
		}
	}
	return LineItem{}, false
}
