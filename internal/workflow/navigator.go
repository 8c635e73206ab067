package workflow

import (
	"strings"

	"github.com/senyabanana/rfq-desk/internal/models"

	"golang.org/x/text/cases"
)

// Navigator отслеживает текущую позицию RFQ внутри отфильтрованной вкладки.
type Navigator struct {
	buckets models.ItemBuckets
	tab     models.Tab
	search  string
	index   int
}

// NewNavigator создает навигатор на вкладке "все позиции".
func NewNavigator(buckets models.ItemBuckets) *Navigator {
	return &Navigator{buckets: buckets, tab: models.AllItemsTab}
}

// SetBuckets заменяет списки позиций после перезагрузки данных.
func (n *Navigator) SetBuckets(buckets models.ItemBuckets) {
	n.buckets = buckets
	if n.index >= len(n.Items()) {
		n.index = 0
	}
}

// Buckets возвращает все списки позиций.
func (n *Navigator) Buckets() models.ItemBuckets {
	return n.buckets
}

// SetTab переключает вкладку и сбрасывает индекс.
func (n *Navigator) SetTab(tab models.Tab) error {
	if !tab.Valid() {
		return ErrInvalidTab
	}
	n.tab = tab
	n.index = 0
	return nil
}

// SetSearch задает строку поиска и сбрасывает индекс.
func (n *Navigator) SetSearch(search string) {
	n.search = search
	n.index = 0
}

func (n *Navigator) Tab() models.Tab { return n.tab }
func (n *Navigator) Search() string  { return n.search }
func (n *Navigator) Index() int      { return n.index }

// Items возвращает позиции активной вкладки, отфильтрованные по строке поиска.
func (n *Navigator) Items() []models.LineItem {
	items := n.buckets.ForTab(n.tab)
	needle := strings.TrimSpace(n.search)
	if needle == "" {
		return items
	}

	fold := cases.Fold()
	needle = fold.String(needle)
	var filtered []models.LineItem
	for _, item := range items {
		if strings.Contains(fold.String(item.Name), needle) || strings.Contains(fold.String(item.ItemCode), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Current возвращает текущую позицию; false, если список пуст.
func (n *Navigator) Current() (models.LineItem, bool) {
	items := n.Items()
	if len(items) == 0 {
		return models.LineItem{}, false
	}
	if n.index >= len(items) {
		n.index = 0
	}
	return items[n.index], true
}

// Next переходит к следующей позиции с переходом в начало списка.
func (n *Navigator) Next() {
	count := len(n.Items())
	if count == 0 {
		return
	}
	n.index = (n.index + 1) % count
}

// Previous переходит к предыдущей позиции с переходом в конец списка.
func (n *Navigator) Previous() {
	count := len(n.Items())
	if count == 0 {
		return
	}
	n.index = (n.index - 1 + count) % count
}
