package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PriceInput хранит введённое значение как строку: поле принимает и "95.5", и 95.5.
// Разбор числа выполняет слой workflow.
type PriceInput string

// UnmarshalJSON принимает строку или числовой литерал.
func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a string or a number: %w", err)
	}
	*p = PriceInput(n.String())
	return nil
}

// StageOfferRequest - ввод встречной цены по поставщику и позиции.
type StageOfferRequest struct {
	VendorID string     `json:"vendorId"`
	ItemID   string     `json:"itemId"`
	Value    PriceInput `json:"value"`
}

// PriorityRequest - назначение приоритета поставщика по позиции.
type PriorityRequest struct {
	ItemID   string `json:"itemId"`
	VendorID string `json:"vendorId"`
	Rank     int    `json:"rank"`
	Remark   string `json:"remark"`
}
