package dto

import "time"

type SubmitOrderResponse struct {
	Success bool   `json:"success"`
	ID      uint64 `json:"id"`
	Lines   int    `json:"lines"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type OrderRecordResponse struct {
	ID           uint64    `json:"id"`
	OrderID      uint64    `json:"orderId"`
	LineNo       int       `json:"lineNo"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	CreatedAt    time.Time `json:"createdAt"`
	Employee     string    `json:"employee"`
	Retailer     string    `json:"retailer"`
	Address      string    `json:"address"`
	Address2     string    `json:"address2"`
	Mobile       string    `json:"mobile"`
	Product      string    `json:"product"`
	Quantity     int       `json:"quantity"`
	Unit         string    `json:"unit"`
	SpecialPrice string    `json:"specialPrice"`
	Remarks      string    `json:"remarks"`
}
