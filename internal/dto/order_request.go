package dto

import (
	"bytes"
	"encoding/json"
	"net/url"
)

// Quantity keeps the raw text of a quantity so that "10", 10 and "abc" all
// reach validation instead of failing JSON decoding.
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	*q = Quantity(data)
	return nil
}

type OrderLineRequest struct {
	Product      string   `json:"product"`
	Quantity     Quantity `json:"quantity"`
	Unit         string   `json:"unit"`
	SpecialPrice string   `json:"specialPrice"`
}

// SubmitOrderRequest accepts both the current shape (Products) and the legacy
// single-line shape with product fields at the top level.
type SubmitOrderRequest struct {
	Employee string             `json:"employee"`
	Retailer string             `json:"retailer"`
	Address  string             `json:"address"`
	Address2 string             `json:"address2"`
	Mobile   string             `json:"mobile"`
	Products []OrderLineRequest `json:"products"`
	Remarks  string             `json:"remarks"`

	Product      string   `json:"product"`
	Quantity     Quantity `json:"quantity"`
	Unit         string   `json:"unit"`
	SpecialPrice string   `json:"specialPrice"`
}

// Lines normalizes both shapes into one slice. The legacy fields are only
// read when Products is empty.
func (r SubmitOrderRequest) Lines() []OrderLineRequest {
	if len(r.Products) > 0 {
		return r.Products
	}
	if r.Product == "" && r.Quantity == "" {
		return nil
	}
	return []OrderLineRequest{{
		Product:      r.Product,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		SpecialPrice: r.SpecialPrice,
	}}
}

// SubmitOrderRequestFromForm reads the legacy form-encoded submission.
func SubmitOrderRequestFromForm(form url.Values) SubmitOrderRequest {
	return SubmitOrderRequest{
		Employee:     form.Get("employee"),
		Retailer:     form.Get("retailer"),
		Address:      form.Get("address"),
		Address2:     form.Get("address2"),
		Mobile:       form.Get("mobile"),
		Remarks:      form.Get("remarks"),
		Product:      form.Get("product"),
		Quantity:     Quantity(form.Get("quantity")),
		Unit:         form.Get("unit"),
		SpecialPrice: form.Get("specialPrice"),
	}
}
