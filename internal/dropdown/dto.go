package dropdown

type DataResponse struct {
	Retailers []RetailerDTO `json:"retailers"`
	Products  []string      `json:"products"`
}

type RetailerDTO struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Address2 string `json:"address2"`
	Mobile   string `json:"mobile"`
}

type unavailableResponse struct {
	DataResponse
	TraceID string `json:"traceId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toResponse(data *Data) DataResponse {
	resp := DataResponse{
		Retailers: make([]RetailerDTO, 0, len(data.Retailers)),
		Products:  make([]string, 0, len(data.Products)),
	}
	for _, r := range data.Retailers {
		resp.Retailers = append(resp.Retailers, RetailerDTO{
			Name:     r.Name,
			Address:  r.Address,
			Address2: r.Address2,
			Mobile:   r.Mobile,
		})
	}
	resp.Products = append(resp.Products, data.Products...)
	return resp
}
