package requestresponse

import "collecto-backend/internal/model"

type AddressRequest struct {
	RecipientName  string  `json:"recipient_name"`
	RecipientPhone string  `json:"recipient_phone"`
	Address        string  `json:"address"`
	Province       *string `json:"province,omitempty"`
	Ward           *string `json:"ward,omitempty"`
}

type AddressListResponse struct {
	Addresses []model.Address `json:"addresses"`
	Total     int             `json:"total"`
	Page      int             `json:"page"`
	Limit     int             `json:"limit"`
}
