package domain

import "github.com/shopspring/decimal"

const (
	EventOrderPlaced         = "OrderPlaced"
	EventSampleSubmitted     = "SampleSubmitted"
	EventSampleStatusChanged = "SampleStatusChanged"
)

type OrderPlaced struct {
	OrderID  string          `json:"orderId"`
	FarmerID string          `json:"farmerId"`
	ClientID string          `json:"clientId"`
	Total    decimal.Decimal `json:"total"`
	Items    []OrderLine     `json:"items"`
}

type OrderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type SampleSubmitted struct {
	SampleID  string `json:"sampleId"`
	FarmerID  string `json:"farmerId"`
	HoneyType string `json:"honeyType"`
}

type SampleStatusChanged struct {
	SampleID string       `json:"sampleId"`
	FarmerID string       `json:"farmerId"`
	Status   SampleStatus `json:"status"`
}

func NewOrderPlaced(o Order) OrderPlaced {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, OrderLine{ProductID: item.ID, Quantity: item.CartQuantity, Price: item.Price})
	}
	return OrderPlaced{
		OrderID:  o.ID,
		FarmerID: o.FarmerID,
		ClientID: o.ClientID,
		Total:    o.Total,
		Items:    lines,
	}
}
