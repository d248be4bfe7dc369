package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeSaleRecorded = "sale.recorded"

type SaleRecordedEvent struct {
	BaseEvent
	SaleID    int64
	ProductID int64
	Quantity  int
}

func NewSaleRecordedEvent(saleID, productID int64, quantity int) SaleRecordedEvent {
	return SaleRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeSaleRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"sale_id":    saleID,
				"product_id": productID,
				"quantity":   quantity,
			},
		},
		SaleID:    saleID,
		ProductID: productID,
		Quantity:  quantity,
	}
}
