package service

import (
	"github.com/samber/lo"
	"github.com/subbridge/subbridge/internal/domain/order"
	"github.com/subbridge/subbridge/internal/domain/subscription"
)

// ExtractShipping maps the first shipping line; any further lines are ignored
func ExtractShipping(o *order.Order) subscription.ShippingMethod {
	line, ok := lo.First(o.ShippingLines)
	if !ok {
		return subscription.ShippingMethod{}
	}
	return subscription.ShippingMethod{
		ID:   line.ID,
		Name: line.Title,
		Cost: line.Price,
	}
}

func ExtractOrderHeader(o *order.Order) subscription.OrderHeader {
	return subscription.OrderHeader{
		OrderID:     o.ID,
		OrderTypeID: subscription.OrderTypeNew,
		OrderDate:   o.CreatedAt,
		TotalPrice:  o.TotalPrice,
	}
}
