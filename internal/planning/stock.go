package planning

import "github.com/andresuchdata/fbaplan/backend-go/internal/domain"

// ApplyArrival moves an arrived quantity from in-transit to on-hand stock.
func ApplyArrival(sku domain.SKU, quantity int) domain.SKU {
	sku.FBAStock += quantity
	sku.InTransitStock = maxInt(0, sku.InTransitStock-quantity)
	return sku
}

// UndoArrival reverts ApplyArrival.
func UndoArrival(sku domain.SKU, quantity int) domain.SKU {
	sku.FBAStock = maxInt(0, sku.FBAStock-quantity)
	sku.InTransitStock += quantity
	return sku
}
