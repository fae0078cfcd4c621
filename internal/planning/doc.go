// Package planning holds the replenishment forecasting and scheduling rules:
// lead times, alert classification, stockout simulation, factory stocking
// suggestions, promotion surge requirements and shipment arrival projection.
//
// Every function is pure. Callers pass "today" explicitly and receive plain
// values they may persist or render.
package planning
