// Package analytics expone consultas agregadas de solo lectura para el panel
// del negocio. Siempre lee estado comprometido; nunca participa en las
// transacciones del coordinador.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// UseCase consultas del panel.
type UseCase struct {
	analytics   repository.AnalyticsRepository
	ingredients repository.IngredientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(analytics repository.AnalyticsRepository, ingredients repository.IngredientRepository) *UseCase {
	return &UseCase{analytics: analytics, ingredients: ingredients}
}

// Overview resumen agregado del período consultado.
type Overview struct {
	From           time.Time                  `json:"from"`
	To             time.Time                  `json:"to"`
	Revenue        decimal.Decimal            `json:"revenue"`
	PaidOrders     int64                      `json:"paid_orders"`
	AverageTicket  decimal.Decimal            `json:"average_ticket"`
	TopItems       []repository.TopItemRow    `json:"top_items"`
	DailySales     []repository.DailySalesRow `json:"daily_sales"`
	InventoryValue decimal.Decimal            `json:"inventory_value"`
	LowStock       []*entity.Ingredient       `json:"low_stock"`
}

// GetOverview arma el resumen del período [from, to). Un rango invertido es
// entrada inválida; to en cero toma el momento actual.
func (uc *UseCase) GetOverview(ctx context.Context, from, to time.Time) (*Overview, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}
	if !from.Before(to) {
		return nil, domain.ErrInvalidInput
	}

	revenue, paidOrders, err := uc.analytics.PaidRevenue(from, to)
	if err != nil {
		return nil, err
	}
	topItems, err := uc.analytics.TopItems(from, to, 10)
	if err != nil {
		return nil, err
	}
	dailySales, err := uc.analytics.DailySales(from, to)
	if err != nil {
		return nil, err
	}
	inventoryValue, err := uc.analytics.InventoryValue()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.ingredients.ListLowStock()
	if err != nil {
		return nil, err
	}

	averageTicket := decimal.Zero
	if paidOrders > 0 {
		averageTicket = revenue.Div(decimal.NewFromInt(paidOrders)).Round(2)
	}

	return &Overview{
		From:           from,
		To:             to,
		Revenue:        revenue,
		PaidOrders:     paidOrders,
		AverageTicket:  averageTicket,
		TopItems:       topItems,
		DailySales:     dailySales,
		InventoryValue: inventoryValue,
		LowStock:       lowStock,
	}, nil
}
