// Package inventory contiene los value objects del ledger: requerimientos de
// ingredientes y su aritmética de agregación y delta neto.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Requirement es la cantidad requerida de un ingrediente para una operación.
type Requirement struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// Aggregate suma requerimientos duplicados por ingrediente y devuelve la lista
// ordenada por id de ingrediente (orden estable de bloqueo de filas).
func Aggregate(reqs []Requirement) []Requirement {
	byID := map[string]decimal.Decimal{}
	for _, r := range reqs {
		byID[r.IngredientID] = byID[r.IngredientID].Add(r.Quantity)
	}
	return fromMap(byID)
}

// Delta calcula el requerimiento neto por ingrediente: new − old.
// Positivo = consumo adicional necesario; negativo = cantidad a restaurar.
// Los ingredientes con delta cero se omiten.
func Delta(oldReqs, newReqs []Requirement) []Requirement {
	byID := map[string]decimal.Decimal{}
	for _, r := range newReqs {
		byID[r.IngredientID] = byID[r.IngredientID].Add(r.Quantity)
	}
	for _, r := range oldReqs {
		byID[r.IngredientID] = byID[r.IngredientID].Sub(r.Quantity)
	}
	for id, qty := range byID {
		if qty.IsZero() {
			delete(byID, id)
		}
	}
	return fromMap(byID)
}

func fromMap(byID map[string]decimal.Decimal) []Requirement {
	out := make([]Requirement, 0, len(byID))
	for id, qty := range byID {
		out = append(out, Requirement{IngredientID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IngredientID < out[j].IngredientID })
	return out
}
