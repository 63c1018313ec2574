package order

import (
	"sort"
	"strings"

	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// LineSnapshot es la vista normalizada de una línea para comparación:
// cantidades agregadas por (menu_item_id, nota normalizada).
type LineSnapshot struct {
	MenuItemID   string `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note,omitempty"`
}

// DiffLine describe una línea agregada o eliminada en el diff.
type DiffLine struct {
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note,omitempty"`
}

// DiffQtyLine describe una línea cuya cantidad cambió.
type DiffQtyLine struct {
	MenuItemName   string `json:"menu_item_name"`
	BeforeQuantity int    `json:"before_quantity"`
	AfterQuantity  int    `json:"after_quantity"`
	Note           string `json:"note,omitempty"`
}

// Diff es la diferencia estructural entre las líneas previas y las nuevas de una
// orden. Se calcula una sola vez y se reutiliza para el delta de inventario, el
// payload de auditoría y el evento de broadcast.
type Diff struct {
	Added           []DiffLine    `json:"added"`
	Removed         []DiffLine    `json:"removed"`
	QuantityChanged []DiffQtyLine `json:"quantity_changed"`
}

// IsEmpty indica si la modificación no cambia nada (no-op).
func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.QuantityChanged) == 0
}

// NormalizeNote recorta espacios; una nota en blanco equivale a sin nota.
func NormalizeNote(note string) string {
	return strings.TrimSpace(note)
}

type snapshotKey struct {
	menuItemID string
	note       string
}

// SnapshotItems agrega las líneas existentes de una orden por (ítem, nota).
func SnapshotItems(items []entity.OrderItem) []LineSnapshot {
	byKey := map[snapshotKey]*LineSnapshot{}
	for _, item := range items {
		key := snapshotKey{menuItemID: item.MenuItemID, note: NormalizeNote(item.Note)}
		if row, ok := byKey[key]; ok {
			row.Quantity += item.Quantity
			continue
		}
		byKey[key] = &LineSnapshot{
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			Note:         NormalizeNote(item.Note),
		}
	}
	return sortSnapshots(byKey)
}

func sortSnapshots(byKey map[snapshotKey]*LineSnapshot) []LineSnapshot {
	out := make([]LineSnapshot, 0, len(byKey))
	for _, row := range byKey {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MenuItemName != out[j].MenuItemName {
			return out[i].MenuItemName < out[j].MenuItemName
		}
		if out[i].MenuItemID != out[j].MenuItemID {
			return out[i].MenuItemID < out[j].MenuItemID
		}
		return out[i].Note < out[j].Note
	})
	return out
}

// BuildDiff calcula agregados, eliminados y cambios de cantidad entre dos
// snapshots. Las claves se recorren en orden estable para payloads deterministas.
func BuildDiff(before, after []LineSnapshot) Diff {
	beforeByKey := map[snapshotKey]LineSnapshot{}
	for _, row := range before {
		beforeByKey[snapshotKey{row.MenuItemID, row.Note}] = row
	}
	afterByKey := map[snapshotKey]LineSnapshot{}
	for _, row := range after {
		afterByKey[snapshotKey{row.MenuItemID, row.Note}] = row
	}

	keys := make([]snapshotKey, 0, len(beforeByKey)+len(afterByKey))
	seen := map[snapshotKey]bool{}
	for _, row := range append(append([]LineSnapshot{}, before...), after...) {
		key := snapshotKey{row.MenuItemID, row.Note}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].menuItemID != keys[j].menuItemID {
			return keys[i].menuItemID < keys[j].menuItemID
		}
		return keys[i].note < keys[j].note
	})

	var diff Diff
	for _, key := range keys {
		beforeRow, inBefore := beforeByKey[key]
		afterRow, inAfter := afterByKey[key]
		switch {
		case !inBefore && inAfter:
			diff.Added = append(diff.Added, DiffLine{
				MenuItemName: afterRow.MenuItemName,
				Quantity:     afterRow.Quantity,
				Note:         afterRow.Note,
			})
		case inBefore && !inAfter:
			diff.Removed = append(diff.Removed, DiffLine{
				MenuItemName: beforeRow.MenuItemName,
				Quantity:     beforeRow.Quantity,
				Note:         beforeRow.Note,
			})
		case inBefore && inAfter && beforeRow.Quantity != afterRow.Quantity:
			diff.QuantityChanged = append(diff.QuantityChanged, DiffQtyLine{
				MenuItemName:   afterRow.MenuItemName,
				BeforeQuantity: beforeRow.Quantity,
				AfterQuantity:  afterRow.Quantity,
				Note:           afterRow.Note,
			})
		}
	}
	return diff
}
