package orders

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber produce un número legible: "OD" + timestamp UTC compacto
// + 4 dígitos aleatorios. La unicidad real la garantiza el índice único de BD;
// ante colisión el coordinador reintenta con un número nuevo.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("OD%s%04d", now.UTC().Format("20060102150405"), rand.Intn(10000))
}
