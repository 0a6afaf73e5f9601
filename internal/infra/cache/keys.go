package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const keyPrefix = "availability"

// rangeKey identifies one cached (barber, from, to) result. Dates are
// calendar days in the business timezone; to is inclusive.
type rangeKey struct {
	BarberID uint
	From     string
	To       string
}

func newRangeKey(barberID uint, from, to time.Time) rangeKey {
	return rangeKey{
		BarberID: barberID,
		From:     from.Format(timezone.DateLayout),
		To:       to.Format(timezone.DateLayout),
	}
}

func (k rangeKey) String() string {
	return fmt.Sprintf("%s:%d:%s:%s", keyPrefix, k.BarberID, k.From, k.To)
}

// Covers compara datas no formato YYYY-MM-DD, que ordena lexicograficamente.
func (k rangeKey) Covers(date string) bool {
	return k.From <= date && date <= k.To
}

func parseRangeKey(raw string) (rangeKey, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 4 || parts[0] != keyPrefix {
		return rangeKey{}, false
	}
	var id uint
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return rangeKey{}, false
	}
	return rangeKey{BarberID: id, From: parts[2], To: parts[3]}, true
}

func indexKey(barberID uint) string {
	return fmt.Sprintf("%s:%d:keys", keyPrefix, barberID)
}

func generationKey(barberID uint) string {
	return fmt.Sprintf("%s:%d:gen", keyPrefix, barberID)
}
