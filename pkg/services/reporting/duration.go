package reporting

import (
	"math"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

const hoursPerDay = 24

// BorrowingDuration returns the whole-day duration of a closed loan, rounded
// to the nearest day. Open loans contribute nothing, not zero.
func BorrowingDuration(r domain.BorrowingRecord) (int, bool) {
	if r.ReturnedAt == nil {
		return 0, false
	}
	days := r.ReturnedAt.Sub(r.CheckoutDate).Hours() / hoursPerDay
	return int(math.Round(days)), true
}

// AverageBorrowingDuration is the mean duration over closed loans only,
// rounded to the nearest day. An empty contributing set yields 0.
func AverageBorrowingDuration(records []domain.BorrowingRecord) int {
	sum, count := 0, 0
	for _, r := range records {
		if days, ok := BorrowingDuration(r); ok {
			sum += days
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}
