package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

type PricedLine struct {
	ServiceID uint            `json:"serviceId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Summary struct {
	Services   []PricedLine    `json:"services"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// Summarize prices link rows at the current catalog price of their
// preloaded Service. The sum is rounded to cents once, at the end.
func Summarize(links []models.BookingService) Summary {
	out := Summary{Services: make([]PricedLine, 0, len(links))}
	sum := decimal.Zero
	for _, l := range links {
		lineTotal := l.Service.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		sum = sum.Add(lineTotal)
		out.Services = append(out.Services, PricedLine{
			ServiceID: l.ServiceID,
			Name:      l.Service.Name,
			UnitPrice: l.Service.Price,
			Quantity:  l.Quantity,
			LineTotal: lineTotal,
		})
	}
	out.GrandTotal = sum.Round(2)
	return out
}

// CheckTotal rejects a grand total the stored column cannot hold.
func CheckTotal(s Summary) error {
	if s.GrandTotal.GreaterThan(models.MaxAmount) {
		return httperr.Validation("booking total exceeds " + models.MaxAmount.String()).
			WithCode("total_out_of_range")
	}
	return nil
}

// GroupByBooking summarizes links per booking id.
func GroupByBooking(links []models.BookingService) map[uint]Summary {
	grouped := make(map[uint][]models.BookingService)
	for _, l := range links {
		grouped[l.BookingID] = append(grouped[l.BookingID], l)
	}
	out := make(map[uint]Summary, len(grouped))
	for id, ls := range grouped {
		out[id] = Summarize(ls)
	}
	return out
}
