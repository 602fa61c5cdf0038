package usecase

import (
	"strings"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
)

// shippingZone is a flat-rate delivery zone keyed by zip code prefix.
type shippingZone struct {
	prefixes []string
	baseFee  float64
	perKgFee float64
	days     int
}

// Zones follow the first digit of the Brazilian CEP: 0/1 southeast capital
// region, 2/3 southeast interior, 4-6 northeast/south, 7-9 north/center-west.
var shippingZones = []shippingZone{
	{prefixes: []string{"0", "1"}, baseFee: 10, perKgFee: 2, days: 3},
	{prefixes: []string{"2", "3"}, baseFee: 15, perKgFee: 3, days: 5},
	{prefixes: []string{"4", "5", "6"}, baseFee: 20, perKgFee: 4, days: 8},
	{prefixes: []string{"7", "8", "9"}, baseFee: 25, perKgFee: 5, days: 10},
}

const defaultCarrier = "correios"

// ShippingUseCase computes delivery quotes from zip code and cart weight.
type ShippingUseCase struct {
	freeOver float64
}

// NewShippingUseCase constructs ShippingUseCase. Orders whose subtotal
// reaches freeOver ship for free.
func NewShippingUseCase(freeOver float64) *ShippingUseCase {
	return &ShippingUseCase{freeOver: freeOver}
}

func normalizeZip(zip string) string {
	return strings.ReplaceAll(strings.TrimSpace(zip), "-", "")
}

// Quote returns the shipping price and delivery estimate.
func (u *ShippingUseCase) Quote(zipCode string, weightGrams int, subtotal float64) (*model.ShippingQuote, error) {
	zip := normalizeZip(zipCode)
	if len(zip) != 8 {
		return nil, domainErrors.ErrInvalidInput
	}

	zone := shippingZones[len(shippingZones)-1]
	for _, z := range shippingZones {
		for _, prefix := range z.prefixes {
			if strings.HasPrefix(zip, prefix) {
				zone = z
			}
		}
	}

	amount := zone.baseFee + zone.perKgFee*float64(weightGrams)/1000
	if u.freeOver > 0 && subtotal >= u.freeOver {
		amount = 0
	}

	return &model.ShippingQuote{
		Amount:       amount,
		Carrier:      defaultCarrier,
		DeliveryDays: zone.days,
	}, nil
}
