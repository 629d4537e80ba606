// Package shipping selects the flat-rate shipping tariff for an order.
package shipping

import "github.com/tagadou/backend/internal/models"

// Add-ons that ship a physical object and therefore require the parcel
// tariff instead of the letter tariff.
var physicalUpsells = map[string]bool{
	"photo-premium":  true,
	"livre-histoire": true,
}

// RequiresParcel reports whether any selected add-on ships a physical
// object.
func RequiresParcel(upsells []string) bool {
	for _, u := range upsells {
		if physicalUpsells[u] {
			return true
		}
	}
	return false
}

// SelectTariff returns the tariff applying to the selected add-ons:
// tarif2 when the order ships a physical object, tarif1 otherwise.
func SelectTariff(settings models.ShippingSettings, upsells []string) models.Tariff {
	if RequiresParcel(upsells) {
		return settings.Tarif2
	}
	return settings.Tarif1
}
