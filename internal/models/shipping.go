package models

// Tariff is a named flat-rate shipping cost bucket.
type Tariff struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Condition   string  `json:"condition"`
}

// ShippingSettings holds the two shipping tariffs. Tarif1 covers
// letter-sized sticker orders, Tarif2 orders that ship a physical
// add-on in a parcel.
type ShippingSettings struct {
	Tarif1 Tariff `json:"tarif1"`
	Tarif2 Tariff `json:"tarif2"`
}

// DefaultShippingSettings returns the tariffs used until an admin
// saves custom ones.
func DefaultShippingSettings() ShippingSettings {
	return ShippingSettings{
		Tarif1: Tariff{
			Name:        "Lettre suivie",
			Description: "Stickers uniquement, envoi en lettre suivie",
			Price:       3.50,
			Condition:   "stickers-only",
		},
		Tarif2: Tariff{
			Name:        "Colis suivi",
			Description: "Commande avec objet physique, envoi en colis suivi",
			Price:       5.80,
			Condition:   "physical-addon",
		},
	}
}
