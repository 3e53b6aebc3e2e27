package services

import "github.com/hallsamuel90/t14-wc-sync/internal/models"

// Test fixtures mirroring real vendor catalog entries.

func fakeRotorProduct() models.Turn14Product {
	return models.Turn14Product{
		ID:               "10030",
		Brand:            "DBA",
		Category:         "Brake",
		SubCategory:      "Drums and Rotors",
		Name:             "DBA 92-95 MR-2 Turbo Rear Drilled & Slotted 4000 Series Rotor",
		ShortDescription: "DBA 92-95 MR-2 Turbo Rear Drilled & Slotted 4000 Series Rotor",
		LongDescription:  "In 1975 four wheel disc brakes were fitted to some of the most iconic Australian muscle cars of all time.",
		Length:           15,
		Width:            15,
		Height:           4,
		Weight:           13,
		SKU:              "4583XS",
		Price:            276.23,
		StockQuantity:    7,
		RegularlyCarried: true,
		PrimaryImage: &models.Turn14Image{
			URL:    "https://d32vzsop7y1h3k.cloudfront.net/cf5fe9a38d8506d29ecfa29b1034c25b.JPG",
			Width:  800,
			Height: 600,
		},
		ThumbnailURL: "https://d5otzd52uv6zz.cloudfront.net/be0798de",
		Attributes: []models.Turn14Attribute{
			{Name: "Drilled", Value: "Yes"},
			{Name: "Slotted", Value: "Yes"},
		},
	}
}

func fakeLightBarNoLongDescription() models.Turn14Product {
	p := fakeRotorProduct()
	p.ID = "20041"
	p.Name = "Baja Designs 40in OnX6 Racer Arc Series Driving Pattern Wide LED Light Bar"
	p.ShortDescription = "Baja Designs 40in OnX6 Racer Arc Series Driving Pattern Wide LED Light Bar"
	p.LongDescription = ""
	p.SKU = "41-1103"
	return p
}

func fakeProductNoPrimaryImage() models.Turn14Product {
	p := fakeRotorProduct()
	p.PrimaryImage = nil
	return p
}

func fakeProductOversizedImage() models.Turn14Product {
	p := fakeRotorProduct()
	p.PrimaryImage = &models.Turn14Image{
		URL:    "https://d32vzsop7y1h3k.cloudfront.net/cf5fe9a38d8506d29ecfa29b1034c25b.JPG",
		Width:  2400,
		Height: 1600,
	}
	return p
}

func fakeProductOutOfStock() models.Turn14Product {
	p := fakeRotorProduct()
	p.StockQuantity = 0
	p.RegularlyCarried = true
	return p
}

func fakeProductNoAttributes() models.Turn14Product {
	p := fakeRotorProduct()
	p.Attributes = nil
	return p
}
