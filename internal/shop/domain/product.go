package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Farm        string          `json:"farm"`
	FarmerID    string          `json:"farmerId"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	Verified    bool            `json:"verified"`
	Type        string          `json:"type"`
	Region      string          `json:"region"`
	Organic     bool            `json:"organic"`
	Image       string          `json:"image"`
}

// SeedProducts returns the catalog every new session starts with.
func SeedProducts() []Product {
	return []Product{
		{
			ID: "1", Name: "Wildflower Honey", Farm: "Happy Bee Farm", FarmerID: "farmer1",
			Price: decimal.RequireFromString("12.99"), Quantity: 500, Unit: "g",
			Rating: 4.8, ReviewCount: 124, Verified: true, Type: "Wildflower",
			Region: "Central Province", Organic: true, Image: "/images/honey1.webp",
		},
		{
			ID: "2", Name: "Cinnamon Honey", Farm: "Spice Garden Apiary", FarmerID: "farmer2",
			Price: decimal.RequireFromString("15.99"), Quantity: 500, Unit: "g",
			Rating: 4.9, ReviewCount: 87, Verified: true, Type: "Cinnamon",
			Region: "Western Province", Organic: true, Image: "/images/honey-e396fd81cc2d4275bfaee2948d414fd8.jpg",
		},
		{
			ID: "3", Name: "Forest Honey", Farm: "Green Hills Farm", FarmerID: "farmer3",
			Price: decimal.RequireFromString("14.49"), Quantity: 350, Unit: "g",
			Rating: 4.7, ReviewCount: 56, Verified: true, Type: "Forest",
			Region: "Uva Province", Organic: false, Image: "/images/Honey-Cake-take-3_5.jpg",
		},
		{
			ID: "4", Name: "Coconut Flower Honey", Farm: "Coastal Bee Haven", FarmerID: "farmer4",
			Price: decimal.RequireFromString("16.99"), Quantity: 500, Unit: "g",
			Rating: 4.9, ReviewCount: 102, Verified: true, Type: "Coconut Flower",
			Region: "Southern Province", Organic: true, Image: "/images/honey-1296x728-header.webp",
		},
		{
			ID: "5", Name: "Mountain Honey", Farm: "Highland Apiaries", FarmerID: "farmer5",
			Price: decimal.RequireFromString("19.99"), Quantity: 500, Unit: "g",
			Rating: 4.8, ReviewCount: 73, Verified: true, Type: "Mountain",
			Region: "Central Province", Organic: true, Image: "/images/Honey_Skin_Benefits_1.webp",
		},
		{
			ID: "6", Name: "Raw Jackfruit Honey", Farm: "Tropical Treasures", FarmerID: "farmer6",
			Price: decimal.RequireFromString("13.99"), Quantity: 400, Unit: "g",
			Rating: 4.6, ReviewCount: 41, Verified: true, Type: "Jackfruit",
			Region: "North Western Province", Organic: false, Image: "/images/honey1.webp",
		},
	}
}
