package catalog

import (
	"time"

	"shopzone/internal/models"
)

var categoryIcons = map[string]string{
	"electronics": "laptop",
	"fashion":     "tshirt",
	"home":        "home",
	"sports":      "dumbbell",
	"books":       "book",
}

// CategoryIcon returns the icon name for a known category, or "box" for
// anything else. Categories are strings by convention, not a closed enum.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "box"
}

// SeedProducts is the default catalog used when the store is empty or
// unreadable. Both timestamps are set to the given time.
func SeedProducts(now time.Time) []models.Product {
	seed := []models.Product{
		{
			ID:          "1",
			Name:        "Wireless Bluetooth Headphones",
			Category:    "electronics",
			Brand:       "apple",
			Price:       299.99,
			OldPrice:    fptr(399.99),
			Rating:      4.5,
			ReviewCount: 128,
			Description: "Premium wireless headphones with noise cancellation and superior sound quality.",
			Features:    []string{"Noise Cancellation", "Wireless", "Long Battery Life"},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "2",
			Name:        "Smart Fitness Watch",
			Category:    "electronics",
			Brand:       "samsung",
			Price:       199.99,
			Rating:      4.2,
			ReviewCount: 89,
			Description: "Track your fitness goals with this advanced smartwatch.",
			Features:    []string{"Heart Rate Monitor", "GPS", "Waterproof"},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "3",
			Name:        "Professional Running Shoes",
			Category:    "sports",
			Brand:       "nike",
			Price:       129.99,
			OldPrice:    fptr(149.99),
			Rating:      4.7,
			ReviewCount: 245,
			Description: "Lightweight and comfortable running shoes for serious athletes.",
			Features:    []string{"Lightweight", "Breathable", "Cushioned"},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "4",
			Name:        "Organic Cotton T-Shirt",
			Category:    "fashion",
			Brand:       "nike",
			Price:       29.99,
			Rating:      4.0,
			ReviewCount: 67,
			Description: "Comfortable and eco-friendly t-shirt made from organic cotton.",
			Features:    []string{"Organic Cotton", "Comfortable Fit", "Eco-Friendly"},
			InStock:     true,
		},
		{
			ID:          "5",
			Name:        "Smartphone with 5G",
			Category:    "electronics",
			Brand:       "samsung",
			Price:       799.99,
			OldPrice:    fptr(899.99),
			Rating:      4.6,
			ReviewCount: 312,
			Description: "Latest smartphone with 5G connectivity and advanced camera.",
			Features:    []string{"5G Ready", "Advanced Camera", "Fast Processor"},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "6",
			Name:        "Home Coffee Machine",
			Category:    "home",
			Brand:       "apple",
			Price:       299.99,
			Rating:      4.3,
			ReviewCount: 156,
			Description: "Professional-grade coffee machine for your home kitchen.",
			Features:    []string{"Multiple Brew Sizes", "Programmable", "Easy Clean"},
			InStock:     true,
		},
		{
			ID:          "7",
			Name:        "Yoga Exercise Mat",
			Category:    "sports",
			Brand:       "adidas",
			Price:       49.99,
			OldPrice:    fptr(69.99),
			Rating:      4.4,
			ReviewCount: 98,
			Description: "Non-slip yoga mat perfect for all types of exercise.",
			Features:    []string{"Non-slip Surface", "Easy to Clean", "Portable"},
			InStock:     true,
		},
		{
			ID:          "8",
			Name:        "Designer Backpack",
			Category:    "fashion",
			Brand:       "nike",
			Price:       89.99,
			Rating:      4.1,
			ReviewCount: 78,
			Description: "Stylish and functional backpack for work or travel.",
			Features:    []string{"Water Resistant", "Multiple Compartments", "Ergonomic"},
			InStock:     true,
		},
		{
			ID:          "9",
			Name:        "Wireless Mouse",
			Category:    "electronics",
			Brand:       "apple",
			Price:       79.99,
			Rating:      4.2,
			ReviewCount: 134,
			Description: "Ergonomic wireless mouse with precision tracking.",
			Features:    []string{"Wireless", "Ergonomic Design", "Long Battery"},
			InStock:     true,
		},
		{
			ID:          "10",
			Name:        "Indoor Plant Pot Set",
			Category:    "home",
			Brand:       "apple",
			Price:       39.99,
			OldPrice:    fptr(49.99),
			Rating:      4.0,
			ReviewCount: 45,
			Description: "Beautiful ceramic pots perfect for indoor plants.",
			Features:    []string{"Drainage Holes", "Decorative Design", "Set of 3"},
			InStock:     true,
		},
		{
			ID:          "11",
			Name:        "Bluetooth Speaker",
			Category:    "electronics",
			Brand:       "samsung",
			Price:       149.99,
			OldPrice:    fptr(179.99),
			Rating:      4.5,
			ReviewCount: 203,
			Description: "Portable Bluetooth speaker with rich, clear sound.",
			Features:    []string{"Portable", "Waterproof", "Long Battery Life"},
			InStock:     true,
			Featured:    true,
		},
		{
			ID:          "12",
			Name:        "Casual Denim Jeans",
			Category:    "fashion",
			Brand:       "nike",
			Price:       79.99,
			Rating:      3.9,
			ReviewCount: 89,
			Description: "Classic denim jeans with comfortable fit.",
			Features:    []string{"Comfortable Fit", "Durable Material", "Classic Style"},
			InStock:     true,
		},
		{
			ID:          "13",
			Name:        "Gaming Mechanical Keyboard",
			Category:    "electronics",
			Brand:       "apple",
			Price:       159.99,
			OldPrice:    fptr(199.99),
			Rating:      4.7,
			ReviewCount: 167,
			Description: "Professional gaming keyboard with mechanical switches.",
			Features:    []string{"Mechanical Switches", "RGB Lighting", "Programmable"},
			InStock:     true,
		},
		{
			ID:          "14",
			Name:        "Resistance Band Set",
			Category:    "sports",
			Brand:       "adidas",
			Price:       24.99,
			Rating:      4.3,
			ReviewCount: 112,
			Description: "Complete resistance band set for strength training.",
			Features:    []string{"Multiple Resistance Levels", "Portable", "Exercise Guide"},
			InStock:     true,
		},
		{
			ID:          "15",
			Name:        "Scented Candle Collection",
			Category:    "home",
			Brand:       "apple",
			Price:       59.99,
			OldPrice:    fptr(79.99),
			Rating:      4.2,
			ReviewCount: 73,
			Description: "Luxury scented candles to create the perfect ambiance.",
			Features:    []string{"Natural Wax", "Long Burn Time", "Premium Scents"},
			InStock:     true,
		},
		{
			ID:          "16",
			Name:        "Leather Wallet",
			Category:    "fashion",
			Brand:       "nike",
			Price:       49.99,
			Rating:      4.1,
			ReviewCount: 56,
			Description: "Premium leather wallet with RFID blocking technology.",
			Features:    []string{"Genuine Leather", "RFID Blocking", "Multiple Slots"},
			InStock:     true,
		},
	}

	for i := range seed {
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
	}
	return seed
}

func fptr(v float64) *float64 {
	return &v
}
