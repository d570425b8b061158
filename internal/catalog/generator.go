// Package catalog generates the mock product set the storefront runs on.
// Products are built in-process from fixed name tables plus pseudo-random
// pricing fields; nothing is fetched or persisted.
package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"lumina/internal/models"
)

// Categories is the fixed category set, in display order.
var Categories = []string{"Technology", "Clothing", "Gaming", "Home", "Audio", "Accessories"}

var productNames = [][]string{
	{"Quantum Headset", "Cyberpunk Hoodie", "Neon Keyboard", "Smart Plant Pot", "Bass Pro X", "Holo Watch"},
	{"Pixel Phone 9", "Retro Jacket", "Pro Mouse G", "Ambient Lamp", "Studio Monitor", "Titanium Ring"},
	{"Drone Air", "Urban Sneakers", "VR Headset", "Coffee Bot", "Pod Cast Mic", "Leather Bag"},
	{"Tablet Ultra", "Cargo Pants", "Gaming Chair", "Air Purifier", "Soundbar 500", "Sun Glasses"},
	{"Laptop Pro", "Silk Scarf", "Console X", "Smart Lock", "Vinyl Player", "Wallet Slim"},
	{"Smart Lens", "Denim Vest", "Controller Elite", "Robo Vacuum", "Noise Cancel 2", "Belt Classic"},
}

var nameSuffixes = []string{"Pro", "Max", "Lite", "V2", "Edition"}

// Generate builds the full product set from the fixed name tables, one batch
// of products per category. The same seed always yields the same catalog.
func Generate(seed int64) []models.Product {
	rng := rand.New(rand.NewSource(seed))

	var products []models.Product
	idCounter := 1

	for catIndex, category := range Categories {
		names := productNames[catIndex%len(productNames)]
		for i, baseName := range names {
			price := float64(rng.Intn(300) + 20)
			discount := 0
			if rng.Float64() > 0.7 {
				discount = rng.Intn(30) + 5
			}
			// Ratings land in 3.0–5.0 with one decimal place.
			rating := float64(rng.Intn(21)+30) / 10

			products = append(products, models.Product{
				ID:       fmt.Sprintf("prod-%d", idCounter),
				Name:     fmt.Sprintf("%s %s", baseName, nameSuffixes[i%len(nameSuffixes)]),
				Category: category,
				Price:    price,
				Discount: discount,
				Rating:   rating,
				Stock:    rng.Intn(50) + 2,
				Description: fmt.Sprintf(
					"Experience the future with the %s. Featuring state-of-the-art technology, premium materials, and designed for the modern lifestyle. Perfect for %s enthusiasts.",
					baseName, strings.ToLower(category)),
				Image: fmt.Sprintf("https://picsum.photos/seed/%d/400/400", idCounter*123),
				IsNew: rng.Float64() > 0.8,
			})
			idCounter++
		}
	}

	return products
}
