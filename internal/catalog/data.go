package catalog

var defaultCategories = []Category{
	{
		ID:          "shots",
		Name:        "Shots",
		Description: "Various shot crackers from 12 to 100 shots",
		ImageURL:    "https://images.pexels.com/photos/1190298/pexels-photo-1190298.jpeg",
	},
	{
		ID:          "sparklers",
		Name:        "Sparklers",
		Description: "Colorful sparklers of different sizes",
		ImageURL:    "https://images.pexels.com/photos/769525/pexels-photo-769525.jpeg",
	},
	{
		ID:          "ground_items",
		Name:        "Ground Items",
		Description: "Exciting ground-based fireworks",
		ImageURL:    "https://images.pexels.com/photos/1573324/pexels-photo-1573324.jpeg",
	},
	{
		ID:          "rockets",
		Name:        "Rockets",
		Description: "Sky rockets that soar high with colorful effects",
		ImageURL:    "https://images.pexels.com/photos/949592/pexels-photo-949592.jpeg",
	},
	{
		ID:          "bombs",
		Name:        "Bombs",
		Description: "Powerful sound bombs and color bombs",
		ImageURL:    "https://images.pexels.com/photos/1494300/pexels-photo-1494300.jpeg",
	},
}

var defaultProducts = []Product{
	{ID: "1", Name: "12 Shots Multicolour", Description: "Compact cake firing twelve colour bursts", Category: "shots", Unit: "1 box", Price: 450, DiscountPercentage: 50, ImageURL: "https://images.pexels.com/photos/1190298/pexels-photo-1190298.jpeg", StockQuantity: 120, IsPopular: true},
	{ID: "2", Name: "30 Shots Festival", Description: "Thirty crackling shots with golden tails", Category: "shots", Unit: "1 box", Price: 1100, DiscountPercentage: 50, ImageURL: "https://images.pexels.com/photos/1190298/pexels-photo-1190298.jpeg", StockQuantity: 60},
	{ID: "3", Name: "60 Shots Grand", Description: "Sixty shot aerial display for celebrations", Category: "shots", Unit: "1 box", Price: 2400, DiscountPercentage: 45, ImageURL: "https://images.pexels.com/photos/1190298/pexels-photo-1190298.jpeg", StockQuantity: 25, IsNewArrival: true},
	{ID: "4", Name: "100 Shots Royal", Description: "One hundred shots finale cake", Category: "shots", Unit: "1 box", Price: 4200, DiscountPercentage: 40, ImageURL: "https://images.pexels.com/photos/1190298/pexels-photo-1190298.jpeg", StockQuantity: 10, IsPopular: true},
	{ID: "5", Name: "7cm Electric Sparklers", Description: "Short sparklers safe for children", Category: "sparklers", Unit: "10 pcs", Price: 60, DiscountPercentage: 30, ImageURL: "https://images.pexels.com/photos/769525/pexels-photo-769525.jpeg", StockQuantity: 500, IsPopular: true},
	{ID: "6", Name: "15cm Colour Sparklers", Description: "Long burning sparklers in red and green", Category: "sparklers", Unit: "10 pcs", Price: 140, DiscountPercentage: 30, ImageURL: "https://images.pexels.com/photos/769525/pexels-photo-769525.jpeg", StockQuantity: 300},
	{ID: "7", Name: "30cm Gold Sparklers", Description: "Extra long golden sparklers", Category: "sparklers", Unit: "5 pcs", Price: 100, DiscountPercentage: 20, ImageURL: "https://images.pexels.com/photos/769525/pexels-photo-769525.jpeg", StockQuantity: 200, IsNewArrival: true},
	{ID: "8", Name: "Ground Chakkar Big", Description: "Spinning ground wheel with bright sparks", Category: "ground_items", Unit: "10 pcs", Price: 180, DiscountPercentage: 40, ImageURL: "https://images.pexels.com/photos/1573324/pexels-photo-1573324.jpeg", StockQuantity: 250, IsPopular: true},
	{ID: "9", Name: "Flower Pots Special", Description: "Fountain cones with silver showers", Category: "ground_items", Unit: "10 pcs", Price: 320, DiscountPercentage: 40, ImageURL: "https://images.pexels.com/photos/1573324/pexels-photo-1573324.jpeg", StockQuantity: 150},
	{ID: "10", Name: "Twinkling Star", Description: "Handheld crackling star sticks", Category: "ground_items", Unit: "10 pcs", Price: 90, DiscountPercentage: 25, ImageURL: "https://images.pexels.com/photos/1573324/pexels-photo-1573324.jpeg", StockQuantity: 0},
	{ID: "11", Name: "Baby Rocket", Description: "Small rockets with whistle effect", Category: "rockets", Unit: "10 pcs", Price: 150, DiscountPercentage: 35, ImageURL: "https://images.pexels.com/photos/949592/pexels-photo-949592.jpeg", StockQuantity: 180},
	{ID: "12", Name: "Colour Rocket", Description: "Rockets bursting into colour stars", Category: "rockets", Unit: "10 pcs", Price: 380, DiscountPercentage: 35, ImageURL: "https://images.pexels.com/photos/949592/pexels-photo-949592.jpeg", StockQuantity: 90, IsPopular: true},
	{ID: "13", Name: "Lunik Express", Description: "Twin stage rocket with crackling finish", Category: "rockets", Unit: "5 pcs", Price: 520, DiscountPercentage: 30, ImageURL: "https://images.pexels.com/photos/949592/pexels-photo-949592.jpeg", StockQuantity: 40, IsNewArrival: true},
	{ID: "14", Name: "Hydro Bomb", Description: "Loud green sound bomb", Category: "bombs", Unit: "10 pcs", Price: 200, DiscountPercentage: 45, ImageURL: "https://images.pexels.com/photos/1494300/pexels-photo-1494300.jpeg", StockQuantity: 300},
	{ID: "15", Name: "King Kong Bomb", Description: "Heavy sound bomb for grand finales", Category: "bombs", Unit: "10 pcs", Price: 340, DiscountPercentage: 45, ImageURL: "https://images.pexels.com/photos/1494300/pexels-photo-1494300.jpeg", StockQuantity: 120, IsPopular: true},
	{ID: "16", Name: "Colour Bomb", Description: "Sound bomb releasing a colour flash", Category: "bombs", Unit: "5 pcs", Price: 260, DiscountPercentage: 0, ImageURL: "https://images.pexels.com/photos/1494300/pexels-photo-1494300.jpeg", StockQuantity: 75, IsNewArrival: true},
}
