package catalog

// Product is one catalog entry. The set below is the fixed grounding corpus
// the assistant is allowed to answer from.
type Product struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Category     string `json:"category"`
	Price        string `json:"price"`
	PriceUSD     int    `json:"price_usd"`
	Capacity     string `json:"capacity"`
	CapacityL    int    `json:"capacity_l"`
	Features     string `json:"features"`
	Dimensions   string `json:"dimensions"`
	Warranty     string `json:"warranty"`
	ColorOptions string `json:"color_options"`
	Stock        string `json:"stock"`
	IdealFor     string `json:"ideal_for"`
}

var products = []Product{
	{
		Name:         "FrostFree Compact 150",
		Model:        "FF-150-2024",
		Category:     "Compact",
		Price:        "$279",
		PriceUSD:     279,
		Capacity:     "150L",
		CapacityL:    150,
		Features:     "Energy Star rated, reversible door, adjustable shelves, crisper drawer",
		Dimensions:   "54cm W x 60cm D x 85cm H",
		Warranty:     "1 year comprehensive",
		ColorOptions: "White, Silver",
		Stock:        "In Stock",
		IdealFor:     "Students, small apartments, dorm rooms",
	},
	{
		Name:         "ChillMaster 250L Single Door",
		Model:        "CM-250-SD",
		Category:     "Single Door",
		Price:        "$399",
		PriceUSD:     399,
		Capacity:     "250L",
		CapacityL:    250,
		Features:     "Direct cool, toughened glass shelves, large vegetable box, stabilizer-free operation",
		Dimensions:   "60cm W x 65cm D x 120cm H",
		Warranty:     "2 years on product, 5 years on compressor",
		ColorOptions: "Red, Blue, Silver, Black",
		Stock:        "In Stock",
		IdealFor:     "Small families (2-3 members), bachelor pads",
	},
	{
		Name:         "CoolPro 340L Double Door",
		Model:        "CP-340-DD",
		Category:     "Double Door",
		Price:        "$649",
		PriceUSD:     649,
		Capacity:     "340L (240L fridge + 100L freezer)",
		CapacityL:    340,
		Features:     "Frost-free, inverter compressor, anti-bacterial gasket, LED interior lighting",
		Dimensions:   "65cm W x 70cm D x 165cm H",
		Warranty:     "3 years comprehensive, 10 years on compressor",
		ColorOptions: "Stainless Steel, Black, White Pearl",
		Stock:        "In Stock",
		IdealFor:     "Medium families (3-4 members)",
	},
	{
		Name:         "IceCool 450L French Door",
		Model:        "IC-450-FD",
		Category:     "French Door",
		Price:        "$999",
		PriceUSD:     999,
		Capacity:     "450L (320L fridge + 130L freezer)",
		CapacityL:    450,
		Features:     "Multi-airflow cooling, humidity-controlled crispers, ice maker, touch control panel",
		Dimensions:   "80cm W x 75cm D x 175cm H",
		Warranty:     "5 years comprehensive warranty",
		ColorOptions: "Platinum Silver, Charcoal Black",
		Stock:        "In Stock",
		IdealFor:     "Large families (4-6 members), food enthusiasts",
	},
	{
		Name:         "Arctic 550L Side-by-Side",
		Model:        "AR-550-SBS",
		Category:     "Side-by-Side",
		Price:        "$1,299",
		PriceUSD:     1299,
		Capacity:     "550L (350L fridge + 200L freezer)",
		CapacityL:    550,
		Features:     "Water & ice dispenser, smart diagnostics, door alarm, express freeze function",
		Dimensions:   "90cm W x 75cm D x 180cm H",
		Warranty:     "5 years comprehensive, 10 years on linear compressor",
		ColorOptions: "Stainless Steel, Black Stainless",
		Stock:        "In Stock",
		IdealFor:     "Large families (5+ members), entertaining frequently",
	},
	{
		Name:         "SmartChill 600L IoT Enabled",
		Model:        "SC-600-IOT",
		Category:     "Smart Refrigerator",
		Price:        "$1,599",
		PriceUSD:     1599,
		Capacity:     "600L (420L fridge + 180L freezer)",
		CapacityL:    600,
		Features:     "WiFi connectivity, internal camera, voice control, auto-reorder, energy monitoring app",
		Dimensions:   "92cm W x 78cm D x 185cm H",
		Warranty:     "7 years comprehensive warranty",
		ColorOptions: "Mirror Finish, Matte Black",
		Stock:        "In Stock",
		IdealFor:     "Tech-savvy families, smart home integration",
	},
	{
		Name:         "EcoFreeze 400L Energy Saver",
		Model:        "EF-400-ES",
		Category:     "Energy Efficient",
		Price:        "$849",
		PriceUSD:     849,
		Capacity:     "400L (280L fridge + 120L freezer)",
		CapacityL:    400,
		Features:     "5-star energy rating, solar-compatible inverter, eco mode, low noise operation (38dB)",
		Dimensions:   "70cm W x 72cm D x 170cm H",
		Warranty:     "4 years comprehensive",
		ColorOptions: "Nature Green, Ocean Blue, Cloud White",
		Stock:        "In Stock",
		IdealFor:     "Eco-conscious families, energy bill savers",
	},
	{
		Name:         "MiniChill 90L Bar Refrigerator",
		Model:        "MC-90-BR",
		Category:     "Mini/Bar",
		Price:        "$199",
		PriceUSD:     199,
		Capacity:     "90L",
		CapacityL:    90,
		Features:     "Compact design, glass door option, adjustable thermostat, reversible door",
		Dimensions:   "48cm W x 52cm D x 75cm H",
		Warranty:     "1 year",
		ColorOptions: "Black, Stainless Steel",
		Stock:        "In Stock",
		IdealFor:     "Home bars, offices, guest rooms, beverages",
	},
	{
		Name:         "CommercialPro 800L",
		Model:        "CP-800-COM",
		Category:     "Commercial",
		Price:        "$2,299",
		PriceUSD:     2299,
		Capacity:     "800L",
		CapacityL:    800,
		Features:     "Heavy-duty compressor, stainless steel interior, lockable doors, temperature display",
		Dimensions:   "120cm W x 80cm D x 200cm H",
		Warranty:     "3 years commercial warranty",
		ColorOptions: "Stainless Steel",
		Stock:        "Made to Order (2-3 weeks)",
		IdealFor:     "Restaurants, cafes, commercial kitchens",
	},
	{
		Name:         "UltraFreeze 700L Premium",
		Model:        "UF-700-PRM",
		Category:     "Premium",
		Price:        "$1,899",
		PriceUSD:     1899,
		Capacity:     "700L (480L fridge + 220L freezer)",
		CapacityL:    700,
		Features:     "Dual cooling system, convertible freezer, wine rack, sabbath mode, child lock",
		Dimensions:   "95cm W x 80cm D x 190cm H",
		Warranty:     "10 years comprehensive warranty",
		ColorOptions: "Champagne Gold, Graphite Grey",
		Stock:        "Limited Stock",
		IdealFor:     "Luxury homes, large families, premium lifestyle",
	},
}

// Products returns a copy of the catalog entries.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
