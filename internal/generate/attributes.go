package generate

// Attributes are the word lists used to fill name and description templates.
// They are static data; nothing about the size encoding depends on them.
type Attributes struct {
	Colors    []string
	Styles    []string
	Materials []string
	Brands    []string
	Fits      []string
	Occasions []string
	Patterns  []string
	Sleeves   []string
}

// Category describes one product family.
type Category struct {
	Name      string
	MinPrice  int64 // Inclusive, in whole currency units
	MaxPrice  int64
	Templates []string // Name templates with {color}-style placeholders
}

// DefaultAttributes is the built-in word list.
var DefaultAttributes = Attributes{
	Colors:    []string{"black", "white", "navy", "royal blue", "grey", "beige", "brown", "olive", "burgundy", "midnight", "pinstripe", "patterned"},
	Styles:    []string{"classic", "modern", "elegant", "youthful", "office", "evening", "casual", "slim", "tailored"},
	Materials: []string{"wool", "cotton", "linen", "polyester", "cashmere", "tweed", "khaki", "velvet", "denim"},
	Brands:    []string{"Elegance", "Gentleman", "Classic", "Modern", "Premium", "Luxury", "Executive", "Business", "Formal"},
	Fits:      []string{"body fit", "regular fit", "slim fit", "oversize", "standard fit", "relaxed fit", "skinny fit"},
	Occasions: []string{"party", "office", "wedding", "street", "festival", "casual", "formal"},
	Patterns:  []string{"plain", "striped", "checked", "printed", "polka dot", "floral", "embroidered", "windowpane"},
	Sleeves:   []string{"long sleeve", "short sleeve", "three-quarter sleeve", "sleeveless"},
}

// DefaultCategories is the built-in category set. Prices are whole units.
var DefaultCategories = []Category{
	{
		Name: "Suits", MinPrice: 1_500_000, MaxPrice: 5_000_000,
		Templates: []string{
			"{color} {style} {material} suit",
			"{color} {style} jacket, {fit}",
			"{color} {material} suit for {occasion}",
			"{brand} {color} suit, {fit}",
			"{color} {style} {material} blazer",
		},
	},
	{
		Name: "Trousers", MinPrice: 500_000, MaxPrice: 1_500_000,
		Templates: []string{
			"{color} {style} {material} trousers",
			"{color} {material} dress pants, {fit}",
			"{brand} {color} trousers, {fit}",
			"{color} {style} trousers for {occasion}",
		},
	},
	{
		Name: "Shirts", MinPrice: 350_000, MaxPrice: 1_200_000,
		Templates: []string{
			"{color} {style} {material} shirt",
			"{brand} {color} shirt, {fit}",
			"{color} {pattern} shirt for {occasion}",
			"{color} {sleeve} {material} shirt",
		},
	},
	{
		Name: "Waistcoats", MinPrice: 600_000, MaxPrice: 2_000_000,
		Templates: []string{
			"{color} {style} {material} waistcoat",
			"{brand} {color} waistcoat, {fit}",
			"{color} {pattern} waistcoat for {occasion}",
		},
	},
	{
		Name: "Accessories", MinPrice: 150_000, MaxPrice: 800_000,
		Templates: []string{
			"{color} {material} tie",
			"{brand} {color} pocket square",
			"{color} {pattern} bow tie",
		},
	},
}

// DescriptionTemplates fill a product description. {name} is the product name.
var DescriptionTemplates = []string{
	"{name} in premium {material}, {style} cut, made for {occasion}.",
	"{name}: {style} look, soft breathable {material}, ideal for {occasion}.",
	"{name} with a {fit} silhouette in durable {material}, made for {occasion}.",
	"{name}, {style} design, {fit}, premium {material}.",
}
