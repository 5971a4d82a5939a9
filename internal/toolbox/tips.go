package toolbox

import "strings"

// TipBucket is a fixed list of tips selected by topic keywords
type TipBucket struct {
	Topic    string   `json:"topic"`
	Keywords []string `json:"-"`
	Tips     []string `json:"tips"`
}

// TipTable maps topics to tips. Buckets are checked in order and the first
// bucket with a keyword contained in the topic wins.
type TipTable struct {
	Buckets []TipBucket
	Default TipBucket
}

// Lookup returns the bucket for topic, or the default bucket
func (t TipTable) Lookup(topic string) TipBucket {
	topic = strings.ToLower(topic)
	for _, b := range t.Buckets {
		for _, kw := range b.Keywords {
			if strings.Contains(topic, kw) {
				return b
			}
		}
	}
	return t.Default
}

// DefaultTips returns the built-in tip table
func DefaultTips() TipTable {
	return TipTable{
		Buckets: []TipBucket{
			{
				Topic:    "pasta",
				Keywords: []string{"pasta"},
				Tips: []string{
					"Always salt the pasta water generously, it should taste like the sea",
					"Save a cup of pasta water for finishing sauces, the starch helps emulsify",
					"Don't rinse pasta after cooking unless making a cold salad",
					"Add pasta to boiling water, not cold water",
					"Cook to al dente and let it finish in the sauce",
				},
			},
			{
				Topic:    "stir-fry",
				Keywords: []string{"stir"},
				Tips: []string{
					"Prepare all ingredients before heating the pan",
					"Use high heat to cook vegetables quickly",
					"Don't overcrowd the pan, cook in batches if needed",
					"Start with harder vegetables and add softer ones later",
					"Keep everything moving to prevent burning",
				},
			},
			{
				Topic:    "baking",
				Keywords: []string{"bake", "baking", "cookie"},
				Tips: []string{
					"Room temperature ingredients mix better",
					"Don't overmix batter once flour is added",
					"Measure dry ingredients by weight for accuracy",
					"Preheat your oven for at least 15 minutes",
					"Use an oven thermometer to verify the temperature",
				},
			},
		},
		Default: TipBucket{
			Topic: "general",
			Tips: []string{
				"Mise en place: prepare and measure everything before cooking",
				"Taste as you cook and adjust seasoning",
				"Use sharp knives for safer, cleaner cuts",
				"Let meat rest after cooking",
				"Layer flavors by seasoning at every stage of cooking",
			},
		},
	}
}
