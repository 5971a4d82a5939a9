package recipe

// builtin is the fixed corpus served by Default
var builtin = []Recipe{
	{
		Title: "Pasta Carbonara",
		Ingredients: []string{
			"400g spaghetti",
			"200g guanciale or bacon",
			"4 large eggs",
			"100g Pecorino Romano cheese",
			"Black pepper to taste",
			"Salt for pasta water",
		},
		Steps: []string{
			"Bring a large pot of salted water to boil",
			"Cut guanciale into small cubes and fry until crispy",
			"Cook spaghetti according to package directions",
			"Beat eggs with grated cheese and black pepper",
			"Drain pasta, reserving 1 cup pasta water",
			"Toss hot pasta with guanciale and fat",
			"Remove from heat, add egg mixture, toss quickly",
			"Add pasta water as needed for creamy consistency",
		},
		PrepTime: "10 minutes",
		CookTime: "20 minutes",
		Servings: 4,
		Tags:     []string{"italian", "dinner", "classic"},
		Cuisine:  "Italian",
	},
	{
		Title: "Creamy Garlic Pasta",
		Ingredients: []string{
			"300g penne",
			"6 cloves garlic, minced",
			"2 tbsp butter",
			"1 cup heavy cream",
			"50g parmesan, grated",
			"Fresh parsley, chopped",
		},
		Steps: []string{
			"Cook penne in well salted water until al dente",
			"Melt butter and gently cook garlic until fragrant",
			"Stir in cream and simmer until slightly thickened",
			"Add parmesan and season with salt and pepper",
			"Toss pasta in the sauce, loosening with pasta water",
			"Finish with parsley",
		},
		PrepTime: "5 minutes",
		CookTime: "20 minutes",
		Servings: 3,
		Tags:     []string{"vegetarian", "comfort", "quick"},
		Cuisine:  "Italian",
	},
	{
		Title: "Vegetable Stir Fry",
		Ingredients: []string{
			"2 cups broccoli florets",
			"1 bell pepper, sliced",
			"2 carrots, julienned",
			"1 cup mushrooms, sliced",
			"3 cloves garlic, minced",
			"2 tbsp soy sauce",
			"1 tbsp sesame oil",
			"1 tbsp cornstarch",
			"2 tbsp vegetable oil",
			"Ginger to taste",
		},
		Steps: []string{
			"Mix soy sauce, sesame oil, and cornstarch in a bowl",
			"Heat wok or large pan over high heat",
			"Add oil and heat until smoking",
			"Stir-fry harder vegetables first (carrots, broccoli)",
			"Add softer vegetables and garlic",
			"Pour sauce mixture and toss to coat",
			"Cook until vegetables are tender-crisp",
			"Serve immediately over rice",
		},
		PrepTime: "15 minutes",
		CookTime: "10 minutes",
		Servings: 2,
		Tags:     []string{"vegan", "vegetarian", "quick", "stir-fry"},
		Cuisine:  "Chinese",
	},
	{
		Title: "Chocolate Chip Cookies",
		Ingredients: []string{
			"2 1/4 cups all-purpose flour",
			"1 tsp baking soda",
			"1 tsp salt",
			"1 cup softened butter",
			"3/4 cup granulated sugar",
			"3/4 cup packed brown sugar",
			"2 large eggs",
			"2 tsp vanilla extract",
			"2 cups chocolate chips",
		},
		Steps: []string{
			"Preheat oven to 375°F",
			"Mix flour, baking soda, and salt",
			"Beat butter and sugars until creamy",
			"Add eggs and vanilla to butter mixture",
			"Gradually blend in flour mixture",
			"Stir in chocolate chips",
			"Drop rounded tbsp onto ungreased cookie sheets",
			"Bake 9-12 minutes or until golden brown",
		},
		PrepTime: "15 minutes",
		CookTime: "12 minutes",
		Servings: 24,
		Tags:     []string{"baking", "dessert", "sweet"},
		Cuisine:  "American",
	},
	{
		Title: "Chickpea Coconut Curry",
		Ingredients: []string{
			"2 cans chickpeas, drained",
			"1 can coconut milk",
			"1 onion, diced",
			"3 cloves garlic, minced",
			"1 tbsp curry powder",
			"1 tsp ground cumin",
			"200g spinach",
			"Juice of 1 lime",
		},
		Steps: []string{
			"Soften onion in a little oil over medium heat",
			"Add garlic, curry powder and cumin and cook for a minute",
			"Pour in coconut milk and chickpeas and simmer for 15 minutes",
			"Stir through spinach until wilted",
			"Finish with lime juice and serve with rice",
		},
		PrepTime: "10 minutes",
		CookTime: "25 minutes",
		Servings: 4,
		Tags:     []string{"vegan", "gluten-free", "spicy"},
		Cuisine:  "Indian",
	},
}

// Default returns a Database holding the built-in corpus
func Default() *Database {
	db, err := New(builtin)
	if err != nil {
		panic("recipe: invalid built-in corpus: " + err.Error())
	}
	return db
}
