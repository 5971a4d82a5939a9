package toolbox

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-v2/assistant/internal/ingredient"
	"github.com/pageza/alchemorsel-v2/assistant/internal/recipe"
)

type stubCompleter struct {
	reply  string
	err    error
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestDispatch_Recipe(t *testing.T) {
	tb := New(recipe.Default())

	lines := tb.Dispatch(context.Background(), "recipe pasta")
	assert.Equal(t, "Found 2 recipe(s) for 'pasta':", lines[0])
	assert.True(t, containsLine(lines, "Creamy Garlic Pasta"))
	assert.True(t, containsLine(lines, "Prep: 10 minutes"))
	assert.True(t, containsLine(lines, "400g spaghetti"))

	lines = tb.Dispatch(context.Background(), "RECIPE vegan")
	assert.True(t, containsLine(lines, "Vegetable Stir Fry"))

	lines = tb.Dispatch(context.Background(), "recipe durian")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "No recipes found")
}

func TestDispatch_Ingredients(t *testing.T) {
	tb := New(recipe.Default())

	lines := tb.Dispatch(context.Background(), "ingredients 2 cups flour, sifted")
	assert.Equal(t, []string{"Extracted ingredients:", "2 cups flour (sifted)"}, lines)

	lines = tb.Dispatch(context.Background(), "ingredients\n- 400g spaghetti\n- 4 large eggs\nBlack pepper to taste")
	assert.Equal(t, []string{
		"Extracted ingredients:",
		"400 g spaghetti",
		"4 large eggs",
		"1 Black pepper to taste",
	}, lines)

	lines = tb.Dispatch(context.Background(), "ingredients -")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Could not extract")
}

func TestDispatch_Names(t *testing.T) {
	tb := New(recipe.Default())

	lines := tb.Dispatch(context.Background(), "names tomatoes, basil, garlic")
	assert.Equal(t, []string{"Ingredient names:", "- tomatoes", "- basil", "- garlic"}, lines)

	lines = tb.Dispatch(context.Background(), "names and, or")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Could not find")
}

func TestDispatch_Tips(t *testing.T) {
	tb := New(recipe.Default())

	lines := tb.Dispatch(context.Background(), "tips pasta")
	assert.True(t, containsLine(lines, "salt the pasta water"))

	assert.Equal(t, "Cooking tips for stir-fry:", tb.Dispatch(context.Background(), "tips Stir Fry")[0])
	assert.Equal(t, "Cooking tips for baking:", tb.Dispatch(context.Background(), "tips cookies")[0])

	general := tb.Dispatch(context.Background(), "tips general")
	assert.Equal(t, "Cooking tips for general:", general[0])
	assert.Contains(t, general[len(general)-1], "Layer flavors")

	assert.Equal(t, general, tb.Dispatch(context.Background(), "tips"))
}

func TestDispatch_CustomTips(t *testing.T) {
	tb := New(recipe.Default(), WithTips(TipTable{
		Buckets: []TipBucket{{Topic: "grill", Keywords: []string{"bbq"}, Tips: []string{"Oil the grates"}}},
		Default: TipBucket{Topic: "none", Tips: []string{"No tips"}},
	}))

	assert.Equal(t, []string{"Cooking tips for grill:", "- Oil the grates"}, tb.Dispatch(context.Background(), "tips BBQ ribs"))
	assert.Equal(t, []string{"Cooking tips for none:", "- No tips"}, tb.Dispatch(context.Background(), "tips pasta"))
}

func TestDispatch_ListAndShow(t *testing.T) {
	tb := New(recipe.Default())

	lines := tb.Dispatch(context.Background(), "list")
	assert.Equal(t, "Available recipes:", lines[0])
	assert.Equal(t, "Total: 5 recipes", lines[len(lines)-1])

	lines = tb.Dispatch(context.Background(), "show pasta_carbonara")
	assert.Equal(t, "## Pasta Carbonara", lines[0])
	assert.True(t, containsLine(lines, "1. Bring a large pot of salted water to boil"))

	lines = tb.Dispatch(context.Background(), "show cookies")
	assert.Equal(t, "## Chocolate Chip Cookies", lines[0])

	lines = tb.Dispatch(context.Background(), "show lasagna")
	assert.Equal(t, []string{"Recipe 'lasagna' not found."}, lines)
}

func TestDispatch_Model(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		tb := New(recipe.Default())
		lines := tb.Dispatch(context.Background(), "model what is umami?")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "not configured")
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubCompleter{reply: "  The fifth taste.  "}
		tb := New(recipe.Default(), WithCompleter(stub))

		lines := tb.Dispatch(context.Background(), "Model what is umami?")
		assert.Equal(t, []string{"Model says: The fifth taste."}, lines)
		assert.Equal(t, "what is umami?", stub.prompt)
	})

	t.Run("failure is a single line", func(t *testing.T) {
		tb := New(recipe.Default(), WithCompleter(&stubCompleter{err: errors.New("connection refused")}))

		lines := tb.Dispatch(context.Background(), "model hello")
		assert.Equal(t, []string{"Model call failed: connection refused"}, lines)
	})

	t.Run("empty reply", func(t *testing.T) {
		tb := New(recipe.Default(), WithCompleter(&stubCompleter{reply: " "}))
		assert.Equal(t, []string{"Model returned an empty response."}, tb.Dispatch(context.Background(), "model hello"))
	})
}

func TestDispatch_HelpAndUnknown(t *testing.T) {
	tb := New(recipe.Default())

	assert.Equal(t, []string{HelpText}, tb.Dispatch(context.Background(), "bogus-command"))
	assert.Equal(t, []string{HelpText}, tb.Dispatch(context.Background(), ""))
	assert.Equal(t, []string{HelpText}, tb.Dispatch(context.Background(), "recipes pasta"))
	assert.Contains(t, strings.ToLower(HelpText), "help")

	help := tb.Dispatch(context.Background(), "HELP")
	assert.Equal(t, "Commands:", help[0])
	assert.True(t, containsLine(help, "model <prompt>"))

	assert.Equal(t, []string{"Usage: recipe <query>"}, tb.Dispatch(context.Background(), "recipe   "))
	assert.Equal(t, []string{"Usage: model <prompt>"}, tb.Dispatch(context.Background(), "model"))
}

func TestDispatch_NeverEmpty(t *testing.T) {
	tb := New(recipe.Default(), WithExtractor(ingredient.NewExtractor(ingredient.WithStopwords())))
	inputs := []string{"", " ", "\n", "recipe", "recipe x", "ingredients ,", "names ,", "tips ???", "show", "list extra", "model", "💥"}
	for _, in := range inputs {
		assert.NotEmpty(t, tb.Dispatch(context.Background(), in), "input %q", in)
	}
}
