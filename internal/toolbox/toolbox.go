// Package toolbox is the command surface of the cooking assistant. It routes a
// single line of user input to the recipe database, the ingredient extractor,
// the tip table or the model collaborator and renders the result as display
// lines.
package toolbox

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-v2/assistant/internal/ingredient"
	"github.com/pageza/alchemorsel-v2/assistant/internal/recipe"
)

// HelpText is returned for unrecognized commands
const HelpText = "Unrecognized command. Type 'help' or try: recipe <query>, ingredients <text>, names <text>, tips <topic>, list, show <recipe>, model <prompt>"

// Completer is the chat-completion collaborator behind the model command
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Toolbox dispatches commands. It is read-only after construction and safe for
// concurrent use as long as its Completer is.
type Toolbox struct {
	db        *recipe.Database
	extractor *ingredient.Extractor
	completer Completer
	tips      TipTable
	logger    *zap.Logger
}

// Option configures a Toolbox
type Option func(*Toolbox)

// WithExtractor overrides the default ingredient extractor
func WithExtractor(e *ingredient.Extractor) Option {
	return func(t *Toolbox) { t.extractor = e }
}

// WithCompleter enables the model command
func WithCompleter(c Completer) Option {
	return func(t *Toolbox) { t.completer = c }
}

// WithTips overrides the default tip table
func WithTips(tips TipTable) Option {
	return func(t *Toolbox) { t.tips = tips }
}

// WithLogger sets the logger used for collaborator failures
func WithLogger(l *zap.Logger) Option {
	return func(t *Toolbox) { t.logger = l }
}

// New creates a Toolbox over db
func New(db *recipe.Database, opts ...Option) *Toolbox {
	t := &Toolbox{
		db:        db,
		extractor: ingredient.NewExtractor(),
		tips:      DefaultTips(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Recipes returns the recipe database
func (t *Toolbox) Recipes() *recipe.Database {
	return t.db
}

// Extractor returns the ingredient extractor
func (t *Toolbox) Extractor() *ingredient.Extractor {
	return t.extractor
}

// Tips returns the tip bucket for topic
func (t *Toolbox) Tips(topic string) TipBucket {
	return t.tips.Lookup(topic)
}

type handler func(t *Toolbox, ctx context.Context, arg string) []string

type command struct {
	usage  string
	argReq bool
	run    handler
}

var commands = map[string]command{
	"recipe":      {usage: "recipe <query>", argReq: true, run: (*Toolbox).searchRecipes},
	"ingredients": {usage: "ingredients <text>", argReq: true, run: (*Toolbox).extractIngredients},
	"names":       {usage: "names <text>", argReq: true, run: (*Toolbox).extractNames},
	"tips":        {usage: "tips <topic>", run: (*Toolbox).cookingTips},
	"list":        {usage: "list", run: (*Toolbox).listRecipes},
	"show":        {usage: "show <recipe>", argReq: true, run: (*Toolbox).showRecipe},
	"model":       {usage: "model <prompt>", argReq: true, run: (*Toolbox).askModel},
	"help":        {usage: "help", run: (*Toolbox).help},
}

var helpLines = []string{
	"Commands:",
	"  recipe <query>       search recipes by title, then by tag",
	"  ingredients <text>   parse one ingredient per line into quantity, unit, name and notes",
	"  names <text>         pull ingredient names out of a comma separated sentence",
	"  tips <topic>         cooking tips for pasta, stir-fry, baking or general",
	"  list                 list every recipe",
	"  show <recipe>        full recipe with numbered steps",
	"  model <prompt>       ask the chat model",
}

// Dispatch runs one command and returns the lines to display. It never returns
// an empty slice.
func (t *Toolbox) Dispatch(ctx context.Context, raw string) []string {
	keyword, arg := splitCommand(raw)
	cmd, ok := commands[keyword]
	if !ok {
		return []string{HelpText}
	}
	if cmd.argReq && arg == "" {
		return []string{"Usage: " + cmd.usage}
	}
	return cmd.run(t, ctx, arg)
}

// splitCommand separates the lowercased keyword from the rest of the input.
// The argument keeps its inner line breaks so multi-line ingredient lists
// survive.
func splitCommand(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	idx := strings.IndexAny(raw, " \t\r\n")
	if idx < 0 {
		return strings.ToLower(raw), ""
	}
	return strings.ToLower(raw[:idx]), strings.TrimSpace(raw[idx+1:])
}

func (t *Toolbox) help(context.Context, string) []string {
	return append([]string(nil), helpLines...)
}

func (t *Toolbox) searchRecipes(_ context.Context, query string) []string {
	recipes := t.db.Search(query)
	if len(recipes) == 0 {
		return []string{fmt.Sprintf("No recipes found for '%s'. Try a dish name, an ingredient or a tag like 'vegan'.", query)}
	}

	lines := []string{fmt.Sprintf("Found %d recipe(s) for '%s':", len(recipes), query)}
	for _, r := range recipes {
		lines = append(lines, summaryLines(r)...)
	}
	return lines
}

func (t *Toolbox) extractIngredients(_ context.Context, text string) []string {
	records := t.extractor.Extract(text)
	if len(records) == 0 {
		return []string{"Could not extract any ingredients from the provided text."}
	}
	return append([]string{"Extracted ingredients:"}, ingredient.Format(records)...)
}

func (t *Toolbox) extractNames(_ context.Context, text string) []string {
	names := t.extractor.ExtractNames(text)
	if len(names) == 0 {
		return []string{"Could not find any ingredient names in the provided text."}
	}
	lines := []string{"Ingredient names:"}
	for _, n := range names {
		lines = append(lines, "- "+n)
	}
	return lines
}

func (t *Toolbox) cookingTips(_ context.Context, topic string) []string {
	bucket := t.tips.Lookup(topic)
	lines := []string{fmt.Sprintf("Cooking tips for %s:", bucket.Topic)}
	for _, tip := range bucket.Tips {
		lines = append(lines, "- "+tip)
	}
	return lines
}

func (t *Toolbox) listRecipes(context.Context, string) []string {
	titles := t.db.ListTitles()
	lines := []string{"Available recipes:"}
	for _, title := range titles {
		lines = append(lines, "- "+title)
	}
	return append(lines, fmt.Sprintf("Total: %d recipes", len(titles)))
}

func (t *Toolbox) showRecipe(_ context.Context, name string) []string {
	r, ok := t.db.Get(name)
	if !ok {
		matches := t.db.Search(name)
		if len(matches) == 0 {
			return []string{fmt.Sprintf("Recipe '%s' not found.", name)}
		}
		r = matches[0]
	}
	return detailLines(r)
}

func (t *Toolbox) askModel(ctx context.Context, prompt string) []string {
	if t.completer == nil {
		return []string{"Model support is not configured. Set MODEL_API_KEY to enable it."}
	}

	reply, err := t.completer.Complete(ctx, prompt)
	if err != nil {
		t.logger.Warn("model call failed", zap.Error(err))
		return []string{fmt.Sprintf("Model call failed: %v", err)}
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return []string{"Model returned an empty response."}
	}
	return []string{"Model says: " + reply}
}
