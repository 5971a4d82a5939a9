package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-v2/assistant/internal/ingredient"
	"github.com/pageza/alchemorsel-v2/assistant/internal/recipe"
	"github.com/pageza/alchemorsel-v2/assistant/internal/toolbox"
)

// AssistantHandler exposes the toolbox over HTTP
type AssistantHandler struct {
	toolbox *toolbox.Toolbox
	logger  *zap.Logger
}

// DispatchRequest is the body of POST /assistant/dispatch
type DispatchRequest struct {
	Command string `json:"command" binding:"required"`
}

// DispatchResponse carries the display lines of a command
type DispatchResponse struct {
	Lines []string `json:"lines"`
}

// ExtractRequest is the body of POST /ingredients/extract
type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
	Mode string `json:"mode"`
}

// ExtractedIngredient is a parsed record annotated with unit recognition
type ExtractedIngredient struct {
	ingredient.Record
	KnownUnit bool `json:"known_unit"`
}

// ExtractResponse is returned by POST /ingredients/extract
type ExtractResponse struct {
	Mode        string                `json:"mode"`
	Ingredients []ExtractedIngredient `json:"ingredients"`
	Lines       []string              `json:"lines"`
}

func NewAssistantHandler(tb *toolbox.Toolbox, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{toolbox: tb, logger: logger}
}

// RegisterRoutes mounts the assistant endpoints on router. Extra middleware,
// such as a rate limiter, guards the dispatch endpoint only.
func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup, dispatchMiddleware ...gin.HandlerFunc) {
	dispatch := append(append([]gin.HandlerFunc{}, dispatchMiddleware...), h.Dispatch)
	router.POST("/assistant/dispatch", dispatch...)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
	router.GET("/titles", h.ListTitles)
	router.POST("/ingredients/extract", h.ExtractIngredients)
	router.GET("/tips", h.GetTips)
}

func (h *AssistantHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command is required"})
		return
	}

	lines := h.toolbox.Dispatch(c.Request.Context(), req.Command)
	h.logger.Debug("dispatched command",
		zap.String("command", firstWord(req.Command)),
		zap.Int("lines", len(lines)))
	c.JSON(http.StatusOK, DispatchResponse{Lines: lines})
}

// ListRecipes searches by the q parameter, or lists everything when q is empty
func (h *AssistantHandler) ListRecipes(c *gin.Context) {
	db := h.toolbox.Recipes()

	var recipes []recipe.Recipe
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		recipes = db.Search(q)
	} else {
		recipes = db.List()
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// GetRecipe accepts an ID, a title or a key
func (h *AssistantHandler) GetRecipe(c *gin.Context) {
	r, ok := h.toolbox.Recipes().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AssistantHandler) ListTitles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"titles": h.toolbox.Recipes().ListTitles()})
}

func (h *AssistantHandler) ExtractIngredients(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	mode, err := ingredient.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	extractor := h.toolbox.Extractor()
	records := extractor.ExtractMode(mode, req.Text)
	out := make([]ExtractedIngredient, 0, len(records))
	for _, r := range records {
		out = append(out, ExtractedIngredient{Record: r, KnownUnit: extractor.KnownUnit(r.Unit)})
	}

	c.JSON(http.StatusOK, ExtractResponse{
		Mode:        mode.String(),
		Ingredients: out,
		Lines:       ingredient.Format(records),
	})
}

func (h *AssistantHandler) GetTips(c *gin.Context) {
	c.JSON(http.StatusOK, h.toolbox.Tips(c.Query("topic")))
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
