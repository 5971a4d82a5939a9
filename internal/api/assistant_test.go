package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-v2/assistant/internal/recipe"
	"github.com/pageza/alchemorsel-v2/assistant/internal/toolbox"
)

type fixedCompleter string

func (f fixedCompleter) Complete(context.Context, string) (string, error) {
	return string(f), nil
}

func setupRouter(t *testing.T, mw ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tb := toolbox.New(recipe.Default(), toolbox.WithCompleter(fixedCompleter("Rest it for five minutes.")))
	NewAssistantHandler(tb, nil).RegisterRoutes(router.Group("/api/v1"), mw...)
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDispatch(t *testing.T) {
	router := setupRouter(t)

	t.Run("should run command", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/assistant/dispatch", DispatchRequest{Command: "tips pasta"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp DispatchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Cooking tips for pasta:", resp.Lines[0])
	})

	t.Run("should answer unknown command with help", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/assistant/dispatch", DispatchRequest{Command: "bogus-command"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp DispatchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{toolbox.HelpText}, resp.Lines)
	})

	t.Run("should call the model", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/assistant/dispatch", DispatchRequest{Command: "model how long to rest steak?"})
		assert.JSONEq(t, `{"lines":["Model says: Rest it for five minutes."]}`, w.Body.String())
	})

	t.Run("should reject missing command", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/assistant/dispatch", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDispatch_Middleware(t *testing.T) {
	blocked := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
	router := setupRouter(t, blocked)

	w := performRequest(router, http.MethodPost, "/api/v1/assistant/dispatch", DispatchRequest{Command: "list"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/titles", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListRecipes(t *testing.T) {
	router := setupRouter(t)

	var resp struct {
		Recipes []recipe.Recipe `json:"recipes"`
		Count   int             `json:"count"`
	}

	w := performRequest(router, http.MethodGet, "/api/v1/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Count)

	w = performRequest(router, http.MethodGet, "/api/v1/recipes?q=vegan", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, "Vegetable Stir Fry", resp.Recipes[0].Title)
	assert.Equal(t, "Chickpea Coconut Curry", resp.Recipes[1].Title)

	w = performRequest(router, http.MethodGet, "/api/v1/recipes?q=durian", nil)
	assert.JSONEq(t, `{"recipes":[],"count":0}`, w.Body.String())
}

func TestGetRecipe(t *testing.T) {
	router := setupRouter(t)
	carbonara, ok := recipe.Default().Get("Pasta Carbonara")
	require.True(t, ok)

	for _, id := range []string{carbonara.ID.String(), "pasta_carbonara", "Pasta%20Carbonara"} {
		w := performRequest(router, http.MethodGet, "/api/v1/recipes/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code, id)

		var got recipe.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, carbonara.ID, got.ID)
	}

	w := performRequest(router, http.MethodGet, "/api/v1/recipes/lasagna", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Recipe not found"}`, w.Body.String())
}

func TestListTitles(t *testing.T) {
	router := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/api/v1/titles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Titles []string `json:"titles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, recipe.Default().ListTitles(), resp.Titles)
}

func TestExtractIngredients(t *testing.T) {
	router := setupRouter(t)

	t.Run("structured", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/ingredients/extract", ExtractRequest{
			Text: "2 cups flour, sifted\n3 large eggs",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp ExtractResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "structured", resp.Mode)
		require.Len(t, resp.Ingredients, 2)
		assert.Equal(t, "flour", resp.Ingredients[0].Name)
		assert.Equal(t, "sifted", resp.Ingredients[0].Notes)
		assert.True(t, resp.Ingredients[0].KnownUnit)
		assert.Equal(t, "large", resp.Ingredients[1].Unit)
		assert.False(t, resp.Ingredients[1].KnownUnit)
		assert.Equal(t, []string{"2 cups flour (sifted)", "3 large eggs"}, resp.Lines)
	})

	t.Run("names", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/ingredients/extract", ExtractRequest{
			Text: "Tomatoes, basil and garlic - salt",
			Mode: "names",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp ExtractResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "names", resp.Mode)
		require.Len(t, resp.Ingredients, 3)
		assert.Equal(t, "tomatoes", resp.Ingredients[0].Name)
		assert.Equal(t, "basil and garlic", resp.Ingredients[1].Name)
		assert.Equal(t, "salt", resp.Ingredients[2].Name)
	})

	t.Run("bad mode", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/ingredients/extract", ExtractRequest{Text: "salt", Mode: "poetry"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing text", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/ingredients/extract", map[string]string{"mode": "names"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTips(t *testing.T) {
	router := setupRouter(t)

	var bucket toolbox.TipBucket
	w := performRequest(router, http.MethodGet, "/api/v1/tips?topic=cookies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bucket))
	assert.Equal(t, "baking", bucket.Topic)
	assert.NotEmpty(t, bucket.Tips)

	w = performRequest(router, http.MethodGet, "/api/v1/tips", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bucket))
	assert.Equal(t, "general", bucket.Topic)
}
