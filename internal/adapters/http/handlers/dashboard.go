package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedash/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// HeaderConfirm approves a destructive request. Without "X-Confirm: true"
// the request is answered 428 and nothing reaches the remote API.
const HeaderConfirm = "X-Confirm"

func confirmFromHeader(c *gin.Context) ports.Confirmer {
	approved := strings.EqualFold(c.GetHeader(HeaderConfirm), "true")

	return ports.ConfirmFunc(func(context.Context, string) bool { return approved })
}

// DashboardHandler serves the cached collections, the derived views and
// quote mutations.
type DashboardHandler struct {
	dash *app.Dashboard
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(dash *app.Dashboard) *DashboardHandler {
	return &DashboardHandler{dash: dash}
}

// Load handles GET /api/v1/dashboard.
//
// @Summary Load the dashboard
// @Description Fetches quotes, favorites, categories and tags concurrently.
// @Description A collection that fails to load is returned empty.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Load(c *gin.Context) {
	v, err := h.dash.Load(c.Request.Context())
	if err != nil {
		dto.HandleError(c, "load the dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(v))
}

// Refresh handles POST /api/v1/dashboard/refresh.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	v, err := h.dash.Refresh(c.Request.Context())
	if err != nil {
		dto.HandleError(c, "refresh the dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(v))
}

// Cached handles GET /api/v1/dashboard/cached and never calls the remote.
func (h *DashboardHandler) Cached(c *gin.Context) {
	v, err := h.dash.View()
	if err != nil {
		dto.HandleError(c, "load the dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(v))
}

// Quotes handles GET /api/v1/quotes.
//
// @Summary List cached quotes
// @Tags quotes
// @Produce json
// @Param length query string false "short, medium or long"
// @Param category query string false "category id"
// @Param tag query string false "tag id"
// @Param search query string false "case-insensitive text"
// @Param cursor query string false "pagination cursor"
// @Param limit query int false "page size (max 100)"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *DashboardHandler) Quotes(c *gin.Context) {
	var req dto.QuoteFilterRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleError(c, "list quotes", err)
		return
	}

	f, err := req.ToDomain()
	if err != nil {
		dto.HandleError(c, "list quotes", err)
		return
	}

	quotes, err := h.dash.Quotes(f)
	if err != nil {
		dto.HandleError(c, "list quotes", err)
		return
	}

	page, err := dto.Paginate(dto.NewQuoteList(quotes), req.PaginationRequest,
		func(q dto.QuoteResponse) string { return q.ID })
	if err != nil {
		dto.HandleError(c, "list quotes", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Favorites handles GET /api/v1/favorites.
func (h *DashboardHandler) Favorites(c *gin.Context) {
	quotes, err := h.dash.Favorites()
	if err != nil {
		dto.HandleError(c, "list favorites", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteList(quotes))
}

// Categories handles GET /api/v1/categories.
func (h *DashboardHandler) Categories(c *gin.Context) {
	cats, err := h.dash.Categories()
	if err != nil {
		dto.HandleError(c, "list categories", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryList(cats))
}

// Tags handles GET /api/v1/tags.
func (h *DashboardHandler) Tags(c *gin.Context) {
	tags, err := h.dash.Tags()
	if err != nil {
		dto.HandleError(c, "list tags", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTagList(tags))
}

// Random handles GET /api/v1/quotes/random.
//
// @Summary Random quote
// @Description Served by the remote, or picked from the cache when the
// @Description remote fails. The source field tells which.
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.ViewResponse[dto.QuoteResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *DashboardHandler) Random(c *gin.Context) {
	res, err := h.dash.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, "load a random quote", err)
		return
	}

	c.JSON(http.StatusOK, dto.ViewResponse[dto.QuoteResponse]{
		Data:   dto.NewQuoteResponse(&res.Value),
		Source: string(res.Source),
	})
}

// Popular handles GET /api/v1/quotes/popular.
func (h *DashboardHandler) Popular(c *gin.Context) {
	res, err := h.dash.Popular(c.Request.Context())
	if err != nil {
		dto.HandleError(c, "load popular quotes", err)
		return
	}

	c.JSON(http.StatusOK, dto.ViewResponse[[]dto.QuoteResponse]{
		Data:   dto.NewQuoteList(res.Value),
		Source: string(res.Source),
	})
}

// Longest handles GET /api/v1/quotes/longest. Always computed from the cache.
func (h *DashboardHandler) Longest(c *gin.Context) {
	quotes, err := h.dash.Longest()
	if err != nil {
		dto.HandleError(c, "load the longest quotes", err)
		return
	}

	c.JSON(http.StatusOK, dto.ViewResponse[[]dto.QuoteResponse]{
		Data:   dto.NewQuoteList(quotes),
		Source: string(app.SourceLocal),
	})
}

// CreateQuote handles POST /api/v1/quotes.
//
// @Summary Create a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *DashboardHandler) CreateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "save quote", err)
		return
	}

	q, err := h.dash.CreateQuote(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, "save quote", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(&q))
}

// UpdateQuote handles PUT /api/v1/quotes/:id.
func (h *DashboardHandler) UpdateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "save quote", err)
		return
	}

	q, err := h.dash.UpdateQuote(c.Request.Context(), c.Param("id"), req.ToDomain())
	if err != nil {
		dto.HandleError(c, "save quote", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(&q))
}

// DeleteQuote handles DELETE /api/v1/quotes/:id. Requires X-Confirm: true.
//
// @Summary Delete a quote
// @Tags quotes
// @Param id path string true "Quote ID"
// @Param X-Confirm header string true "must be true"
// @Success 204
// @Failure 428 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [delete]
func (h *DashboardHandler) DeleteQuote(c *gin.Context) {
	if err := h.dash.DeleteQuote(c.Request.Context(), c.Param("id"), confirmFromHeader(c)); err != nil {
		dto.HandleError(c, "delete quote", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Like handles POST /api/v1/quotes/:id/like.
func (h *DashboardHandler) Like(c *gin.Context) {
	if err := h.dash.LikeQuote(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, "like quote", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Favorite handles POST /api/v1/quotes/:id/favorite and returns the quote
// with its new favorite flag.
func (h *DashboardHandler) Favorite(c *gin.Context) {
	q, err := h.dash.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, "update favorites", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(&q))
}

// CreateCategory handles POST /api/v1/categories. An open quote form
// pre-selects the new category.
func (h *DashboardHandler) CreateCategory(c *gin.Context) {
	var req dto.NameRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "create category", err)
		return
	}

	cat, err := h.dash.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		dto.HandleError(c, "create category", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NamedResponse{ID: cat.ID, Name: cat.Name})
}

// RegisterRoutes mounts the dashboard endpoints on a session-guarded group.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Load)
	rg.GET("/dashboard/cached", h.Cached)
	rg.POST("/dashboard/refresh", h.Refresh)

	rg.GET("/favorites", h.Favorites)
	rg.GET("/categories", h.Categories)
	rg.POST("/categories", h.CreateCategory)
	rg.GET("/tags", h.Tags)

	quotes := rg.Group("/quotes")
	quotes.GET("", h.Quotes)
	quotes.POST("", h.CreateQuote)
	quotes.GET("/random", h.Random)
	quotes.GET("/popular", h.Popular)
	quotes.GET("/longest", h.Longest)
	quotes.PUT("/:id", h.UpdateQuote)
	quotes.DELETE("/:id", h.DeleteQuote)
	quotes.POST("/:id/like", h.Like)
	quotes.POST("/:id/favorite", h.Favorite)
}
