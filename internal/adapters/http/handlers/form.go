package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedash/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedash/internal/app"
)

// FormHandler drives the quote create/edit form.
type FormHandler struct {
	dash *app.Dashboard
}

// NewFormHandler creates a form handler.
func NewFormHandler(dash *app.Dashboard) *FormHandler {
	return &FormHandler{dash: dash}
}

// Get handles GET /api/v1/form.
func (h *FormHandler) Get(c *gin.Context) {
	form, err := h.dash.Form()
	if err != nil {
		dto.HandleError(c, "open the quote form", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFormResponse(form.View()))
}

// Open handles POST /api/v1/form. A quoteId opens the form on that cached
// quote; none opens a blank create form.
func (h *FormHandler) Open(c *gin.Context) {
	var req dto.OpenFormRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "open the quote form", err)
		return
	}

	if req.QuoteID != "" {
		v, err := h.dash.EditQuote(req.QuoteID)
		if err != nil {
			dto.HandleError(c, "open the quote form", err)
			return
		}

		c.JSON(http.StatusOK, dto.NewFormResponse(v))

		return
	}

	form, err := h.dash.Form()
	if err == nil {
		err = form.OpenNew()
	}

	if err != nil {
		dto.HandleError(c, "open the quote form", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFormResponse(form.View()))
}

// Submit handles POST /api/v1/form/submit. The body replaces the pending
// input before the form is submitted. A failed submit leaves the form open
// with the error.
func (h *FormHandler) Submit(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "save quote", err)
		return
	}

	form, err := h.dash.Form()
	if err == nil {
		err = form.SetInput(req.ToDomain())
	}

	if err != nil {
		dto.HandleError(c, "save quote", err)
		return
	}

	creating := form.View().QuoteID == ""

	q, err := form.Submit(c.Request.Context())
	if err != nil {
		dto.HandleError(c, "save quote", err)
		return
	}

	status := http.StatusOK
	if creating {
		status = http.StatusCreated
	}

	c.JSON(status, dto.NewQuoteResponse(&q))
}

// CreateCategory handles POST /api/v1/form/category.
func (h *FormHandler) CreateCategory(c *gin.Context) {
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

	form, err := h.dash.Form()
	if err != nil {
		dto.HandleError(c, "create category", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": dto.NamedResponse{ID: cat.ID, Name: cat.Name},
		"form":     dto.NewFormResponse(form.View()),
	})
}

// Cancel handles DELETE /api/v1/form.
func (h *FormHandler) Cancel(c *gin.Context) {
	form, err := h.dash.Form()
	if err != nil {
		dto.HandleError(c, "close the quote form", err)
		return
	}

	form.Cancel()
	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts the form endpoints on a session-guarded group.
func (h *FormHandler) RegisterRoutes(rg *gin.RouterGroup) {
	form := rg.Group("/form")
	form.GET("", h.Get)
	form.POST("", h.Open)
	form.DELETE("", h.Cancel)
	form.POST("/submit", h.Submit)
	form.POST("/category", h.CreateCategory)
}
