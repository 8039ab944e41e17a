package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedash/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedash/internal/app"
)

// AdminHandler manages tags and categories. Mount it behind RequireRole.
type AdminHandler struct {
	dash *app.Dashboard
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(dash *app.Dashboard) *AdminHandler {
	return &AdminHandler{dash: dash}
}

// Catalog handles GET /api/v1/admin/catalog.
func (h *AdminHandler) Catalog(c *gin.Context) {
	cat, err := h.dash.Catalog(c.Request.Context())
	if err != nil {
		dto.HandleError(c, "load tags and categories", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCatalogResponse(cat))
}

func (h *AdminHandler) saveTag(c *gin.Context, status int) {
	var req dto.NameRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "save tag", err)
		return
	}

	t, err := h.dash.SaveTag(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		dto.HandleError(c, "save tag", err)
		return
	}

	c.JSON(status, dto.NamedResponse{ID: t.ID, Name: t.Name})
}

func (h *AdminHandler) saveCategory(c *gin.Context, status int) {
	var req dto.NameRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "save category", err)
		return
	}

	cat, err := h.dash.SaveCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		dto.HandleError(c, "save category", err)
		return
	}

	c.JSON(status, dto.NamedResponse{ID: cat.ID, Name: cat.Name})
}

// CreateTag handles POST /api/v1/admin/tags.
func (h *AdminHandler) CreateTag(c *gin.Context) { h.saveTag(c, http.StatusCreated) }

// RenameTag handles PUT /api/v1/admin/tags/:id.
func (h *AdminHandler) RenameTag(c *gin.Context) { h.saveTag(c, http.StatusOK) }

// CreateCategory handles POST /api/v1/admin/categories.
func (h *AdminHandler) CreateCategory(c *gin.Context) { h.saveCategory(c, http.StatusCreated) }

// RenameCategory handles PUT /api/v1/admin/categories/:id.
func (h *AdminHandler) RenameCategory(c *gin.Context) { h.saveCategory(c, http.StatusOK) }

// DeleteTag handles DELETE /api/v1/admin/tags/:id. Requires X-Confirm: true.
func (h *AdminHandler) DeleteTag(c *gin.Context) {
	if err := h.dash.DeleteTag(c.Request.Context(), c.Param("id"), confirmFromHeader(c)); err != nil {
		dto.HandleError(c, "delete tag", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id. Requires
// X-Confirm: true.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.dash.DeleteCategory(c.Request.Context(), c.Param("id"), confirmFromHeader(c)); err != nil {
		dto.HandleError(c, "delete category", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts the admin endpoints.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.Catalog)

	rg.POST("/tags", h.CreateTag)
	rg.PUT("/tags/:id", h.RenameTag)
	rg.DELETE("/tags/:id", h.DeleteTag)

	rg.POST("/categories", h.CreateCategory)
	rg.PUT("/categories/:id", h.RenameCategory)
	rg.DELETE("/categories/:id", h.DeleteCategory)
}
