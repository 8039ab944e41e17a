package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedash/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/domain"
)

// SessionHandler serves login, registration and logout.
type SessionHandler struct {
	dash *app.Dashboard
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(dash *app.Dashboard) *SessionHandler {
	return &SessionHandler{dash: dash}
}

// Login handles POST /api/v1/session/login.
//
// @Summary Sign in
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "log in", err)
		return
	}

	s, landing, err := h.dash.Login(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, "log in", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(s, landing))
}

// Register handles POST /api/v1/session/register.
//
// @Summary Create an account
// @Tags session
// @Accept json
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/session/register [post]
func (h *SessionHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, "register", err)
		return
	}

	s, landing, err := h.dash.Register(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(s, landing))
}

// Current handles GET /api/v1/session.
func (h *SessionHandler) Current(c *gin.Context) {
	s, ok := h.dash.Session()
	if !ok {
		dto.HandleError(c, "load session", domain.NewUnauthorizedError("Session", 0))
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(s, domain.LandingView(&s)))
}

// Logout handles DELETE /api/v1/session.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.dash.Logout(c.Request.Context()); err != nil {
		dto.HandleError(c, "log out", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts the session endpoints. None require a session.
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	session := rg.Group("/session")
	session.POST("/login", h.Login)
	session.POST("/register", h.Register)
	session.GET("", h.Current)
	session.DELETE("", h.Logout)
}
