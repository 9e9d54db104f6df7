package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shape-gallery/internal/domain"
	"shape-gallery/internal/repository"
	"shape-gallery/internal/service"
	"shape-gallery/internal/token"
)

const sessionCookie = "shapes_session"

// Handler wires HTTP routes to domain services.
type Handler struct {
	shapes       service.ShapeService
	auth         service.AuthService
	tokens       *token.Manager
	sessionTTL   time.Duration
	loginLimiter *loginLimiter
	logger       *logrus.Logger
}

func NewHandler(
	shapes service.ShapeService,
	auth service.AuthService,
	tokens *token.Manager,
	sessionTTL time.Duration,
	loginPerMinute, loginBurst int,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		shapes:       shapes,
		auth:         auth,
		tokens:       tokens,
		sessionTTL:   sessionTTL,
		loginLimiter: newLoginLimiter(loginPerMinute, loginBurst),
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/shapes", h.listShapes)
		api.POST("/shapes", h.requireSession(), h.createShape)
		api.PUT("/shapes/:id", h.requireSession(), h.updateShape)
		api.DELETE("/shapes/:id", h.requireSession(), h.deleteShape)

		auth := api.Group("/auth")
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/session", h.session)

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
	}

	admin := router.Group("/admin")
	admin.Use(h.adminGuard())
	{
		admin.GET("", h.adminHome)
		admin.GET("/login", h.adminLoginPage)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !h.loginLimiter.allow(c.ClientIP() + ":" + req.Username) {
		respondError(c, http.StatusTooManyRequests, "Too many login attempts, try again later")
		return
	}

	admin, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Warnf("authenticate: %v", err)
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	signed, err := h.tokens.Issue(admin)
	if err != nil {
		h.logger.Warnf("issue session token: %v", err)
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.SetCookie(sessionCookie, signed, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   signed,
		"admin":   adminToResponse(admin),
	})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) session(c *gin.Context) {
	claims, ok := h.sessionFromRequest(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin": gin.H{
			"id":       claims.Subject,
			"username": claims.Username,
		},
	})
}

func (h *Handler) listShapes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.shapes.List(c.Request.Context(), page, limit)
	if err != nil {
		h.logger.Warnf("list shapes: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch shapes")
		return
	}

	shapes := make([]ShapeResponse, len(result.Shapes))
	for i := range result.Shapes {
		shapes[i] = shapeToResponse(result.Shapes[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shapes":  shapes,
		"pagination": gin.H{
			"page":       result.Page,
			"limit":      result.Limit,
			"total":      result.Total,
			"totalPages": result.TotalPages,
		},
	})
}

func (h *Handler) createShape(c *gin.Context) {
	var input service.CreateShapeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	shape, err := h.shapes.Create(c.Request.Context(), input)
	if err != nil {
		h.writeShapeError(c, err, "Failed to create shape")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"shape":   shapeToResponse(*shape),
	})
}

func (h *Handler) updateShape(c *gin.Context) {
	id, ok := shapeID(c)
	if !ok {
		return
	}

	var input service.UpdateShapeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	shape, err := h.shapes.Update(c.Request.Context(), id, input)
	if err != nil {
		h.writeShapeError(c, err, "Failed to update shape")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shape":   shapeToResponse(*shape),
	})
}

func (h *Handler) deleteShape(c *gin.Context) {
	id, ok := shapeID(c)
	if !ok {
		return
	}

	if err := h.shapes.Delete(c.Request.Context(), id); err != nil {
		h.writeShapeError(c, err, "Failed to delete shape")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// The admin pages themselves belong to the external frontend; these endpoints
// exist so the route guard has something to protect.
func (h *Handler) adminHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "page": "admin"})
}

func (h *Handler) adminLoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "page": "login"})
}

func shapeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid shape id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeShapeError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": verr.Fields,
		})
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "Shape not found")
	default:
		h.logger.Warnf("shape operation: %v", err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

type ShapeResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Color     domain.Color    `json:"color"`
	Shape     domain.Geometry `json:"shape"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func shapeToResponse(shape domain.Shape) ShapeResponse {
	return ShapeResponse{
		ID:        shape.ID,
		Name:      shape.Name,
		Color:     shape.Color,
		Shape:     shape.Shape,
		CreatedAt: shape.CreatedAt.Format(time.RFC3339),
		UpdatedAt: shape.UpdatedAt.Format(time.RFC3339),
	}
}

func adminToResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:       admin.ID,
		Username: admin.Username,
	}
}
