package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recipebox/internal/domain"
	"recipebox/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	favorites service.FavoriteService
	store     Pinger
	site      *Site
	logger    logrus.FieldLogger
}

func NewHandler(users service.UserService, favorites service.FavoriteService, store Pinger, site *Site, logger logrus.FieldLogger) *Handler {
	return &Handler{
		users:     users,
		favorites: favorites,
		store:     store,
		site:      site,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), noCacheMiddleware(), corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "API is working"})
		})
		api.GET("/health", h.health)
		api.POST("/signup", h.signup)
		api.POST("/login", h.login)
		api.POST("/favorites", h.addFavorite)
		api.GET("/favorites/:userId", h.listFavorites)
	}

	router.NoRoute(h.serveStatic)
}

func noCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type favoriteRequest struct {
	UserID   looseString `json:"userId" binding:"required"`
	RecipeID looseString `json:"recipeId" binding:"required"`
	Title    looseString `json:"title" binding:"required"`
	Image    looseString `json:"image" binding:"required"`
}

// looseString accepts JSON strings as well as numbers, so recipe ids sent as
// numeric values are stored in their decimal form.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errors.New("expected a string or a number")
	}
	*s = looseString(num.String())
	return nil
}

type FavoriteResponse struct {
	ID       string `json:"_id"`
	UserID   string `json:"userId"`
	RecipeID string `json:"recipeId"`
	Title    string `json:"title"`
	Image    string `json:"image"`
}

func favoriteToResponse(fav domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:       fav.ID,
		UserID:   fav.UserID,
		RecipeID: fav.RecipeID,
		Title:    fav.Title,
		Image:    fav.Image,
	}
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": inputMessage(err)})
		default:
			h.serverError(c, "signup", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		h.serverError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "userId": user.ID})
}

func (h *Handler) addFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId, recipeId, title and image are required"})
		return
	}

	_, err := h.favorites.AddFavorite(c.Request.Context(), domain.Favorite{
		UserID:   string(req.UserID),
		RecipeID: string(req.RecipeID),
		Title:    string(req.Title),
		Image:    string(req.Image),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyFavorited):
			c.JSON(http.StatusConflict, gin.H{"message": "Already favorited"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": inputMessage(err)})
		default:
			h.serverError(c, "add favorite", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites"})
}

func (h *Handler) listFavorites(c *gin.Context) {
	favorites, err := h.favorites.ListFavorites(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.serverError(c, "list favorites", err)
		return
	}

	resp := make([]FavoriteResponse, len(favorites))
	for i := range favorites {
		resp[i] = favoriteToResponse(favorites[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WithError(err).Warn("health check: store unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// serverError logs the full error and answers with a generic message.
func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.WithError(err).WithFields(logrus.Fields{
		"op":   op,
		"path": c.Request.URL.Path,
	}).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

func inputMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return "Invalid input"
	}
	return msg
}
