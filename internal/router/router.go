package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/config"
	"github.com/drushti-surkar/hashgait-demo/internal/handlers"
	"github.com/drushti-surkar/hashgait-demo/internal/history"
	"github.com/drushti-surkar/hashgait-demo/internal/repository"
	"github.com/drushti-surkar/hashgait-demo/internal/store"
	"github.com/drushti-surkar/hashgait-demo/internal/utils"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

// Setup wires middleware, handlers and routes into a gin engine.
func Setup(log *zap.Logger, users repository.Users, patterns store.PatternStore, ring *history.Ring) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	// Mobile capture clients run from app origins, so allow any origin but
	// keep credentials for the session cookie.
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secret := config.Conf.Server.SessionSecret
	if secret == "" {
		generated, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate session secret", zap.Error(err))
		}
		secret = generated
		log.Warn("No session secret configured, generated an ephemeral one. Sessions will not survive a restart.")
	}
	sessionStore := cookie.NewStore([]byte(secret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("hashgait_session", sessionStore))
	router.Use(UserLoader(log, users))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	authHandler := handlers.NewAuthHandler(log, users)
	gaitHandler := handlers.NewGaitHandler(log, ring)
	patternsHandler := handlers.NewPatternsHandler(log, patterns)
	dashboardHandler := handlers.NewDashboardHandler(log, patterns)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	// Hash backend surface
	router.GET("/", gaitHandler.Health)
	router.POST("/hash", gaitHandler.GenerateHash)
	router.GET("/history", gaitHandler.History)
	router.GET("/stats", gaitHandler.Stats)

	// Account routes
	router.POST("/register", limiter, authHandler.Register)
	router.POST("/login", limiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authorized := router.Group("/")
	authorized.Use(AuthRequired())
	{
		patternRoutes := authorized.Group("/patterns")
		{
			patternRoutes.POST("", patternsHandler.Save)
			patternRoutes.GET("", patternsHandler.List)
			patternRoutes.POST("/verify", patternsHandler.Verify)
			patternRoutes.DELETE("", patternsHandler.Clear)
			patternRoutes.GET("/health", patternsHandler.StoreHealth)
		}

		authorized.GET("/dashboard", dashboardHandler.Show)
	}

	return router
}
