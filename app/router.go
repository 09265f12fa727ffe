// Package app wires the middleware chain, the route table and the
// background jobs together
package app

import (
	"fmt"
	"time"
	"tutochat/chat-api/app/root"
	"tutochat/chat-api/app/user"
	"tutochat/chat-api/db"
	"tutochat/chat-api/internal"
	"tutochat/chat-api/internal/chat"
	"tutochat/chat-api/internal/service"
	"tutochat/chat-api/pkg/middleware"
	"tutochat/chat-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{
		Argon:  security.New(),
		Mailer: service.NewSMTPMailer(),
	}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	makeLogger()

	router := gin.New()

	session := middleware.NewSessionMiddleware()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors"),
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("pseudo"); v != "" {
					fields = append(fields, zap.String("pseudo", v))
				}

				return fields
			},
		}),
		session,
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	router.LoadHTMLGlob("web/templates/*")
	router.Static("/static", "./web/static")

	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Minute,
	})
	bodyLimit := middleware.BodySizeLimiter(1 << 20)

	// Pages
	router.GET("/", root.ChatPage)
	router.GET("/register", root.RegisterPage)

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	// POST /register		-> Registers a new account and mails the validation link
	router.POST("/register", rateLimiter, bodyLimit, func(c *gin.Context) { user.UserRegister(c, d) })

	// GET /validate/:token		-> Redeems a one-time validation token
	router.GET("/validate/:token", rateLimiter, func(c *gin.Context) { user.UserValidate(c, d) })

	// POST /login			-> Checks credentials and sets the session cookie
	router.POST("/login", rateLimiter, bodyLimit, func(c *gin.Context) { user.UserLogin(c, d) })

	// GET /logout			-> Clears the session cookie
	router.GET("/logout", user.UserLogout)

	// GET /me			-> Returns the pseudo bound to the session
	router.GET("/me", user.UserMe)

	// Chat gateway
	hub := chat.NewHub()
	go hub.Run()
	d.Hub = hub

	gateway := chat.NewGateway(database, hub, viper.GetInt("chat.history_limit"))

	// GET /ws			-> Websocket upgrade into the chat gateway
	router.GET("/ws", gateway.Serve)

	// Check for useless tokens every day because they expire rarely
	go service.TokenCleanup(time.Hour*24, database)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
