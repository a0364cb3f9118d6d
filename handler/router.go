package handler

import (
	"net/http"

	"inotecloud/config"
	"inotecloud/middleware"
	"inotecloud/services"
	"inotecloud/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services is everything the routes call into.
type Services struct {
	Auth      *usecase.AuthService
	Notes     *usecase.NotesService
	Messages  *usecase.MessagesService
	Tokens    *services.TokenService
	Blacklist services.TokenBlacklist
}

// NewServices wires the use cases onto the given stores.
func NewServices(auth config.AuthConfig, users usecase.UserStore, notes usecase.NoteStore,
	messages usecase.MessageStore, blacklist services.TokenBlacklist) Services {
	tokens := services.NewTokenService(auth.Secret, auth.ExpiryWarning)
	return Services{
		Auth: &usecase.AuthService{
			Users:       users,
			Tokens:      tokens,
			RegisterTTL: auth.RegisterTokenTTL,
			LoginTTL:    auth.LoginTokenTTL,
			BcryptCost:  auth.BcryptCost,
		},
		Notes: &usecase.NotesService{
			NotesRepo: notes,
		},
		Messages: &usecase.MessagesService{
			MessagesRepo: messages,
			UsersRepo:    users,
		},
		Tokens:    tokens,
		Blacklist: blacklist,
	}
}

type RouterOptions struct {
	CORS             config.CORSConfig
	MaxBodyBytes     int64
	StrictNoteDelete bool
}

func SetupRouter(svc Services, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.EnhancedRecoveryMiddleware(),
		middleware.RequestTracingMiddleware(),
		middleware.RequestLogger(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(opts.CORS),
	)
	if opts.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSizeLimiter(opts.MaxBodyBytes))
	}

	requireAuth := middleware.AuthMiddleware(svc.Tokens, svc.Blacklist)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "iNoteCloud backend is running")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/createuser", func(c *gin.Context) {
			RegistrationHandler(c, svc.Auth)
		})
		auth.POST("/login", func(c *gin.Context) {
			LoginHandler(c, svc.Auth)
		})
		auth.POST("/getuser", requireAuth, func(c *gin.Context) {
			GetUserHandler(c, svc.Auth)
		})
		auth.GET("/verify-token", requireAuth, VerifyTokenHandler)
		if svc.Blacklist != nil {
			auth.POST("/logout", requireAuth, func(c *gin.Context) {
				LogoutHandler(c, svc.Blacklist)
			})
		}
	}

	notes := api.Group("/notes")
	{
		notes.GET("/fetchallnotes", requireAuth, func(c *gin.Context) {
			GetUserNotesHandler(c, svc.Notes)
		})
		notes.POST("/addnote", requireAuth, func(c *gin.Context) {
			CreateNoteHandler(c, svc.Notes)
		})
		notes.PUT("/updatenote/:id", requireAuth, func(c *gin.Context) {
			UpdateNoteHandler(c, svc.Notes)
		})

		deleteNote := func(c *gin.Context) {
			DeleteNoteHandler(c, svc.Notes)
		}
		if opts.StrictNoteDelete {
			notes.DELETE("/deletenote/:id", requireAuth, deleteNote)
		} else {
			notes.DELETE("/deletenote/:id", deleteNote)
		}
	}

	messages := api.Group("/messages")
	{
		messages.GET("/all", func(c *gin.Context) {
			GetAllMessagesHandler(c, svc.Messages)
		})
		messages.POST("/add", requireAuth, func(c *gin.Context) {
			CreateMessageHandler(c, svc.Messages)
		})
		messages.PUT("/update/:id", requireAuth, func(c *gin.Context) {
			UpdateMessageHandler(c, svc.Messages)
		})
		messages.DELETE("/delete/:id", requireAuth, func(c *gin.Context) {
			DeleteMessageHandler(c, svc.Messages)
		})
		messages.POST("/reply/:id", requireAuth, func(c *gin.Context) {
			ReplyMessageHandler(c, svc.Messages)
		})
		messages.PUT("/like/:id", requireAuth, func(c *gin.Context) {
			LikeMessageHandler(c, svc.Messages)
		})
		messages.PUT("/unlike/:id", requireAuth, func(c *gin.Context) {
			UnlikeMessageHandler(c, svc.Messages)
		})
	}

	return router
}
