package server

import (
	"log"
	"os"
	"strings"
	"time"

	"anoa.com/fittrack/internal/middleware"
	"anoa.com/fittrack/internal/policy"
	"anoa.com/fittrack/internal/session"
	"anoa.com/fittrack/pkg/storage"

	adminHttp "anoa.com/fittrack/internal/modules/admin/delivery/http"
	adminService "anoa.com/fittrack/internal/modules/admin/service"

	blockHttp "anoa.com/fittrack/internal/modules/block/delivery/http"
	blockRepo "anoa.com/fittrack/internal/modules/block/repository"
	blockService "anoa.com/fittrack/internal/modules/block/service"

	dietHttp "anoa.com/fittrack/internal/modules/diettarget/delivery/http"
	dietRepo "anoa.com/fittrack/internal/modules/diettarget/repository"
	dietService "anoa.com/fittrack/internal/modules/diettarget/service"

	followerHttp "anoa.com/fittrack/internal/modules/follower/delivery/http"
	followerRepo "anoa.com/fittrack/internal/modules/follower/repository"
	followerService "anoa.com/fittrack/internal/modules/follower/service"

	profileHttp "anoa.com/fittrack/internal/modules/profile/delivery/http"
	profileRepo "anoa.com/fittrack/internal/modules/profile/repository"
	profileService "anoa.com/fittrack/internal/modules/profile/service"

	progressHttp "anoa.com/fittrack/internal/modules/progress/delivery/http"
	progressRepo "anoa.com/fittrack/internal/modules/progress/repository"
	progressService "anoa.com/fittrack/internal/modules/progress/service"

	searchService "anoa.com/fittrack/internal/modules/search/service"

	userHttp "anoa.com/fittrack/internal/modules/user/delivery/http"
	userRepo "anoa.com/fittrack/internal/modules/user/repository"
	userService "anoa.com/fittrack/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	searchSvc := searchService.NewUserSearchService(meiliClient)

	sessions := session.NewRedisStore(redisClient)

	followers := followerRepo.NewFollowerRepository(db)
	blocks := blockRepo.NewBlockRepository(db)

	// One engine instance serves every policy-gated module.
	engine := policy.NewEngine(followers, blocks)

	followerSvc := followerService.NewFollowerService(followers, users)
	followerHandler := followerHttp.NewFollowerHandler(followerSvc)

	authSvc := userService.NewAuthService(users, sessions, searchSvc)
	authHandler := userHttp.NewAuthHandler(authSvc, searchSvc, followerSvc)

	profileSvc := profileService.NewProfileService(profileRepo.NewProfileRepository(db), users, engine, imageStorage)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	dietSvc := dietService.NewDietTargetService(dietRepo.NewDietTargetRepository(db), users, engine)
	dietHandler := dietHttp.NewDietTargetHandler(dietSvc)

	progressSvc := progressService.NewProgressService(progressRepo.NewProgressRepository(db), users, engine)
	progressHandler := progressHttp.NewProgressHandler(progressSvc)

	blockSvc := blockService.NewBlockService(blocks, followers, users)
	blockHandler := blockHttp.NewBlockHandler(blockSvc)

	adminSvc := adminService.NewAdminService(users, blockSvc, searchSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(sessions)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.GET("/users/:username", adminHandler.GetUser)
			adminGroup.PUT("/users/:username/role", adminHandler.UpdateRole)
			adminGroup.PUT("/users/:username/active", adminHandler.SetActive)
			adminGroup.POST("/users/:username/blocks/:target", adminHandler.CreateBlock)
			adminGroup.DELETE("/users/:username/blocks/:target", adminHandler.RemoveBlock)
			adminGroup.GET("/blocks", adminHandler.ListBlocks)
		}

		// Profile routes
		protected.POST("/profiles", profileHandler.CreateProfile)
		protected.GET("/profiles/:username", profileHandler.GetProfileByUsername)
		protected.PUT("/profiles/:username", profileHandler.UpdateProfile)
		protected.DELETE("/profiles/:username", profileHandler.DeleteProfile)
		protected.POST("/profiles/:username/image", profileHandler.UploadImage)

		// Diet target routes
		protected.POST("/diet-targets/:username", dietHandler.CreateDietTarget)
		protected.GET("/diet-targets/:username", dietHandler.GetDietTarget)
		protected.PUT("/diet-targets/:username", dietHandler.UpdateDietTarget)
		protected.DELETE("/diet-targets/:username", dietHandler.DeleteDietTarget)

		// Progress routes
		protected.POST("/progress/user/:username", progressHandler.CreateProgress)
		protected.GET("/progress/user/:username", progressHandler.ListProgress)
		protected.GET("/progress/entry/:id", progressHandler.GetProgress)
		protected.PUT("/progress/entry/:id", progressHandler.UpdateProgress)
		protected.DELETE("/progress/entry/:id", progressHandler.DeleteProgress)

		// Follower routes
		protected.POST("/followers/:username", followerHandler.RequestFollow)
		protected.DELETE("/followers/:username", followerHandler.Unfollow)
		protected.PUT("/followers/requests/:id/accept", followerHandler.AcceptRequest)
		protected.PUT("/followers/requests/:id/decline", followerHandler.DeclineRequest)
		protected.GET("/followers", followerHandler.ListFollowers)
		protected.GET("/followers/following", followerHandler.ListFollowing)
		protected.GET("/followers/requests", followerHandler.ListPending)
		protected.GET("/followers/requests/count", followerHandler.PendingCount)

		// Block routes
		protected.POST("/blocks/:username", blockHandler.BlockUser)
		protected.DELETE("/blocks/:username", blockHandler.UnblockUser)
		protected.GET("/blocks", blockHandler.ListBlocked)

		// User search
		protected.GET("/users/search", authHandler.SearchUsers)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
