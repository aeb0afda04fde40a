package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"profile-sync/cache"
	"profile-sync/config"
	"profile-sync/gateways/auth"
	"profile-sync/gateways/biosections"
	"profile-sync/gateways/organization"
	"profile-sync/gateways/profiles"
	"profile-sync/gateways/publications"
	"profile-sync/gateways/teaching"
	"profile-sync/models"
	"profile-sync/mutation"
	"profile-sync/session"
	"profile-sync/storage"
	"profile-sync/transport"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var revalidationsCounter prometheus.Counter

func init() {
	revalidationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_sync_revalidation_sweeps_total",
			Help: "Total number of scheduled cache revalidation sweeps.",
		},
	)
	prometheus.MustRegister(revalidationsCounter)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Session & Transport
	sess := session.New(cfg.SessionFile, logging)
	client := transport.NewClient(cfg, sess, logging)

	// Setup Gateways
	authGW := auth.New(client, sess, logging)
	pubGW := publications.New(client, logging)
	bioGW := biosections.New(client, logging)
	teachGW := teaching.New(client, logging)
	profileGW := profiles.New(client, logging)
	orgGW := organization.New(client, logging)

	// Setup Cache: pro Entity-Familie ein Fetcher auf den list/get-Aufruf.
	store := cache.NewStore(cfg.RequestTimeout, cfg.ReadRetries, logging)
	registerFetchers(store, pubGW, bioGW, teachGW, profileGW, orgGW)

	// Setup Mutation Coordinator
	notifier := &mutation.LogNotifier{Logger: logging}
	coordinator := mutation.NewCoordinator(store, notifier, logging)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "authenticated": sess.Authenticated()})
	})
	router.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Stats())
	})

	// Setup Routes
	setupAuthRoutes(router, authGW)
	setupPublicationRoutes(router, cfg, store, coordinator, pubGW)
	setupBioSectionRoutes(router, cfg, store, coordinator, bioGW)
	setupTeachingRoutes(router, cfg, store, coordinator, teachGW)
	setupProfileRoutes(router, cfg, store, coordinator, profileGW)
	setupOrganizationRoutes(router, store, coordinator, orgGW)
	setupUploadRoutes(router, cfg, logging)

	// Setup Cron: periodische Revalidierung aller bekannten Cache-Keys.
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.RevalidateSchedule, func() {
		logging.Info("Running scheduled cache revalidation sweep...")
		store.InvalidateAll()
		revalidationsCounter.Inc()
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort), zap.String("backend", cfg.APIBaseURL))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// registerFetchers verdrahtet die Cache-Fetcher mit den Gateways.
func registerFetchers(store *cache.Store, pubGW *publications.Gateway, bioGW *biosections.Gateway,
	teachGW *teaching.Gateway, profileGW *profiles.Gateway, orgGW *organization.Gateway) {

	store.Register(cache.EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		return pubGW.List(ctx, scopeID)
	})
	store.Register(cache.EntityBioSections, func(ctx context.Context, scopeID int) (any, error) {
		return bioGW.List(ctx, scopeID)
	})
	store.Register(cache.EntityTeaching, func(ctx context.Context, scopeID int) (any, error) {
		return teachGW.List(ctx, scopeID)
	})
	store.Register(cache.EntityCourses, func(ctx context.Context, scopeID int) (any, error) {
		return teachGW.ListCourses(ctx, scopeID)
	})
	store.Register(cache.EntityProfile, func(ctx context.Context, scopeID int) (any, error) {
		return profileGW.Get(ctx, scopeID)
	})
	store.Register(cache.EntityCenters, func(ctx context.Context, scopeID int) (any, error) {
		return orgGW.ListCenters(ctx)
	})
	store.Register(cache.EntityPartners, func(ctx context.Context, scopeID int) (any, error) {
		return orgGW.ListPartners(ctx)
	})
	store.Register(cache.EntityCareers, func(ctx context.Context, scopeID int) (any, error) {
		return orgGW.ListCareers(ctx)
	})
}

// userScope liest den User-Scope aus dem Query-Parameter, Default aus der Config.
func userScope(c *gin.Context, cfg *config.Config) int {
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return id
		}
	}
	return cfg.DefaultUserID
}

// respondError bildet die Fehler-Taxonomie auf HTTP-Antworten der Facade ab.
func respondError(c *gin.Context, err error) {
	var conflict *mutation.ConflictError
	var verr *transport.ValidationError
	var nf *transport.NotFoundError
	var herr *transport.HTTPError

	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case transport.IsNetwork(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unreachable"})
	case errors.As(err, &herr):
		c.JSON(herr.Status, gin.H{"error": herr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// respondFieldErrors meldet lokale Schema-Verstöße im 422-Format.
func respondFieldErrors(c *gin.Context, fieldErrs models.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fieldErrs})
}

func setupAuthRoutes(router *gin.Engine, authGW *auth.Gateway) {
	rg := router.Group("/auth")

	rg.POST("/login", func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
		token, err := authGW.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, token)
	})

	rg.POST("/register", func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
		user, err := authGW.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	})

	rg.POST("/logout", func(c *gin.Context) {
		authGW.Logout()
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	})
}

func setupPublicationRoutes(router *gin.Engine, cfg *config.Config, store *cache.Store,
	coordinator *mutation.Coordinator, gw *publications.Gateway) {

	rg := router.Group("/publications")

	rg.GET("/", func(c *gin.Context) {
		userID := userScope(c, cfg)
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityPublications, ScopeID: userID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/", func(c *gin.Context) {
		var in models.PublicationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.UserID == 0 {
			in.UserID = cfg.DefaultUserID
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.Publication
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityPublications,
			Verb:        "create publication",
			Invalidates: []cache.Key{{Entity: cache.EntityPublications, ScopeID: in.UserID}},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.Create(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.PublicationUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.Publication
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityPublications,
			ID:          id,
			Verb:        "update publication",
			Invalidates: []cache.Key{{Entity: cache.EntityPublications, ScopeID: userScope(c, cfg)}},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.Update(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityPublications,
			ID:          id,
			Verb:        "delete publication",
			Invalidates: []cache.Key{{Entity: cache.EntityPublications, ScopeID: userScope(c, cfg)}},
			Apply: func(ctx context.Context) error {
				return gw.Delete(ctx, id)
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "publication deleted"})
	})
}

func setupBioSectionRoutes(router *gin.Engine, cfg *config.Config, store *cache.Store,
	coordinator *mutation.Coordinator, gw *biosections.Gateway) {

	rg := router.Group("/bio-sections")

	rg.GET("/", func(c *gin.Context) {
		userID := userScope(c, cfg)
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityBioSections, ScopeID: userID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/", func(c *gin.Context) {
		var in models.BioSectionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.UserID == 0 {
			in.UserID = cfg.DefaultUserID
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.BioSection
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityBioSections,
			Verb:        "create bio section",
			Invalidates: []cache.Key{{Entity: cache.EntityBioSections, ScopeID: in.UserID}},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.Create(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.BioSectionUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.BioSection
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityBioSections,
			ID:          id,
			Verb:        "update bio section",
			Invalidates: []cache.Key{{Entity: cache.EntityBioSections, ScopeID: userScope(c, cfg)}},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.Update(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityBioSections,
			ID:          id,
			Verb:        "delete bio section",
			Invalidates: []cache.Key{{Entity: cache.EntityBioSections, ScopeID: userScope(c, cfg)}},
			Apply: func(ctx context.Context) error {
				return gw.Delete(ctx, id)
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "bio section deleted"})
	})
}

func setupTeachingRoutes(router *gin.Engine, cfg *config.Config, store *cache.Store,
	coordinator *mutation.Coordinator, gw *teaching.Gateway) {

	rg := router.Group("/teaching")

	rg.GET("/", func(c *gin.Context) {
		userID := userScope(c, cfg)
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityTeaching, ScopeID: userID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/", func(c *gin.Context) {
		var in models.TeachingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.UserID == 0 {
			in.UserID = cfg.DefaultUserID
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.TeachingExperience
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityTeaching,
			Verb:        "create teaching experience",
			Invalidates: []cache.Key{{Entity: cache.EntityTeaching, ScopeID: in.UserID}},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.Create(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.TeachingUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.TeachingExperience
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityTeaching,
			ID:          id,
			Verb:        "update teaching experience",
			Invalidates: []cache.Key{{Entity: cache.EntityTeaching, ScopeID: userScope(c, cfg)}},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.Update(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity: cache.EntityTeaching,
			ID:     id,
			Verb:   "delete teaching experience",
			Invalidates: []cache.Key{
				{Entity: cache.EntityTeaching, ScopeID: userScope(c, cfg)},
				{Entity: cache.EntityCourses, ScopeID: id},
			},
			Apply: func(ctx context.Context) error {
				return gw.Delete(ctx, id)
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "teaching experience deleted"})
	})

	// Kurse hängen an ihrer Lehrtätigkeit; der Scope des Kurs-Caches ist
	// deshalb die teaching_id, nicht die User-ID.
	rg.GET("/courses/:teachingId", func(c *gin.Context) {
		teachingID, err := strconv.Atoi(c.Param("teachingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teaching id"})
			return
		}
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityCourses, ScopeID: teachingID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/courses/", func(c *gin.Context) {
		var in models.CourseInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.Course
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity: cache.EntityCourses,
			Verb:   "create course",
			Invalidates: []cache.Key{
				{Entity: cache.EntityCourses, ScopeID: in.TeachingID},
				{Entity: cache.EntityTeaching, ScopeID: userScope(c, cfg)},
			},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.CreateCourse(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/courses/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.CourseUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.Course
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:             cache.EntityCourses,
			ID:                 id,
			Verb:               "update course",
			InvalidateEntities: []cache.EntityType{cache.EntityCourses, cache.EntityTeaching},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.UpdateCourse(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/courses/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:             cache.EntityCourses,
			ID:                 id,
			Verb:               "delete course",
			InvalidateEntities: []cache.EntityType{cache.EntityCourses, cache.EntityTeaching},
			Apply: func(ctx context.Context) error {
				return gw.DeleteCourse(ctx, id)
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
	})
}

func setupProfileRoutes(router *gin.Engine, cfg *config.Config, store *cache.Store,
	coordinator *mutation.Coordinator, gw *profiles.Gateway) {

	rg := router.Group("/profiles")

	rg.GET("/:userId", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityProfile, ScopeID: userID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/", func(c *gin.Context) {
		var in models.ProfileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if in.UserID == 0 {
			in.UserID = cfg.DefaultUserID
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.Profile
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityProfile,
			Verb:        "create profile",
			Invalidates: []cache.Key{{Entity: cache.EntityProfile, ScopeID: in.UserID}},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.Create(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PUT("/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.ProfileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.Profile
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityProfile,
			ID:          id,
			Verb:        "update profile",
			Invalidates: []cache.Key{{Entity: cache.EntityProfile, ScopeID: in.UserID}},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.Update(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})
}

func setupOrganizationRoutes(router *gin.Engine, store *cache.Store,
	coordinator *mutation.Coordinator, gw *organization.Gateway) {

	rg := router.Group("/organization")

	// Organisationsdaten sind nicht user-gescopt; ScopeID ist immer 0.
	rg.GET("/centers", func(c *gin.Context) {
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityCenters})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/centers", func(c *gin.Context) {
		var in models.CenterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.OrganizationCenter
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityCenters,
			Verb:        "create center",
			Invalidates: []cache.Key{{Entity: cache.EntityCenters}},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.CreateCenter(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/centers/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.CenterUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.OrganizationCenter
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityCenters,
			ID:          id,
			Verb:        "update center",
			Invalidates: []cache.Key{{Entity: cache.EntityCenters}},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.UpdateCenter(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/centers/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityCenters,
			ID:          id,
			Verb:        "delete center",
			Invalidates: []cache.Key{{Entity: cache.EntityCenters}},
			Apply: func(ctx context.Context) error {
				return gw.DeleteCenter(ctx, id)
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "center deleted"})
	})

	rg.GET("/partners", func(c *gin.Context) {
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityPartners})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/partners", func(c *gin.Context) {
		var in models.PartnerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.OrganizationPartner
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityPartners,
			Verb:        "create partner",
			Invalidates: []cache.Key{{Entity: cache.EntityPartners}},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.CreatePartner(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/partners/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.PartnerUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.OrganizationPartner
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityPartners,
			ID:          id,
			Verb:        "update partner",
			Invalidates: []cache.Key{{Entity: cache.EntityPartners}},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.UpdatePartner(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/partners/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityPartners,
			ID:          id,
			Verb:        "delete partner",
			Invalidates: []cache.Key{{Entity: cache.EntityPartners}},
			Apply: func(ctx context.Context) error {
				return gw.DeletePartner(ctx, id)
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "partner deleted"})
	})

	rg.GET("/careers", func(c *gin.Context) {
		value, err := store.Wait(c.Request.Context(), cache.Key{Entity: cache.EntityCareers})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, value)
	})

	rg.POST("/careers", func(c *gin.Context) {
		var in models.CareerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var created *models.OrganizationCareer
		err := coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityCareers,
			Verb:        "create career",
			Invalidates: []cache.Key{{Entity: cache.EntityCareers}},
			Apply: func(ctx context.Context) error {
				var err error
				created, err = gw.CreateCareer(ctx, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.PATCH("/careers/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		var in models.CareerUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if fieldErrs := models.Validate(in); fieldErrs != nil {
			respondFieldErrors(c, fieldErrs)
			return
		}

		var updated *models.OrganizationCareer
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityCareers,
			ID:          id,
			Verb:        "update career",
			Invalidates: []cache.Key{{Entity: cache.EntityCareers}},
			Apply: func(ctx context.Context) error {
				var err error
				updated, err = gw.UpdateCareer(ctx, id, in)
				return err
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/careers/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = coordinator.Run(c.Request.Context(), mutation.Mutation{
			Entity:      cache.EntityCareers,
			ID:          id,
			Verb:        "delete career",
			Invalidates: []cache.Key{{Entity: cache.EntityCareers}},
			Apply: func(ctx context.Context) error {
				return gw.DeleteCareer(ctx, id)
			},
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "career deleted"})
	})
}

// setupUploadRoutes konfiguriert den direkten Binär-Upload in den Object-Store.
func setupUploadRoutes(router *gin.Engine, cfg *config.Config, log *zap.Logger) {
	if !cfg.StorageConfigured() {
		log.Warn("Object storage not configured, upload route disabled")
		return
	}
	s3Client, err := storage.NewClient(cfg)
	if err != nil {
		log.Error("S3 client creation failed, upload route disabled", zap.Error(err))
		return
	}

	router.POST("/uploads", func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'file' form field is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		key := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename))

		link, err := storage.UploadMedia(c.Request.Context(), s3Client, cfg, key, contentType, data)
		if err != nil {
			log.Error("Media upload failed", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
			return
		}

		log.Info("Media uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
		c.JSON(http.StatusCreated, gin.H{"url": link})
	})
}
