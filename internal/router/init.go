package router

import (
	"github.com/scentlog/scentlog/internal/application"
	"github.com/scentlog/scentlog/internal/container"
	"github.com/scentlog/scentlog/internal/domain"
	pginfra "github.com/scentlog/scentlog/internal/infrastructure/postgres"
	handlers "github.com/scentlog/scentlog/internal/interface/http"
	"github.com/scentlog/scentlog/internal/router/modules"
)

// InitModules builds the repository/service/handler graph from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	policy := domain.NewPolicy()

	// A nil *RabbitPublisher must stay a nil interface so services can skip
	// publishing when the broker is not configured.
	var mailQueue application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		mailQueue = pub
	}

	users := pginfra.NewUserRepository(pool)
	perfumes := pginfra.NewPerfumeRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	discussions := pginfra.NewDiscussionRepository(pool)

	userSvc := application.NewUserService(
		users,
		container.GetJWT(),
		rdb,
		mailQueue,
		container.GetGCS(),
		cfg.GCSBucket,
		log,
		cfg.AppURL,
	)
	perfumeSvc := application.NewPerfumeService(
		perfumes,
		policy,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESPerfumesIndex,
		log,
	)
	reviewSvc := application.NewReviewService(reviews, policy, log)
	recSvc := application.NewRecommendationService(perfumes, reviews, log)
	trendSvc := application.NewTrendingService(perfumes, reviews, log)
	discussionSvc := application.NewDiscussionService(
		discussions,
		users,
		perfumes,
		policy,
		mailQueue,
		log,
		cfg.AppURL,
	)

	authHandler := handlers.NewAuthHandler(userSvc, log, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(userSvc, reviewSvc, log)
	perfumeHandler := handlers.NewPerfumeHandler(perfumeSvc, log)
	reviewHandler := handlers.NewReviewHandler(reviewSvc, log)
	discoveryHandler := handlers.NewDiscoveryHandler(recSvc, trendSvc, log)
	discussionHandler := handlers.NewDiscussionHandler(discussionSvc, log)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewCatalogModule(perfumeHandler, reviewHandler, discoveryHandler, container.GetJWT(), policy))
	r.Add(modules.NewDiscussionModule(discussionHandler, container.GetJWT()))
	r.Add(modules.NewDebugModule(pool, rdb))
}
