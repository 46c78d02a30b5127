package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hudumahub/marketplace-backend/api/controllers"
	"github.com/hudumahub/marketplace-backend/api/middleware"
	"github.com/hudumahub/marketplace-backend/internal/attachments"
	"github.com/hudumahub/marketplace-backend/internal/auth"
	"github.com/hudumahub/marketplace-backend/internal/bookings"
	"github.com/hudumahub/marketplace-backend/internal/catalog"
	"github.com/hudumahub/marketplace-backend/internal/favorites"
	"github.com/hudumahub/marketplace-backend/internal/locations"
	"github.com/hudumahub/marketplace-backend/internal/messaging"
	"github.com/hudumahub/marketplace-backend/internal/posts"
	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/internal/reviews"
	"github.com/hudumahub/marketplace-backend/pkg/config"
	"github.com/hudumahub/marketplace-backend/pkg/db"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
	"github.com/hudumahub/marketplace-backend/pkg/metrics"
	"github.com/hudumahub/marketplace-backend/pkg/redis"
)

// Services groups everything the router wires into handlers.
type Services struct {
	Auth        auth.Service
	Profiles    profiles.Service
	Catalog     catalog.Service
	Bookings    bookings.Service
	Messaging   messaging.Service
	Reviews     reviews.Service
	Favorites   favorites.Service
	Locations   locations.Service
	Posts       posts.Service
	Attachments attachments.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	httpMetrics := metrics.NewHTTPMetrics()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		httpMetrics.Middleware(),
	)

	authn := middleware.Auth(cfg.JWT, logg)
	admin := middleware.RequireAdmin(svcs.Auth, logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Get("/healthz", controllers.Healthz(cfg, dbP, logg))
	r.Handle("/metrics", httpMetrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/forgot-password", controllers.AuthForgotPassword(svcs.Auth, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(svcs.Auth, logg))
		r.With(authn).Get("/me", controllers.AuthMe(svcs.Auth, logg))
	})

	r.Route("/clients", func(r chi.Router) {
		r.Use(authn)
		r.Post("/onboarding", controllers.ClientOnboard(svcs.Profiles, logg))
		r.Patch("/updateProfile", controllers.ClientUpdate(svcs.Profiles, logg))
		r.Post("/uploadProfilePicture", controllers.ClientProfilePicture(svcs.Profiles, cfg.Uploads, logg))
	})

	r.Route("/service_providers", func(r chi.Router) {
		r.Get("/allProviders", controllers.ProviderList(svcs.Profiles, logg))
		r.Group(func(r chi.Router) {
			r.Use(authn, middleware.RequireRole(enums.UserRoleProvider, logg))
			r.Post("/onboarding", controllers.ProviderOnboard(svcs.Profiles, logg))
			r.Patch("/updateProfile", controllers.ProviderUpdate(svcs.Profiles, logg))
		})
	})

	r.Route("/businesses", func(r chi.Router) {
		r.Get("/allBusinesses", controllers.BusinessList(svcs.Profiles, logg))
		r.Group(func(r chi.Router) {
			r.Use(authn, middleware.RequireRole(enums.UserRoleBusiness, logg))
			r.Post("/onboarding", controllers.BusinessOnboard(svcs.Profiles, logg))
			r.Patch("/updateProfile", controllers.BusinessUpdate(svcs.Profiles, logg))
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/allCategories", controllers.CategoryList(svcs.Catalog, logg))
		r.Get("/{id}/subcategories", controllers.CategorySubcategories(svcs.Catalog, logg))
		r.Get("/providers", controllers.CategoryProviders(svcs.Catalog, logg))
		r.Get("/businesses", controllers.CategoryBusinesses(svcs.Catalog, logg))
		r.With(authn).Post("/assign", controllers.CategoryAssign(svcs.Catalog, logg))
	})

	r.Route("/services", func(r chi.Router) {
		r.Get("/allServices", controllers.ServiceList(svcs.Catalog, logg))
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/createService", controllers.ServiceCreate(svcs.Catalog, logg))
			r.Patch("/{id}", controllers.ServiceEdit(svcs.Catalog, logg))
			r.Delete("/{id}", controllers.ServiceDelete(svcs.Catalog, logg))
		})
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(authn)
		r.Post("/createBooking", controllers.BookingCreate(svcs.Bookings, logg))
		r.Get("/getBookings/me", controllers.BookingListMine(svcs.Bookings, logg))
		r.Get("/getBookings/received", controllers.BookingListReceived(svcs.Bookings, logg))
		r.Get("/{id}", controllers.BookingDetail(svcs.Bookings, logg))
		r.Post("/{id}/status", controllers.BookingStatus(svcs.Bookings, logg))
		r.Post("/{id}/reschedule", controllers.BookingReschedule(svcs.Bookings, logg))
		r.Post("/{id}/delete", controllers.BookingDelete(svcs.Bookings, logg))
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(authn)
		r.Post("/send", controllers.MessageSend(svcs.Messaging, logg))
		r.Get("/conversation", controllers.MessageList(svcs.Messaging, logg))
		r.Post("/markRead", controllers.MessageMarkRead(svcs.Messaging, logg))
		r.Get("/unreadCount", controllers.MessageUnreadCount(svcs.Messaging, logg))
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/{target_type}/{id}", controllers.ReviewList(svcs.Reviews, logg))
		r.Get("/{target_type}/{id}/aggregate", controllers.ReviewAggregate(svcs.Reviews, logg))
		r.Get("/{target_type}/rank", controllers.ReviewRank(svcs.Reviews, logg))
		r.With(authn).Post("/createReview", controllers.ReviewCreate(svcs.Reviews, logg))
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Use(authn)
		r.Post("/add", controllers.FavoriteAdd(svcs.Favorites, logg))
		r.Get("/myFavorites", controllers.FavoriteList(svcs.Favorites, logg))
		r.Post("/{id}/remove", controllers.FavoriteRemove(svcs.Favorites, logg))
	})

	r.Route("/locations", func(r chi.Router) {
		r.Get("/counties", controllers.CountyList(svcs.Locations, logg))
		r.Get("/counties/{id}/constituencies", controllers.ConstituencyList(svcs.Locations, logg))
		r.Get("/constituencies/{id}/wards", controllers.WardList(svcs.Locations, logg))
		r.Get("/businesses/{id}/branches", controllers.BranchList(svcs.Locations, logg))
		r.Get("/search", controllers.LocationSearch(svcs.Locations, logg))
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/businesses/{id}/branches", controllers.BranchCreate(svcs.Locations, logg))
			r.Post("/providers/{id}", controllers.ProviderLocationCreate(svcs.Locations, logg))
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/feed", controllers.PostList(svcs.Posts, logg))
		r.With(authn).Post("/createPost", controllers.PostCreate(svcs.Posts, logg))
	})

	r.Route("/attachments", func(r chi.Router) {
		r.Get("/{target_type}/{id}", controllers.AttachmentList(svcs.Attachments, logg))
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/upload", controllers.AttachmentUpload(svcs.Attachments, cfg.Uploads, logg))
			r.Post("/service/{id}", controllers.ServiceAttachmentUpload(svcs.Catalog, svcs.Attachments, cfg.Uploads, logg))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authn, admin)
		r.Post("/create_category", controllers.AdminCreateCategory(svcs.Catalog, logg))
		r.Post("/create_parent_child", controllers.AdminCreateParentAndChild(svcs.Catalog, logg))
		r.Post("/categories/{id}/delete", controllers.AdminDeleteCategory(svcs.Catalog, logg))
		r.Get("/users", controllers.AdminListUsers(svcs.Auth, logg))
		r.Post("/users/{id}/delete", controllers.AdminDeleteUser(svcs.Auth, logg))
	})

	return r
}
