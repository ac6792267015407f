package app

import (
	"net/http"
	"time"

	"painel-proxy/config"
	"painel-proxy/internal/handler"
	"painel-proxy/internal/logger"
	"painel-proxy/internal/middleware"
	"painel-proxy/internal/provider"
	"painel-proxy/internal/repository"
	"painel-proxy/internal/resolver"
	"painel-proxy/internal/service"

	"github.com/gorilla/mux"
)

// newsPolicy is used for the search feed, which is never retried.
var newsPolicy = provider.RetryPolicy{Attempts: 1, Timeout: 8 * time.Second}

type Application struct {
	Router         *mux.Router
	Config         *config.Config
	Log            *logger.Logger
	StatusHandler  *handler.StatusHandler
	SearchHandler  *handler.SearchHandler
	WeatherHandler *handler.WeatherHandler
}

func New(cfg *config.Config, log *logger.Logger) (*Application, error) {
	client := &http.Client{}

	weatherRepository := repository.NewWeatherRepository()
	locationRepository := repository.NewLocationRepository()
	if cfg.ClimatempoLocaleID != "" {
		locationRepository.Put(cfg.DefaultCity, cfg.DefaultState, cfg.ClimatempoLocaleID)
	}

	newsFetcher := provider.NewFetcher(client, newsPolicy, log.With("upstream", "news"))
	newsFeed := provider.NewNewsFeed(newsFetcher, provider.NewsFeedOptions{
		Base:     cfg.NewsRSSBase,
		Language: cfg.NewsLanguage,
		Region:   cfg.NewsRegion,
		Edition:  cfg.NewsEdition,
	})

	var linkResolver service.LinkResolver
	if cfg.ResolveLinks {
		linkResolver = resolver.New(client, cfg.AggregatorHosts, cfg.ResolveTimeout, log.With("component", "resolver"))
	}
	searchService := service.NewSearchService(newsFeed, linkResolver, cfg.SearchMaxItems, cfg.ResolveConcurrency, log)

	weatherFetcher := provider.NewFetcher(client, provider.RetryPolicy{
		Attempts: cfg.WeatherAttempts,
		Timeout:  cfg.WeatherTimeout,
		Pause:    cfg.WeatherRetryPause,
	}, log.With("upstream", cfg.WeatherProvider()))
	weatherService := service.NewWeatherService(
		newWeatherProvider(cfg, weatherFetcher, locationRepository),
		weatherRepository,
		log,
	)

	app := &Application{
		Router:         mux.NewRouter(),
		Config:         cfg,
		Log:            log,
		StatusHandler:  handler.NewStatusHandler(time.Now(), cfg.CorStageLevel),
		SearchHandler:  handler.NewSearchHandler(searchService, log),
		WeatherHandler: handler.NewWeatherHandler(weatherService, log),
	}

	app.setupRoutes()

	log.Info("application initialized",
		"weather_provider", cfg.WeatherProvider(),
		"resolve_links", cfg.ResolveLinks,
		"max_items", cfg.SearchMaxItems,
	)
	return app, nil
}

func newWeatherProvider(cfg *config.Config, fetcher *provider.Fetcher, locations repository.LocationRepository) service.WeatherProvider {
	if cfg.WeatherProvider() == "climatempo" {
		return provider.NewClimatempo(fetcher, locations, provider.ClimatempoOptions{
			Base:         cfg.ClimatempoBase,
			Token:        cfg.ClimatempoToken,
			DefaultCity:  cfg.DefaultCity,
			DefaultState: cfg.DefaultState,
		})
	}
	return provider.NewOpenMeteo(fetcher, provider.OpenMeteoOptions{
		Base:         cfg.OpenMeteoBase,
		DefaultLat:   cfg.DefaultLat,
		DefaultLon:   cfg.DefaultLon,
		DefaultPlace: cfg.DefaultPlace,
	})
}

func securityHeadersMiddleware(isProduction bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			w.Header().Set("Cache-Control", "no-store")

			if isProduction {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *Application) setupRoutes() {
	a.Router.HandleFunc("/health", a.StatusHandler.Health).Methods("GET")
	a.Router.HandleFunc("/cor/estagio", a.StatusHandler.CorStage).Methods("GET")
	a.Router.HandleFunc("/search", a.SearchHandler.Search).Methods("GET")
	a.Router.HandleFunc("/weather", a.WeatherHandler.Current).Methods("GET")

	a.Router.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	a.Router.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)
}

// Handler wraps the router in the middleware chain. The chain sits outside
// the router because mux skips Router.Use middleware on its 404 and 405
// responses, and CORS must answer preflight before method matching.
func (a *Application) Handler() http.Handler {
	var h http.Handler = a.Router
	h = middleware.NewCORS(a.Config.AllowedOrigins).Handler(h)
	h = securityHeadersMiddleware(a.Config.IsProduction())(h)
	h = middleware.AccessLog(a.Log)(h)
	return middleware.RequestID(a.Log)(h)
}
