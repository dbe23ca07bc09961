package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"wtfSocial/crud"
	"wtfSocial/domain"
	"wtfSocial/views"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wtfsocial_http_requests_total",
		Help: "Count of handled HTTP requests.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wtfsocial_http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Server provides most of the http functionality of this app, namely routing,
// request handling, and middleware. It also performs authentication and
// authorization before handing things over to one of the crud services.
type Server struct {
	router *mux.Router
	us     domain.UserService
	ps     domain.PostService
	fs     domain.FollowService
	ls     domain.LikeService
	views  *views.View
	log    *logrus.Logger
	rdb    *redis.Client
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
// rdb may be nil, in which case the login/register rate limit is disabled.
func NewServer(
	isProd bool,
	csrfAuthKey string,
	services *crud.Services,
	log *logrus.Logger,
	rdb *redis.Client,
) (*Server, error) {

	v, err := views.New()
	if err != nil {
		return nil, err
	}

	// Construct a new Server with a gorilla router and the services passed in.
	s := &Server{
		router: mux.NewRouter(),
		us:     services.User,
		ps:     services.Post,
		fs:     services.Follow,
		ls:     services.Like,
		views:  v,
		log:    log,
		rdb:    rdb,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the crud system.
	s.registerFeedRoutes(s.router)
	s.registerPostRoutes(s.router)
	s.registerUserRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerLikeRoutes(s.router)

	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Set up middleware that needs to run on every request. CSRF protection
	// only runs in production, so that the dev setup and the test harness can
	// post forms without carrying tokens around.
	s.router.Use(s.instrument, s.logRequest, s.setUser)
	if isProd {
		csrfMw := csrf.Protect([]byte(csrfAuthKey), csrf.Secure(true), csrf.Path("/"))
		s.router.Use(csrfMw)
	}
	return s, nil
}

// ServeHTTP makes the Server itself an http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	s.log.WithField("port", port).Info("server listening")
	s.log.Fatal(http.ListenAndServe(":"+strconv.Itoa(port), s.router))
}

// statusRecorder wraps a ResponseWriter to capture the status code written.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// instrument records request count and duration metrics per route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// logRequest emits one structured log line per handled request.
func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
