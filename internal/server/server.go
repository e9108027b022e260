package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"milanfood-backend/internal/catalog"
	"milanfood-backend/internal/config"
	"milanfood-backend/internal/infrastructure/asset"
	"milanfood-backend/internal/usecase"
)

const maxOrderBody = 1 << 20

type Deps struct {
	Catalog  *catalog.Catalog
	Sessions *usecase.SessionService
	Orders   *usecase.OrderService
	Assets   *asset.FSReader
	Logger   *zap.Logger
}

type Server struct {
	cfg      config.Config
	catalog  *catalog.Catalog
	sessions *usecase.SessionService
	orders   *usecase.OrderService
	assets   *asset.FSReader
	log      *zap.Logger
	engine   *gin.Engine
}

func New(cfg config.Config, d Deps) *Server {
	s := &Server{
		cfg:      cfg,
		catalog:  d.Catalog,
		sessions: d.Sessions,
		orders:   d.Orders,
		assets:   d.Assets,
		log:      d.Logger,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.assets == nil {
		s.assets = asset.NewFSReader(cfg.StaticDir)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.cors(s.engine)
}

func (s *Server) routes() {
	switch s.cfg.Env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(s.requestID(), s.requestLogger(), gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/order", s.handleOrderIntake)

	api := r.Group("/api")
	{
		api.GET("/categories", s.handleCategories)
		api.GET("/products", s.handleProducts)
		api.GET("/products/:id", s.handleProduct)
		api.POST("/sessions", s.handleCreateSession)
	}

	sess := api.Group("/session")
	sess.Use(s.requireSession())
	{
		sess.GET("", s.handleSessionView)

		sess.POST("/selection", s.handleOpenProduct)
		sess.PUT("/selection/choice", s.handleSetChoice)
		sess.POST("/selection/extras", s.handleToggleExtra)
		sess.PUT("/selection/quantity", s.handleSetQuantity)
		sess.PUT("/selection/note", s.handleSetNote)
		sess.POST("/selection/commit", s.handleCommitSelection)
		sess.DELETE("/selection", s.handleCancelSelection)

		sess.GET("/cart", s.handleCart)
		sess.POST("/cart/items/:index/increment", s.handleCartItem(cartIncrement))
		sess.POST("/cart/items/:index/decrement", s.handleCartItem(cartDecrement))
		sess.DELETE("/cart/items/:index", s.handleCartItem(cartRemove))

		sess.POST("/checkout/open", s.handleCheckoutStep(stepOpen))
		sess.POST("/checkout/continue", s.handleCheckoutStep(stepContinue))
		sess.POST("/checkout/cancel", s.handleCheckoutStep(stepCancel))
		sess.PUT("/checkout/customer", s.handleUpdateCustomer)
		sess.PUT("/checkout/coupon", s.handleSetCoupon)
		sess.POST("/checkout/pay", s.handlePay)
		sess.GET("/checkout/progress", s.handleProgress)
		sess.GET("/order", s.handleOrder)
	}

	r.NoRoute(s.handleStatic)
	s.engine = r
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, "+headerSessionToken)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
