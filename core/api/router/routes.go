package router

import (
	"fmt"

	"wallet_works/core/api/handler"
	"wallet_works/core/api/middleware"
	"wallet_works/core/api/services"

	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// ⚠️ QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 có BUG với cách đăng ký middleware trực tiếp trong route.
// Middleware sẽ KHÔNG được gọi nếu dùng cách trực tiếp!
//
// ❌ CÁCH SAI (KHÔNG HOẠT ĐỘNG):
//    router.Get("/path", middleware.AuthMiddleware(), handler)
//
// ✅ CÁCH ĐÚNG (PHẢI DÙNG):
//    authMiddleware := middleware.AuthMiddleware()
//    registerRouteWithMiddleware(router, "/prefix", "GET", "/path", []fiber.Handler{authMiddleware}, handler)
//    → Middleware sẽ được gọi đúng cách thông qua .Use() method
//
// Nếu thấy route nào dùng cách trực tiếp router.Get/Post/Put/Delete(path, middleware, handler)
// → PHẢI SỬA NGAY thành registerRouteWithMiddleware!
// ============================================================================

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app     *fiber.App
	catalog *services.Catalog
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App, catalog *services.Catalog) *Router {
	return &Router{
		app:     app,
		catalog: catalog,
	}
}

// registerRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method (cách đúng theo Fiber v3)
//
// ⚠️ QUAN TRỌNG: Đây là CÁCH DUY NHẤT hoạt động đúng trong Fiber v3!
//
// Ví dụ sử dụng:
//
//	authMiddleware := middleware.AuthMiddleware()
//	registerRouteWithMiddleware(router, "/orders", "GET", "/", []fiber.Handler{authMiddleware}, handler)
func registerRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware sẽ chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// SetupRoutes đăng ký toàn bộ route của hệ thống.
// Webhook và health là các route public; mọi route còn lại yêu cầu
// JWT Bearer của staff.
func (r *Router) SetupRoutes() error {
	prefix := NewRoutePrefix()
	v1 := r.app.Group(prefix.V1)

	// Khởi tạo handlers
	systemHandler, err := handler.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}

	shopifyWebhookHandler, err := handler.NewShopifyWebhookHandler(r.catalog)
	if err != nil {
		return fmt.Errorf("failed to create shopify webhook handler: %w", err)
	}

	orderHandler, err := handler.NewOrderHandler(r.catalog)
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}

	fulfillmentHandler, err := handler.NewFulfillmentHandler(r.catalog)
	if err != nil {
		return fmt.Errorf("failed to create fulfillment handler: %w", err)
	}

	pointsHandler, err := handler.NewPointsHandler()
	if err != nil {
		return fmt.Errorf("failed to create points handler: %w", err)
	}

	walletTypeHandler, err := handler.NewWalletTypeHandler()
	if err != nil {
		return fmt.Errorf("failed to create wallet type handler: %w", err)
	}

	webhookLogHandler, err := handler.NewWebhookLogHandler()
	if err != nil {
		return fmt.Errorf("failed to create webhook log handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	// ============================
	// PUBLIC ROUTES (không auth)
	// ============================

	// Health check
	v1.Get("/health", systemHandler.HandleHealth)

	// Webhook từ Shopify (verify bằng HMAC, không dùng JWT)
	v1.Post("/webhooks/shopify", shopifyWebhookHandler.HandleShopifyWebhook)

	// ============================
	// ORDER ROUTES
	// ============================
	registerRouteWithMiddleware(v1, "/orders", "GET", "/", auth, orderHandler.ListOrders)
	registerRouteWithMiddleware(v1, "/orders", "GET", "/:sourceOrderId", auth, orderHandler.GetOrderWithItems)
	registerRouteWithMiddleware(v1, "/orders", "POST", "/:sourceOrderId/claim-all", auth, fulfillmentHandler.ClaimAll)

	// ============================
	// LINE ITEM / FULFILLMENT ROUTES
	// ============================
	registerRouteWithMiddleware(v1, "/line-items", "GET", "/", auth, fulfillmentHandler.ListLineItems)
	registerRouteWithMiddleware(v1, "/line-items", "GET", "/needs-review", auth, fulfillmentHandler.ListNeedsReview)
	registerRouteWithMiddleware(v1, "/line-items", "POST", "/claim", auth, fulfillmentHandler.ClaimMany)
	registerRouteWithMiddleware(v1, "/line-items", "POST", "/:id/claim", auth, fulfillmentHandler.Claim)
	registerRouteWithMiddleware(v1, "/line-items", "POST", "/:id/start", auth, fulfillmentHandler.Start)
	registerRouteWithMiddleware(v1, "/line-items", "POST", "/:id/complete", auth, fulfillmentHandler.Complete)
	registerRouteWithMiddleware(v1, "/line-items", "POST", "/:id/void", auth, fulfillmentHandler.Void)
	registerRouteWithMiddleware(v1, "/line-items", "POST", "/:id/classify", auth, fulfillmentHandler.Classify)

	// ============================
	// POINTS ROUTES
	// ============================
	registerRouteWithMiddleware(v1, "/points", "GET", "/", auth, pointsHandler.ListDailyPoints)
	registerRouteWithMiddleware(v1, "/points", "GET", "/me", auth, pointsHandler.GetMyPointsToday)

	// ============================
	// WALLET TYPE CATALOG ROUTES
	// ============================
	registerRouteWithMiddleware(v1, "/wallet-types", "GET", "/find", auth, walletTypeHandler.Find)
	registerRouteWithMiddleware(v1, "/wallet-types", "GET", "/find-by-id/:id", auth, walletTypeHandler.FindOneById)
	registerRouteWithMiddleware(v1, "/wallet-types", "POST", "/insert-one", auth, walletTypeHandler.InsertOne)
	registerRouteWithMiddleware(v1, "/wallet-types", "PUT", "/update-by-id/:id", auth, walletTypeHandler.UpdateById)
	registerRouteWithMiddleware(v1, "/wallet-types", "DELETE", "/delete-by-id/:id", auth, walletTypeHandler.DeleteById)

	// ============================
	// WEBHOOK LOG ROUTES (đối soát)
	// ============================
	registerRouteWithMiddleware(v1, "/webhook-logs", "GET", "/find", auth, webhookLogHandler.Find)
	registerRouteWithMiddleware(v1, "/webhook-logs", "GET", "/failed", auth, webhookLogHandler.ListFailed)

	return nil
}
