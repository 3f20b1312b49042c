package global

import (
	"wallet_works/config"
	"wallet_works/core/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Orders      string // Tên collection cho đơn hàng từ Shopify
	LineItems   string // Tên collection cho line items (đơn vị giao việc)
	DailyPoints string // Tên collection cho điểm sản xuất theo ngày
	WalletTypes string // Tên collection cho danh mục loại ví
	WebhookLogs string // Tên collection cho log webhook thô
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{
	Orders:      "orders",
	LineItems:   "line_items",
	DailyPoints: "daily_points",
	WalletTypes: "wallet_types",
	WebhookLogs: "webhook_logs",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
