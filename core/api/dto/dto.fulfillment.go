package dto

// ClaimManyInput là input để nhận nhiều line item cùng lúc
type ClaimManyInput struct {
	LineItemIDs []string `json:"lineItemIds" validate:"required,min=1,dive,required"` // Danh sách ID line item cần nhận
}

// ClassifyInput là input cho thao tác phân loại lại thủ công
// (operator xử lý các item NeedsReview).
type ClassifyInput struct {
	WalletType string `json:"walletType" validate:"required"` // TypeID trong catalog, hoặc "accessory"
	Points     *int   `json:"points,omitempty" validate:"omitempty,min=0"` // Ghi đè điểm; nil = lấy theo catalog
}

// LineItemQueryInput là query filter cho work queue
type LineItemQueryInput struct {
	Status    string `query:"status" validate:"omitempty,fulfillment_status"` // Lọc theo trạng thái
	ClaimedBy string `query:"claimedBy"`                                      // Lọc theo staff đã nhận
	OrderID   string `query:"orderId"`                                        // Lọc theo đơn hàng
	Page      int64  `query:"page" validate:"omitempty,min=1"`
	Limit     int64  `query:"limit" validate:"omitempty,min=1,max=200"`
}

// OrderQueryInput là query filter cho danh sách đơn hàng
type OrderQueryInput struct {
	SourceOrderID string `query:"sourceOrderId"` // Tìm đúng một đơn theo ID nguồn
	Page          int64  `query:"page" validate:"omitempty,min=1"`
	Limit         int64  `query:"limit" validate:"omitempty,min=1,max=200"`
}

// DailyPointsQueryInput là query filter cho báo cáo điểm theo ngày
type DailyPointsQueryInput struct {
	StaffID string `query:"staffId"`                           // Rỗng = tất cả nhân viên
	From    string `query:"from" validate:"omitempty,datetime=2006-01-02"` // Ngày bắt đầu (inclusive)
	To      string `query:"to" validate:"omitempty,datetime=2006-01-02"`   // Ngày kết thúc (inclusive)
}
