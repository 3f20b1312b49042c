package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyPoints là sổ điểm sản xuất theo ngày của một nhân viên.
// Mỗi cặp (staffId, dateKey) có đúng một bản ghi; cộng điểm đi qua
// $inc upsert nguyên tử nên nhiều completion song song không mất điểm.
type DailyPoints struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bản ghi

	// ===== IDENTITY =====
	StaffID   string `json:"staffId" bson:"staffId" index:"compound:staff_date_unique"` // Staff ID
	StaffName string `json:"staffName,omitempty" bson:"staffName,omitempty"`            // Tên hiển thị (seed lúc insert)
	DateKey   string `json:"dateKey" bson:"dateKey" index:"compound:staff_date_unique;single:-1"` // Ngày dạng "2006-01-02" (giờ địa phương của xưởng)

	// ===== COUNTERS (chỉ tăng qua $inc) =====
	Points          int `json:"points" bson:"points"`                   // Tổng điểm cộng trong ngày
	OrdersCompleted int `json:"ordersCompleted" bson:"ordersCompleted"` // Số line item đã hoàn thành trong ngày (tên giữ theo báo cáo xưởng)

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo bản ghi (Unix ms)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật bản ghi (Unix ms)
}
