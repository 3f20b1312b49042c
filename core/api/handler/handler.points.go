package handler

import (
	"errors"
	"fmt"

	"wallet_works/core/api/dto"
	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"
	"wallet_works/core/common"

	"github.com/gofiber/fiber/v3"
)

// PointsHandler xử lý báo cáo sổ điểm theo ngày của staff
type PointsHandler struct {
	*BaseHandler[models.DailyPoints, dto.DailyPointsQueryInput, dto.DailyPointsQueryInput]
	dailyPointsService *services.DailyPointsService
}

// NewPointsHandler tạo mới PointsHandler
func NewPointsHandler() (*PointsHandler, error) {
	dailyPointsService, err := services.NewDailyPointsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create daily points service: %v", err)
	}

	return &PointsHandler{
		BaseHandler:        NewBaseHandler[models.DailyPoints, dto.DailyPointsQueryInput, dto.DailyPointsQueryInput](dailyPointsService),
		dailyPointsService: dailyPointsService,
	}, nil
}

// ListDailyPoints liệt kê sổ điểm theo staff và khoảng ngày: GET /points
func (h *PointsHandler) ListDailyPoints(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.DailyPointsQueryInput
		if err := h.ParseRequestQuery(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := ParsePagination(c)
		data, err := h.dailyPointsService.ListRange(c.Context(), input.StaffID, input.From, input.To, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetMyPointsToday trả về điểm hôm nay của staff đang đăng nhập: GET /points/me
// Chưa có completion nào trong ngày trả về row điểm 0 thay vì 404.
func (h *PointsHandler) GetMyPointsToday(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		staffID, staffName, err := staffFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		row, err := h.dailyPointsService.GetToday(c.Context(), staffID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				h.HandleResponse(c, models.DailyPoints{
					StaffID:   staffID,
					StaffName: staffName,
					DateKey:   services.TodayKey(),
					Points:    0,
				}, nil)
				return nil
			}
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, row, nil)
		return nil
	})
}
