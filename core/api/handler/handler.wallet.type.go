package handler

import (
	"fmt"

	"wallet_works/core/api/dto"
	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"
)

// WalletTypeHandler xử lý các route CRUD cho catalog loại ví.
// Thay đổi catalog có hiệu lực với các webhook đến sau lần nạp catalog
// kế tiếp (catalog được nạp lúc khởi động server).
type WalletTypeHandler struct {
	*BaseHandler[models.WalletTypeDef, dto.WalletTypeCreateInput, dto.WalletTypeUpdateInput]
	walletTypeService *services.WalletTypeService
}

// NewWalletTypeHandler tạo mới WalletTypeHandler
func NewWalletTypeHandler() (*WalletTypeHandler, error) {
	walletTypeService, err := services.NewWalletTypeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet type service: %w", err)
	}

	return &WalletTypeHandler{
		BaseHandler:       NewBaseHandler[models.WalletTypeDef, dto.WalletTypeCreateInput, dto.WalletTypeUpdateInput](walletTypeService.BaseServiceMongoImpl),
		walletTypeService: walletTypeService,
	}, nil
}
