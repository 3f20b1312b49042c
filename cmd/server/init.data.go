package main

import (
	"context"
	"time"
	"wallet_works/core/api/services"
	"wallet_works/core/logger"
)

// InitDefaultData seed các wallet type mặc định và nạp catalog phân loại.
// Catalog được nạp một lần lúc khởi động, thay đổi wallet type qua API
// sẽ có hiệu lực ở lần khởi động kế tiếp.
func InitDefaultData() *services.Catalog {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	walletTypeService, err := services.NewWalletTypeService()
	if err != nil {
		log.Fatalf("Failed to initialize wallet type service: %v", err)
	}

	// 1. Seed các wallet type mặc định (chỉ insert nếu chưa có)
	log.Info("🔄 [INIT] Step 1: Seeding default wallet types...")
	if err := walletTypeService.SeedDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed default wallet types: %v", err)
	}
	log.Info("✅ [INIT] Step 1: Default wallet types seeded")

	// 2. Nạp catalog phân loại từ database
	log.Info("🔄 [INIT] Step 2: Loading classification catalog...")
	catalog, err := walletTypeService.LoadCatalog(ctx)
	if err != nil {
		log.Fatalf("Failed to load classification catalog: %v", err)
	}
	log.Infof("✅ [INIT] Step 2: Classification catalog loaded (%d wallet types)", len(catalog.Entries()))

	return catalog
}
