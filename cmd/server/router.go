// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/common/config"
	"github.com/santaluna/hotel-backend/internal/common/crypto"
	"github.com/santaluna/hotel-backend/internal/common/jwt"
	"github.com/santaluna/hotel-backend/internal/common/metrics"
	authHandler "github.com/santaluna/hotel-backend/internal/handler/auth"
	bookingHandler "github.com/santaluna/hotel-backend/internal/handler/booking"
	catalogHandler "github.com/santaluna/hotel-backend/internal/handler/catalog"
	frontdeskHandler "github.com/santaluna/hotel-backend/internal/handler/frontdesk"
	"github.com/santaluna/hotel-backend/internal/middleware"
	"github.com/santaluna/hotel-backend/internal/repository"
	"github.com/santaluna/hotel-backend/internal/scheduler"
	authService "github.com/santaluna/hotel-backend/internal/service/auth"
	bookingService "github.com/santaluna/hotel-backend/internal/service/booking"
	catalogService "github.com/santaluna/hotel-backend/internal/service/catalog"
	folioService "github.com/santaluna/hotel-backend/internal/service/folio"
	frontdeskService "github.com/santaluna/hotel-backend/internal/service/frontdesk"
	guestService "github.com/santaluna/hotel-backend/internal/service/guest"
	"github.com/santaluna/hotel-backend/pkg/sms"
)

// setupRouter 设置路由并返回待启动的后台任务调度器
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *scheduler.Scheduler {
	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            cfg.JWT.Secret,
		AccessExpireTime:  cfg.JWT.AccessTokenDuration(),
		RefreshExpireTime: cfg.JWT.RefreshTokenDuration(),
		Issuer:            cfg.JWT.Issuer,
	})

	// 证件号加密器
	cipher, err := crypto.NewAES(cfg.Crypto.AESKey)
	if err != nil {
		logger.Fatal("Failed to init AES cipher", zap.Error(err))
	}

	// 初始化仓储
	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	folioRepo := repository.NewFolioRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	tourRepo := repository.NewTourRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	// 短信客户端,开发环境使用 Mock,生产环境使用阿里云
	var smsSender sms.Sender
	if cfg.SMS.Provider == "aliyun" {
		smsSender, err = sms.NewAliyunSender(&sms.Config{
			AccessKeyID:     cfg.SMS.AccessKeyID,
			AccessKeySecret: cfg.SMS.AccessKeySecret,
			SignName:        cfg.SMS.SignName,
		})
		if err != nil {
			logger.Fatal("Failed to init SMS client", zap.Error(err))
		}
	} else {
		smsSender = sms.NewMockSender()
	}

	// 初始化服务
	codeSvc := bookingService.NewCodeService(bookingRepo)
	pricingSvc := bookingService.NewPricingService(&cfg.Hotel)
	bookingSvc := bookingService.NewBookingService(
		db, bookingRepo, roomRepo, guestRepo, folioRepo, paymentRepo, tourRepo,
		codeSvc, pricingSvc, &cfg.Hotel, smsSender)

	roomSvc := catalogService.NewRoomService(roomRepo, bookingRepo, &cfg.Hotel)
	tourSvc := catalogService.NewTourService(tourRepo, &cfg.Hotel)
	quoteSvc := catalogService.NewQuoteService(roomRepo, tourRepo, pricingSvc)

	folioSvc := folioService.NewFolioService(db, bookingRepo, folioRepo, paymentRepo)
	authSvc := authService.NewAuthService(staffRepo, jwtManager)
	guestSvc := guestService.NewGuestService(guestRepo, cipher)
	dashboardSvc := frontdeskService.NewDashboardService(bookingRepo, roomRepo, paymentRepo)

	// 初始化处理器
	catalogH := catalogHandler.NewCatalogHandler(roomSvc, tourSvc, quoteSvc)
	bookingH := bookingHandler.NewBookingHandler(bookingSvc)
	authH := authHandler.NewAuthHandler(authSvc)
	bookingAdminH := frontdeskHandler.NewBookingAdminHandler(bookingSvc, codeSvc)
	folioH := frontdeskHandler.NewFolioHandler(folioSvc)
	roomAdminH := frontdeskHandler.NewRoomAdminHandler(roomSvc, tourSvc)
	guestH := frontdeskHandler.NewGuestHandler(guestSvc)
	dashboardH := frontdeskHandler.NewDashboardHandler(dashboardSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.AccessLog(logger))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GetMetrics().Middleware())
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Prometheus 指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 对客 API
	v1 := r.Group("/api/v1")
	{
		// 目录与报价
		v1.GET("/rooms", catalogH.ListRooms)
		v1.GET("/rooms/available", catalogH.Availability)
		v1.GET("/rooms/:id", catalogH.GetRoom)
		v1.GET("/tours", catalogH.ListTours)
		v1.GET("/tours/:id", catalogH.GetTour)
		v1.POST("/quotes", catalogH.Quote)

		// 在线预订,按 IP 限频防刷
		booking := v1.Group("/bookings")
		if cfg.RateLimit.Enabled {
			booking.Use(middleware.BookingRateLimit(redisClient,
				cfg.RateLimit.RequestsPerMinute, time.Minute))
		}
		{
			booking.POST("", bookingH.CreateBooking)
			booking.GET("", bookingH.Lookup)
		}
	}

	// 前台管理 API
	admin := r.Group("/api/admin")
	{
		// 登录与刷新（公开）
		admin.POST("/login", authH.Login)
		admin.POST("/refresh", authH.Refresh)

		// 需要员工认证
		staff := admin.Group("")
		staff.Use(middleware.StaffAuth(jwtManager))
		{
			staff.GET("/profile", authH.Profile)
			staff.GET("/dashboard", dashboardH.GetStats)

			// 预订全流程
			staff.GET("/bookings", bookingAdminH.ListBookings)
			staff.POST("/bookings", bookingAdminH.CreateWalkIn)
			staff.GET("/bookings/code/:code", bookingAdminH.GetBookingByCode)
			staff.GET("/bookings/:id", bookingAdminH.GetBooking)
			staff.POST("/bookings/:id/confirm", bookingAdminH.ConfirmBooking)
			staff.POST("/bookings/:id/cancel", bookingAdminH.CancelBooking)
			staff.POST("/bookings/:id/assign-room", bookingAdminH.AssignRoom)
			staff.POST("/bookings/:id/verify", bookingAdminH.VerifyBooking)
			staff.POST("/bookings/:id/check-in", bookingAdminH.CheckIn)
			staff.POST("/bookings/:id/check-out", bookingAdminH.CheckOut)
			staff.POST("/bookings/:id/no-show", bookingAdminH.MarkNoShow)
			staff.GET("/bookings/:id/qrcode", bookingAdminH.BookingQRCode)

			// 账单与收款
			staff.GET("/bookings/:id/folio", folioH.GetFolio)
			staff.POST("/bookings/:id/folio", folioH.AddCharge)
			staff.GET("/bookings/:id/payments", folioH.ListPayments)
			staff.POST("/bookings/:id/payments", folioH.RecordPayment)

			// 房态与住客
			staff.GET("/rooms", roomAdminH.ListRooms)
			staff.PUT("/rooms/:id/status", roomAdminH.UpdateRoomStatus)
			staff.GET("/guests", guestH.ListGuests)
			staff.GET("/guests/:id", guestH.GetGuest)
			staff.PUT("/guests/:id", guestH.UpdateGuest)

			// 仅经理可操作
			manager := staff.Group("")
			manager.Use(middleware.ManagerOnly())
			{
				manager.POST("/staff", authH.CreateStaff)
				manager.POST("/rooms", roomAdminH.CreateRoom)
				manager.PUT("/rooms/:id", roomAdminH.UpdateRoom)
				manager.POST("/tours", roomAdminH.CreateTour)
				manager.PUT("/tours/:id", roomAdminH.UpdateTour)
			}
		}
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})

	// 后台任务
	sched := scheduler.NewScheduler(logger)
	taskHandler := scheduler.NewTaskHandler(db, bookingRepo, roomRepo, bookingSvc, logger)
	scheduler.SetupTasks(sched, taskHandler)

	return sched
}
