package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerniceZTT/sales_tracker/config"
	"github.com/BerniceZTT/sales_tracker/controllers"
	"github.com/BerniceZTT/sales_tracker/middleware"
	"github.com/BerniceZTT/sales_tracker/repository"
	"github.com/BerniceZTT/sales_tracker/routes"
	"github.com/BerniceZTT/sales_tracker/service"
	"github.com/BerniceZTT/sales_tracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	utils.InitLogger(cfg.LogLevel, cfg.Debug)

	// 设置Gin模式
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.RegisterValidators()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	store, err := repository.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.CloseMongoDB(context.Background())

	db := store.DB()
	profiles := repository.NewProfileRepository(db)
	sessions := repository.NewSessionRepository(db)
	customers := repository.NewCustomerRepository(db)
	pics := repository.NewCustomerPICRepository(db)
	projects := repository.NewProjectRepository(db)
	updates := repository.NewProjectUpdateRepository(db)
	operationLogs := repository.NewOperationLogRepository(db)

	tokens := utils.NewTokenManager(cfg.JWTKey, cfg.TokenTTL)
	authService := service.NewAuthService(profiles, sessions, tokens, cfg.BcryptCost)
	customerService := service.NewCustomerService(customers, pics, projects)
	projectService := service.NewProjectService(projects, customers, updates)
	updateService := service.NewProjectUpdateService(projects, updates)
	dashboardService := service.NewDashboardService(projectService)

	// 初始化系统数据
	utils.Logger.Info().Msg("开始系统初始化...")
	if err := store.EnsureIndexes(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("初始化数据库索引失败")
	}
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.Logger.Error().Err(err).Msg("初始化管理员账户失败")
	}
	utils.Logger.Info().Msg("系统初始化完成")

	// 每天零点记录一次漏斗快照
	service.ScheduleDailyTaskAt(ctx, 0, 0, 0, dashboardService.LogDailySnapshot)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(registry)

	// 创建Gin实例
	router := gin.New()

	// 应用中间件
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(httpMetrics.Handler())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware(operationLogs))

	// 注册路由
	routes.RegisterRoutes(router, routes.Dependencies{
		Authenticator:  authService,
		Auth:           controllers.NewAuthController(authService),
		Customers:      controllers.NewCustomerController(customerService),
		Projects:       controllers.NewProjectController(projectService, updateService),
		Dashboard:      controllers.NewDashboardController(dashboardService),
		System:         controllers.NewSystemController(store),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})

	// 设置HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		utils.Logger.Info().Msgf("服务器启动，监听端口: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("启动服务器失败")
		}
	}()

	// 优雅关闭
	<-ctx.Done()
	utils.Logger.Info().Msg("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.Error().Err(err).Msg("服务器关闭异常")
	}

	utils.Logger.Info().Msg("服务器已优雅关闭")
}
