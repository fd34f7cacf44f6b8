package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"expmon/internal/business/alert"
	"expmon/internal/business/inventory"
	"expmon/internal/business/monitor"
	"expmon/internal/business/recipe"
	"expmon/internal/domains"
	"expmon/internal/framework"
	"expmon/internal/repo/rpproduct"
	"expmon/internal/scheduler"
	alerthandler "expmon/internal/server/handlers/alert"
	producthandler "expmon/internal/server/handlers/product"
	recipehandler "expmon/internal/server/handlers/recipe"
	"expmon/internal/server/routers"
	"expmon/pkg/config"
	"expmon/pkg/infra/mysql"
	"expmon/pkg/infra/redis"
	"expmon/pkg/lmstfy"
	"expmon/pkg/logger"
)

// App 应用组件
type App struct {
	Engine  *gin.Engine
	Manager *scheduler.ManagerInstance
}

// InitializeApp 组装所有依赖，返回应用与资源清理函数
func InitializeApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*App, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return fail(err)
	}
	clock := inventory.SystemClock{Location: loc}

	// 1. 库存存储
	repo, db, err := newProductRepository(ctx, cfg, log)
	if err != nil {
		return fail(err)
	}
	if db != nil {
		cleanups = append(cleanups, func() {
			if err := mysql.Close(db); err != nil {
				log.Warnf(ctx, "[App] Close mysql failed: %v", err)
			}
		})
	}

	query := inventory.NewQueryService(repo, clock)
	if cfg.Inventory.SeedDemoData {
		if _, err := inventory.NewSeeder(repo, query, log).Seed(ctx); err != nil {
			return fail(fmt.Errorf("seed demo data failed: %w", err))
		}
	}

	// 2. 菜谱匹配
	matcher := recipe.NewMatcher(recipe.DefaultCatalog(), cfg.Alert.MaxRecipes)

	// 3. 告警通知
	var notifiers []alert.Notifier
	if cfg.Redis.Enabled {
		pubsub, err := redis.NewPubSub(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fail(fmt.Errorf("init redis failed: %w", err))
		}
		cleanups = append(cleanups, func() {
			if err := pubsub.Close(); err != nil {
				log.Warnf(ctx, "[App] Close redis failed: %v", err)
			}
		})
		notifiers = append(notifiers, alert.NewRedisNotifier(pubsub, cfg.Redis.Channel))
		log.Infof(ctx, "[App] Redis notifier enabled, channel=%s", cfg.Redis.Channel)
	}

	// 接口变量保持 nil，避免 typed nil
	var source framework.MessageSource
	if cfg.Lmstfy.Enabled || len(cfg.Workers) > 0 {
		client, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
		if err != nil {
			return fail(fmt.Errorf("init lmstfy failed: %w", err))
		}
		source = client
		if cfg.Lmstfy.Enabled {
			notifiers = append(notifiers, alert.NewQueueNotifier(client, cfg.Lmstfy.NotifyQueue, cfg.Lmstfy.NotifyTTL))
			log.Infof(ctx, "[App] Lmstfy notifier enabled, queue=%s", cfg.Lmstfy.NotifyQueue)
		}
	}

	alertService := alert.NewService(alert.NewHistory(cfg.Alert.HistoryCap), matcher, clock, log, notifiers...)

	// 4. 定时检查
	checker := monitor.NewChecker(query, alertService, log)
	jobs, err := scheduler.BuildJobs(&cfg.Scheduler, loc, checker, log)
	if err != nil {
		return fail(err)
	}
	mgr, err := scheduler.NewManagerInstance(cfg, jobs, source, domains.NewHandlerMap(checker), log)
	if err != nil {
		return fail(err)
	}

	// 5. HTTP 路由
	engine := routers.SetupRoutes(
		producthandler.NewProductHandler(inventory.NewProductService(repo, query)),
		recipehandler.NewRecipeHandler(matcher),
		alerthandler.NewAlertHandler(alertService, checker),
		log,
	)

	return &App{Engine: engine, Manager: mgr}, cleanup, nil
}

// newProductRepository 按配置选择存储实现
func newProductRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (rpproduct.ProductRepository, *gorm.DB, error) {
	if cfg.Inventory.Driver != "mysql" {
		log.Infof(ctx, "[App] Using in-memory inventory")
		return rpproduct.NewMemoryRepository(), nil, nil
	}

	db, err := mysql.NewDB(cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("init database failed: %w", err)
	}
	if err := mysql.Migrate(ctx, db); err != nil {
		_ = mysql.Close(db)
		return nil, nil, fmt.Errorf("migrate database failed: %w", err)
	}
	log.Infof(ctx, "[App] Database connected")
	return rpproduct.NewProductRepository(db), db, nil
}
