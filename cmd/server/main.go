package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/catalog"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/config"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/logger"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/query"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/server"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/validate"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，留空使用默认值与环境变量")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// 日志器依赖配置，此处只能裸退出
		panic(err)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	// 目录数据加载失败拒绝启动：带着残缺目录运行会放过非法提交
	cat, err := catalog.Load(cfg.Data.Dir, log)
	if err != nil {
		log.Fatal("目录数据加载失败", zap.String("dir", cfg.Data.Dir), zap.Error(err))
	}

	engine, err := validate.NewEngine(cat, validate.Options{
		MaxAskingPrice: cfg.Pricing.MaxAskingPrice,
	}, log)
	if err != nil {
		log.Fatal("校验引擎初始化失败", zap.Error(err))
	}

	queries := query.NewService(cat, query.PricingParams{
		AnnualDepreciationRate: cfg.Pricing.AnnualDepreciationRate,
		MaxDepreciationYears:   cfg.Pricing.MaxDepreciationYears,
		ConditionFactors:       cfg.Pricing.ConditionFactors,
		PlatformFeeRate:        cfg.Pricing.PlatformFeeRate,
		PaymentFeeRate:         cfg.Pricing.PaymentFeeRate,
		PaymentFeeFixed:        cfg.Pricing.PaymentFeeFixed,
	}, log)

	srv := server.New(engine, queries, cfg.Server.Mode, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(cfg.Server.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		if err != nil {
			log.Fatal("HTTP 服务异常退出", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("收到退出信号，开始优雅停机", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err = srv.Shutdown(ctx); err != nil {
			log.Error("优雅停机失败", zap.Error(err))
		}
	}
}
