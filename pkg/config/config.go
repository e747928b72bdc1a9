package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	// Addr 监听地址
	Addr string `mapstructure:"addr"`
	// Mode gin 运行模式：debug / release / test
	Mode string `mapstructure:"mode"`
}

// DataConfig 目录数据配置
type DataConfig struct {
	// Dir 目录数据文件所在目录
	Dir string `mapstructure:"dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别：debug / info / warn / error
	Level string `mapstructure:"level"`
	// File 日志文件路径，空值只输出到控制台
	File string `mapstructure:"file"`
	// MaxSizeMB 单个日志文件大小上限，超过后轮转
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups 保留的轮转文件个数
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAgeDays 轮转文件保留天数
	MaxAgeDays int `mapstructure:"max_age_days"`
	// Compress 是否压缩轮转文件
	Compress bool `mapstructure:"compress"`
	// Console 是否同时输出到控制台
	Console bool `mapstructure:"console"`
}

// PricingConfig 定价模型配置
// 折价与手续费参数随配置下发，调价不需要发版
type PricingConfig struct {
	// MaxAskingPrice 标价上限
	MaxAskingPrice float64 `mapstructure:"max_asking_price"`
	// AnnualDepreciationRate 每年折价比例
	AnnualDepreciationRate float64 `mapstructure:"annual_depreciation_rate"`
	// MaxDepreciationYears 折价封顶年数
	MaxDepreciationYears int `mapstructure:"max_depreciation_years"`
	// ConditionFactors 成色折价系数
	ConditionFactors map[string]float64 `mapstructure:"condition_factors"`
	// PlatformFeeRate 平台服务费比例
	PlatformFeeRate float64 `mapstructure:"platform_fee_rate"`
	// PaymentFeeRate 支付通道费比例
	PaymentFeeRate float64 `mapstructure:"payment_fee_rate"`
	// PaymentFeeFixed 支付通道固定费
	PaymentFeeFixed float64 `mapstructure:"payment_fee_fixed"`
}

// Config 进程级配置
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Data    DataConfig    `mapstructure:"data"`
	Log     LogConfig     `mapstructure:"log"`
	Pricing PricingConfig `mapstructure:"pricing"`
}

// Load 加载配置
// 优先级：环境变量（BUYCYCLE_ 前缀） > 配置文件 > 内置默认值；
// path 为空时只用默认值与环境变量，配置文件缺失不报错
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BUYCYCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: 读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: 解析配置失败: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("data.dir", "data")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.console", true)

	v.SetDefault("pricing.max_asking_price", 50_000)
	v.SetDefault("pricing.annual_depreciation_rate", 0.15)
	v.SetDefault("pricing.max_depreciation_years", 5)
	v.SetDefault("pricing.condition_factors", map[string]float64{
		"like_new":  0.85,
		"very_good": 0.75,
		"good":      0.60,
		"fair":      0.45,
	})
	v.SetDefault("pricing.platform_fee_rate", 0.04)
	v.SetDefault("pricing.payment_fee_rate", 0.029)
	v.SetDefault("pricing.payment_fee_fixed", 0.30)
}
