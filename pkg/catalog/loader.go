package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var (
	// ErrDataFileMissing 数据文件缺失或不可读
	ErrDataFileMissing = errors.New("catalog data file missing or unreadable")

	// ErrDataFileCorrupt 数据文件内容无法解析
	ErrDataFileCorrupt = errors.New("catalog data file corrupt")

	// ErrDataIncomplete 数据集不完整（必要的枚举表为空）
	ErrDataIncomplete = errors.New("catalog data incomplete")
)

// 目录数据文件清单，全部加载成功目录才可用
const (
	fileBikeTypes  = "bike_types.json"
	fileBrands     = "brands.json"
	fileModels     = "models_by_brand.json"
	fileComponents = "components.json"
	fileColors     = "colors.json"
	fileSizes      = "sizes.json"
	fileCountries  = "countries.json"
	fileCurrencies = "currencies.json"
	fileOptions    = "step_options.json"
)

// Load 从数据目录加载全部参考数据并构建目录
// 启动阶段调用一次；任何一个文件加载失败都返回错误，调用方应视为致命错误终止启动，
// 绝不允许带着加载了一半的数据对外提供服务
func Load(dataDir string, log *zap.Logger) (*Catalog, error) {
	var data Data

	steps := []struct {
		file string
		dest any
	}{
		{fileBikeTypes, &data.BikeTypes},
		{fileBrands, &data.Brands},
		{fileModels, &data.ModelsByBrand},
		{fileComponents, &data.Components},
		{fileColors, &data.Colors},
		{fileSizes, &data.Sizes},
		{fileCountries, &data.Countries},
		{fileCurrencies, &data.Currencies},
		{fileOptions, &data.Options},
	}

	for _, step := range steps {
		if err := loadFile(dataDir, step.file, step.dest); err != nil {
			return nil, err
		}
	}

	if err := checkComplete(data); err != nil {
		return nil, err
	}

	log.Info("catalog loaded",
		zap.Int("bike_types", len(data.BikeTypes)),
		zap.Int("brands", len(data.Brands)),
		zap.Int("components", len(data.Components)),
		zap.Int("countries", len(data.Countries)),
		zap.Int("currencies", len(data.Currencies)),
	)

	return New(data), nil
}

// loadFile 加载单个 JSON 数据文件
func loadFile(dataDir, name string, dest any) error {
	path := filepath.Join(dataDir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDataFileMissing, name, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDataFileCorrupt, name, err)
	}

	return nil
}

// checkComplete 校验数据集完整性
// 校验引擎依赖的枚举表不允许为空，否则约束会引用到不存在的枚举
func checkComplete(data Data) error {
	checks := []struct {
		name  string
		empty bool
	}{
		{"bike_types", len(data.BikeTypes) == 0},
		{"brands", len(data.Brands) == 0},
		{"colors", len(data.Colors) == 0},
		{"sizes", len(data.Sizes) == 0},
		{"countries", len(data.Countries) == 0},
		{"currencies", len(data.Currencies) == 0},
		{"frame_materials", len(data.Options.FrameMaterials) == 0},
		{"conditions", len(data.Options.Conditions) == 0},
		{"brake_types", len(data.Options.BrakeTypes) == 0},
		{"suspension_configurations", len(data.Options.SuspensionConfigurations) == 0},
		{"year_range", data.Options.YearRange[0] == 0 || data.Options.YearRange[1] < data.Options.YearRange[0]},
	}

	for _, check := range checks {
		if check.empty {
			return fmt.Errorf("%w: %s", ErrDataIncomplete, check.name)
		}
	}

	return nil
}
