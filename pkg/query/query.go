package query

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/catalog"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/rules"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/validate"
)

// NotFoundError 查询目标不存在
// 携带合法取值集合，调用方拿到错误即可自纠，无需追加查询
type NotFoundError struct {
	// Kind 目标类别，如 "brand"、"country"
	Kind string
	// ID 未命中的标识
	ID string
	// ValidValues 当前合法取值集合
	ValidValues []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("query: %s '%s' 不存在", e.Kind, e.ID)
}

// Pagination 分页元信息
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// 分页默认值与上限
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Service 目录查询服务
// 与校验引擎共享同一份只读目录快照，全部方法并发安全
type Service struct {
	catalog *catalog.Catalog
	pricing PricingParams
	log     *zap.Logger
}

// NewService 创建目录查询服务
func NewService(cat *catalog.Catalog, pricing PricingParams, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{catalog: cat, pricing: pricing.withDefaults(), log: log}
}

// ============================================================================
// 车型 / 品牌 / 型号
// ============================================================================

// ListBikeTypes 返回全部车型大类
func (s *Service) ListBikeTypes() []catalog.BikeType {
	return s.catalog.BikeTypes()
}

// ListBrands 分页返回品牌列表
// 页码与页长越界时收敛到合法区间，而不是报错
func (s *Service) ListBrands(page, perPage int) ([]catalog.Brand, Pagination) {
	brands := s.catalog.Brands()
	return paginate(brands, page, perPage)
}

// SearchBrands 按名称模糊搜索品牌，大小写不敏感
func (s *Service) SearchBrands(keyword string) []catalog.Brand {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}
	var out []catalog.Brand
	for _, brand := range s.catalog.Brands() {
		if strings.Contains(strings.ToLower(brand.Name), keyword) ||
			strings.Contains(strings.ToLower(brand.ID), keyword) {
			out = append(out, brand)
		}
	}
	return out
}

// ListModels 返回某品牌在某车型大类下的型号列表
func (s *Service) ListModels(brandID, bikeTypeID string) ([]catalog.Model, error) {
	if !s.catalog.BrandExists(brandID) {
		return nil, &NotFoundError{Kind: "brand", ID: brandID, ValidValues: s.catalog.BrandIDs()}
	}
	if !s.catalog.BikeTypeExists(bikeTypeID) {
		return nil, &NotFoundError{Kind: "bike_type", ID: bikeTypeID, ValidValues: s.catalog.BikeTypeIDs()}
	}
	return s.catalog.ModelsFor(brandID, bikeTypeID), nil
}

// ModelDetails 返回型号详情
func (s *Service) ModelDetails(brandID, bikeTypeID, modelID string) (*catalog.Model, error) {
	if _, err := s.ListModels(brandID, bikeTypeID); err != nil {
		return nil, err
	}
	model, ok := s.catalog.ModelByID(brandID, bikeTypeID, modelID)
	if !ok {
		return nil, &NotFoundError{
			Kind: "model", ID: modelID,
			ValidValues: s.catalog.ModelIDsFor(brandID, bikeTypeID),
		}
	}
	return model, nil
}

// ============================================================================
// 第2步选项与字段要求
// ============================================================================

// FieldRequirements 某车型大类在第2步的字段分类
type FieldRequirements struct {
	BikeTypeID string   `json:"bike_type_id"`
	Required   []string `json:"required"`
	Optional   []string `json:"optional"`
	Excluded   []string `json:"excluded"`
}

// Step2Options 第2步的全部选项与字段要求，按车型大类定制
type Step2Options struct {
	Requirements FieldRequirements   `json:"requirements"`
	Options      catalog.StepOptions `json:"options"`
	// FrameSizes 该车型大类适用的车架尺寸编码
	FrameSizes []string `json:"frame_sizes"`
	// Colors 全部颜色选项
	Colors []catalog.Color `json:"colors"`
}

// RequirementsFor 返回某车型大类在第2步的字段分类
func (s *Service) RequirementsFor(bikeTypeID string) (FieldRequirements, error) {
	if !s.catalog.BikeTypeExists(bikeTypeID) {
		return FieldRequirements{}, &NotFoundError{
			Kind: "bike_type", ID: bikeTypeID, ValidValues: s.catalog.BikeTypeIDs(),
		}
	}
	rs := rules.RulesFor(bikeTypeID, rules.SceneStep2)
	return FieldRequirements{
		BikeTypeID: bikeTypeID,
		Required:   fieldNames(rs.Required),
		Optional:   fieldNames(rs.Optional),
		Excluded:   fieldNames(rs.Excluded),
	}, nil
}

// OptionsFor 返回某车型大类在第2步可用的全部选项
func (s *Service) OptionsFor(bikeTypeID string) (*Step2Options, error) {
	reqs, err := s.RequirementsFor(bikeTypeID)
	if err != nil {
		return nil, err
	}
	return &Step2Options{
		Requirements: reqs,
		Options:      s.catalog.Options(),
		FrameSizes:   s.catalog.FrameSizesFor(bikeTypeID),
		Colors:       s.catalog.Colors(),
	}, nil
}

// ============================================================================
// 国家 / 城市 / 寄送
// ============================================================================

// ListCountries 返回全部支持的国家
func (s *Service) ListCountries() []catalog.Country {
	return s.catalog.Countries()
}

// CountryDetails 返回国家详情
func (s *Service) CountryDetails(code string) (*catalog.Country, error) {
	country, ok := s.catalog.CountryByCode(code)
	if !ok {
		return nil, &NotFoundError{Kind: "country", ID: code, ValidValues: s.catalog.CountryCodes()}
	}
	return country, nil
}

// CitiesForCountry 返回某国家的主要城市列表
func (s *Service) CitiesForCountry(code string) ([]string, error) {
	country, err := s.CountryDetails(code)
	if err != nil {
		return nil, err
	}
	return country.MajorCities, nil
}

// SearchCities 在某国家的主要城市里按前缀/子串搜索，大小写不敏感
func (s *Service) SearchCities(code, keyword string) ([]string, error) {
	cities, err := s.CitiesForCountry(code)
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return cities, nil
	}
	var out []string
	for _, city := range cities {
		if strings.Contains(strings.ToLower(city), keyword) {
			out = append(out, city)
		}
	}
	return out, nil
}

// ShippingOptions 返回某国家可用的寄送方式标识
func (s *Service) ShippingOptions(code string) ([]string, error) {
	country, err := s.CountryDetails(code)
	if err != nil {
		return nil, err
	}
	return s.catalog.ShippingOptionsFor(country), nil
}

// ============================================================================
// 零部件
// ============================================================================

// ComponentCategories 返回第4步要求的零部件必备类目
func (s *Service) ComponentCategories() []string {
	return fieldNames(rules.RulesFor("", rules.SceneStep4).Required)
}

// ComponentsForBikeType 返回与某车型大类兼容的传动套件
func (s *Service) ComponentsForBikeType(bikeTypeID string) ([]catalog.ComponentGroup, error) {
	if !s.catalog.BikeTypeExists(bikeTypeID) {
		return nil, &NotFoundError{
			Kind: "bike_type", ID: bikeTypeID, ValidValues: s.catalog.BikeTypeIDs(),
		}
	}
	return s.catalog.ComponentsForBikeType(bikeTypeID), nil
}

// ============================================================================
// 货币 / 支付
// ============================================================================

// ListCurrencies 返回全部支持的货币
func (s *Service) ListCurrencies() []catalog.Currency {
	return s.catalog.Currencies()
}

// CurrencyDetails 返回货币详情
func (s *Service) CurrencyDetails(code string) (*catalog.Currency, error) {
	currency, ok := s.catalog.CurrencyByCode(code)
	if !ok {
		return nil, &NotFoundError{Kind: "currency", ID: code, ValidValues: s.catalog.CurrencyCodes()}
	}
	return currency, nil
}

// PaymentMethods 返回某货币支持的支付方式标识
func (s *Service) PaymentMethods(code string) ([]string, error) {
	currency, err := s.CurrencyDetails(code)
	if err != nil {
		return nil, err
	}
	return currency.PaymentMethods, nil
}

// ============================================================================
// 照片指引
// ============================================================================

// PhotoGuidance 第6步的照片要求与建议机位
type PhotoGuidance struct {
	MinPhotos        int      `json:"min_photos"`
	MaxPhotos        int      `json:"max_photos"`
	RecommendedShots []string `json:"recommended_shots"`
}

// PhotoRequirements 返回照片数量边界与建议机位
func (s *Service) PhotoRequirements() PhotoGuidance {
	return PhotoGuidance{
		MinPhotos: validate.MinPhotos,
		MaxPhotos: validate.MaxPhotos,
		RecommendedShots: []string{
			"full_bike_drive_side",
			"full_bike_non_drive_side",
			"drivetrain_closeup",
			"cockpit",
			"frame_damage_if_any",
			"serial_number",
		},
	}
}

// ============================================================================
// 内部工具
// ============================================================================

func fieldNames(fields []rules.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.String())
	}
	return out
}

// paginate 对品牌列表分页，页码从 1 开始
func paginate(brands []catalog.Brand, page, perPage int) ([]catalog.Brand, Pagination) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	total := len(brands)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page <= 0 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	meta := Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
	return brands[start:end], meta
}
