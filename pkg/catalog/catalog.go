package catalog

import "strings"

// StepOptions 第2步技术参数的静态枚举表
// 与判别键无关的取值域在这里集中定义，车架尺寸是唯一按车型大类划分的枚举
type StepOptions struct {
	// FrameMaterials 车架材质选项
	FrameMaterials []EnumOption `json:"frame_materials"`
	// Conditions 成色选项
	Conditions []EnumOption `json:"conditions"`
	// BrakeTypes 刹车类型选项
	BrakeTypes []EnumOption `json:"brake_types"`
	// BrakeBrands 刹车品牌选项
	BrakeBrands []EnumOption `json:"brake_brands"`
	// ShifterBrands 变速品牌选项
	ShifterBrands []EnumOption `json:"shifter_brands"`
	// MotorBrands 电机品牌选项（电助力车）
	MotorBrands []EnumOption `json:"motor_brands"`
	// MotorPositions 电机安装位置选项
	MotorPositions []EnumOption `json:"motor_positions"`
	// BatteryCapacitiesWh 电池容量取值域，单位 Wh
	BatteryCapacitiesWh []int `json:"battery_capacities_wh"`
	// SuspensionConfigurations 避震结构选项（rigid/hardtail/full）
	SuspensionConfigurations []EnumOption `json:"suspension_configurations"`
	// YearRange 支持的生产年份区间，[最早年, 最晚年]，闭区间
	YearRange [2]int `json:"year_range"`
}

// Data 目录的原始数据集合，由加载器填充后传入 New 构建索引
type Data struct {
	BikeTypes     []BikeType
	Brands        []Brand
	ModelsByBrand map[string]map[string][]Model
	Components    []ComponentGroup
	Colors        []Color
	Sizes         []FrameSize
	Countries     []Country
	Currencies    []Currency
	Options       StepOptions
}

// Catalog 只读参考数据目录
// 进程启动时构建一次，之后不可变，所有访问器都是纯读操作，
// 可在任意多个 goroutine 中并发调用而无需加锁
type Catalog struct {
	data Data

	// 按标识建立的索引，构建后只读
	typesByID        map[string]*BikeType
	brandsByID       map[string]*Brand
	componentsByID   map[string]*ComponentGroup
	countriesByCode  map[string]*Country
	currenciesByCode map[string]*Currency
	sizesByBikeType  map[string][]string
}

// New 由原始数据构建目录并建立索引
func New(data Data) *Catalog {
	c := &Catalog{
		data:             data,
		typesByID:        make(map[string]*BikeType, len(data.BikeTypes)),
		brandsByID:       make(map[string]*Brand, len(data.Brands)),
		componentsByID:   make(map[string]*ComponentGroup, len(data.Components)),
		countriesByCode:  make(map[string]*Country, len(data.Countries)),
		currenciesByCode: make(map[string]*Currency, len(data.Currencies)),
		sizesByBikeType:  make(map[string][]string),
	}

	for i := range data.BikeTypes {
		c.typesByID[data.BikeTypes[i].ID] = &data.BikeTypes[i]
	}
	for i := range data.Brands {
		c.brandsByID[data.Brands[i].ID] = &data.Brands[i]
	}
	for i := range data.Components {
		c.componentsByID[data.Components[i].ID] = &data.Components[i]
	}
	for i := range data.Countries {
		c.countriesByCode[data.Countries[i].Code] = &data.Countries[i]
	}
	for i := range data.Currencies {
		c.currenciesByCode[data.Currencies[i].Code] = &data.Currencies[i]
	}
	for _, size := range data.Sizes {
		for _, bt := range size.BikeTypes {
			c.sizesByBikeType[bt] = append(c.sizesByBikeType[bt], size.Size)
		}
	}

	return c
}

// ============================================================================
// 车型 / 品牌 / 型号
// ============================================================================

// BikeTypes 返回全部车型大类
func (c *Catalog) BikeTypes() []BikeType { return c.data.BikeTypes }

// BikeTypeByID 按标识查找车型大类
func (c *Catalog) BikeTypeByID(id string) (*BikeType, bool) {
	bt, ok := c.typesByID[id]
	return bt, ok
}

// BikeTypeExists 判断车型大类是否存在
func (c *Catalog) BikeTypeExists(id string) bool {
	_, ok := c.typesByID[id]
	return ok
}

// BikeTypeIDs 返回全部车型大类标识
func (c *Catalog) BikeTypeIDs() []string {
	ids := make([]string, 0, len(c.data.BikeTypes))
	for _, bt := range c.data.BikeTypes {
		ids = append(ids, bt.ID)
	}
	return ids
}

// Brands 返回全部品牌
func (c *Catalog) Brands() []Brand { return c.data.Brands }

// BrandByID 按标识查找品牌
func (c *Catalog) BrandByID(id string) (*Brand, bool) {
	b, ok := c.brandsByID[id]
	return b, ok
}

// BrandExists 判断品牌是否存在
func (c *Catalog) BrandExists(id string) bool {
	_, ok := c.brandsByID[id]
	return ok
}

// BrandIDs 返回全部品牌标识
func (c *Catalog) BrandIDs() []string {
	ids := make([]string, 0, len(c.data.Brands))
	for _, b := range c.data.Brands {
		ids = append(ids, b.ID)
	}
	return ids
}

// ModelsFor 返回某品牌在某车型大类下的全部型号
// 品牌或车型不存在时返回空切片，不报错
func (c *Catalog) ModelsFor(brandID, bikeTypeID string) []Model {
	byType, ok := c.data.ModelsByBrand[brandID]
	if !ok {
		return nil
	}
	return byType[bikeTypeID]
}

// ModelByID 在品牌与车型大类范围内按标识查找型号
func (c *Catalog) ModelByID(brandID, bikeTypeID, modelID string) (*Model, bool) {
	models := c.ModelsFor(brandID, bikeTypeID)
	for i := range models {
		if models[i].ID == modelID {
			return &models[i], true
		}
	}
	return nil, false
}

// ModelExists 判断型号在品牌+车型大类范围内是否存在
func (c *Catalog) ModelExists(brandID, bikeTypeID, modelID string) bool {
	_, ok := c.ModelByID(brandID, bikeTypeID, modelID)
	return ok
}

// ModelIDsFor 返回某品牌在某车型大类下的全部型号标识
func (c *Catalog) ModelIDsFor(brandID, bikeTypeID string) []string {
	models := c.ModelsFor(brandID, bikeTypeID)
	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	return ids
}

// ============================================================================
// 套件 / 颜色 / 尺寸
// ============================================================================

// Components 返回全部传动套件
func (c *Catalog) Components() []ComponentGroup { return c.data.Components }

// ComponentByID 按标识查找传动套件
func (c *Catalog) ComponentByID(id string) (*ComponentGroup, bool) {
	comp, ok := c.componentsByID[id]
	return comp, ok
}

// ComponentsForBikeType 返回与某车型大类兼容的传动套件
func (c *Catalog) ComponentsForBikeType(bikeTypeID string) []ComponentGroup {
	var out []ComponentGroup
	for _, comp := range c.data.Components {
		for _, bt := range comp.BikeTypes {
			if bt == bikeTypeID {
				out = append(out, comp)
				break
			}
		}
	}
	return out
}

// Colors 返回全部颜色
func (c *Catalog) Colors() []Color { return c.data.Colors }

// ColorCodes 返回全部颜色标识
func (c *Catalog) ColorCodes() []string {
	codes := make([]string, 0, len(c.data.Colors))
	for _, color := range c.data.Colors {
		codes = append(codes, color.ID)
	}
	return codes
}

// FrameSizes 返回全部车架尺寸
func (c *Catalog) FrameSizes() []FrameSize { return c.data.Sizes }

// FrameSizesFor 返回某车型大类适用的车架尺寸编码
// 尺寸按判别键划分；未知车型回退到 road 尺寸表
func (c *Catalog) FrameSizesFor(bikeTypeID string) []string {
	if sizes, ok := c.sizesByBikeType[bikeTypeID]; ok && len(sizes) > 0 {
		return sizes
	}
	return c.sizesByBikeType["road"]
}

// ============================================================================
// 国家 / 货币
// ============================================================================

// Countries 返回全部支持的国家
func (c *Catalog) Countries() []Country { return c.data.Countries }

// CountryByCode 按 ISO 代码查找国家，大小写不敏感
func (c *Catalog) CountryByCode(code string) (*Country, bool) {
	country, ok := c.countriesByCode[strings.ToUpper(code)]
	return country, ok
}

// CountryCodes 返回全部国家代码
func (c *Catalog) CountryCodes() []string {
	codes := make([]string, 0, len(c.data.Countries))
	for _, country := range c.data.Countries {
		codes = append(codes, country.Code)
	}
	return codes
}

// ShippingOptionsFor 返回某国家支持的寄送方式标识
// 自提总是可用；其余按国家的寄送能力展开
func (c *Catalog) ShippingOptionsFor(country *Country) []string {
	options := []string{ShippingOptionPickup}
	if country.ShippingDomestic {
		options = append(options, ShippingOptionDomestic)
	}
	if country.ShippingEU {
		options = append(options, ShippingOptionEU)
	}
	if country.ShippingInternational {
		options = append(options, ShippingOptionInternational)
	}
	return options
}

// Currencies 返回全部支持的货币
func (c *Catalog) Currencies() []Currency { return c.data.Currencies }

// CurrencyByCode 按 ISO 代码查找货币，大小写不敏感
func (c *Catalog) CurrencyByCode(code string) (*Currency, bool) {
	currency, ok := c.currenciesByCode[strings.ToUpper(code)]
	return currency, ok
}

// CurrencyCodes 返回全部货币代码
func (c *Catalog) CurrencyCodes() []string {
	codes := make([]string, 0, len(c.data.Currencies))
	for _, currency := range c.data.Currencies {
		codes = append(codes, currency.Code)
	}
	return codes
}

// ============================================================================
// 第2步静态枚举
// ============================================================================

// Options 返回第2步的静态枚举表
func (c *Catalog) Options() StepOptions { return c.data.Options }

// FrameMaterialCodes 返回车架材质编码
func (c *Catalog) FrameMaterialCodes() []string {
	return enumCodes(c.data.Options.FrameMaterials)
}

// ConditionCodes 返回成色编码
func (c *Catalog) ConditionCodes() []string {
	return enumCodes(c.data.Options.Conditions)
}

// BrakeTypeCodes 返回刹车类型编码
func (c *Catalog) BrakeTypeCodes() []string {
	return enumCodes(c.data.Options.BrakeTypes)
}

// BrakeBrandCodes 返回刹车品牌编码
func (c *Catalog) BrakeBrandCodes() []string {
	return enumCodes(c.data.Options.BrakeBrands)
}

// ShifterBrandCodes 返回变速品牌编码
func (c *Catalog) ShifterBrandCodes() []string {
	return enumCodes(c.data.Options.ShifterBrands)
}

// MotorBrandCodes 返回电机品牌编码
func (c *Catalog) MotorBrandCodes() []string {
	return enumCodes(c.data.Options.MotorBrands)
}

// MotorPositionCodes 返回电机位置编码
func (c *Catalog) MotorPositionCodes() []string {
	return enumCodes(c.data.Options.MotorPositions)
}

// BatteryCapacities 返回电池容量取值域（Wh）
func (c *Catalog) BatteryCapacities() []int {
	return c.data.Options.BatteryCapacitiesWh
}

// SuspensionConfigurationCodes 返回避震结构编码
func (c *Catalog) SuspensionConfigurationCodes() []string {
	return enumCodes(c.data.Options.SuspensionConfigurations)
}

// YearRange 返回支持的生产年份闭区间
func (c *Catalog) YearRange() (min, max int) {
	return c.data.Options.YearRange[0], c.data.Options.YearRange[1]
}

func enumCodes(options []EnumOption) []string {
	codes := make([]string, 0, len(options))
	for _, opt := range options {
		codes = append(codes, opt.Code)
	}
	return codes
}
