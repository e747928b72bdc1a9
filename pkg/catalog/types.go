package catalog

// BikeCategory 自行车子分类（归属于某个车型大类）
type BikeCategory struct {
	// ID 子分类标识
	ID string `json:"id"`
	// Name 展示名称
	Name string `json:"name"`
}

// BikeType 自行车车型大类，是第2步规则集的判别键（discriminant）
type BikeType struct {
	// ID 车型标识，如 "mountain"、"e_bike"
	ID string `json:"id"`
	// Name 展示名称
	Name string `json:"name"`
	// Description 车型描述
	Description string `json:"description"`
	// Categories 子分类列表
	Categories []BikeCategory `json:"categories"`
}

// Brand 自行车品牌
type Brand struct {
	// ID 品牌标识
	ID string `json:"id"`
	// Name 展示名称
	Name string `json:"name"`
	// Country 品牌所属国家（可选）
	Country string `json:"country,omitempty"`
}

// PriceRange 价格区间（MSRP），单位与展示货币无关
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Model 自行车型号，隶属于某个品牌与车型大类
type Model struct {
	// ID 型号标识
	ID string `json:"id"`
	// Name 展示名称
	Name string `json:"name"`
	// YearRange 生产年份区间，[起始年, 结束年]
	YearRange [2]int `json:"year_range"`
	// MSRPRange 官方指导价区间（可选）
	MSRPRange *PriceRange `json:"msrp_range,omitempty"`
}

// ComponentGroup 传动套件（按车型大类过滤）
type ComponentGroup struct {
	// ID 套件标识
	ID string `json:"id"`
	// Name 展示名称
	Name string `json:"name"`
	// Description 套件描述
	Description string `json:"description"`
	// BikeTypes 兼容的车型大类标识列表
	BikeTypes []string `json:"bike_types"`
}

// Color 车身颜色
type Color struct {
	// ID 颜色标识
	ID string `json:"id"`
	// Name 展示名称
	Name string `json:"name"`
	// Hex 十六进制色值，用于界面展示
	Hex string `json:"hex"`
}

// FrameSize 车架尺寸
type FrameSize struct {
	// Size 尺寸编码，如 "54" 或 "l"
	Size string `json:"size"`
	// Type 尺寸体系，"numeric" 或 "letter"
	Type string `json:"type"`
	// BikeTypes 适用的车型大类标识列表
	BikeTypes []string `json:"bike_types"`
}

// Country 支持挂单的国家
type Country struct {
	// Code ISO 国家代码
	Code string `json:"code"`
	// Name 展示名称
	Name string `json:"name"`
	// MajorCities 主要城市列表
	MajorCities []string `json:"major_cities,omitempty"`
	// ShippingDomestic 是否支持国内寄送
	ShippingDomestic bool `json:"shipping_domestic"`
	// ShippingEU 是否支持欧盟范围寄送
	ShippingEU bool `json:"shipping_eu"`
	// ShippingInternational 是否支持国际寄送
	ShippingInternational bool `json:"shipping_international"`
}

// Currency 支持的计价货币
type Currency struct {
	// Code ISO 货币代码
	Code string `json:"code"`
	// Name 展示名称
	Name string `json:"name"`
	// Symbol 货币符号
	Symbol string `json:"symbol"`
	// PaymentMethods 该货币支持的支付方式标识列表
	PaymentMethods []string `json:"payment_methods"`
}

// EnumOption 枚举选项（编码 + 展示信息），用于第2步的静态枚举表
type EnumOption struct {
	// Code 选项编码，校验时比对的值
	Code string `json:"code"`
	// Name 展示名称
	Name string `json:"name"`
	// Description 选项描述（可选）
	Description string `json:"description,omitempty"`
}

// 寄送方式标识，第3步的 shipping_options 取值域
const (
	ShippingOptionPickup        = "local_pickup"
	ShippingOptionDomestic      = "domestic_shipping"
	ShippingOptionEU            = "eu_shipping"
	ShippingOptionInternational = "international_shipping"
)
