package listing

// Photo 挂单照片
// validate 标签表达载荷形状约束，由校验引擎在解码后统一执行；
// 字段语义（数量边界、唯一主图、顺序唯一）由第6步例程负责
type Photo struct {
	// URL 照片地址
	URL string `json:"url" validate:"required,url"`
	// Description 照片说明
	Description string `json:"description,omitempty"`
	// Order 展示顺序，同一挂单内不可重复（不要求连续或从 1 开始）
	Order int `json:"order"`
	// IsMain 是否主图，同一挂单内必须恰好一张
	IsMain bool `json:"is_main"`
}

// Step1Selection 第1步提交：车型/品牌/型号选择
// 不挂形状标签：空标识走违规通道（携带合法取值集合），比传输层拒绝更可自纠
type Step1Selection struct {
	BikeTypeID string `json:"bike_type_id"`
	BrandID    string `json:"brand_id"`
	ModelID    string `json:"model_id"`
}

// BikeDetails 第2步提交：技术参数
// 字段按判别键（车型大类）分类为必填/可选/禁止，语义校验全部交给校验引擎；
// details 缺失等价于全部必填字段缺失，同样走违规通道
type BikeDetails struct {
	BikeTypeID string         `json:"bike_type_id"`
	Details    map[string]any `json:"details"`
}

// Location 第3步提交：地理位置与寄送
type Location struct {
	CountryCode     string   `json:"country_code"`
	City            string   `json:"city"`
	PostalCode      string   `json:"postal_code"`
	ShippingOptions []string `json:"shipping_options"`
}

// Components 第4步提交：零部件明细
type Components struct {
	BikeTypeID string         `json:"bike_type_id"`
	Components map[string]any `json:"components"`
}

// Pricing 第5步提交：定价与支付
type Pricing struct {
	CurrencyCode   string   `json:"currency_code"`
	AskingPrice    float64  `json:"asking_price"`
	PaymentMethods []string `json:"payment_methods"`
	// OriginalPrice 原价，仅用于展示折价参考
	OriginalPrice *float64 `json:"original_price,omitempty"`
	// Negotiable 是否可议价
	Negotiable bool `json:"negotiable"`
}

// Photos 第6步提交：照片集合
type Photos struct {
	Photos []Photo `json:"photos" validate:"dive"`
}
