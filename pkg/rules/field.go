package rules

// Field 提交数据中的字段名
// 用具名常量而不是裸字符串声明规则，避免规则表里的键名拼错后被静默忽略
type Field string

// 第1步字段
const (
	FieldBikeTypeID Field = "bike_type_id"
	FieldBrandID    Field = "brand_id"
	FieldModelID    Field = "model_id"
)

// 第2步字段
const (
	FieldYear                    Field = "year"
	FieldFrameMaterialCode       Field = "frame_material_code"
	FieldFrameSize               Field = "frame_size"
	FieldColor                   Field = "color"
	FieldCondition               Field = "condition"
	FieldMotorBrand              Field = "motor_brand"
	FieldBatteryCapacityWh       Field = "battery_capacity_wh"
	FieldMotorPosition           Field = "motor_position"
	FieldSuspensionConfiguration Field = "suspension_configuration"
	FieldFrontSuspensionTravelMm Field = "front_suspension_travel_mm"
	FieldRearSuspensionTravelMm  Field = "rear_suspension_travel_mm"
	FieldShifterBrand            Field = "shifter_brand"
	FieldCassetteSpeeds          Field = "cassette_speeds"
	FieldBrakeType               Field = "brake_type"
	FieldBrakeBrand              Field = "brake_brand"
)

// 第3步字段
const (
	FieldCountryCode     Field = "country_code"
	FieldCity            Field = "city"
	FieldPostalCode      Field = "postal_code"
	FieldShippingOptions Field = "shipping_options"
)

// 第4步字段（必备零部件类目）
const (
	FieldWheels     Field = "wheels"
	FieldTires      Field = "tires"
	FieldSaddle     Field = "saddle"
	FieldHandlebars Field = "handlebars"
	FieldPedals     Field = "pedals"
)

// 第5步字段
const (
	FieldCurrencyCode   Field = "currency_code"
	FieldAskingPrice    Field = "asking_price"
	FieldPaymentMethods Field = "payment_methods"
)

// 第6步字段
const (
	FieldPhotos Field = "photos"
)

// String 返回字段名字符串
func (f Field) String() string { return string(f) }
