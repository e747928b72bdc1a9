package rules

// ConstraintKind 字段约束类型标签
// 用带标签的结构体而不是自由键值表表达约束，新增字段时漏配或错配会在
// 穷举 switch 里暴露出来，而不是被字典查找静默吞掉
type ConstraintKind int

const (
	// ConstraintEnum 取值必须属于目录中的某个枚举
	ConstraintEnum ConstraintKind = iota
	// ConstraintRange 数值必须落在 [Min, Max] 闭区间内
	ConstraintRange
	// ConstraintYearRange 数值必须落在目录声明的生产年份区间内
	ConstraintYearRange
	// ConstraintNonEmpty 文本去除首尾空白后必须非空
	ConstraintNonEmpty
)

// EnumSource 枚举来源，校验时由引擎向目录解析出当前合法取值集合
type EnumSource int

const (
	EnumNone EnumSource = iota
	EnumFrameMaterials
	EnumConditions
	EnumColors
	// EnumFrameSizes 按判别键划分的尺寸表，解析时需要带上判别键
	EnumFrameSizes
	EnumBrakeTypes
	EnumBrakeBrands
	EnumShifterBrands
	EnumMotorBrands
	EnumMotorPositions
	EnumBatteryCapacities
	EnumSuspensionConfigurations
)

// FieldConstraint 与判别键无关的字段级约束
// 同一字段可以挂多条约束；只对提交中出现的字段评估（必填性由 RuleSet 负责）
type FieldConstraint struct {
	// Field 约束的字段
	Field Field
	// Kind 约束类型
	Kind ConstraintKind
	// Source 枚举来源，仅 ConstraintEnum 有效
	Source EnumSource
	// Min Max 数值区间，仅 ConstraintRange 有效，闭区间
	Min, Max float64
	// Code 约束不满足时上报的违规码
	Code string
}

// step2Constraints 第2步的字段约束表
var step2Constraints = []FieldConstraint{
	{Field: FieldYear, Kind: ConstraintYearRange, Code: "INVALID_YEAR"},
	{Field: FieldFrameMaterialCode, Kind: ConstraintEnum, Source: EnumFrameMaterials, Code: "INVALID_FRAME_MATERIAL"},
	{Field: FieldCondition, Kind: ConstraintEnum, Source: EnumConditions, Code: "INVALID_CONDITION"},
	{Field: FieldFrameSize, Kind: ConstraintEnum, Source: EnumFrameSizes, Code: "INVALID_FRAME_SIZE"},
	{Field: FieldColor, Kind: ConstraintEnum, Source: EnumColors, Code: "INVALID_COLOR"},
	{Field: FieldSuspensionConfiguration, Kind: ConstraintEnum, Source: EnumSuspensionConfigurations, Code: "INVALID_SUSPENSION_TYPE"},
	{Field: FieldMotorBrand, Kind: ConstraintEnum, Source: EnumMotorBrands, Code: "INVALID_MOTOR_BRAND"},
	{Field: FieldBatteryCapacityWh, Kind: ConstraintEnum, Source: EnumBatteryCapacities, Code: "INVALID_BATTERY_CAPACITY"},
	{Field: FieldMotorPosition, Kind: ConstraintEnum, Source: EnumMotorPositions, Code: "INVALID_MOTOR_POSITION"},
	{Field: FieldBrakeType, Kind: ConstraintEnum, Source: EnumBrakeTypes, Code: "INVALID_BRAKE_TYPE"},
	{Field: FieldBrakeBrand, Kind: ConstraintEnum, Source: EnumBrakeBrands, Code: "INVALID_BRAKE_BRAND"},
	{Field: FieldShifterBrand, Kind: ConstraintEnum, Source: EnumShifterBrands, Code: "INVALID_SHIFTER_BRAND"},
	{Field: FieldCassetteSpeeds, Kind: ConstraintRange, Min: 1, Max: 12, Code: "INVALID_CASSETTE_SPEEDS"},
}

// step3Constraints 第3步的字段约束表
// 国家成员资格与寄送方式属于目录交叉校验，由步骤例程处理，不在约束表内
var step3Constraints = []FieldConstraint{
	{Field: FieldCity, Kind: ConstraintNonEmpty, Code: "MISSING_CITY"},
	{Field: FieldPostalCode, Kind: ConstraintNonEmpty, Code: "MISSING_POSTAL_CODE"},
}

// ConstraintsFor 返回某步骤的字段约束表，与判别键无关
// 没有约束表的步骤返回 nil
func ConstraintsFor(scene Scene) []FieldConstraint {
	switch scene {
	case SceneStep2:
		return step2Constraints
	case SceneStep3:
		return step3Constraints
	default:
		return nil
	}
}
