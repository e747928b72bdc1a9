package rules

// ConditionalRule 条件必填规则
// 当 DependsOn 字段的值命中 WhenValues 之一时，Field 升级为必填，
// 缺失时上报 MissingCode 指定的违规码（按步骤定制，而不是通用的缺字段码）
type ConditionalRule struct {
	// Field 被条件约束的字段
	Field Field
	// DependsOn 条件字段
	DependsOn Field
	// WhenValues 触发条件的取值集合
	WhenValues []string
	// MissingCode 缺失时上报的违规码
	MissingCode string
}

// RuleSet 某个判别键在某一步骤下的字段分类
// 不变式：Required、Optional、Excluded 两两不相交
type RuleSet struct {
	// Required 必填字段，按声明顺序评估
	Required []Field
	// Optional 可选字段
	Optional []Field
	// Excluded 禁止出现的字段，提交中出现非空值即违规
	Excluded []Field
	// Conditional 条件必填规则
	Conditional []ConditionalRule
}

// Empty 判断规则集是否为空（未知判别键的放行语义）
func (rs RuleSet) Empty() bool {
	return len(rs.Required) == 0 && len(rs.Optional) == 0 &&
		len(rs.Excluded) == 0 && len(rs.Conditional) == 0
}

// IsRequired 判断字段是否必填
func (rs RuleSet) IsRequired(f Field) bool { return containsField(rs.Required, f) }

// IsExcluded 判断字段是否被禁止
func (rs RuleSet) IsExcluded(f Field) bool { return containsField(rs.Excluded, f) }

func containsField(fields []Field, f Field) bool {
	for _, field := range fields {
		if field == f {
			return true
		}
	}
	return false
}

// 避震行程的条件必填规则：hardtail/full 需要前叉行程，full 额外需要后胆行程
var suspensionTravelRules = []ConditionalRule{
	{
		Field:       FieldFrontSuspensionTravelMm,
		DependsOn:   FieldSuspensionConfiguration,
		WhenValues:  []string{"hardtail", "full"},
		MissingCode: "MISSING_FRONT_TRAVEL",
	},
	{
		Field:       FieldRearSuspensionTravelMm,
		DependsOn:   FieldSuspensionConfiguration,
		WhenValues:  []string{"full"},
		MissingCode: "MISSING_REAR_TRAVEL",
	},
}

// 电机相关字段，电助力车必填，其余车型禁止
var motorFields = []Field{FieldMotorBrand, FieldBatteryCapacityWh, FieldMotorPosition}

// step2BaseRequired 第2步所有车型共同的必填字段
var step2BaseRequired = []Field{
	FieldYear,
	FieldFrameMaterialCode,
	FieldFrameSize,
	FieldColor,
	FieldCondition,
	FieldBrakeType,
}

// step2DrivetrainOptional 第2步所有车型共同的可选字段
var step2DrivetrainOptional = []Field{
	FieldBrakeBrand,
	FieldShifterBrand,
	FieldCassetteSpeeds,
}

// step2Rules 第2步按判别键（车型大类）划分的规则集
var step2Rules = map[string]RuleSet{
	"mountain": {
		Required: append(append([]Field{}, step2BaseRequired...), FieldSuspensionConfiguration),
		Optional: append(append([]Field{}, step2DrivetrainOptional...),
			FieldFrontSuspensionTravelMm, FieldRearSuspensionTravelMm),
		Excluded:    motorFields,
		Conditional: suspensionTravelRules,
	},
	"road": {
		Required: step2BaseRequired,
		Optional: append(append([]Field{}, step2DrivetrainOptional...),
			FieldSuspensionConfiguration, FieldFrontSuspensionTravelMm, FieldRearSuspensionTravelMm),
		Excluded:    motorFields,
		Conditional: suspensionTravelRules,
	},
	"gravel": {
		Required: step2BaseRequired,
		Optional: append(append([]Field{}, step2DrivetrainOptional...),
			FieldSuspensionConfiguration, FieldFrontSuspensionTravelMm, FieldRearSuspensionTravelMm),
		Excluded:    motorFields,
		Conditional: suspensionTravelRules,
	},
	"city": {
		Required: step2BaseRequired,
		Optional: append(append([]Field{}, step2DrivetrainOptional...),
			FieldSuspensionConfiguration, FieldFrontSuspensionTravelMm, FieldRearSuspensionTravelMm),
		Excluded:    motorFields,
		Conditional: suspensionTravelRules,
	},
	"e_bike": {
		Required: append(append([]Field{}, step2BaseRequired...), motorFields...),
		Optional: append(append([]Field{}, step2DrivetrainOptional...),
			FieldSuspensionConfiguration, FieldFrontSuspensionTravelMm, FieldRearSuspensionTravelMm),
		Conditional: suspensionTravelRules,
	},
}

// sceneRules 与判别键无关的各步骤规则集
// 只声明真正由规则集驱动的步骤：第2步按判别键划分（见 step2Rules），
// 第4步是必备类目的存在性检查；其余步骤的语义是目录交叉校验与
// 数值/集合边界，由各步骤例程直接表达，不在规则表里重复声明
var sceneRules = map[Scene]RuleSet{
	SceneStep4: {
		Required: []Field{FieldWheels, FieldTires, FieldSaddle, FieldHandlebars, FieldPedals},
	},
}

// RulesFor 返回某判别键在某步骤下适用的规则集
// 永不失败：未注册的判别键在第2步返回空规则集（对未知判别键放行，
// 字段值本身的合法性仍由字段约束兜底）；未声明规则集的步骤返回空规则集
func RulesFor(discriminant string, scene Scene) RuleSet {
	if scene == SceneStep2 {
		return step2Rules[discriminant]
	}
	return sceneRules[scene]
}

// Discriminants 返回已注册规则集的判别键列表
func Discriminants() []string {
	keys := make([]string, 0, len(step2Rules))
	for key := range step2Rules {
		keys = append(keys, key)
	}
	return keys
}
