package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/catalog"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/rules"
)

// 致命错误：引擎自身或目录配置的问题，与提交数据无关，
// 通过 error 通道返回，绝不伪装成数据违规
var (
	// ErrNilCatalog 目录未注入
	ErrNilCatalog = errors.New("validate: 目录不可为空")
	// ErrUnknownStep 步骤序号越界
	ErrUnknownStep = errors.New("validate: 未知校验步骤")
	// ErrEnumUnavailable 约束引用的枚举在目录中为空或缺失
	ErrEnumUnavailable = errors.New("validate: 枚举来源在目录中不可用")
	// ErrMalformedPayload 提交数据不符合载荷形状（结构标签校验不通过）
	ErrMalformedPayload = errors.New("validate: 提交数据不符合载荷形状")
)

// 照片数量边界与默认价格上限
const (
	MinPhotos = 3
	MaxPhotos = 20

	// DefaultMaxAskingPrice 默认标价上限
	DefaultMaxAskingPrice = 50_000
)

// Options 引擎可调参数
type Options struct {
	// MaxAskingPrice 标价上限，零值回退到 DefaultMaxAskingPrice
	MaxAskingPrice float64
}

// Engine 六步挂单校验引擎
// 只读依赖注入的目录快照，本身不持有可变状态，可被多请求并发使用
type Engine struct {
	catalog  *catalog.Catalog
	checker  *validator.Validate
	maxPrice float64
	log      *zap.Logger
}

// NewEngine 创建校验引擎
func NewEngine(cat *catalog.Catalog, opts Options, log *zap.Logger) (*Engine, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}
	if log == nil {
		log = zap.NewNop()
	}
	maxPrice := opts.MaxAskingPrice
	if maxPrice <= 0 {
		maxPrice = DefaultMaxAskingPrice
	}
	return &Engine{
		catalog:  cat,
		checker:  validator.New(),
		maxPrice: maxPrice,
		log:      log,
	}, nil
}

// applyRuleSet 按规则集评估提交字段的必填/禁止/条件必填
// 与具体步骤无关的共享算法，所有违规都收集而不提前返回
func (e *Engine) applyRuleSet(rs rules.RuleSet, discriminant string, fields map[string]any, col *collector) {
	for _, f := range rs.Required {
		if isPresent(fields, f) {
			continue
		}
		if discriminant != "" {
			col.addf(f.String(), CodeMissingRequiredField,
				"Required field '%s' is missing for bike type '%s'", f, discriminant)
		} else {
			col.addf(f.String(), CodeMissingRequiredField, "Required field '%s' is missing", f)
		}
	}
	for _, f := range rs.Excluded {
		if !isPresent(fields, f) {
			continue
		}
		col.addf(f.String(), CodeExcludedFieldPresent,
			"Field '%s' is not applicable for bike type '%s'", f, discriminant)
	}
	for _, cr := range rs.Conditional {
		dep, ok := asString(fields[cr.DependsOn.String()])
		if !ok || !containsString(cr.WhenValues, dep) {
			continue
		}
		if isPresent(fields, cr.Field) {
			continue
		}
		col.addf(cr.Field.String(), Code(cr.MissingCode),
			"Field '%s' is required when %s is '%s'", cr.Field, cr.DependsOn, dep)
	}
}

// evalConstraints 评估某步骤的字段级约束
// 普通约束只对提交中出现的字段评估（缺失由 applyRuleSet 上报）；
// 非空约束本身就是缺失检查，无条件评估
func (e *Engine) evalConstraints(scene rules.Scene, discriminant string, fields map[string]any, col *collector) error {
	for _, fc := range rules.ConstraintsFor(scene) {
		if fc.Kind != rules.ConstraintNonEmpty && !isPresent(fields, fc.Field) {
			continue
		}
		value := fields[fc.Field.String()]
		switch fc.Kind {
		case rules.ConstraintEnum:
			if err := e.checkEnum(fc, discriminant, value, col); err != nil {
				return err
			}
		case rules.ConstraintRange:
			e.checkRange(fc, value, col)
		case rules.ConstraintYearRange:
			e.checkYearRange(fc, value, col)
		case rules.ConstraintNonEmpty:
			text, _ := asString(value)
			if strings.TrimSpace(text) == "" {
				col.addf(fc.Field.String(), Code(fc.Code), "Field '%s' must not be empty", fc.Field)
			}
		}
	}
	return nil
}

// checkEnum 校验枚举成员资格，合法取值集合随违规一并返回
func (e *Engine) checkEnum(fc rules.FieldConstraint, discriminant string, value any, col *collector) error {
	valid, err := e.enumValues(fc.Source, discriminant)
	if err != nil {
		return err
	}
	if containsAny(valid, value) {
		return nil
	}
	col.addWithValues(fc.Field.String(), Code(fc.Code),
		fmt.Sprintf("Invalid value %v for field '%s'", value, fc.Field), valid)
	return nil
}

// checkRange 校验闭区间数值约束
func (e *Engine) checkRange(fc rules.FieldConstraint, value any, col *collector) {
	num, ok := asNumber(value)
	if ok {
		tag := fmt.Sprintf("gte=%v,lte=%v", fc.Min, fc.Max)
		ok = e.checker.Var(num, tag) == nil
	}
	if !ok {
		col.addf(fc.Field.String(), Code(fc.Code),
			"Field '%s' must be between %v and %v", fc.Field, fc.Min, fc.Max)
	}
}

// checkYearRange 校验年份落在目录声明的生产年份区间内，且必须是整数
func (e *Engine) checkYearRange(fc rules.FieldConstraint, value any, col *collector) {
	minYear, maxYear := e.catalog.YearRange()
	num, ok := asNumber(value)
	if ok && num == math.Trunc(num) {
		tag := fmt.Sprintf("gte=%d,lte=%d", minYear, maxYear)
		ok = e.checker.Var(int(num), tag) == nil
	} else {
		ok = false
	}
	if !ok {
		col.addf(fc.Field.String(), Code(fc.Code),
			"Year must be an integer between %d and %d", minYear, maxYear)
	}
}

// enumValues 把枚举来源解析成目录当前的合法取值集合
// 解析结果为空视为目录配置缺陷，属于致命错误而不是数据违规
func (e *Engine) enumValues(source rules.EnumSource, discriminant string) ([]any, error) {
	var values []any
	switch source {
	case rules.EnumFrameMaterials:
		values = anyStrings(e.catalog.FrameMaterialCodes())
	case rules.EnumConditions:
		values = anyStrings(e.catalog.ConditionCodes())
	case rules.EnumColors:
		values = anyStrings(e.catalog.ColorCodes())
	case rules.EnumFrameSizes:
		values = anyStrings(e.catalog.FrameSizesFor(discriminant))
	case rules.EnumBrakeTypes:
		values = anyStrings(e.catalog.BrakeTypeCodes())
	case rules.EnumBrakeBrands:
		values = anyStrings(e.catalog.BrakeBrandCodes())
	case rules.EnumShifterBrands:
		values = anyStrings(e.catalog.ShifterBrandCodes())
	case rules.EnumMotorBrands:
		values = anyStrings(e.catalog.MotorBrandCodes())
	case rules.EnumMotorPositions:
		values = anyStrings(e.catalog.MotorPositionCodes())
	case rules.EnumBatteryCapacities:
		values = anyInts(e.catalog.BatteryCapacities())
	case rules.EnumSuspensionConfigurations:
		values = anyStrings(e.catalog.SuspensionConfigurationCodes())
	}
	if len(values) == 0 {
		e.log.Error("枚举来源解析为空", zap.Int("source", int(source)), zap.String("discriminant", discriminant))
		return nil, fmt.Errorf("%w: source=%d", ErrEnumUnavailable, source)
	}
	return values, nil
}
