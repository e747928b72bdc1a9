package validate

import "fmt"

// Code 违规码
// 下游代理按字面值解析这些码，属于对外兼容契约，不可改动拼写
type Code string

// 通用违规码
const (
	CodeMissingRequiredField Code = "MISSING_REQUIRED_FIELD"
	CodeExcludedFieldPresent Code = "EXCLUDED_FIELD_PRESENT"
)

// 第1步违规码
const (
	CodeInvalidBikeType Code = "INVALID_BIKE_TYPE"
	CodeInvalidBrand    Code = "INVALID_BRAND"
	CodeInvalidModel    Code = "INVALID_MODEL"
)

// 第2步违规码
const (
	CodeInvalidYear            Code = "INVALID_YEAR"
	CodeInvalidFrameMaterial   Code = "INVALID_FRAME_MATERIAL"
	CodeInvalidCondition       Code = "INVALID_CONDITION"
	CodeInvalidFrameSize       Code = "INVALID_FRAME_SIZE"
	CodeInvalidColor           Code = "INVALID_COLOR"
	CodeInvalidMotorBrand      Code = "INVALID_MOTOR_BRAND"
	CodeInvalidBatteryCapacity Code = "INVALID_BATTERY_CAPACITY"
	CodeInvalidMotorPosition   Code = "INVALID_MOTOR_POSITION"
	CodeInvalidSuspensionType  Code = "INVALID_SUSPENSION_TYPE"
	CodeMissingFrontTravel     Code = "MISSING_FRONT_TRAVEL"
	CodeMissingRearTravel      Code = "MISSING_REAR_TRAVEL"
	CodeInvalidBrakeType       Code = "INVALID_BRAKE_TYPE"
	CodeInvalidBrakeBrand      Code = "INVALID_BRAKE_BRAND"
	CodeInvalidShifterBrand    Code = "INVALID_SHIFTER_BRAND"
	CodeInvalidCassetteSpeeds  Code = "INVALID_CASSETTE_SPEEDS"
)

// 第3步违规码
const (
	CodeInvalidCountry        Code = "INVALID_COUNTRY"
	CodeMissingCity           Code = "MISSING_CITY"
	CodeMissingPostalCode     Code = "MISSING_POSTAL_CODE"
	CodeInvalidShippingOption Code = "INVALID_SHIPPING_OPTION"
)

// 第4步违规码
const (
	CodeMissingComponent Code = "MISSING_COMPONENT"
)

// 第5步违规码
const (
	CodeInvalidCurrency      Code = "INVALID_CURRENCY"
	CodeInvalidPrice         Code = "INVALID_PRICE"
	CodePriceTooHigh         Code = "PRICE_TOO_HIGH"
	CodeInvalidPaymentMethod Code = "INVALID_PAYMENT_METHOD"
)

// 第6步违规码
const (
	CodeInsufficientPhotos  Code = "INSUFFICIENT_PHOTOS"
	CodeTooManyPhotos       Code = "TOO_MANY_PHOTOS"
	CodeInvalidMainPhoto    Code = "INVALID_MAIN_PHOTO"
	CodeDuplicatePhotoOrder Code = "DUPLICATE_PHOTO_ORDER"
)

// Violation 单条违规记录，纯数据，不作为 error 抛出
// ValidValues 随枚举类违规一并返回，调用方无需追加查询即可自纠
type Violation struct {
	// Field 违规字段名
	Field string `json:"field"`
	// Code 违规码
	Code Code `json:"code"`
	// Message 面向调用方的说明
	Message string `json:"message"`
	// ValidValues 当前合法取值集合（仅枚举/成员资格类违规携带）
	ValidValues []any `json:"valid_values,omitempty"`
}

// Result 单步校验结果
// 成功与失败共用同一种结果类型，失败时携带步骤级错误码与全部违规；
// 致命/内部错误走独立的 error 通道，绝不混入违规列表
type Result struct {
	// Valid 是否通过
	Valid bool `json:"valid"`
	// Step 步骤序号（1-6）
	Step int `json:"step"`
	// ErrorCode 步骤级错误码，仅失败时存在
	ErrorCode Code `json:"error_code,omitempty"`
	// Violations 全部违规，按字段评估顺序排列，仅失败时存在
	Violations []Violation `json:"violations,omitempty"`
}

// stepErrorCode 返回步骤级错误码，如 STEP2_VALIDATION_ERROR
func stepErrorCode(step int) Code {
	return Code(fmt.Sprintf("STEP%d_VALIDATION_ERROR", step))
}

// collector 违规收集器
// 永远收集完所有违规再统一返回，而不是遇到第一条就终止
type collector struct {
	violations []Violation
}

// add 追加一条违规
func (c *collector) add(v Violation) {
	c.violations = append(c.violations, v)
}

// addf 以格式化消息追加一条违规
func (c *collector) addf(field string, code Code, format string, args ...any) {
	c.add(Violation{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
}

// addWithValues 追加一条携带合法取值集合的违规
func (c *collector) addWithValues(field string, code Code, message string, valid []any) {
	c.add(Violation{Field: field, Code: code, Message: message, ValidValues: valid})
}

// hasViolations 是否已收集到违规
func (c *collector) hasViolations() bool {
	return len(c.violations) > 0
}

// result 构建步骤校验结果
func (c *collector) result(step int) *Result {
	if !c.hasViolations() {
		return &Result{Valid: true, Step: step}
	}
	return &Result{
		Valid:      false,
		Step:       step,
		ErrorCode:  stepErrorCode(step),
		Violations: c.violations,
	}
}
