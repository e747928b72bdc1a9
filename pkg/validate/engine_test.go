package validate

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/catalog"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/listing"
)

func enumOpts(codes ...string) []catalog.EnumOption {
	out := make([]catalog.EnumOption, 0, len(codes))
	for _, code := range codes {
		out = append(out, catalog.EnumOption{Code: code, Name: code})
	}
	return out
}

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Data{
		BikeTypes: []catalog.BikeType{
			{ID: "road", Name: "Road Bike"},
			{ID: "gravel", Name: "Gravel Bike"},
			{ID: "mountain", Name: "Mountain Bike"},
			{ID: "e_bike", Name: "E-Bike"},
			{ID: "city", Name: "City Bike"},
		},
		Brands: []catalog.Brand{
			{ID: "canyon", Name: "Canyon"},
			{ID: "trek", Name: "Trek"},
		},
		ModelsByBrand: map[string]map[string][]catalog.Model{
			"canyon": {
				"mountain": {{ID: "spectral", Name: "Spectral", YearRange: [2]int{2015, 2025}}},
				"road":     {{ID: "ultimate", Name: "Ultimate", YearRange: [2]int{2010, 2025}}},
			},
			"trek": {
				"e_bike": {{ID: "rail", Name: "Rail", YearRange: [2]int{2019, 2025}}},
			},
		},
		Colors: []catalog.Color{
			{ID: "black", Name: "Black"},
			{ID: "red", Name: "Red"},
		},
		Sizes: []catalog.FrameSize{
			{Size: "54", Type: "numeric", BikeTypes: []string{"road", "gravel"}},
			{Size: "56", Type: "numeric", BikeTypes: []string{"road", "gravel"}},
			{Size: "m", Type: "letter", BikeTypes: []string{"mountain", "e_bike", "city"}},
			{Size: "l", Type: "letter", BikeTypes: []string{"mountain", "e_bike", "city"}},
		},
		Countries: []catalog.Country{
			{Code: "DE", Name: "Germany", ShippingDomestic: true, ShippingEU: true},
			{Code: "US", Name: "United States", ShippingDomestic: true},
		},
		Currencies: []catalog.Currency{
			{Code: "EUR", Name: "Euro", PaymentMethods: []string{"bank_transfer", "paypal"}},
			{Code: "USD", Name: "US Dollar", PaymentMethods: []string{"paypal", "credit_card"}},
		},
		Options: catalog.StepOptions{
			FrameMaterials:           enumOpts("carbon", "aluminum", "steel"),
			Conditions:               enumOpts("like_new", "very_good", "good", "fair"),
			BrakeTypes:               enumOpts("disc", "rim"),
			BrakeBrands:              enumOpts("shimano", "sram", "magura"),
			ShifterBrands:            enumOpts("shimano", "sram"),
			MotorBrands:              enumOpts("bosch", "shimano"),
			MotorPositions:           enumOpts("mid_drive", "rear_hub"),
			BatteryCapacitiesWh:      []int{400, 500, 625},
			SuspensionConfigurations: enumOpts("rigid", "hardtail", "full"),
			YearRange:                [2]int{1980, 2025},
		},
	})
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(testCatalog(), Options{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func hasCode(result *Result, code Code) bool {
	for _, v := range result.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func countCode(result *Result, code Code) int {
	n := 0
	for _, v := range result.Violations {
		if v.Code == code {
			n++
		}
	}
	return n
}

func TestNewEngineNilCatalog(t *testing.T) {
	if _, err := NewEngine(nil, Options{}, nil); !errors.Is(err, ErrNilCatalog) {
		t.Errorf("NewEngine(nil) error = %v, want ErrNilCatalog", err)
	}
}

// ============================================================================
// 第1步
// ============================================================================

func TestValidateStep1(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name      string
		selection listing.Step1Selection
		valid     bool
		wantCodes []Code
		skipCodes []Code
	}{
		{
			name:      "有效组合",
			selection: listing.Step1Selection{BikeTypeID: "mountain", BrandID: "canyon", ModelID: "spectral"},
			valid:     true,
		},
		{
			name:      "无效车型时不评估型号",
			selection: listing.Step1Selection{BikeTypeID: "bmx", BrandID: "canyon", ModelID: "spectral"},
			wantCodes: []Code{CodeInvalidBikeType},
			skipCodes: []Code{CodeInvalidBrand, CodeInvalidModel},
		},
		{
			name:      "无效品牌时不评估型号",
			selection: listing.Step1Selection{BikeTypeID: "mountain", BrandID: "nobrand", ModelID: "spectral"},
			wantCodes: []Code{CodeInvalidBrand},
			skipCodes: []Code{CodeInvalidBikeType, CodeInvalidModel},
		},
		{
			name:      "车型品牌都无效时两条违规都收集",
			selection: listing.Step1Selection{BikeTypeID: "bmx", BrandID: "nobrand", ModelID: "whatever"},
			wantCodes: []Code{CodeInvalidBikeType, CodeInvalidBrand},
			skipCodes: []Code{CodeInvalidModel},
		},
		{
			name:      "型号不属于品牌与车型的组合",
			selection: listing.Step1Selection{BikeTypeID: "mountain", BrandID: "canyon", ModelID: "ultimate"},
			wantCodes: []Code{CodeInvalidModel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.ValidateStep1(tt.selection)
			if err != nil {
				t.Fatalf("ValidateStep1() error = %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v, violations = %+v", result.Valid, tt.valid, result.Violations)
			}
			for _, code := range tt.wantCodes {
				if !hasCode(result, code) {
					t.Errorf("缺少违规码 %s, violations = %+v", code, result.Violations)
				}
			}
			for _, code := range tt.skipCodes {
				if hasCode(result, code) {
					t.Errorf("不应出现违规码 %s, violations = %+v", code, result.Violations)
				}
			}
		})
	}
}

func TestValidateStep1ValidValues(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.ValidateStep1(listing.Step1Selection{
		BikeTypeID: "mountain", BrandID: "nobrand", ModelID: "spectral",
	})
	if err != nil {
		t.Fatalf("ValidateStep1() error = %v", err)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("violations = %d, want 1", len(result.Violations))
	}
	if got := len(result.Violations[0].ValidValues); got != 2 {
		t.Errorf("ValidValues 长度 = %d, want 2（全部品牌）", got)
	}
	if result.ErrorCode != "STEP1_VALIDATION_ERROR" {
		t.Errorf("ErrorCode = %s, want STEP1_VALIDATION_ERROR", result.ErrorCode)
	}
}

// ============================================================================
// 第2步
// ============================================================================

// 山地车完整有效提交的技术参数
func validMountainDetails() map[string]any {
	return map[string]any{
		"year":                       float64(2021),
		"frame_material_code":        "carbon",
		"frame_size":                 "l",
		"color":                      "black",
		"condition":                  "like_new",
		"brake_type":                 "disc",
		"suspension_configuration":   "full",
		"front_suspension_travel_mm": float64(160),
		"rear_suspension_travel_mm":  float64(150),
	}
}

// mutate 在有效提交基础上定向修改，nil 值表示删除该字段
func mutate(base map[string]any, changes map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range changes {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

func TestValidateStep2MountainValid(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.ValidateStep2(listing.BikeDetails{
		BikeTypeID: "mountain",
		Details:    validMountainDetails(),
	})
	if err != nil {
		t.Fatalf("ValidateStep2() error = %v", err)
	}
	if !result.Valid {
		t.Fatalf("Valid = false, violations = %+v", result.Violations)
	}
	if result.ErrorCode != "" || len(result.Violations) != 0 {
		t.Errorf("成功结果不应携带错误码或违规: %+v", result)
	}
}

func TestValidateStep2(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name      string
		bikeType  string
		details   map[string]any
		valid     bool
		wantCodes []Code
		skipCodes []Code
	}{
		{
			name:      "缺少必填年份",
			bikeType:  "mountain",
			details:   mutate(validMountainDetails(), map[string]any{"year": nil}),
			wantCodes: []Code{CodeMissingRequiredField},
		},
		{
			name:     "公路车携带电机字段",
			bikeType: "road",
			details: map[string]any{
				"year": float64(2020), "frame_material_code": "carbon", "frame_size": "54",
				"color": "black", "condition": "good", "brake_type": "rim", "motor_brand": "bosch",
			},
			wantCodes: []Code{CodeExcludedFieldPresent},
		},
		{
			name:     "电助力车必填电机字段",
			bikeType: "e_bike",
			details: map[string]any{
				"year": float64(2022), "frame_material_code": "aluminum", "frame_size": "m",
				"color": "black", "condition": "very_good", "brake_type": "disc",
			},
			wantCodes: []Code{CodeMissingRequiredField},
		},
		{
			name:     "hardtail 缺前叉行程",
			bikeType: "mountain",
			details: mutate(validMountainDetails(), map[string]any{
				"suspension_configuration":   "hardtail",
				"front_suspension_travel_mm": nil,
				"rear_suspension_travel_mm":  nil,
			}),
			wantCodes: []Code{CodeMissingFrontTravel},
			skipCodes: []Code{CodeMissingRearTravel},
		},
		{
			name:     "full 同时缺前后行程",
			bikeType: "mountain",
			details: mutate(validMountainDetails(), map[string]any{
				"front_suspension_travel_mm": nil,
				"rear_suspension_travel_mm":  nil,
			}),
			wantCodes: []Code{CodeMissingFrontTravel, CodeMissingRearTravel},
		},
		{
			name:     "rigid 不要求行程",
			bikeType: "mountain",
			details: mutate(validMountainDetails(), map[string]any{
				"suspension_configuration":   "rigid",
				"front_suspension_travel_mm": nil,
				"rear_suspension_travel_mm":  nil,
			}),
			valid: true,
		},
		{
			name:      "年份越界",
			bikeType:  "mountain",
			details:   mutate(validMountainDetails(), map[string]any{"year": float64(1979)}),
			wantCodes: []Code{CodeInvalidYear},
		},
		{
			name:      "年份不是数值",
			bikeType:  "mountain",
			details:   mutate(validMountainDetails(), map[string]any{"year": "2021"}),
			wantCodes: []Code{CodeInvalidYear},
		},
		{
			name:      "飞轮速别越界",
			bikeType:  "mountain",
			details:   mutate(validMountainDetails(), map[string]any{"cassette_speeds": float64(13)}),
			wantCodes: []Code{CodeInvalidCassetteSpeeds},
		},
		{
			name:      "无效颜色",
			bikeType:  "mountain",
			details:   mutate(validMountainDetails(), map[string]any{"color": "chartreuse"}),
			wantCodes: []Code{CodeInvalidColor},
		},
		{
			name:      "无效避震结构",
			bikeType:  "mountain",
			details:   mutate(validMountainDetails(), map[string]any{"suspension_configuration": "coil"}),
			wantCodes: []Code{CodeInvalidSuspensionType},
		},
		{
			name:      "车架尺寸按车型大类解析",
			bikeType:  "mountain",
			details:   mutate(validMountainDetails(), map[string]any{"frame_size": "54"}),
			wantCodes: []Code{CodeInvalidFrameSize},
		},
		{
			name:     "未注册车型大类放行必填检查",
			bikeType: "cargo",
			details:  map[string]any{"color": "black"},
			valid:    true,
		},
		{
			name:      "未注册车型大类仍兜底字段取值",
			bikeType:  "cargo",
			details:   map[string]any{"color": "chartreuse"},
			wantCodes: []Code{CodeInvalidColor},
			skipCodes: []Code{CodeMissingRequiredField},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.ValidateStep2(listing.BikeDetails{BikeTypeID: tt.bikeType, Details: tt.details})
			if err != nil {
				t.Fatalf("ValidateStep2() error = %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v, violations = %+v", result.Valid, tt.valid, result.Violations)
			}
			for _, code := range tt.wantCodes {
				if !hasCode(result, code) {
					t.Errorf("缺少违规码 %s, violations = %+v", code, result.Violations)
				}
			}
			for _, code := range tt.skipCodes {
				if hasCode(result, code) {
					t.Errorf("不应出现违规码 %s, violations = %+v", code, result.Violations)
				}
			}
		})
	}
}

// 同一提交的全部违规必须一次性收集，而不是只报第一条
func TestValidateStep2AggregatesAllViolations(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.ValidateStep2(listing.BikeDetails{
		BikeTypeID: "mountain",
		Details: mutate(validMountainDetails(), map[string]any{
			"year":        float64(1900),
			"color":       "chartreuse",
			"condition":   "wrecked",
			"motor_brand": "bosch",
		}),
	})
	if err != nil {
		t.Fatalf("ValidateStep2() error = %v", err)
	}
	for _, code := range []Code{CodeInvalidYear, CodeInvalidColor, CodeInvalidCondition, CodeExcludedFieldPresent} {
		if !hasCode(result, code) {
			t.Errorf("缺少违规码 %s, violations = %+v", code, result.Violations)
		}
	}
	if len(result.Violations) < 4 {
		t.Errorf("violations = %d, want >= 4", len(result.Violations))
	}
}

// 校验是纯函数：同一输入重复校验结果一致
func TestValidateStep2Idempotent(t *testing.T) {
	engine := newTestEngine(t)

	submission := listing.BikeDetails{
		BikeTypeID: "mountain",
		Details:    mutate(validMountainDetails(), map[string]any{"color": "chartreuse"}),
	}
	first, err := engine.ValidateStep2(submission)
	if err != nil {
		t.Fatalf("ValidateStep2() error = %v", err)
	}
	second, err := engine.ValidateStep2(submission)
	if err != nil {
		t.Fatalf("ValidateStep2() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("重复校验结果不一致: %+v vs %+v", first, second)
	}
}

// ============================================================================
// 第3步
// ============================================================================

func TestValidateStep3(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name      string
		location  listing.Location
		valid     bool
		wantCodes []Code
		skipCodes []Code
	}{
		{
			name: "有效提交",
			location: listing.Location{
				CountryCode: "DE", City: "Berlin", PostalCode: "10115",
				ShippingOptions: []string{"local_pickup", "eu_shipping"},
			},
			valid: true,
		},
		{
			name:     "国家代码大小写不敏感",
			location: listing.Location{CountryCode: "de", City: "Berlin", PostalCode: "10115"},
			valid:    true,
		},
		{
			name:      "无效国家同时缺城市",
			location:  listing.Location{CountryCode: "XX", PostalCode: "10115"},
			wantCodes: []Code{CodeInvalidCountry, CodeMissingCity},
			skipCodes: []Code{CodeInvalidShippingOption},
		},
		{
			name:      "纯空白邮编视为缺失",
			location:  listing.Location{CountryCode: "DE", City: "Berlin", PostalCode: "   "},
			wantCodes: []Code{CodeMissingPostalCode},
		},
		{
			name: "寄送方式超出国家能力",
			location: listing.Location{
				CountryCode: "US", City: "Portland", PostalCode: "97201",
				ShippingOptions: []string{"local_pickup", "eu_shipping"},
			},
			wantCodes: []Code{CodeInvalidShippingOption},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.ValidateStep3(tt.location)
			if err != nil {
				t.Fatalf("ValidateStep3() error = %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v, violations = %+v", result.Valid, tt.valid, result.Violations)
			}
			for _, code := range tt.wantCodes {
				if !hasCode(result, code) {
					t.Errorf("缺少违规码 %s, violations = %+v", code, result.Violations)
				}
			}
			for _, code := range tt.skipCodes {
				if hasCode(result, code) {
					t.Errorf("不应出现违规码 %s, violations = %+v", code, result.Violations)
				}
			}
		})
	}
}

// ============================================================================
// 第4步
// ============================================================================

func TestValidateStep4(t *testing.T) {
	engine := newTestEngine(t)

	full := map[string]any{
		"wheels": "DT Swiss XM 1700", "tires": "Maxxis Minion", "saddle": "Ergon SM10",
		"handlebars": "Race Face Next R", "pedals": "Shimano XT",
	}

	result, err := engine.ValidateStep4(listing.Components{BikeTypeID: "mountain", Components: full})
	if err != nil {
		t.Fatalf("ValidateStep4() error = %v", err)
	}
	if !result.Valid {
		t.Errorf("Valid = false, violations = %+v", result.Violations)
	}

	partial := map[string]any{"wheels": "DT Swiss", "tires": "Maxxis", "saddle": "Ergon"}
	result, err = engine.ValidateStep4(listing.Components{BikeTypeID: "mountain", Components: partial})
	if err != nil {
		t.Fatalf("ValidateStep4() error = %v", err)
	}
	if got := countCode(result, CodeMissingComponent); got != 2 {
		t.Errorf("MISSING_COMPONENT 条数 = %d, want 2, violations = %+v", got, result.Violations)
	}
}

// ============================================================================
// 第5步
// ============================================================================

func TestValidateStep5(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name      string
		pricing   listing.Pricing
		valid     bool
		wantCodes []Code
		skipCodes []Code
	}{
		{
			name: "有效提交",
			pricing: listing.Pricing{
				CurrencyCode: "EUR", AskingPrice: 2800,
				PaymentMethods: []string{"bank_transfer", "paypal"},
			},
			valid: true,
		},
		{
			name:      "价格为负",
			pricing:   listing.Pricing{CurrencyCode: "EUR", AskingPrice: -5},
			wantCodes: []Code{CodeInvalidPrice},
		},
		{
			name:      "价格为零",
			pricing:   listing.Pricing{CurrencyCode: "EUR", AskingPrice: 0},
			wantCodes: []Code{CodeInvalidPrice},
		},
		{
			name:      "价格超过上限",
			pricing:   listing.Pricing{CurrencyCode: "EUR", AskingPrice: 999999},
			wantCodes: []Code{CodePriceTooHigh},
			skipCodes: []Code{CodeInvalidPrice},
		},
		{
			name:      "无效币种时跳过支付方式检查",
			pricing:   listing.Pricing{CurrencyCode: "JPY", AskingPrice: 2800, PaymentMethods: []string{"cash"}},
			wantCodes: []Code{CodeInvalidCurrency},
			skipCodes: []Code{CodeInvalidPaymentMethod},
		},
		{
			name:      "支付方式不属于币种",
			pricing:   listing.Pricing{CurrencyCode: "EUR", AskingPrice: 2800, PaymentMethods: []string{"credit_card"}},
			wantCodes: []Code{CodeInvalidPaymentMethod},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.ValidateStep5(tt.pricing)
			if err != nil {
				t.Fatalf("ValidateStep5() error = %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v, violations = %+v", result.Valid, tt.valid, result.Violations)
			}
			for _, code := range tt.wantCodes {
				if !hasCode(result, code) {
					t.Errorf("缺少违规码 %s, violations = %+v", code, result.Violations)
				}
			}
			for _, code := range tt.skipCodes {
				if hasCode(result, code) {
					t.Errorf("不应出现违规码 %s, violations = %+v", code, result.Violations)
				}
			}
		})
	}
}

// ============================================================================
// 第6步
// ============================================================================

func photoSet(count, mains int) []listing.Photo {
	photos := make([]listing.Photo, 0, count)
	for i := 0; i < count; i++ {
		photos = append(photos, listing.Photo{
			URL:    "https://img.example.com/p.jpg",
			Order:  i + 1,
			IsMain: i < mains,
		})
	}
	return photos
}

func TestValidateStep6(t *testing.T) {
	engine := newTestEngine(t)

	duplicated := photoSet(4, 1)
	duplicated[3].Order = duplicated[2].Order

	tests := []struct {
		name      string
		photos    []listing.Photo
		valid     bool
		wantCodes []Code
	}{
		{name: "下限三张且唯一主图", photos: photoSet(3, 1), valid: true},
		{name: "上限二十张", photos: photoSet(20, 1), valid: true},
		{name: "照片不足", photos: photoSet(2, 1), wantCodes: []Code{CodeInsufficientPhotos}},
		{name: "照片超量", photos: photoSet(21, 1), wantCodes: []Code{CodeTooManyPhotos}},
		{name: "没有主图", photos: photoSet(3, 0), wantCodes: []Code{CodeInvalidMainPhoto}},
		{name: "两张主图", photos: photoSet(3, 2), wantCodes: []Code{CodeInvalidMainPhoto}},
		{name: "展示顺序重复", photos: duplicated, wantCodes: []Code{CodeDuplicatePhotoOrder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.ValidateStep6(listing.Photos{Photos: tt.photos})
			if err != nil {
				t.Fatalf("ValidateStep6() error = %v", err)
			}
			if result.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v, violations = %+v", result.Valid, tt.valid, result.Violations)
			}
			for _, code := range tt.wantCodes {
				if !hasCode(result, code) {
					t.Errorf("缺少违规码 %s, violations = %+v", code, result.Violations)
				}
			}
		})
	}
}

// ============================================================================
// 分发
// ============================================================================

func TestValidateStepDispatch(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.ValidateStep(2, map[string]any{
		"bike_type_id": "mountain",
		"details":      validMountainDetails(),
	})
	if err != nil {
		t.Fatalf("ValidateStep(2) error = %v", err)
	}
	if !result.Valid {
		t.Errorf("Valid = false, violations = %+v", result.Violations)
	}
	if result.Step != 2 {
		t.Errorf("Step = %d, want 2", result.Step)
	}
}

// 载荷形状标签由分发器统一执行：非法照片地址在进入步骤语义前被拒绝
func TestValidateStepPayloadShape(t *testing.T) {
	engine := newTestEngine(t)

	malformed := map[string]any{"photos": []map[string]any{
		{"url": "not-a-url", "order": 1, "is_main": true},
		{"url": "https://img.example.com/a.jpg", "order": 2},
		{"url": "https://img.example.com/b.jpg", "order": 3},
	}}
	if _, err := engine.ValidateStep(6, malformed); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("ValidateStep(6) error = %v, want ErrMalformedPayload", err)
	}

	// 形状合法的载荷正常进入第6步语义
	result, err := engine.ValidateStep(6, map[string]any{"photos": photoSet(3, 1)})
	if err != nil {
		t.Fatalf("ValidateStep(6) error = %v", err)
	}
	if !result.Valid {
		t.Errorf("Valid = false, violations = %+v", result.Violations)
	}
}

func TestValidateStepUnknown(t *testing.T) {
	engine := newTestEngine(t)

	for _, step := range []int{0, 7, -1} {
		if _, err := engine.ValidateStep(step, nil); !errors.Is(err, ErrUnknownStep) {
			t.Errorf("ValidateStep(%d) error = %v, want ErrUnknownStep", step, err)
		}
	}
}
