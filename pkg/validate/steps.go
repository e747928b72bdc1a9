package validate

import (
	"encoding/json"
	"fmt"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/listing"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/rules"
)

// ValidateStep 按步骤序号分发校验
// payload 是未经类型化的提交数据（如 HTTP 层直接透传的 JSON 对象），
// 分发前先解码成对应步骤的类型化提交并执行载荷形状校验
func (e *Engine) ValidateStep(step int, payload map[string]any) (*Result, error) {
	switch rules.SceneForStep(step) {
	case rules.SceneStep1:
		var sel listing.Step1Selection
		if err := e.decodePayload(payload, &sel); err != nil {
			return nil, err
		}
		return e.ValidateStep1(sel)
	case rules.SceneStep2:
		var details listing.BikeDetails
		if err := e.decodePayload(payload, &details); err != nil {
			return nil, err
		}
		return e.ValidateStep2(details)
	case rules.SceneStep3:
		var loc listing.Location
		if err := e.decodePayload(payload, &loc); err != nil {
			return nil, err
		}
		return e.ValidateStep3(loc)
	case rules.SceneStep4:
		var comp listing.Components
		if err := e.decodePayload(payload, &comp); err != nil {
			return nil, err
		}
		return e.ValidateStep4(comp)
	case rules.SceneStep5:
		var pricing listing.Pricing
		if err := e.decodePayload(payload, &pricing); err != nil {
			return nil, err
		}
		return e.ValidateStep5(pricing)
	case rules.SceneStep6:
		var photos listing.Photos
		if err := e.decodePayload(payload, &photos); err != nil {
			return nil, err
		}
		return e.ValidateStep6(photos)
	default:
		return nil, fmt.Errorf("%w: step=%d", ErrUnknownStep, step)
	}
}

// decodePayload 把透传的 JSON 对象解码成类型化提交，并执行结构标签声明的形状约束
// 形状不合法（如照片地址不是合法 URL）属于载荷缺陷而不是业务违规，
// 违规码表里没有对应条目，走独立的 ErrMalformedPayload 通道由传输层拒绝
func (e *Engine) decodePayload(payload map[string]any, target any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("validate: 提交数据编码失败: %w", err)
	}
	if err = json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("validate: 提交数据解码失败: %w", err)
	}
	if err = e.checker.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

// ValidateStep1 校验第1步：车型/品牌/型号选择
// 型号隶属于品牌与车型的组合，只有两者都合法时才做型号成员资格检查，
// 否则型号的合法取值集合本身无从谈起
func (e *Engine) ValidateStep1(sel listing.Step1Selection) (*Result, error) {
	col := &collector{}

	typeOK := e.catalog.BikeTypeExists(sel.BikeTypeID)
	if !typeOK {
		col.addWithValues(rules.FieldBikeTypeID.String(), CodeInvalidBikeType,
			fmt.Sprintf("Invalid bike type '%s'", sel.BikeTypeID),
			anyStrings(e.catalog.BikeTypeIDs()))
	}

	brandOK := e.catalog.BrandExists(sel.BrandID)
	if !brandOK {
		col.addWithValues(rules.FieldBrandID.String(), CodeInvalidBrand,
			fmt.Sprintf("Invalid brand '%s'", sel.BrandID),
			anyStrings(e.catalog.BrandIDs()))
	}

	if typeOK && brandOK && !e.catalog.ModelExists(sel.BrandID, sel.BikeTypeID, sel.ModelID) {
		col.addWithValues(rules.FieldModelID.String(), CodeInvalidModel,
			fmt.Sprintf("Invalid model '%s' for brand '%s'", sel.ModelID, sel.BrandID),
			anyStrings(e.catalog.ModelIDsFor(sel.BrandID, sel.BikeTypeID)))
	}

	return col.result(1), nil
}

// ValidateStep2 校验第2步：技术参数
// 规则集按车型大类划分；未注册的车型大类放行必填/禁止检查，
// 但已提交字段的取值合法性仍由约束表兜底
func (e *Engine) ValidateStep2(details listing.BikeDetails) (*Result, error) {
	col := &collector{}

	rs := rules.RulesFor(details.BikeTypeID, rules.SceneStep2)
	e.applyRuleSet(rs, details.BikeTypeID, details.Details, col)

	if err := e.evalConstraints(rules.SceneStep2, details.BikeTypeID, details.Details, col); err != nil {
		return nil, err
	}

	return col.result(2), nil
}

// ValidateStep3 校验第3步：地理位置与寄送
// 城市/邮编的非空检查不依赖国家合法性，照常评估；
// 寄送方式的合法集合由国家决定，国家非法时跳过
func (e *Engine) ValidateStep3(loc listing.Location) (*Result, error) {
	col := &collector{}

	country, countryOK := e.catalog.CountryByCode(loc.CountryCode)
	if !countryOK {
		col.addWithValues(rules.FieldCountryCode.String(), CodeInvalidCountry,
			fmt.Sprintf("Invalid country code '%s'", loc.CountryCode),
			anyStrings(e.catalog.CountryCodes()))
	}

	fields := map[string]any{
		rules.FieldCity.String():       loc.City,
		rules.FieldPostalCode.String(): loc.PostalCode,
	}
	if err := e.evalConstraints(rules.SceneStep3, loc.CountryCode, fields, col); err != nil {
		return nil, err
	}

	if countryOK {
		allowed := e.catalog.ShippingOptionsFor(country)
		for _, opt := range loc.ShippingOptions {
			if containsString(allowed, opt) {
				continue
			}
			col.addWithValues(rules.FieldShippingOptions.String(), CodeInvalidShippingOption,
				fmt.Sprintf("Shipping option '%s' is not available in %s", opt, country.Name),
				anyStrings(allowed))
		}
	}

	return col.result(3), nil
}

// ValidateStep4 校验第4步：零部件明细
// 只校验必备类目的存在性，零部件的自由文本描述不做取值校验
func (e *Engine) ValidateStep4(comp listing.Components) (*Result, error) {
	col := &collector{}

	rs := rules.RulesFor(comp.BikeTypeID, rules.SceneStep4)
	for _, f := range rs.Required {
		if value, ok := comp.Components[f.String()]; ok && value != nil {
			continue
		}
		col.addf(f.String(), CodeMissingComponent, "Component '%s' is required", f)
	}

	return col.result(4), nil
}

// ValidateStep5 校验第5步：定价与支付
// 支付方式的合法集合由币种决定，币种非法时跳过
func (e *Engine) ValidateStep5(pricing listing.Pricing) (*Result, error) {
	col := &collector{}

	currency, currencyOK := e.catalog.CurrencyByCode(pricing.CurrencyCode)
	if !currencyOK {
		col.addWithValues(rules.FieldCurrencyCode.String(), CodeInvalidCurrency,
			fmt.Sprintf("Invalid currency code '%s'", pricing.CurrencyCode),
			anyStrings(e.catalog.CurrencyCodes()))
	}

	if pricing.AskingPrice <= 0 {
		col.addf(rules.FieldAskingPrice.String(), CodeInvalidPrice,
			"Asking price must be greater than zero")
	} else if pricing.AskingPrice > e.maxPrice {
		col.addf(rules.FieldAskingPrice.String(), CodePriceTooHigh,
			"Asking price exceeds the maximum of %.0f", e.maxPrice)
	}

	if currencyOK {
		for _, method := range pricing.PaymentMethods {
			if containsString(currency.PaymentMethods, method) {
				continue
			}
			col.addWithValues(rules.FieldPaymentMethods.String(), CodeInvalidPaymentMethod,
				fmt.Sprintf("Payment method '%s' is not supported for %s", method, currency.Code),
				anyStrings(currency.PaymentMethods))
		}
	}

	return col.result(5), nil
}

// ValidateStep6 校验第6步：照片
// 数量边界、唯一主图、展示顺序唯一，全部违规一次性返回
func (e *Engine) ValidateStep6(photos listing.Photos) (*Result, error) {
	col := &collector{}

	count := len(photos.Photos)
	if count < MinPhotos {
		col.addf(rules.FieldPhotos.String(), CodeInsufficientPhotos,
			"At least %d photos are required, got %d", MinPhotos, count)
	} else if count > MaxPhotos {
		col.addf(rules.FieldPhotos.String(), CodeTooManyPhotos,
			"At most %d photos are allowed, got %d", MaxPhotos, count)
	}

	mains := 0
	seen := make(map[int]bool, count)
	reported := make(map[int]bool)
	for _, photo := range photos.Photos {
		if photo.IsMain {
			mains++
		}
		if seen[photo.Order] && !reported[photo.Order] {
			col.addf(rules.FieldPhotos.String(), CodeDuplicatePhotoOrder,
				"Photo order %d is used more than once", photo.Order)
			reported[photo.Order] = true
		}
		seen[photo.Order] = true
	}
	if mains != 1 {
		col.addf(rules.FieldPhotos.String(), CodeInvalidMainPhoto,
			"Exactly one photo must be marked as main, got %d", mains)
	}

	return col.result(6), nil
}
