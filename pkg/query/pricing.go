package query

import (
	"math"
	"time"
)

// 定价模型默认参数
const (
	// DefaultAnnualDepreciationRate 每年折价比例
	DefaultAnnualDepreciationRate = 0.15
	// DefaultMaxDepreciationYears 折价封顶年数，更旧的车不再继续折价
	DefaultMaxDepreciationYears = 5
	// DefaultPlatformFeeRate 平台服务费比例
	DefaultPlatformFeeRate = 0.04
	// DefaultPaymentFeeRate 支付通道费比例
	DefaultPaymentFeeRate = 0.029
	// DefaultPaymentFeeFixed 支付通道固定费
	DefaultPaymentFeeFixed = 0.30
)

// defaultConditionFactors 成色折价系数
var defaultConditionFactors = map[string]float64{
	"like_new":  0.85,
	"very_good": 0.75,
	"good":      0.60,
	"fair":      0.45,
}

// PricingParams 定价模型参数，零值字段回退到默认值
// 参数随配置下发，调价不需要改代码
type PricingParams struct {
	AnnualDepreciationRate float64
	MaxDepreciationYears   int
	ConditionFactors       map[string]float64
	PlatformFeeRate        float64
	PaymentFeeRate         float64
	PaymentFeeFixed        float64
}

func (p PricingParams) withDefaults() PricingParams {
	if p.AnnualDepreciationRate <= 0 {
		p.AnnualDepreciationRate = DefaultAnnualDepreciationRate
	}
	if p.MaxDepreciationYears <= 0 {
		p.MaxDepreciationYears = DefaultMaxDepreciationYears
	}
	if len(p.ConditionFactors) == 0 {
		p.ConditionFactors = defaultConditionFactors
	}
	if p.PlatformFeeRate <= 0 {
		p.PlatformFeeRate = DefaultPlatformFeeRate
	}
	if p.PaymentFeeRate <= 0 {
		p.PaymentFeeRate = DefaultPaymentFeeRate
	}
	if p.PaymentFeeFixed <= 0 {
		p.PaymentFeeFixed = DefaultPaymentFeeFixed
	}
	return p
}

// PriceSuggestion 价格建议
type PriceSuggestion struct {
	// SuggestedPrice 建议标价
	SuggestedPrice float64 `json:"suggested_price"`
	// PriceRangeMin PriceRangeMax 建议区间，建议价上下浮动一成
	PriceRangeMin float64 `json:"price_range_min"`
	PriceRangeMax float64 `json:"price_range_max"`
	// BasePrice 折价前的基准价（MSRP 区间中值）
	BasePrice float64 `json:"base_price"`
	// DepreciationYears 实际计入的折价年数
	DepreciationYears int `json:"depreciation_years"`
	// ConditionFactor 应用的成色系数
	ConditionFactor float64 `json:"condition_factor"`
}

// FeeBreakdown 手续费拆解
type FeeBreakdown struct {
	AskingPrice    float64 `json:"asking_price"`
	PlatformFee    float64 `json:"platform_fee"`
	PaymentFee     float64 `json:"payment_fee"`
	TotalFees      float64 `json:"total_fees"`
	SellerReceives float64 `json:"seller_receives"`
}

// SuggestPrice 依据型号指导价、车龄与成色估算建议标价
// 基准价取 MSRP 区间中值，按年折价并封顶，再乘成色系数；
// 型号没有指导价区间时无法估算，返回 NotFoundError
func (s *Service) SuggestPrice(brandID, bikeTypeID, modelID string, year int, condition string) (*PriceSuggestion, error) {
	model, err := s.ModelDetails(brandID, bikeTypeID, modelID)
	if err != nil {
		return nil, err
	}
	if model.MSRPRange == nil {
		return nil, &NotFoundError{Kind: "msrp", ID: modelID}
	}

	base := float64(model.MSRPRange.Min+model.MSRPRange.Max) / 2

	age := time.Now().Year() - year
	if age < 0 {
		age = 0
	}
	if age > s.pricing.MaxDepreciationYears {
		age = s.pricing.MaxDepreciationYears
	}
	depreciated := base * math.Pow(1-s.pricing.AnnualDepreciationRate, float64(age))

	factor, ok := s.pricing.ConditionFactors[condition]
	if !ok {
		// 未知成色按最保守的系数估算
		factor = lowestFactor(s.pricing.ConditionFactors)
	}

	suggested := round2(depreciated * factor)
	return &PriceSuggestion{
		SuggestedPrice:    suggested,
		PriceRangeMin:     round2(suggested * 0.9),
		PriceRangeMax:     round2(suggested * 1.1),
		BasePrice:         base,
		DepreciationYears: age,
		ConditionFactor:   factor,
	}, nil
}

// CalculateFees 按标价拆解平台服务费与支付通道费
func (s *Service) CalculateFees(askingPrice float64) FeeBreakdown {
	platformFee := round2(askingPrice * s.pricing.PlatformFeeRate)
	paymentFee := round2(askingPrice*s.pricing.PaymentFeeRate + s.pricing.PaymentFeeFixed)
	totalFees := round2(platformFee + paymentFee)
	return FeeBreakdown{
		AskingPrice:    askingPrice,
		PlatformFee:    platformFee,
		PaymentFee:     paymentFee,
		TotalFees:      totalFees,
		SellerReceives: round2(askingPrice - totalFees),
	}
}

func lowestFactor(factors map[string]float64) float64 {
	lowest := math.MaxFloat64
	for _, f := range factors {
		if f < lowest {
			lowest = f
		}
	}
	if lowest == math.MaxFloat64 {
		return 0
	}
	return lowest
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
