package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/query"
	"github.com/jonasbyc/buycycle-production-mcp/pkg/validate"
)

func (s *Server) handleHealth(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

// ============================================================================
// 第1步：车型 / 品牌 / 型号
// ============================================================================

func (s *Server) handleListBikeTypes(c *gin.Context) {
	respondOK(c, s.queries.ListBikeTypes())
}

func (s *Server) handleListBrands(c *gin.Context) {
	if keyword := c.Query("search"); keyword != "" {
		respondOK(c, s.queries.SearchBrands(keyword))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "0"))
	brands, meta := s.queries.ListBrands(page, perPage)
	respondOK(c, gin.H{"brands": brands, "pagination": meta})
}

func (s *Server) handleListModels(c *gin.Context) {
	models, err := s.queries.ListModels(c.Param("brand"), c.Query("bike_type"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, models)
}

func (s *Server) handleModelDetails(c *gin.Context) {
	model, err := s.queries.ModelDetails(c.Param("brand"), c.Query("bike_type"), c.Param("model"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, model)
}

// ============================================================================
// 第2步：选项与字段要求
// ============================================================================

func (s *Server) handleRequirements(c *gin.Context) {
	reqs, err := s.queries.RequirementsFor(c.Param("bike_type"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, reqs)
}

func (s *Server) handleOptions(c *gin.Context) {
	opts, err := s.queries.OptionsFor(c.Param("bike_type"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, opts)
}

func (s *Server) handleComponentsForBikeType(c *gin.Context) {
	groups, err := s.queries.ComponentsForBikeType(c.Param("bike_type"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, groups)
}

func (s *Server) handleComponentCategories(c *gin.Context) {
	respondOK(c, s.queries.ComponentCategories())
}

// ============================================================================
// 第3步：国家 / 城市 / 寄送
// ============================================================================

func (s *Server) handleListCountries(c *gin.Context) {
	respondOK(c, s.queries.ListCountries())
}

func (s *Server) handleCountryDetails(c *gin.Context) {
	country, err := s.queries.CountryDetails(c.Param("code"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, country)
}

func (s *Server) handleCities(c *gin.Context) {
	cities, err := s.queries.SearchCities(c.Param("code"), c.Query("search"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, cities)
}

func (s *Server) handleShippingOptions(c *gin.Context) {
	options, err := s.queries.ShippingOptions(c.Param("code"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, options)
}

// ============================================================================
// 第5步：货币 / 支付 / 定价
// ============================================================================

func (s *Server) handleListCurrencies(c *gin.Context) {
	respondOK(c, s.queries.ListCurrencies())
}

func (s *Server) handleCurrencyDetails(c *gin.Context) {
	currency, err := s.queries.CurrencyDetails(c.Param("code"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, currency)
}

func (s *Server) handlePaymentMethods(c *gin.Context) {
	methods, err := s.queries.PaymentMethods(c.Param("code"))
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, methods)
}

type priceSuggestionRequest struct {
	BrandID    string `json:"brand_id" binding:"required"`
	BikeTypeID string `json:"bike_type_id" binding:"required"`
	ModelID    string `json:"model_id" binding:"required"`
	Year       int    `json:"year" binding:"required"`
	Condition  string `json:"condition" binding:"required"`
}

func (s *Server) handlePriceSuggestion(c *gin.Context) {
	var req priceSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	suggestion, err := s.queries.SuggestPrice(req.BrandID, req.BikeTypeID, req.ModelID, req.Year, req.Condition)
	if err != nil {
		s.respondQueryError(c, err)
		return
	}
	respondOK(c, suggestion)
}

type feesRequest struct {
	AskingPrice float64 `json:"asking_price" binding:"required,gt=0"`
}

func (s *Server) handleFees(c *gin.Context) {
	var req feesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	respondOK(c, s.queries.CalculateFees(req.AskingPrice))
}

// ============================================================================
// 第6步：照片指引
// ============================================================================

func (s *Server) handlePhotoRequirements(c *gin.Context) {
	respondOK(c, s.queries.PhotoRequirements())
}

// ============================================================================
// 各步骤校验
// ============================================================================

// handleValidateStep 校验某一步的提交
// 数据违规返回 200 与失败结果（违规是业务数据，不是传输错误）；
// 引擎致命错误返回 500
func (s *Server) handleValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil || step < 1 || step > 6 {
		respondError(c, http.StatusBadRequest, "INVALID_STEP", "步骤序号必须在 1-6 之间", nil)
		return
	}

	var payload map[string]any
	if err = c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	result, err := s.engine.ValidateStep(step, payload)
	if err != nil {
		if errors.Is(err, validate.ErrMalformedPayload) {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
			return
		}
		s.log.Error("校验引擎内部错误", zap.Int("step", step), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "校验引擎内部错误", nil)
		return
	}

	respondOKWithMeta(c, result, &Metadata{
		Step:               step,
		ValidationStatus:   validationStatus(result.Valid),
		NextSuggestedTools: nextSuggestedTools(step, result.Valid),
	})
}

func validationStatus(valid bool) string {
	if valid {
		return "passed"
	}
	return "failed"
}

// nextSuggestedTools 按步骤与校验结论给出建议的后续接口
// 校验失败时建议修正后重试本步，成功时引导到下一步的数据接口
var stepTools = map[int][]string{
	1: {"GET /api/v1/bike-types/{bike_type}/requirements", "GET /api/v1/bike-types/{bike_type}/options"},
	2: {"GET /api/v1/countries", "GET /api/v1/countries/{code}/shipping-options"},
	3: {"GET /api/v1/components/categories", "GET /api/v1/bike-types/{bike_type}/components"},
	4: {"GET /api/v1/currencies", "POST /api/v1/pricing/suggestion"},
	5: {"GET /api/v1/photos/requirements"},
	6: {},
}

func nextSuggestedTools(step int, valid bool) []string {
	if !valid {
		return []string{"POST /api/v1/listing/steps/" + strconv.Itoa(step) + "/validate"}
	}
	return stepTools[step]
}

// respondQueryError 把查询错误映射成 HTTP 响应
func (s *Server) respondQueryError(c *gin.Context, err error) {
	var notFound *query.NotFoundError
	if errors.As(err, &notFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", notFound.Error(), notFound.ValidValues)
		return
	}
	s.log.Error("查询失败", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "查询失败", nil)
}
