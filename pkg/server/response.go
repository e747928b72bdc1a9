package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Metadata 响应元信息，引导调用方走完六步流程
type Metadata struct {
	// Step 本次响应关联的步骤序号
	Step int `json:"step,omitempty"`
	// ValidationStatus 校验结论：passed / failed
	ValidationStatus string `json:"validation_status,omitempty"`
	// NextSuggestedTools 建议调用方接下来使用的接口
	NextSuggestedTools []string `json:"next_suggested_tools,omitempty"`
}

// ErrorBody 错误响应体
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// ValidValues 合法取值集合（仅查询目标不存在时携带）
	ValidValues []string `json:"valid_values,omitempty"`
}

// Envelope 统一响应信封
type Envelope struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
	Metadata *Metadata  `json:"metadata,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func respondOKWithMeta(c *gin.Context, data any, meta *Metadata) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Metadata: meta})
}

func respondError(c *gin.Context, status int, code, message string, validValues []string) {
	c.JSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message, ValidValues: validValues},
	})
}
