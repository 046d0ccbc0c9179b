package utils

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BerniceZTT/sales_tracker/models"
)

var registerOnce sync.Once

// RegisterValidators 向 gin 的 validator 注册自定义规则，并使用 json 字段名报告错误
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			Logger.Warn().Msg("gin validator 引擎类型未知，跳过自定义规则注册")
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			Logger.Error().Err(err).Msg("注册 notblank 规则失败")
		}
	})
}

// notBlank 字符串去掉空白后不能为空
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// BindJSON 绑定请求体，失败时返回 400 ApiError
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return BindingError(err)
	}
	return nil
}

// BindingError 将绑定/校验错误转换为 ApiError
func BindingError(err error) *ApiError {
	if errors.Is(err, models.ErrInvalidAmount) {
		return CreateBadRequestError(models.ErrInvalidAmount.Error())
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := FormatValidationError(verrs)
		fields := make([]string, 0, len(details))
		for field := range details {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, field+" "+details[field])
		}
		return CreateBadRequestError("invalid request: " + strings.Join(parts, "; ")).WithDetails(details)
	}

	return CreateBadRequestError("invalid request body")
}

// FormatValidationError 字段名 -> 可读错误
func FormatValidationError(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		out[field] = describeTag(fe)
	}
	return out
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
