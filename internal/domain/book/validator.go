package book

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// 校验失败原因码(机器可读)
const (
	ReasonRequired      = "required"
	ReasonMinLength     = "minlength"
	ReasonMaxLength     = "maxlength"
	ReasonMin           = "min"
	ReasonMax           = "max"
	ReasonEnum          = "enum"
	ReasonPattern       = "pattern"
	ReasonSystemManaged = "systemManaged"
)

// Validator 图书字段校验器
// 设计说明:
// 1. 约束声明在Book的validate标签上,校验与持久化解耦,可以脱离数据库单测
// 2. 返回按字段声明顺序排列的(field, reason, value)列表,每个字段最多一条
// 3. 字段名取json标签,与请求体字段一致
// 4. 年份上限依赖当前时间,时钟可注入
// 5. 并发安全(validator.Validate内部有缓存且并发安全)
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator 创建校验器
func NewValidator() *Validator {
	return NewValidatorWithClock(time.Now)
}

// NewValidatorWithClock 创建使用指定时钟的校验器
func NewValidatorWithClock(now func() time.Time) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// 注册失败只可能是标签名非法,属于编程错误
	mustRegister(v.validate, "isbn_pattern", func(fl validator.FieldLevel) bool {
		return isbnPattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "not_future_year", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(v.now().Year())
	})
	mustRegister(v.validate, "nonempty", func(fl validator.FieldLevel) bool {
		return fl.Field().Len() > 0
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate 校验全部字段约束
// 全部通过返回nil
func (v *Validator) Validate(b *Book) []apperrors.FieldError {
	err := v.validate.Struct(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "book", Reason: ReasonRequired, Value: nil}}
	}

	details := make([]apperrors.FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		// categories[1] → categories
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if seen[field] {
			continue
		}
		seen[field] = true

		details = append(details, apperrors.FieldError{
			Field:  field,
			Reason: reasonFor(fe),
			Value:  fe.Value(),
		})
	}
	return details
}

// Check 校验并转换为ValidationError
func (v *Validator) Check(b *Book) error {
	if details := v.Validate(b); len(details) > 0 {
		return apperrors.ErrValidation.WithDetails(details...)
	}
	return nil
}

// ValidateCounter 校验计数类字段(下载次数、书单次数)
func (v *Validator) ValidateCounter(field string, value int) []apperrors.FieldError {
	if value < 0 {
		return []apperrors.FieldError{{Field: field, Reason: ReasonMin, Value: value}}
	}
	return nil
}

// ValidateReviewStats 校验管理员直接覆盖的评分统计
func (v *Validator) ValidateReviewStats(totalRating float64, totalReviews int) []apperrors.FieldError {
	var details []apperrors.FieldError
	switch {
	case totalRating < MinScore:
		details = append(details, apperrors.FieldError{Field: "totalRating", Reason: ReasonMin, Value: totalRating})
	case totalRating > MaxScore:
		details = append(details, apperrors.FieldError{Field: "totalRating", Reason: ReasonMax, Value: totalRating})
	}
	if totalReviews < 0 {
		details = append(details, apperrors.FieldError{Field: "totalReviews", Reason: ReasonMin, Value: totalReviews})
	}
	return details
}

// CheckSystemManaged 创建时的系统字段守卫
// 4个计数字段任何一个非0都返回InvalidInput错误(不静默覆盖)
func CheckSystemManaged(b *Book) error {
	var details []apperrors.FieldError
	if b.DownloadCount != 0 {
		details = append(details, apperrors.FieldError{Field: "downloadCount", Reason: ReasonSystemManaged, Value: b.DownloadCount})
	}
	if b.TotalRating != 0 {
		details = append(details, apperrors.FieldError{Field: "totalRating", Reason: ReasonSystemManaged, Value: b.TotalRating})
	}
	if b.TotalReviews != 0 {
		details = append(details, apperrors.FieldError{Field: "totalReviews", Reason: ReasonSystemManaged, Value: b.TotalReviews})
	}
	if b.InReadingLists != 0 {
		details = append(details, apperrors.FieldError{Field: "inReadingLists", Reason: ReasonSystemManaged, Value: b.InReadingLists})
	}
	if len(details) > 0 {
		return ErrSystemManagedField.WithDetails(details...)
	}
	return nil
}

// reasonFor 把validator的标签映射为对外的原因码
// min/max作用在字符串或列表上时表示长度
func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonempty":
		return ReasonRequired
	case "min":
		if isLengthKind(fe.Kind()) {
			return ReasonMinLength
		}
		return ReasonMin
	case "max", "not_future_year":
		if fe.Tag() == "max" && isLengthKind(fe.Kind()) {
			return ReasonMaxLength
		}
		return ReasonMax
	case "oneof":
		return ReasonEnum
	case "isbn_pattern":
		return ReasonPattern
	default:
		return fe.Tag()
	}
}

func isLengthKind(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Array
}
