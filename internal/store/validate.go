package store

import (
	"math"
	"net/url"
	"regexp"
	"time"

	"resumeforge/internal/apperr"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validateSlug 校验 slug 是否为 URL 安全格式。
func validateSlug(slug string) error {
	if len(slug) == 0 || len(slug) > 300 || !slugPattern.MatchString(slug) {
		return apperr.Invalid("slug")
	}
	return nil
}

// validateLanguageCode 校验简历语言代码（2–7 字符）。
func validateLanguageCode(code string) error {
	if len(code) < 2 || len(code) > 7 {
		return apperr.Invalid("language")
	}
	return nil
}

// validateDateRange 校验 end ≥ start；end 为空表示仍在进行，跳过检查。
func validateDateRange(start time.Time, end *time.Time) error {
	if end == nil {
		return nil
	}
	if end.Before(start) {
		return apperr.DateRange("end_date")
	}
	return nil
}

// validateGPA 校验 gpa ∈ [0.0, 4.0] 且至多一位小数。
func validateGPA(gpa *float64) error {
	if gpa == nil {
		return nil
	}
	v := *gpa
	if v < 0 || v > 4 {
		return apperr.Invalid("gpa")
	}
	scaled := v * 10
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		return apperr.Invalid("gpa")
	}
	return nil
}

// validateURL 校验可选的 URL 字段；空串合法。
func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return apperr.Invalid(field)
	}
	return nil
}
