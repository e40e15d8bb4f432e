package routes

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"agency-site-server/logger"
	"agency-site-server/models"
)

// RegisterValidators adds the domain rules used in binding tags
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Warn().Msg("Binding engine is not validator/v10, custom rules not registered")
		return
	}

	rules := map[string]validator.Func{
		"inquiry_status": func(fl validator.FieldLevel) bool {
			return models.IsValidInquiryStatus(models.InquiryStatus(fl.Field().String()))
		},
		"review_status": func(fl validator.FieldLevel) bool {
			return models.IsValidReviewStatus(models.ReviewStatus(fl.Field().String()))
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logger.Error().Err(err).Str("tag", tag).Msg("Failed to register validator")
		}
	}
}
