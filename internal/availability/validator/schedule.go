package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ScheduleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewScheduleValidator(log *logger.Logger) *ScheduleValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock", validateClock); err != nil {
		log.Fatal("Failed to register 'clock' validator", "error", err)
	}
	if err := v.RegisterValidation("caldate", validateCalendarDate); err != nil {
		log.Fatal("Failed to register 'caldate' validator", "error", err)
	}

	log.Info("Schedule validator initialized successfully")

	return &ScheduleValidator{
		validate: v,
		logger:   log,
	}
}

// validateClock accepts wall-clock times in HH:MM 24-hour format.
func validateClock(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse(model.ClockLayout, value)
	return err == nil
}

// validateCalendarDate accepts calendar dates in YYYY-MM-DD format.
func validateCalendarDate(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	if len(value) != 10 {
		return false
	}
	_, err := time.Parse(model.CalendarDateLayout, value)
	return err == nil
}

func (v *ScheduleValidator) Validate(sc *model.StudioSchedule) error {
	if err := v.validate.Struct(sc); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if errs := v.crossFieldErrors(sc); len(errs) > 0 {
		return errs
	}
	return nil
}

// crossFieldErrors checks the ordering constraints the tag validators
// cannot express: open < close per day, lunch start < end, and time-off
// start <= end.
func (v *ScheduleValidator) crossFieldErrors(sc *model.StudioSchedule) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[int]bool, len(sc.WeeklyHours))
	for _, day := range sc.WeeklyHours {
		if seen[day.Weekday] {
			errs = append(errs, ValidationError{
				Field:   "weekly_hours",
				Message: fmt.Sprintf("duplicate entry for weekday %d", day.Weekday),
			})
		}
		seen[day.Weekday] = true

		if day.Open && day.OpensAt >= day.ClosesAt {
			errs = append(errs, ValidationError{
				Field:   "weekly_hours",
				Message: fmt.Sprintf("closes_at must be after opens_at for weekday %d", day.Weekday),
			})
		}
	}

	if sc.LunchBreak.Enabled && sc.LunchBreak.Start >= sc.LunchBreak.End {
		errs = append(errs, ValidationError{
			Field:   "lunch_break",
			Message: "lunch break end must be after start",
		})
	}

	for i, block := range sc.TimeOff {
		if block.StartDate > block.EndDate {
			errs = append(errs, ValidationError{
				Field:   "time_off",
				Message: fmt.Sprintf("block %d: end_date must not be before start_date", i),
			})
		}
	}

	return errs
}

func (v *ScheduleValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "required_if":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s entries or characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must have at most %s entries or characters", err.Field(), err.Param())
		case "clock":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		case "caldate":
			message = fmt.Sprintf("%s must be in YYYY-MM-DD format", err.Field())
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA time zone", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
