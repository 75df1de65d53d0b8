package utils

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/99tech/users-api/models"
)

// emailRe is intentionally permissive: one @ separating non-whitespace
// local and domain parts, with a literal dot in the domain.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateUserInput is the raw create payload before validation. Pointers
// distinguish absent fields from zero values; Age stays a float so that
// fractional input can be floored during normalization.
type CreateUserInput struct {
	Name  *string  `json:"name"`
	Email *string  `json:"email"`
	Age   *float64 `json:"age"`
}

// UpdateUserInput is the raw update payload before validation.
type UpdateUserInput struct {
	Name  *string  `json:"name"`
	Email *string  `json:"email"`
	Age   *float64 `json:"age"`
}

// ValidateCreate checks a create payload and returns the normalized
// request. All violations are accumulated before failing.
func ValidateCreate(input CreateUserInput) (models.CreateUserRequest, error) {
	var errs []string

	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		errs = append(errs, "Name is required and must be a non-empty string")
	}

	if input.Email == nil || !isValidEmail(strings.TrimSpace(*input.Email)) {
		errs = append(errs, "Valid email is required")
	}

	if input.Age == nil || *input.Age < 0 || *input.Age > 150 {
		errs = append(errs, "Age must be a number between 0 and 150")
	}

	if len(errs) > 0 {
		return models.CreateUserRequest{}, &models.ValidationError{Messages: errs}
	}

	return models.CreateUserRequest{
		Name:  strings.TrimSpace(*input.Name),
		Email: normalizeEmail(*input.Email),
		Age:   int(math.Floor(*input.Age)),
	}, nil
}

// ValidateUpdate checks an update payload. Every field is optional;
// fields present are validated and normalized with the create rules,
// absent fields pass through as nil.
func ValidateUpdate(input UpdateUserInput) (models.UpdateUserRequest, error) {
	var errs []string

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errs = append(errs, "Name must be a non-empty string")
	}

	if input.Email != nil && !isValidEmail(strings.TrimSpace(*input.Email)) {
		errs = append(errs, "Email must be valid")
	}

	if input.Age != nil && (*input.Age < 0 || *input.Age > 150) {
		errs = append(errs, "Age must be a number between 0 and 150")
	}

	if len(errs) > 0 {
		return models.UpdateUserRequest{}, &models.ValidationError{Messages: errs}
	}

	var patch models.UpdateUserRequest

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		patch.Name = &name
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		patch.Email = &email
	}

	if input.Age != nil {
		age := int(math.Floor(*input.Age))
		patch.Age = &age
	}

	return patch, nil
}

// ValidateFilters checks listing query parameters. Absent or unrecognized
// parameters are omitted from the result; invalid values accumulate.
func ValidateFilters(query url.Values) (models.UserFilters, error) {
	var (
		errs    []string
		filters models.UserFilters
	)

	if name := strings.TrimSpace(query.Get("name")); name != "" {
		filters.Name = name
	}

	if email := strings.TrimSpace(query.Get("email")); email != "" {
		filters.Email = email
	}

	if raw := query.Get("minAge"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, "minAge must be a positive number")
		} else {
			filters.MinAge = &n
		}
	}

	if raw := query.Get("maxAge"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, "maxAge must be a positive number")
		} else {
			filters.MaxAge = &n
		}
	}

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errs = append(errs, "page must be a positive number")
		} else {
			filters.Page = n
		}
	}

	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			errs = append(errs, "limit must be a number between 1 and 100")
		} else {
			filters.Limit = n
		}
	}

	if len(errs) > 0 {
		return models.UserFilters{}, &models.ValidationError{Messages: errs}
	}

	return filters, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
