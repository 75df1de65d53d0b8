package utils_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99tech/users-api/models"
	"github.com/99tech/users-api/web/utils"
)

func ptr[T any](v T) *T { return &v }

func TestValidateCreate_Normalization(t *testing.T) {
	req, err := utils.ValidateCreate(utils.CreateUserInput{
		Name:  ptr("  Ann  "),
		Email: ptr(" ANN@EX.com "),
		Age:   ptr(29.9),
	})

	require.NoError(t, err)
	assert.Equal(t, "Ann", req.Name)
	assert.Equal(t, "ann@ex.com", req.Email)
	assert.Equal(t, 29, req.Age)
}

func TestValidateCreate_AccumulatesAllViolations(t *testing.T) {
	_, err := utils.ValidateCreate(utils.CreateUserInput{
		Name:  ptr(""),
		Email: ptr("bad"),
		Age:   ptr(200.0),
	})

	verr, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Name is required and must be a non-empty string",
		"Valid email is required",
		"Age must be a number between 0 and 150",
	}, verr.Messages)
}

func TestValidateCreate_MissingFields(t *testing.T) {
	_, err := utils.ValidateCreate(utils.CreateUserInput{})

	verr, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, verr.Messages, 3)
}

func TestValidateCreate_EmailShapes(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"first.last@sub.example.org", true},
		{" padded@ex.com ", true},
		{"UPPER@EX.COM", true},
		{"a@b", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a@@b.com", false},
		{"a b@c.com", false},
		{"plain", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			_, err := utils.ValidateCreate(utils.CreateUserInput{
				Name:  ptr("Ann"),
				Email: ptr(tc.email),
				Age:   ptr(30.0),
			})

			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateCreate_AgeBounds(t *testing.T) {
	tests := []struct {
		name  string
		age   float64
		valid bool
	}{
		{"zero", 0, true},
		{"max", 150, true},
		{"negative", -1, false},
		{"above max", 150.5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := utils.ValidateCreate(utils.CreateUserInput{
				Name:  ptr("Ann"),
				Email: ptr("ann@ex.com"),
				Age:   ptr(tc.age),
			})

			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateUpdate_EmptyInputPassesThrough(t *testing.T) {
	patch, err := utils.ValidateUpdate(utils.UpdateUserInput{})

	require.NoError(t, err)
	assert.True(t, patch.Empty())
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	patch, err := utils.ValidateUpdate(utils.UpdateUserInput{
		Email: ptr(" FOO@Bar.COM "),
	})

	require.NoError(t, err)
	require.NotNil(t, patch.Email)
	assert.Equal(t, "foo@bar.com", *patch.Email)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Age)
}

func TestValidateUpdate_AccumulatesViolations(t *testing.T) {
	_, err := utils.ValidateUpdate(utils.UpdateUserInput{
		Name: ptr("   "),
		Age:  ptr(-3.0),
	})

	verr, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Name must be a non-empty string",
		"Age must be a number between 0 and 150",
	}, verr.Messages)
}

func TestValidateFilters_Empty(t *testing.T) {
	filters, err := utils.ValidateFilters(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, models.UserFilters{}, filters)
}

func TestValidateFilters_FullSet(t *testing.T) {
	filters, err := utils.ValidateFilters(url.Values{
		"name":   {" ann "},
		"email":  {"ex.com"},
		"minAge": {"18"},
		"maxAge": {"65"},
		"page":   {"2"},
		"limit":  {"50"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ann", filters.Name)
	assert.Equal(t, "ex.com", filters.Email)
	require.NotNil(t, filters.MinAge)
	assert.Equal(t, 18, *filters.MinAge)
	require.NotNil(t, filters.MaxAge)
	assert.Equal(t, 65, *filters.MaxAge)
	assert.Equal(t, 2, filters.Page)
	assert.Equal(t, 50, filters.Limit)
}

func TestValidateFilters_AccumulatesViolations(t *testing.T) {
	_, err := utils.ValidateFilters(url.Values{
		"minAge": {"-1"},
		"page":   {"0"},
		"limit":  {"101"},
	})

	verr, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"minAge must be a positive number",
		"page must be a positive number",
		"limit must be a number between 1 and 100",
	}, verr.Messages)
}

func TestValidateFilters_NonNumeric(t *testing.T) {
	_, err := utils.ValidateFilters(url.Values{
		"maxAge": {"abc"},
	})

	verr, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"maxAge must be a positive number"}, verr.Messages)
}
