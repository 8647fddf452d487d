package httpserver

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/career-match/internal/domain"
	"github.com/fairyhunter13/career-match/pkg/textx"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateID validates a path identifier such as a candidate, job or user id.
func ValidateID(field, id string) ValidationResult {
	fail := func(code, msg string) ValidationResult {
		return ValidationResult{Errors: []ValidationError{{Field: field, Code: code, Message: msg}}}
	}
	switch {
	case id == "":
		return fail("REQUIRED", field+" is required")
	case len(id) > 100:
		return fail("TOO_LONG", field+" is too long (max 100 characters)")
	case !validID.MatchString(id):
		return fail("INVALID_FORMAT", field+" contains invalid characters")
	}
	return ValidationResult{Valid: true}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() {
		vld = validator.New()
		vld.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return vld
}

// filterQuery mirrors domain.MatchFilters as received on the query string.
type filterQuery struct {
	Goal     string `json:"goal" validate:"max=100"`
	Level    string `json:"level" validate:"max=100"`
	Sector   string `json:"sector" validate:"max=100"`
	Language string `json:"language" validate:"max=100"`
	Location string `json:"location" validate:"max=100"`
	MinScore *int   `json:"min_score" validate:"omitempty,min=0,max=100"`
}

// parseFilters reads the optional filter query parameters. It returns nil
// filters when none are present.
func parseFilters(q map[string][]string) (*domain.MatchFilters, map[string]string, error) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return textx.SanitizeText(v[0])
		}
		return ""
	}
	fq := filterQuery{
		Goal:     get("goal"),
		Level:    get("level"),
		Sector:   get("sector"),
		Language: get("language"),
		Location: get("location"),
	}
	if raw := get("min_score"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, map[string]string{"min_score": "integer"}, fmt.Errorf("%w: min_score must be an integer", domain.ErrInvalidArgument)
		}
		fq.MinScore = &n
	}
	if verrs := validationDetails(getValidator().Struct(fq)); verrs != nil {
		return nil, verrs, fmt.Errorf("%w: invalid filters", domain.ErrInvalidArgument)
	}
	if fq == (filterQuery{}) {
		return nil, nil, nil
	}
	return &domain.MatchFilters{
		Goal:     fq.Goal,
		Level:    fq.Level,
		Sector:   fq.Sector,
		Language: fq.Language,
		Location: fq.Location,
		MinScore: fq.MinScore,
	}, nil, nil
}

// validationDetails flattens validator errors into json field -> tag.
func validationDetails(err error) map[string]string {
	if err == nil {
		return nil
	}
	verrs := map[string]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			verrs[fe.Field()] = fe.Tag()
		}
	}
	return verrs
}
