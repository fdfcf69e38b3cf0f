package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/mindsync/wellness/internal/model"
)

const (
	MinAge         = 0
	MaxAge         = 120
	MaxLocationLen = 100
	MaxGoalLen     = 100
	MaxBioLen      = 300
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

func ValidateAge(age int) error {
	if age < MinAge {
		return fieldError("age", "age cannot be negative")
	}
	if age > MaxAge {
		return fieldError("age", "please enter a valid age")
	}
	return nil
}

func ValidateGender(gender string) error {
	switch gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther, model.GenderUnspecified:
		return nil
	}
	return fieldError("gender", "gender must be one of Male, Female, Other")
}

func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fieldError("phone", "please enter a valid 10-digit phone number")
	}
	return nil
}

func ValidateLocation(location string) error {
	return maxLength("location", location, MaxLocationLen)
}

func ValidateGoal(goal string) error {
	return maxLength("goal", goal, MaxGoalLen)
}

func ValidateBio(bio string) error {
	return maxLength("bio", bio, MaxBioLen)
}

func maxLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fieldError(field, fmt.Sprintf("%s cannot exceed %d characters", field, limit))
	}
	return nil
}
