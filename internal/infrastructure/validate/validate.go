// Package validate holds small composable string validators used by the
// HTTP layer and the domain constructors.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator is a function that validates a string and returns an error if invalid
type Validator func(value string) error

// Field creates a labeled validator so errors name the offending field
func Field(name string, validators ...Validator) Validator {
	inner := Compose(validators...)
	return func(value string) error {
		if err := inner(value); err != nil {
			if !strings.HasPrefix(err.Error(), name) {
				return fmt.Errorf("%s: %w", name, err)
			}
			return err
		}
		return nil
	}
}

// Compose chains multiple validators, first error wins
func Compose(validators ...Validator) Validator {
	return func(value string) error {
		for _, v := range validators {
			if err := v(value); err != nil {
				return err
			}
		}
		return nil
	}
}

// Optional skips the remaining validators when the value is blank
func Optional(validators ...Validator) Validator {
	inner := Compose(validators...)
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return inner(v)
	}
}

func Required() Validator {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("this field is required")
		}
		return nil
	}
}

// MinLength counts runes, not bytes
func MinLength(min int) Validator {
	return func(v string) error {
		if utf8.RuneCountInString(v) < min {
			return fmt.Errorf("must be at least %d characters", min)
		}
		return nil
	}
}

// MaxLength counts runes, not bytes
func MaxLength(max int) Validator {
	return func(v string) error {
		if utf8.RuneCountInString(v) > max {
			return fmt.Errorf("must be no more than %d characters", max)
		}
		return nil
	}
}

// Matches checks a regular expression with a custom message
func Matches(pattern, message string) Validator {
	re := regexp.MustCompile(pattern)
	return func(v string) error {
		if !re.MatchString(v) {
			if message != "" {
				return fmt.Errorf("%s", message)
			}
			return fmt.Errorf("invalid format")
		}
		return nil
	}
}

func NoSpaces() Validator {
	return Matches(`^\S+$`, "must not contain spaces")
}

// Decimal accepts non-negative amounts like "10", "10.5" or "1,200.00"
func Decimal() Validator {
	return Matches(`^(\d+|\d{1,3}(,\d{3})+)(\.\d{1,2})?$`, "must be a non-negative amount with at most two decimals")
}

// OneOf checks if value is in allowed list
func OneOf(allowed ...string) Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(v string) error {
		if _, ok := set[v]; !ok {
			return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
		}
		return nil
	}
}
