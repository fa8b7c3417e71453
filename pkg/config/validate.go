package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for missing or out-of-range settings
func (c *ConfigData) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return c.validateWindow()
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("error validating configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s' check", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func (c *ConfigData) validateWindow() error {
	w := c.REST.ObservationWindow
	if w == nil {
		return nil
	}
	if w.Start > w.End {
		return fmt.Errorf("invalid configuration: rest.observation_window start %s is after end %s", w.Start, w.End)
	}
	return nil
}
