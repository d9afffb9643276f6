package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ParseAndValidate decodes the request body into s and validates it. The
// returned error carries a 400 for an unreadable body and a 422 for
// failed validation; the app error handler renders it as {"detail": msg}.
func ParseAndValidate(c *fiber.Ctx, s any) error {
	if err := c.BodyParser(s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", ve.Field(), ve.Tag()))
			}
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"Validation failed: "+strings.Join(fields, ", "))
		}
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Validation failed")
	}

	return nil
}
