package templates_test

import (
	"testing"

	"dinebook/internal/domains/notification/model"
	"dinebook/internal/domains/notification/templates"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	job := model.EmailJob{
		Template:        model.TemplateConfirmation,
		RestaurantName:  "Sea <Breeze>",
		ReservationDate: "2025-06-01",
		StartTime:       "19:00",
		EndTime:         "21:00",
		GuestCount:      4,
		TotalPrice:      26.25,
		ConfirmationURL: "http://localhost:3000/confirm-reservation?token=abc",
	}

	t.Run("confirmation", func(t *testing.T) {
		subject, body, err := templates.Render(model.TemplateConfirmation, job)

		assert.NoError(t, err)
		assert.Equal(t, "Please confirm your reservation", subject)
		assert.Contains(t, body, "confirm-reservation?token=abc")
		assert.Contains(t, body, "26.25")
		assert.Contains(t, body, "Sea &lt;Breeze&gt;")
	})

	t.Run("confirmed", func(t *testing.T) {
		_, body, err := templates.Render(model.TemplateConfirmed, job)

		assert.NoError(t, err)
		assert.Contains(t, body, "19:00 - 21:00")
		assert.NotContains(t, body, "receipt")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, err := templates.Render("reminder", job)
		assert.Error(t, err)
	})
}
