package timezone

import (
	"dinebook/config"
	"dinebook/shared/constant"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("no timezone configured, reservations are evaluated in UTC")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("failed to load timezone, falling back to UTC")

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("application timezone initialized")
}

func GetLocation() *time.Location {
	return appLocation
}

func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Date renders t as a reservation day.
func Date(t time.Time) string {
	return Format(t, constant.DateLayout)
}

// Clock renders t as a reservation "HH:MM" time.
func Clock(t time.Time) string {
	return Format(t, constant.TimeLayout)
}

// At resolves a reservation day and clock time to an instant in the application zone.
func At(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(constant.DateLayout+" "+constant.TimeLayout, date+" "+clock, appLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reservation slot %s %s: %w", date, clock, err)
	}

	return t, nil
}
