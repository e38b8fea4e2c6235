// Package timezone pins every wall-clock computation to the zone restaurants
// operate in (APP_TIMEZONE, an IANA name such as "Asia/Jakarta").
//
// Reservations are stored as a calendar day plus "HH:MM" clock times with no
// zone of their own, so the helpers here are the only place where those
// values meet real instants:
//
//	today := timezone.Date(timezone.Now())
//	start, err := timezone.At("2025-03-14", "19:30")
//
// An unknown or empty zone falls back to UTC and is logged at startup.
package timezone
