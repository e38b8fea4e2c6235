package model

const (
	TemplateConfirmation = "confirmation"
	TemplateConfirmed    = "confirmed"
)

// EmailJob is the message carried on the email queue.
type EmailJob struct {
	Template        string  `json:"template"`
	To              string  `json:"to"`
	ReservationID   string  `json:"reservation_id"`
	RestaurantName  string  `json:"restaurant_name"`
	ReservationDate string  `json:"reservation_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	GuestCount      int     `json:"guest_count"`
	TotalPrice      float64 `json:"total_price"`
	ConfirmationURL string  `json:"confirmation_url,omitempty"`
	ReceiptURL      string  `json:"receipt_url,omitempty"`
}
