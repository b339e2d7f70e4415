package utils

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// QRPayload is the document embedded in a registration's QR image. The
// field names match what the check-in scanner expects.
type QRPayload struct {
	UserID           uuid.UUID `json:"userId"`
	EventID          uuid.UUID `json:"eventId"`
	RegistrationTime time.Time `json:"registrationTime"`
}

// GenerateRegistrationQR renders the payload as a PNG data URL suitable
// for direct display in the SPA.
func GenerateRegistrationQR(userID, eventID uuid.UUID, registrationTime time.Time) (string, error) {
	payload, err := json.Marshal(QRPayload{
		UserID:           userID,
		EventID:          eventID,
		RegistrationTime: registrationTime,
	})
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
