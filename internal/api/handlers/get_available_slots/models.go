package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	SpaceID      int64     `json:"spaceId"`
	UsesDefaults bool      `json:"usesDefaults"`
	StayUnit     string    `json:"stayUnit"`
	Slots        []Slot    `json:"slots"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

type Slot struct {
	Start string `json:"start"` // "2026-03-04T14:00"
	End   string `json:"end"`
	Units int    `json:"units"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]Slot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, Slot{
			Start: s.Start.Format(domain.DateTimeFormat),
			End:   s.End.Format(domain.DateTimeFormat),
			Units: s.Units,
		})
	}

	return &SlotsResponse{
		SpaceID:      resp.SpaceID,
		UsesDefaults: resp.UsesDefaults,
		StayUnit:     resp.StayUnit,
		Slots:        slots,
		GeneratedAt:  resp.GeneratedAt,
	}
}
