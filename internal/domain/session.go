package domain

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCanceled  SessionStatus = "canceled"
)

func (s SessionStatus) IsValid() bool {
	return s == SessionStatusScheduled || s == SessionStatusCanceled
}

// ScheduledSession is the persisted booking record. Field names match the stored JSON entry.
type ScheduledSession struct {
	ID               string        `json:"id"`
	SlotID           string        `json:"slotId,omitempty"`
	PsychologistID   string        `json:"psychologistId"`
	PsychologistName string        `json:"psychologistName"`
	Modality         Modality      `json:"modality"`
	Datetime         string        `json:"datetime"`
	CreatedAt        string        `json:"createdAt"`
	Status           SessionStatus `json:"status"`
	SessionMinutes   int           `json:"sessionMinutes"`
	PriceUSD         float64       `json:"priceUSD"`
	Notes            string        `json:"notes,omitempty"`
}

type BookSessionDTO struct {
	PsychologistID string   `json:"psychologist_id" binding:"required"`
	Modality       Modality `json:"modality" binding:"required,oneof=Online Presencial"`
	Datetime       string   `json:"datetime" binding:"required"`
	SlotID         string   `json:"slot_id,omitempty"`
	Notes          string   `json:"notes,omitempty" binding:"max=1000"`
}

type SessionView struct {
	ScheduledSession
	LocalLabel string `json:"local_label"`
}

type SessionsOverview struct {
	Upcoming []SessionView `json:"upcoming"`
	History  []SessionView `json:"history"`
}
