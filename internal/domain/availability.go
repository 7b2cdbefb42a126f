package domain

import (
	"time"
)

type Weekday string

const (
	WeekdayMon Weekday = "mon"
	WeekdayTue Weekday = "tue"
	WeekdayWed Weekday = "wed"
	WeekdayThu Weekday = "thu"
	WeekdayFri Weekday = "fri"
	WeekdaySat Weekday = "sat"
	WeekdaySun Weekday = "sun"
)

// Weekdays is indexed Monday-first.
var Weekdays = [7]Weekday{WeekdayMon, WeekdayTue, WeekdayWed, WeekdayThu, WeekdayFri, WeekdaySat, WeekdaySun}

// WeekdayOf returns the template key for t's calendar day in t's location.
func WeekdayOf(t time.Time) Weekday {
	return Weekdays[(int(t.Weekday())+6)%7]
}

func (d Weekday) IsValid() bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

type Modality string

const (
	ModalityOnline     Modality = "Online"
	ModalityPresencial Modality = "Presencial"
)

var Modalities = []Modality{ModalityOnline, ModalityPresencial}

func (m Modality) IsValid() bool {
	return m == ModalityOnline || m == ModalityPresencial
}

// Tag is the short code used inside slot ids.
func (m Modality) Tag() string {
	switch m {
	case ModalityOnline:
		return "on"
	case ModalityPresencial:
		return "pr"
	default:
		return ""
	}
}

type SlotStatus string

const (
	SlotStatusFree     SlotStatus = "free"
	SlotStatusHeld     SlotStatus = "held"
	SlotStatusBooked   SlotStatus = "booked"
	SlotStatusCanceled SlotStatus = "canceled"
)

func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusFree, SlotStatusHeld, SlotStatusBooked, SlotStatusCanceled:
		return true
	}
	return false
}

// WeeklySchedule maps a weekday to local "HH:MM" start times.
type WeeklySchedule map[Weekday][]string

type WeeklyAvailability struct {
	Online     WeeklySchedule `json:"online,omitempty"`
	Presencial WeeklySchedule `json:"presencial,omitempty"`
}

func (w *WeeklyAvailability) For(m Modality) WeeklySchedule {
	if w == nil {
		return nil
	}
	switch m {
	case ModalityOnline:
		return w.Online
	case ModalityPresencial:
		return w.Presencial
	default:
		return nil
	}
}

func (w *WeeklyAvailability) IsEmpty() bool {
	if w == nil {
		return true
	}
	for _, m := range Modalities {
		for _, times := range w.For(m) {
			if len(times) > 0 {
				return false
			}
		}
	}
	return true
}

type AvailabilitySlot struct {
	ID             string     `json:"id"`
	PsychologistID string     `json:"psychologistId"`
	Modality       Modality   `json:"modality"`
	Date           string     `json:"date"`
	Status         SlotStatus `json:"status"`
}

type GroupedSlots struct {
	Online     map[string][]AvailabilitySlot `json:"online"`
	Presencial map[string][]AvailabilitySlot `json:"presencial"`
}

func (g GroupedSlots) For(m Modality) map[string][]AvailabilitySlot {
	if m == ModalityOnline {
		return g.Online
	}
	return g.Presencial
}

type SlotView struct {
	AvailabilitySlot
	Label string `json:"label"`
}

type AvailabilitySummary struct {
	Total         int       `json:"total"`
	Online        int       `json:"online"`
	Presencial    int       `json:"presencial"`
	Limited       bool      `json:"limited"`
	NextAvailable *SlotView `json:"next_available,omitempty"`
}

type AvailabilityQuery struct {
	From     string       `form:"from"`
	To       string       `form:"to"`
	Timezone string       `form:"tz"`
	Statuses []SlotStatus `form:"status"`
}

type AvailabilityView struct {
	PsychologistID string                `json:"psychologist_id"`
	From           string                `json:"from"`
	To             string                `json:"to"`
	Timezone       string                `json:"timezone"`
	Online         map[string][]SlotView `json:"online"`
	Presencial     map[string][]SlotView `json:"presencial"`
	Summary        AvailabilitySummary   `json:"summary"`
}
