package domain

// AvailabilityKind tags which shape a dataset record used for its availability.
type AvailabilityKind string

const (
	AvailabilityKindNone   AvailabilityKind = "none"
	AvailabilityKindLegacy AvailabilityKind = "legacy"
	AvailabilityKindWeekly AvailabilityKind = "weekly"
	AvailabilityKindSlots  AvailabilityKind = "slots"
)

// AvailabilitySource is the raw availability of a dataset record before normalization.
// Exactly one of Legacy, Weekly or Slots is meaningful, selected by Kind.
type AvailabilitySource struct {
	Kind   AvailabilityKind
	Legacy WeeklySchedule
	Weekly *WeeklyAvailability
	Slots  []AvailabilitySlot
}

type Professional struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Image           string     `json:"image"`
	Specialties     []string   `json:"specialties"`
	Modalities      []Modality `json:"modalities"`
	ExperienceYears int        `json:"experience_years"`
	SessionMinutes  int        `json:"session_minutes"`
	PriceUSD        float64    `json:"price_usd"`
	Bio             string     `json:"bio"`

	Weekly *WeeklyAvailability `json:"weekly_availability,omitempty"`
	Slots  []AvailabilitySlot  `json:"-"`
}

func (p *Professional) Offers(m Modality) bool {
	for _, offered := range p.Modalities {
		if offered == m {
			return true
		}
	}
	return false
}

type ProfessionalFilter struct {
	Query       string
	Specialties []string
	Modality    *Modality
	Date        string
	Timezone    string
}

type ProfessionalListQuery struct {
	Query       string   `form:"q"`
	Specialties []string `form:"specialty"`
	Modality    string   `form:"modality" binding:"omitempty,oneof=Online Presencial"`
	Date        string   `form:"date"`
	Timezone    string   `form:"tz"`
}

type ProfessionalView struct {
	Professional
	Availability AvailabilitySummary `json:"availability"`
}
