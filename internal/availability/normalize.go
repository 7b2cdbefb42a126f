package availability

import (
	"fmt"
	"time"

	"psicoagenda/internal/domain"
	"psicoagenda/pkg/timeutil"
)

// Normalize converts any dataset availability shape into the template/slot pair
// the engine works with. A legacy per-weekday map applies to every declared
// modality, or to Online when none is declared. Pre-generated slots get their
// dates re-rendered in the canonical ISO layout and their ids filled in when missing.
func Normalize(
	psychologistID string,
	src domain.AvailabilitySource,
	modalities []domain.Modality,
) (*domain.WeeklyAvailability, []domain.AvailabilitySlot, error) {
	switch src.Kind {
	case domain.AvailabilityKindNone, "":
		return nil, nil, nil

	case domain.AvailabilityKindLegacy:
		weekly := &domain.WeeklyAvailability{}
		if len(modalities) == 0 {
			modalities = []domain.Modality{domain.ModalityOnline}
		}
		for _, m := range modalities {
			switch m {
			case domain.ModalityOnline:
				weekly.Online = src.Legacy
			case domain.ModalityPresencial:
				weekly.Presencial = src.Legacy
			}
		}
		if err := ValidateWeekly(weekly); err != nil {
			return nil, nil, err
		}
		return weekly, nil, nil

	case domain.AvailabilityKindWeekly:
		if err := ValidateWeekly(src.Weekly); err != nil {
			return nil, nil, err
		}
		return src.Weekly, nil, nil

	case domain.AvailabilityKindSlots:
		slots := make([]domain.AvailabilitySlot, 0, len(src.Slots))
		for _, slot := range src.Slots {
			instant, err := timeutil.ParseISO(slot.Date)
			if err != nil {
				return nil, nil, err
			}
			if !slot.Modality.IsValid() {
				return nil, nil, fmt.Errorf("неизвестный формат приема %q", slot.Modality)
			}
			if slot.Status == "" {
				slot.Status = domain.SlotStatusFree
			}
			if !slot.Status.IsValid() {
				return nil, nil, fmt.Errorf("неизвестный статус слота %q", slot.Status)
			}
			slot.PsychologistID = psychologistID
			slot.Date = timeutil.FormatISO(instant)
			if slot.ID == "" {
				slot.ID = SlotID(psychologistID, slot.Modality, slot.Date)
			}
			slots = append(slots, slot)
		}
		return nil, slots, nil

	default:
		return nil, nil, fmt.Errorf("неизвестный тип доступности %q", src.Kind)
	}
}

// SlotsInWindow generates template slots for the window and merges in the
// pre-generated slots whose instant falls on a day inside it. Duplicate ids
// keep the first occurrence.
func SlotsInWindow(p *domain.Professional, from, to time.Time, loc *time.Location) ([]domain.AvailabilitySlot, error) {
	generated, err := GenerateSlotsFromWeekly(p.Weekly, p.ID, from, to, loc)
	if err != nil {
		return nil, err
	}
	if len(p.Slots) == 0 {
		return generated, nil
	}

	start := timeutil.StartOfDay(from, loc)
	end := timeutil.AddDays(timeutil.StartOfDay(to, loc), 1)

	seen := make(map[string]bool, len(generated)+len(p.Slots))
	merged := make([]domain.AvailabilitySlot, 0, len(generated)+len(p.Slots))
	for _, slot := range generated {
		seen[slot.ID] = true
		merged = append(merged, slot)
	}
	for _, slot := range p.Slots {
		if seen[slot.ID] {
			continue
		}
		instant, err := timeutil.ParseISO(slot.Date)
		if err != nil || instant.Before(start) || !instant.Before(end) {
			continue
		}
		seen[slot.ID] = true
		merged = append(merged, slot)
	}

	return merged, nil
}
