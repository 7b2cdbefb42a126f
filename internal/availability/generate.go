// Package availability turns weekly templates into concrete dated slots and
// shapes them for calendar rendering. Every function here is pure: the
// viewer location and, where needed, the clock are explicit arguments.
package availability

import (
	"fmt"
	"time"

	"psicoagenda/internal/domain"
	"psicoagenda/pkg/timeutil"
)

// SlotID derives the stable identifier of a slot.
func SlotID(psychologistID string, modality domain.Modality, isoUTC string) string {
	return fmt.Sprintf("%s|%s|%s", psychologistID, modality.Tag(), isoUTC)
}

// GenerateSlotsFromWeekly expands weekly into free slots for every calendar day
// between from and to inclusive. Both bounds are floored to midnight in loc and
// template times are read as wall-clock times in loc.
//
// A nil template or a window with from after to yields no slots. A malformed
// time string aborts generation with an error wrapping timeutil.ErrInvalidTimeOfDay.
func GenerateSlotsFromWeekly(
	weekly *domain.WeeklyAvailability,
	psychologistID string,
	from, to time.Time,
	loc *time.Location,
) ([]domain.AvailabilitySlot, error) {
	if weekly == nil {
		return []domain.AvailabilitySlot{}, nil
	}

	start := timeutil.StartOfDay(from, loc)
	end := timeutil.StartOfDay(to, loc)
	slots := []domain.AvailabilitySlot{}

	for day := start; !day.After(end); day = timeutil.AddDays(day, 1) {
		weekday := domain.WeekdayOf(day)

		for _, modality := range domain.Modalities {
			for _, value := range weekly.For(modality)[weekday] {
				hour, minute, err := timeutil.ParseTimeOfDay(value)
				if err != nil {
					return nil, fmt.Errorf("шаблон %s, %s %s: %w", psychologistID, modality, weekday, err)
				}

				iso := timeutil.FormatISO(timeutil.WallClock(day, hour, minute))
				slots = append(slots, domain.AvailabilitySlot{
					ID:             SlotID(psychologistID, modality, iso),
					PsychologistID: psychologistID,
					Modality:       modality,
					Date:           iso,
					Status:         domain.SlotStatusFree,
				})
			}
		}
	}

	return slots, nil
}

// ValidateWeekly reports the first malformed weekday key or time string in weekly.
func ValidateWeekly(weekly *domain.WeeklyAvailability) error {
	if weekly == nil {
		return nil
	}
	for _, modality := range domain.Modalities {
		for weekday, times := range weekly.For(modality) {
			if !weekday.IsValid() {
				return fmt.Errorf("неизвестный день недели %q (%s)", weekday, modality)
			}
			for _, value := range times {
				if _, _, err := timeutil.ParseTimeOfDay(value); err != nil {
					return fmt.Errorf("%s %s: %w", modality, weekday, err)
				}
			}
		}
	}
	return nil
}
