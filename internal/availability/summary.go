package availability

import (
	"time"

	"psicoagenda/internal/domain"
)

// Summarize counts the grouped slots and derives the limited-availability flag:
// a professional is limited when it has at least one slot and no more than threshold.
func Summarize(grouped domain.GroupedSlots, threshold int, loc *time.Location) domain.AvailabilitySummary {
	var summary domain.AvailabilitySummary
	var next *domain.AvailabilitySlot

	for _, modality := range domain.Modalities {
		count := 0
		for _, day := range grouped.For(modality) {
			count += len(day)
			if len(day) > 0 && (next == nil || day[0].Date < next.Date) {
				first := day[0]
				next = &first
			}
		}
		if modality == domain.ModalityOnline {
			summary.Online = count
		} else {
			summary.Presencial = count
		}
	}

	summary.Total = summary.Online + summary.Presencial
	summary.Limited = summary.Total > 0 && summary.Total <= threshold
	if next != nil {
		view := LabelSlot(*next, loc)
		summary.NextAvailable = &view
	}

	return summary
}

// HasSlotOn reports whether grouped holds a slot on dateKey, restricted to
// modality when it is non-nil.
func HasSlotOn(grouped domain.GroupedSlots, dateKey string, modality *domain.Modality) bool {
	for _, m := range domain.Modalities {
		if modality != nil && *modality != m {
			continue
		}
		if len(grouped.For(m)[dateKey]) > 0 {
			return true
		}
	}
	return false
}
