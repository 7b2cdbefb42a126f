package availability

import (
	"sort"
	"time"

	"psicoagenda/internal/domain"
	"psicoagenda/pkg/timeutil"
)

var defaultStatuses = []domain.SlotStatus{domain.SlotStatusFree}

// GroupSlotsByDateAndModality buckets slots by modality and by the calendar day
// of their instant in loc. Only slots whose status is in statuses are kept
// (free only when statuses is empty). Each bucket is sorted ascending by instant.
// Slots with an unparseable date or an unknown modality are dropped.
func GroupSlotsByDateAndModality(
	slots []domain.AvailabilitySlot,
	loc *time.Location,
	statuses ...domain.SlotStatus,
) domain.GroupedSlots {
	if len(statuses) == 0 {
		statuses = defaultStatuses
	}
	allowed := make(map[domain.SlotStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	grouped := domain.GroupedSlots{
		Online:     map[string][]domain.AvailabilitySlot{},
		Presencial: map[string][]domain.AvailabilitySlot{},
	}

	for _, slot := range slots {
		if !allowed[slot.Status] || !slot.Modality.IsValid() {
			continue
		}
		instant, err := timeutil.ParseISO(slot.Date)
		if err != nil {
			continue
		}
		key := timeutil.FormatDateKey(instant, loc)
		bucket := grouped.For(slot.Modality)
		bucket[key] = append(bucket[key], slot)
	}

	for _, bucket := range []map[string][]domain.AvailabilitySlot{grouped.Online, grouped.Presencial} {
		for key := range bucket {
			day := bucket[key]
			sort.SliceStable(day, func(i, j int) bool { return day[i].Date < day[j].Date })
		}
	}

	return grouped
}

// LabelSlots attaches the local HH:MM label to every slot in a bucket map.
func LabelSlots(buckets map[string][]domain.AvailabilitySlot, loc *time.Location) map[string][]domain.SlotView {
	views := make(map[string][]domain.SlotView, len(buckets))
	for key, slots := range buckets {
		day := make([]domain.SlotView, 0, len(slots))
		for _, slot := range slots {
			day = append(day, LabelSlot(slot, loc))
		}
		views[key] = day
	}
	return views
}

// LabelSlot attaches the HH:MM label of the slot instant in loc; an unparseable date gets an empty label.
func LabelSlot(slot domain.AvailabilitySlot, loc *time.Location) domain.SlotView {
	label, err := timeutil.FormatLocalTimeLabel(slot.Date, loc)
	if err != nil {
		label = ""
	}
	return domain.SlotView{AvailabilitySlot: slot, Label: label}
}
