package availability

import (
	"testing"
	"time"

	"psicoagenda/internal/domain"
)

func TestNormalize_LegacyAppliesToDeclaredModalities(t *testing.T) {
	src := domain.AvailabilitySource{
		Kind:   domain.AvailabilityKindLegacy,
		Legacy: domain.WeeklySchedule{domain.WeekdayMon: {"09:00"}},
	}

	weekly, slots, err := Normalize("p", src, []domain.Modality{domain.ModalityOnline, domain.ModalityPresencial})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots != nil {
		t.Errorf("expected no pre-generated slots, got %v", slots)
	}
	if len(weekly.Online[domain.WeekdayMon]) != 1 || len(weekly.Presencial[domain.WeekdayMon]) != 1 {
		t.Errorf("weekly = %+v, want both modalities", weekly)
	}
}

func TestNormalize_LegacyWithoutModalitiesIsOnline(t *testing.T) {
	src := domain.AvailabilitySource{
		Kind:   domain.AvailabilityKindLegacy,
		Legacy: domain.WeeklySchedule{domain.WeekdayMon: {"09:00"}},
	}

	weekly, _, err := Normalize("p", src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weekly.Online == nil || weekly.Presencial != nil {
		t.Errorf("weekly = %+v, want online only", weekly)
	}
}

func TestNormalize_WeeklyInvalidTime(t *testing.T) {
	src := domain.AvailabilitySource{
		Kind:   domain.AvailabilityKindWeekly,
		Weekly: &domain.WeeklyAvailability{Online: domain.WeeklySchedule{domain.WeekdayMon: {"late"}}},
	}

	if _, _, err := Normalize("p", src, nil); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestNormalize_SlotsCanonicalized(t *testing.T) {
	src := domain.AvailabilitySource{
		Kind: domain.AvailabilityKindSlots,
		Slots: []domain.AvailabilitySlot{
			{Modality: domain.ModalityOnline, Date: "2025-08-20T18:00:00Z"},
			{ID: "custom", Modality: domain.ModalityPresencial, Date: "2025-08-21T15:00:00-03:00", Status: domain.SlotStatusBooked},
		},
	}

	weekly, slots, err := Normalize("psy9", src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weekly != nil {
		t.Errorf("expected no template, got %+v", weekly)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Date != "2025-08-20T18:00:00.000Z" || slots[0].ID != "psy9|on|2025-08-20T18:00:00.000Z" {
		t.Errorf("first slot = %+v", slots[0])
	}
	if slots[0].Status != domain.SlotStatusFree || slots[0].PsychologistID != "psy9" {
		t.Errorf("first slot defaults = %+v", slots[0])
	}
	if slots[1].ID != "custom" || slots[1].Date != "2025-08-21T18:00:00.000Z" || slots[1].Status != domain.SlotStatusBooked {
		t.Errorf("second slot = %+v", slots[1])
	}
}

func TestNormalize_SlotsInvalid(t *testing.T) {
	bad := []domain.AvailabilitySlot{
		{Modality: domain.ModalityOnline, Date: "not-a-date"},
		{Modality: "Chat", Date: "2025-08-20T18:00:00Z"},
		{Modality: domain.ModalityOnline, Date: "2025-08-20T18:00:00Z", Status: "gone"},
	}
	for _, s := range bad {
		src := domain.AvailabilitySource{Kind: domain.AvailabilityKindSlots, Slots: []domain.AvailabilitySlot{s}}
		if _, _, err := Normalize("p", src, nil); err == nil {
			t.Errorf("expected error for %+v", s)
		}
	}
}

func TestNormalize_None(t *testing.T) {
	weekly, slots, err := Normalize("p", domain.AvailabilitySource{}, nil)
	if err != nil || weekly != nil || slots != nil {
		t.Errorf("Normalize(empty) = %v, %v, %v", weekly, slots, err)
	}
}

func TestSlotsInWindow_MergesAndDedupes(t *testing.T) {
	loc := mustLoadLoc(t, "America/Argentina/Buenos_Aires")
	p := &domain.Professional{
		ID:     "p",
		Weekly: &domain.WeeklyAvailability{Online: domain.WeeklySchedule{domain.WeekdayMon: {"09:00"}}},
		Slots: []domain.AvailabilitySlot{
			{ID: "p|on|2023-01-02T12:00:00.000Z", PsychologistID: "p", Modality: domain.ModalityOnline, Date: "2023-01-02T12:00:00.000Z", Status: domain.SlotStatusFree},
			{ID: "extra", PsychologistID: "p", Modality: domain.ModalityPresencial, Date: "2023-01-03T14:00:00.000Z", Status: domain.SlotStatusFree},
			{ID: "outside", PsychologistID: "p", Modality: domain.ModalityPresencial, Date: "2023-02-01T14:00:00.000Z", Status: domain.SlotStatusFree},
		},
	}
	from := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)
	to := time.Date(2023, 1, 8, 0, 0, 0, 0, loc)

	slots, err := SlotsInWindow(p, from, to, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d: %v", len(slots), slots)
	}
	if slots[1].ID != "extra" {
		t.Errorf("second slot = %q, want extra", slots[1].ID)
	}
}
