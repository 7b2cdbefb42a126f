package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"psicoagenda/internal/domain"
)

func bookDTO(pid string, m domain.Modality, datetime string) domain.BookSessionDTO {
	return domain.BookSessionDTO{PsychologistID: pid, Modality: m, Datetime: datetime}
}

func TestSessionBook_DenormalizesProfessional(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	dto := bookDTO("p-1", domain.ModalityOnline, "2025-01-06T09:00:00Z")
	dto.Notes = "  <b>primera</b> consulta  "

	session, err := f.sessions.Book(ctx, dto)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if _, err := uuid.Parse(session.ID); err != nil {
		t.Errorf("id %q is not a uuid", session.ID)
	}
	if session.SlotID != "p-1|on|2025-01-06T09:00:00.000Z" {
		t.Errorf("slot id = %q", session.SlotID)
	}
	if session.Datetime != "2025-01-06T09:00:00.000Z" {
		t.Errorf("datetime must be canonical ISO, got %q", session.Datetime)
	}
	if session.CreatedAt != "2025-01-06T10:00:00.000Z" {
		t.Errorf("createdAt = %q", session.CreatedAt)
	}
	if session.PsychologistName != "Lucía Pérez" || session.SessionMinutes != 50 || session.PriceUSD != 40 {
		t.Errorf("professional fields not denormalized: %+v", session)
	}
	if session.Status != domain.SessionStatusScheduled {
		t.Errorf("status = %q", session.Status)
	}
	if session.Notes != "bprimera/b consulta" {
		t.Errorf("notes = %q", session.Notes)
	}

	stored, _ := f.store.List(ctx)
	if len(stored) != 1 || stored[0] != *session {
		t.Errorf("stored = %+v", stored)
	}
}

func TestSessionBook_KeepsExplicitSlotID(t *testing.T) {
	f := newFixture(t, nil)

	dto := bookDTO("p-2", domain.ModalityPresencial, "2025-01-09T18:00:00.000Z")
	dto.SlotID = "custom-slot"

	session, err := f.sessions.Book(context.Background(), dto)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if session.SlotID != "custom-slot" {
		t.Errorf("slot id = %q", session.SlotID)
	}
}

func TestSessionBook_NoConflictDetection(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	dto := bookDTO("p-1", domain.ModalityOnline, "2025-01-06T09:00:00Z")
	first, err := f.sessions.Book(ctx, dto)
	if err != nil {
		t.Fatalf("first Book: %v", err)
	}
	second, err := f.sessions.Book(ctx, dto)
	if err != nil {
		t.Fatalf("second Book: %v", err)
	}
	if first.ID == second.ID {
		t.Error("each booking must get its own id")
	}

	stored, _ := f.store.List(ctx)
	if len(stored) != 2 {
		t.Errorf("expected both bookings stored, got %d", len(stored))
	}
}

func TestSessionBook_Errors(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		dto  domain.BookSessionDTO
		want error
	}{
		{name: "unknown professional", dto: bookDTO("p-9", domain.ModalityOnline, "2025-01-06T09:00:00Z"), want: domain.ErrProfessionalNotFound},
		{name: "malformed id", dto: bookDTO("p 1", domain.ModalityOnline, "2025-01-06T09:00:00Z"), want: domain.ErrProfessionalNotFound},
		{name: "modality not offered", dto: bookDTO("p-2", domain.ModalityOnline, "2025-01-09T18:00:00Z"), want: domain.ErrModalityNotOffered},
		{name: "bad datetime", dto: bookDTO("p-1", domain.ModalityOnline, "2025-01-06 09:00"), want: domain.ErrInvalidDatetime},
		{
			name: "notes too long",
			dto: domain.BookSessionDTO{
				PsychologistID: "p-1",
				Modality:       domain.ModalityOnline,
				Datetime:       "2025-01-06T09:00:00Z",
				Notes:          strings.Repeat("ñ", maxNotesLength+1),
			},
			want: domain.ErrNotesTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.sessions.Book(context.Background(), tt.dto); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	stored, _ := f.store.List(context.Background())
	if len(stored) != 0 {
		t.Errorf("failed bookings must not be stored, got %d", len(stored))
	}
}

func TestSessionOverview_SplitsAndSorts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	late, _ := f.sessions.Book(ctx, bookDTO("p-1", domain.ModalityOnline, "2025-01-08T14:00:00Z"))
	early, _ := f.sessions.Book(ctx, bookDTO("p-1", domain.ModalityPresencial, "2025-01-06T10:00:00Z"))
	oldest, _ := f.sessions.Book(ctx, bookDTO("p-2", domain.ModalityPresencial, "2025-01-02T18:00:00Z"))
	newest, _ := f.sessions.Book(ctx, bookDTO("p-2", domain.ModalityPresencial, "2025-01-09T18:00:00Z"))

	for _, id := range []string{oldest.ID, newest.ID} {
		if err := f.sessions.Cancel(ctx, id); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
	}

	overview, err := f.sessions.Overview(ctx, "")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if len(overview.Upcoming) != 2 || overview.Upcoming[0].ID != early.ID || overview.Upcoming[1].ID != late.ID {
		t.Errorf("upcoming must be scheduled sessions soonest first: %+v", overview.Upcoming)
	}
	if len(overview.History) != 2 || overview.History[0].ID != newest.ID || overview.History[1].ID != oldest.ID {
		t.Errorf("history must be latest first: %+v", overview.History)
	}
	if overview.Upcoming[0].LocalLabel != "Mon, 06 Jan 2025 10:00" {
		t.Errorf("label = %q", overview.Upcoming[0].LocalLabel)
	}
}

func TestSessionOverview_LabelsInViewerZone(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	if _, err := f.sessions.Book(ctx, bookDTO("p-1", domain.ModalityOnline, "2025-01-06T12:00:00Z")); err != nil {
		t.Fatalf("Book: %v", err)
	}

	overview, err := f.sessions.Overview(ctx, "America/Argentina/Buenos_Aires")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got := overview.Upcoming[0].LocalLabel; got != "Mon, 06 Jan 2025 09:00" {
		t.Errorf("label = %q, want Buenos Aires wall clock", got)
	}

	if _, err := f.sessions.Overview(ctx, "Nowhere/Land"); !errors.Is(err, domain.ErrInvalidTimezone) {
		t.Errorf("expected ErrInvalidTimezone, got %v", err)
	}
}

func TestSessionOverview_EmptyStore(t *testing.T) {
	f := newFixture(t, nil)
	_ = f.kv.Set(context.Background(), "scheduled_sessions_v1", []byte("not json"))

	overview, err := f.sessions.Overview(context.Background(), "")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Upcoming == nil || overview.History == nil {
		t.Error("empty overview must use empty slices, not nil")
	}
	if len(overview.Upcoming)+len(overview.History) != 0 {
		t.Errorf("expected no sessions, got %+v", overview)
	}
}

func TestSessionCancelAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	session, _ := f.sessions.Book(ctx, bookDTO("p-1", domain.ModalityOnline, "2025-01-06T09:00:00Z"))

	if err := f.sessions.Cancel(ctx, session.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	stored, _ := f.store.List(ctx)
	if stored[0].Status != domain.SessionStatusCanceled {
		t.Errorf("status = %q", stored[0].Status)
	}

	if err := f.sessions.Delete(ctx, session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	stored, _ = f.store.List(ctx)
	if len(stored) != 0 {
		t.Errorf("expected empty store, got %+v", stored)
	}

	if err := f.sessions.Cancel(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Cancel(missing): expected ErrSessionNotFound, got %v", err)
	}
	if err := f.sessions.Delete(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Delete(missing): expected ErrSessionNotFound, got %v", err)
	}
}
