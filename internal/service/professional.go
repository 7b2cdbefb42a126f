package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"psicoagenda/config"
	"psicoagenda/internal/availability"
	"psicoagenda/internal/domain"
	"psicoagenda/internal/metrics"
	"psicoagenda/internal/repository"
	"psicoagenda/internal/storage"
	"psicoagenda/pkg/timeutil"
	"psicoagenda/pkg/validator"
)

type ProfessionalServiceImpl struct {
	repo       repository.ProfessionalRepository
	files      storage.FileStorage
	clock      availability.Clock
	cfg        config.AvailabilityConfig
	presignTTL time.Duration
	metrics    metrics.Recorder
	logger     *zap.Logger
}

func NewProfessionalService(
	repo repository.ProfessionalRepository,
	files storage.FileStorage,
	clock availability.Clock,
	cfg config.AvailabilityConfig,
	presignTTL time.Duration,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *ProfessionalServiceImpl {
	return &ProfessionalServiceImpl{
		repo:       repo,
		files:      files,
		clock:      clock,
		cfg:        cfg,
		presignTTL: presignTTL,
		metrics:    recorder,
		logger:     logger,
	}
}

// List returns the professionals matching filter, in dataset order, each with
// a summary of its free slots over the default window.
func (s *ProfessionalServiceImpl) List(ctx context.Context, filter domain.ProfessionalFilter) ([]domain.ProfessionalView, error) {
	loc, err := resolveLocation(filter.Timezone, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	var dateKey string
	if filter.Date != "" {
		day, err := timeutil.ParseDateKey(filter.Date, loc)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		dateKey = timeutil.FormatDateKey(day, loc)
	}

	professionals, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка специалистов", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка специалистов: %w", err)
	}

	from, to := s.defaultWindow(loc)
	views := make([]domain.ProfessionalView, 0, len(professionals))
	for i := range professionals {
		p := &professionals[i]

		if !matchesQuery(p, filter.Query) || !matchesSpecialties(p, filter.Specialties) {
			continue
		}
		if filter.Modality != nil && !p.Offers(*filter.Modality) {
			continue
		}

		grouped := availability.GroupSlotsByDateAndModality(s.slotsFor(p, from, to, loc), loc)
		if dateKey != "" && !availability.HasSlotOn(grouped, dateKey, filter.Modality) {
			continue
		}

		views = append(views, s.view(ctx, p, grouped, loc))
	}

	return views, nil
}

func (s *ProfessionalServiceImpl) GetByID(ctx context.Context, id, timezone string) (*domain.ProfessionalView, error) {
	loc, err := resolveLocation(timezone, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	from, to := s.defaultWindow(loc)
	grouped := availability.GroupSlotsByDateAndModality(s.slotsFor(p, from, to, loc), loc)
	view := s.view(ctx, p, grouped, loc)

	return &view, nil
}

// Availability returns the per-day, per-modality slot buckets for one
// professional. An inverted window yields empty buckets.
func (s *ProfessionalServiceImpl) Availability(ctx context.Context, id string, query domain.AvailabilityQuery) (*domain.AvailabilityView, error) {
	loc, err := resolveLocation(query.Timezone, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	for _, status := range query.Statuses {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSlotStatus, status)
		}
	}

	from, to, err := s.queryWindow(query, loc)
	if err != nil {
		return nil, err
	}

	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	grouped := availability.GroupSlotsByDateAndModality(s.slotsFor(p, from, to, loc), loc, query.Statuses...)

	return &domain.AvailabilityView{
		PsychologistID: p.ID,
		From:           timeutil.FormatDateKey(from, loc),
		To:             timeutil.FormatDateKey(to, loc),
		Timezone:       loc.String(),
		Online:         availability.LabelSlots(grouped.Online, loc),
		Presencial:     availability.LabelSlots(grouped.Presencial, loc),
		Summary:        availability.Summarize(grouped, s.cfg.LimitedThreshold, loc),
	}, nil
}

func (s *ProfessionalServiceImpl) Specialties(ctx context.Context) ([]string, error) {
	specialties, err := s.repo.Specialties(ctx)
	if err != nil {
		s.logger.Error("ошибка получения специализаций", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения специализаций: %w", err)
	}
	return specialties, nil
}

func (s *ProfessionalServiceImpl) get(ctx context.Context, id string) (*domain.Professional, error) {
	if !validator.ValidateID(id) {
		return nil, domain.ErrProfessionalNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения специалиста", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения специалиста: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProfessionalNotFound
	}

	return p, nil
}

func (s *ProfessionalServiceImpl) view(ctx context.Context, p *domain.Professional, grouped domain.GroupedSlots, loc *time.Location) domain.ProfessionalView {
	view := domain.ProfessionalView{
		Professional: *p,
		Availability: availability.Summarize(grouped, s.cfg.LimitedThreshold, loc),
	}
	view.Image = s.imageURL(ctx, p.Image)
	return view
}

// slotsFor never fails the request: templates are validated when the catalog
// loads, so a generation error only gets logged.
func (s *ProfessionalServiceImpl) slotsFor(p *domain.Professional, from, to time.Time, loc *time.Location) []domain.AvailabilitySlot {
	slots, err := availability.SlotsInWindow(p, from, to, loc)
	if err != nil {
		s.logger.Warn("ошибка генерации слотов", zap.String("professional_id", p.ID), zap.Error(err))
		return nil
	}

	counts := make(map[domain.Modality]int, len(domain.Modalities))
	for _, slot := range slots {
		counts[slot.Modality]++
	}
	for modality, count := range counts {
		s.metrics.RecordSlotsGenerated(string(modality), count)
	}

	return slots
}

func (s *ProfessionalServiceImpl) imageURL(ctx context.Context, image string) string {
	if s.files == nil || !storage.IsObjectReference(image) {
		return image
	}

	url, err := s.files.GetPresignedURL(ctx, image, s.presignTTL)
	if err != nil {
		s.logger.Warn("не удалось получить ссылку на изображение", zap.String("image", image), zap.Error(err))
		return ""
	}
	return url
}

// defaultWindow is today through today+WindowDays-1 in loc.
func (s *ProfessionalServiceImpl) defaultWindow(loc *time.Location) (time.Time, time.Time) {
	from := timeutil.StartOfDay(s.clock.Now(), loc)
	return from, timeutil.AddDays(from, s.cfg.WindowDays-1)
}

func (s *ProfessionalServiceImpl) queryWindow(query domain.AvailabilityQuery, loc *time.Location) (time.Time, time.Time, error) {
	from, to := s.defaultWindow(loc)

	if query.From != "" {
		parsed, err := timeutil.ParseDateKey(query.From, loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDate
		}
		from = parsed
		to = timeutil.AddDays(from, s.cfg.WindowDays-1)
	}
	if query.To != "" {
		parsed, err := timeutil.ParseDateKey(query.To, loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDate
		}
		to = parsed
	}

	if days := windowDays(from, to); days > s.cfg.MaxWindowDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d дней, максимум %d", domain.ErrInvalidWindow, days, s.cfg.MaxWindowDays)
	}

	return from, to, nil
}

// windowDays counts the calendar days of [from, to] inclusive. Both are midnights,
// so rounding absorbs DST-length days.
func windowDays(from, to time.Time) int {
	if from.After(to) {
		return 0
	}
	return int(math.Round(to.Sub(from).Hours()/24)) + 1
}

func resolveLocation(name string, fallback *time.Location) (*time.Location, error) {
	if name != "" && !validator.ValidateTimeZoneName(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, name)
	}
	loc, err := timeutil.LoadLocation(name, fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, name)
	}
	return loc, nil
}

// matchesQuery looks for query in the name or any specialty, ignoring case and accents.
func matchesQuery(p *domain.Professional, query string) bool {
	if validator.FoldText(query) == "" {
		return true
	}
	if validator.ContainsFolded(p.Name, query) {
		return true
	}
	for _, specialty := range p.Specialties {
		if validator.ContainsFolded(specialty, query) {
			return true
		}
	}
	return false
}

// matchesSpecialties is true when the professional has any of the wanted specialties.
func matchesSpecialties(p *domain.Professional, wanted []string) bool {
	filtered := false
	for _, w := range wanted {
		folded := validator.FoldText(w)
		if folded == "" {
			continue
		}
		filtered = true
		for _, specialty := range p.Specialties {
			if validator.FoldText(specialty) == folded {
				return true
			}
		}
	}
	return !filtered
}
