package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"psicoagenda/config"
	"psicoagenda/internal/availability"
	"psicoagenda/internal/domain"
	"psicoagenda/internal/storage"
	"psicoagenda/pkg/validator"
)

// professionalRecord is one entry of the dataset as published.
type professionalRecord struct {
	ID                 string                    `json:"id"`
	Name               string                    `json:"name"`
	Image              string                    `json:"image"`
	Specialties        []string                  `json:"specialties"`
	Modalities         []domain.Modality         `json:"modalities"`
	ExperienceYears    int                       `json:"experienceYears"`
	SessionMinutes     int                       `json:"sessionMinutes"`
	PriceUSD           float64                   `json:"priceUSD"`
	Bio                string                    `json:"bio"`
	WeeklyAvailability json.RawMessage           `json:"weeklyAvailability"`
	Slots              []domain.AvailabilitySlot `json:"slots"`
}

// ProfessionalCatalog is the read-only professional dataset, normalized at load
// and kept in dataset order.
type ProfessionalCatalog struct {
	professionals []domain.Professional
	index         map[string]int
	specialties   []string
}

// LoadCatalog reads the dataset from the configured source.
func LoadCatalog(ctx context.Context, cfg config.CatalogConfig, files storage.FileStorage, logger *zap.Logger) (*ProfessionalCatalog, error) {
	var (
		data []byte
		err  error
	)

	switch cfg.Source {
	case config.CatalogSourceS3:
		if files == nil {
			return nil, fmt.Errorf("источник каталога s3 требует настроенного хранилища")
		}
		data, err = files.GetFile(ctx, cfg.Object)
	default:
		data, err = os.ReadFile(cfg.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога специалистов: %w", err)
	}

	catalog, err := ParseCatalog(data, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("каталог специалистов загружен",
		zap.String("source", cfg.Source),
		zap.Int("professionals", len(catalog.professionals)),
	)
	return catalog, nil
}

// ParseCatalog decodes and normalizes a dataset. Records without an id or name
// and duplicate ids are skipped; an invalid availability block is dropped
// while the professional is kept.
func ParseCatalog(data []byte, logger *zap.Logger) (*ProfessionalCatalog, error) {
	var records []professionalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("ошибка разбора каталога специалистов: %w", err)
	}

	catalog := &ProfessionalCatalog{
		professionals: make([]domain.Professional, 0, len(records)),
		index:         make(map[string]int, len(records)),
	}

	for i, record := range records {
		if !validator.ValidateID(record.ID) || record.Name == "" {
			logger.Warn("пропущена запись каталога без корректного id или имени", zap.Int("position", i))
			continue
		}
		if _, exists := catalog.index[record.ID]; exists {
			logger.Warn("повторяющийся id в каталоге", zap.String("id", record.ID))
			continue
		}

		professional := normalizeRecord(record, logger)
		catalog.index[professional.ID] = len(catalog.professionals)
		catalog.professionals = append(catalog.professionals, professional)
	}

	catalog.specialties = collectSpecialties(catalog.professionals)
	return catalog, nil
}

func normalizeRecord(record professionalRecord, logger *zap.Logger) domain.Professional {
	log := logger.With(zap.String("professional_id", record.ID))

	modalities := make([]domain.Modality, 0, len(record.Modalities))
	for _, m := range record.Modalities {
		if !m.IsValid() {
			log.Warn("неизвестный формат приема", zap.String("modality", string(m)))
			continue
		}
		modalities = append(modalities, m)
	}

	professional := domain.Professional{
		ID:              record.ID,
		Name:            record.Name,
		Image:           record.Image,
		Specialties:     record.Specialties,
		Modalities:      modalities,
		ExperienceYears: record.ExperienceYears,
		SessionMinutes:  record.SessionMinutes,
		PriceUSD:        record.PriceUSD,
		Bio:             record.Bio,
	}
	if professional.Specialties == nil {
		professional.Specialties = []string{}
	}

	source, err := decodeWeekly(record.WeeklyAvailability)
	if err != nil {
		log.Warn("шаблон доступности отброшен", zap.Error(err))
	} else if weekly, _, err := availability.Normalize(record.ID, source, modalities); err != nil {
		log.Warn("шаблон доступности отброшен", zap.Error(err))
	} else {
		professional.Weekly = weekly
	}

	if len(record.Slots) > 0 {
		src := domain.AvailabilitySource{Kind: domain.AvailabilityKindSlots, Slots: record.Slots}
		if _, slots, err := availability.Normalize(record.ID, src, modalities); err != nil {
			log.Warn("готовые слоты отброшены", zap.Error(err))
		} else {
			professional.Slots = slots
		}
	}

	if len(professional.Modalities) == 0 {
		professional.Modalities = derivedModalities(&professional)
	}

	return professional
}

// decodeWeekly tells the legacy per-weekday map apart from the per-modality template.
func decodeWeekly(raw json.RawMessage) (domain.AvailabilitySource, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.AvailabilitySource{Kind: domain.AvailabilityKindNone}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return domain.AvailabilitySource{}, fmt.Errorf("неверный формат weeklyAvailability: %w", err)
	}

	legacy, perModality := false, false
	for key := range keys {
		switch {
		case domain.Weekday(key).IsValid():
			legacy = true
		case key == "online" || key == "presencial":
			perModality = true
		default:
			return domain.AvailabilitySource{}, fmt.Errorf("неизвестный ключ weeklyAvailability %q", key)
		}
	}

	switch {
	case legacy && perModality:
		return domain.AvailabilitySource{}, fmt.Errorf("weeklyAvailability смешивает дни недели и форматы приема")
	case legacy:
		var schedule domain.WeeklySchedule
		if err := json.Unmarshal(raw, &schedule); err != nil {
			return domain.AvailabilitySource{}, fmt.Errorf("неверный формат weeklyAvailability: %w", err)
		}
		return domain.AvailabilitySource{Kind: domain.AvailabilityKindLegacy, Legacy: schedule}, nil
	case perModality:
		var weekly domain.WeeklyAvailability
		if err := json.Unmarshal(raw, &weekly); err != nil {
			return domain.AvailabilitySource{}, fmt.Errorf("неверный формат weeklyAvailability: %w", err)
		}
		return domain.AvailabilitySource{Kind: domain.AvailabilityKindWeekly, Weekly: &weekly}, nil
	default:
		return domain.AvailabilitySource{Kind: domain.AvailabilityKindNone}, nil
	}
}

func derivedModalities(p *domain.Professional) []domain.Modality {
	modalities := []domain.Modality{}
	for _, m := range domain.Modalities {
		offered := false
		for _, times := range p.Weekly.For(m) {
			if len(times) > 0 {
				offered = true
				break
			}
		}
		for _, slot := range p.Slots {
			if offered {
				break
			}
			offered = slot.Modality == m
		}
		if offered {
			modalities = append(modalities, m)
		}
	}
	return modalities
}

// collectSpecialties returns the distinct specialties, compared without case
// or accents, sorted with Spanish collation. The first spelling seen wins.
func collectSpecialties(professionals []domain.Professional) []string {
	seen := make(map[string]bool)
	specialties := []string{}
	for _, p := range professionals {
		for _, s := range p.Specialties {
			folded := validator.FoldText(s)
			if folded == "" || seen[folded] {
				continue
			}
			seen[folded] = true
			specialties = append(specialties, s)
		}
	}

	collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics).SortStrings(specialties)
	return specialties
}

func (c *ProfessionalCatalog) List(_ context.Context) ([]domain.Professional, error) {
	professionals := make([]domain.Professional, len(c.professionals))
	copy(professionals, c.professionals)
	return professionals, nil
}

func (c *ProfessionalCatalog) GetByID(_ context.Context, id string) (*domain.Professional, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, nil
	}
	professional := c.professionals[i]
	return &professional, nil
}

func (c *ProfessionalCatalog) Specialties(_ context.Context) ([]string, error) {
	specialties := make([]string, len(c.specialties))
	copy(specialties, c.specialties)
	return specialties, nil
}
