package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"psicoagenda/config"
	"psicoagenda/internal/availability"
	"psicoagenda/internal/repository"
	"psicoagenda/internal/storage"
)

const testDataset = `[
  {
    "id": "p-1",
    "name": "Lucía Pérez",
    "image": "https://img/lucia.jpg",
    "specialties": ["Ansiedad", "Depresión"],
    "modalities": ["Online", "Presencial"],
    "sessionMinutes": 50,
    "priceUSD": 40,
    "weeklyAvailability": {
      "online": {"mon": ["09:00"], "wed": ["14:00"]},
      "presencial": {"mon": ["10:00"]}
    }
  },
  {
    "id": "p-2",
    "name": "Martín Gómez",
    "image": "s3://psicoagenda/martin.jpg",
    "specialties": ["Terapia de pareja"],
    "modalities": ["Presencial"],
    "sessionMinutes": 60,
    "priceUSD": 55,
    "weeklyAvailability": {"thu": ["18:00"]}
  },
  {
    "id": "p-3",
    "name": "Sofía Martínez",
    "specialties": ["Niñez"],
    "modalities": ["Online"],
    "sessionMinutes": 45,
    "priceUSD": 35
  }
]`

// Monday 2025-01-06 10:00 UTC.
var testNow = time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

type fakeFiles struct {
	presignErr error
}

func (fakeFiles) GetFile(context.Context, string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f fakeFiles) GetPresignedURL(_ context.Context, fileURL string, expiry time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://signed/" + fileURL + "?ttl=" + expiry.String(), nil
}

var _ storage.FileStorage = fakeFiles{}

type fixture struct {
	professionals *ProfessionalServiceImpl
	sessions      *SessionServiceImpl
	store         *repository.SessionStore
	kv            *storage.MemoryKV
}

func testConfig() *config.Config {
	return &config.Config{
		Availability: config.AvailabilityConfig{
			DefaultTimezone:  "UTC",
			Location:         time.UTC,
			WindowDays:       7,
			MaxWindowDays:    30,
			LimitedThreshold: 5,
			Locale:           "en_US",
		},
		S3: config.S3Config{PresignTTL: time.Hour},
	}
}

func newFixture(t *testing.T, files storage.FileStorage) *fixture {
	t.Helper()

	catalog, err := repository.ParseCatalog([]byte(testDataset), zap.NewNop())
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	kv := storage.NewMemoryKV()
	store := repository.NewSessionStore(kv, "scheduled_sessions_v1", nil, zap.NewNop())

	services := NewServices(Deps{
		Repos:       repository.NewRepositories(catalog, store),
		Logger:      zap.NewNop(),
		Config:      testConfig(),
		FileStorage: files,
		Clock:       availability.FixedClock(testNow),
	})

	return &fixture{
		professionals: services.Professional.(*ProfessionalServiceImpl),
		sessions:      services.Session.(*SessionServiceImpl),
		store:         store,
		kv:            kv,
	}
}
