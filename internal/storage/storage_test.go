package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

var (
	_ KeyValue    = (*MemoryKV)(nil)
	_ KeyValue    = (*FileKV)(nil)
	_ KeyValue    = (*RedisKV)(nil)
	_ KeyValue    = (*PostgresKV)(nil)
	_ KeyValue    = (*S3Storage)(nil)
	_ FileStorage = (*S3Storage)(nil)
)

func TestMemoryKV_GetMissing(t *testing.T) {
	kv := NewMemoryKV()

	got, err := kv.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing key, got %q", got)
	}
}

func TestMemoryKV_SetCopiesValue(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	value := []byte(`[1,2]`)
	if err := kv.Set(ctx, "k", value); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value[0] = 'X'

	got, _ := kv.Get(ctx, "k")
	if string(got) != `[1,2]` {
		t.Errorf("stored value was aliased: %q", got)
	}
}

func TestFileKV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(filepath.Join(dir, "nested"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	ctx := context.Background()

	got, err := kv.Get(ctx, "scheduled_sessions_v1")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil before first write, got %q, %v", got, err)
	}

	if err := kv.Set(ctx, "scheduled_sessions_v1", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, "scheduled_sessions_v1", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = kv.Get(ctx, "scheduled_sessions_v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte(`[{"id":"a"}]`)) {
		t.Errorf("got %q", got)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file after writes, got %d", len(entries))
	}
}

func TestFileKV_RejectsUnsafeKey(t *testing.T) {
	kv, err := NewFileKV(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}

	if err := kv.Set(context.Background(), "../escape", []byte("x")); err == nil {
		t.Error("expected error for key with path separators")
	}
	if _, err := kv.Get(context.Background(), ""); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "s3 scheme", in: "s3://psicoagenda/images/ana.jpg", want: "images/ana.jpg"},
		{name: "aws url", in: "https://psicoagenda.s3.us-east-1.amazonaws.com/catalog/professionals.json", want: "catalog/professionals.json"},
		{name: "bare key", in: "catalog/professionals.json", want: "catalog/professionals.json"},
		{name: "leading slash", in: "/catalog/professionals.json", want: "catalog/professionals.json"},
		{name: "empty", in: "", wantErr: true},
		{name: "bucket only", in: "s3://psicoagenda", wantErr: true},
		{name: "foreign host", in: "https://example.com/a/b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ObjectName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsObjectReference(t *testing.T) {
	if !IsObjectReference("s3://bucket/img.png") {
		t.Error("expected s3 reference to be detected")
	}
	if IsObjectReference("https://cdn.example.com/img.png") {
		t.Error("plain https url must not be presigned")
	}
}
