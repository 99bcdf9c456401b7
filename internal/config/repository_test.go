package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"deadlines/internal/query"
	"deadlines/internal/repository/sqlite"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("SD_CONFIG", filepath.Join(tmpDir, "missing.toml"))
	t.Setenv("SD_DB_DIR", tmpDir)
	return tmpDir
}

func TestCreateRepository(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := CreateRepository(cfg, nil)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	err = repo.CreateTask(context.Background(), &sqlite.Task{UID: uuid.NewString(), Title: "Test Task"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks, err := repo.FetchTasks(context.Background(), query.All(""))
	if err != nil {
		t.Fatalf("FetchTasks() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("FetchTasks() returned %d tasks, want 1", len(tasks))
	}
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer repo.Close()

	err = repo.CreateTask(context.Background(), &sqlite.Task{UID: uuid.NewString(), Title: "Test Task"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
}

func TestRepositoryFactory(t *testing.T) {
	isolate(t)
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, env := range []Environment{Testing, Production} {
		t.Run(string(env), func(t *testing.T) {
			repo, err := NewRepositoryFactory(env, cfg, nil).CreateRepository()
			if err != nil {
				t.Fatalf("CreateRepository() error = %v", err)
			}
			repo.Close()
		})
	}
}

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"production", Production},
		{"", Production},
		{"staging", Production},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SD_ENV", tt.value)
			if got := GetEnvironment(); got != tt.want {
				t.Errorf("GetEnvironment() = %v, want %v", got, tt.want)
			}
		})
	}
}
