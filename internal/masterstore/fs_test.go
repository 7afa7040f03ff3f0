package masterstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFSStoreSaveLoadList(t *testing.T) {
	ctx := context.Background()
	store, err := NewFS(filepath.Join(t.TempDir(), "masters"), false)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	if _, err := store.Load(ctx, "Period_1_MASTER"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load missing = %v, want ErrNotFound", err)
	}

	if err := store.Save(ctx, "Period_2_MASTER", []byte("Student\n")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "Period_1_MASTER", []byte("Student,Quiz 1 (/10)\n")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// stray files are not masters
	if err := os.WriteFile(filepath.Join(store.Root(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := store.Load(ctx, "Period_1_MASTER")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "Student,Quiz 1 (/10)\n" {
		t.Fatalf("Load = %q", data)
	}

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"Period_1_MASTER", "Period_2_MASTER"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("List = %v, want %v", keys, want)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatalf("Driver = %q", store.Driver())
	}
}

func TestFSStoreKeepsBackup(t *testing.T) {
	ctx := context.Background()
	store, err := NewFS(t.TempDir(), true)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "Period_3_MASTER", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(store.Path("Period_3_MASTER") + BackupExt); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("first save should not create a backup, stat err = %v", err)
	}
	if err := store.Save(ctx, "Period_3_MASTER", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	backup, err := os.ReadFile(store.Path("Period_3_MASTER") + BackupExt)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "v1" {
		t.Fatalf("backup = %q, want v1", backup)
	}
	keys, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 {
		t.Fatalf("backups must not be listed, got %v", keys)
	}
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"", "  ", "../etc", `a\b`, ".hidden"} {
		if err := ValidateKey(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ValidateKey(%q) = %v, want ErrInvalidKey", key, err)
		}
	}
	if err := ValidateKey("Period_1_MASTER"); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	buf := []byte("abc")
	if err := store.Save(ctx, "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'z'
	got, err := store.Load(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abc" {
		t.Fatalf("stored data aliased caller buffer: %q", got)
	}
	if store.Saves() != 1 {
		t.Fatalf("Saves = %d", store.Saves())
	}
	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestLockExcludesSecondHolder(t *testing.T) {
	dir := t.TempDir()
	first, err := Acquire(dir, "Period_1_MASTER")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := Acquire(dir, "Period_1_MASTER"); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire = %v, want ErrLocked", err)
	}
	other, err := Acquire(dir, "Period_2_MASTER")
	if err != nil {
		t.Fatalf("other key should not be blocked: %v", err)
	}
	_ = other.Release()

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := Acquire(dir, "Period_1_MASTER")
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = again.Release()

	var nilLock *Lock
	if err := nilLock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}
