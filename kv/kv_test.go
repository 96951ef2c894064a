package kv

import (
	"context"
	"errors"
	"testing"
)

// stores lists every implementation under test with a fresh instance per run.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"memory": NewMemory(),
		"dir":    dir,
	}
}

func TestStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("get missing: err = %v, want ErrNotFound", err)
			}

			if err := s.Put(ctx, "k", []byte("v1")); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "v1" {
				t.Errorf("got %q, want v1", got)
			}

			// Put overwrites in place.
			if err := s.Put(ctx, "k", []byte("v2")); err != nil {
				t.Fatal(err)
			}
			got, _ = s.Get(ctx, "k")
			if string(got) != "v2" {
				t.Errorf("got %q, want v2", got)
			}

			if err := s.Delete(ctx, "k"); err != nil {
				t.Fatal(err)
			}
			if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("get after delete: err = %v, want ErrNotFound", err)
			}
			// Deleting a missing key is not an error.
			if err := s.Delete(ctx, "k"); err != nil {
				t.Errorf("delete missing: %v", err)
			}
		})
	}
}

func TestStore_ListByPrefix(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"tx:000000000002", "tx:000000000000", "tx:000000000001", "clock"} {
				if err := s.Put(ctx, key, []byte("x")); err != nil {
					t.Fatal(err)
				}
			}

			keys, err := s.List(ctx, "tx:")
			if err != nil {
				t.Fatal(err)
			}
			want := []string{"tx:000000000000", "tx:000000000001", "tx:000000000002"}
			if len(keys) != len(want) {
				t.Fatalf("keys = %v, want %v", keys, want)
			}
			for i := range want {
				if keys[i] != want[i] {
					t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
				}
			}

			keys, err = s.List(ctx, "none:")
			if err != nil {
				t.Fatal(err)
			}
			if len(keys) != 0 {
				t.Errorf("keys = %v, want empty", keys)
			}
		})
	}
}

func TestStore_KeysWithSpecialCharacters(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			// Snapshot keys carry ':' and dates; Dir must escape them safely.
			key := "snap:2020-01-02:open"
			if err := s.Put(ctx, key, []byte("v")); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(ctx, key)
			if err != nil || string(got) != "v" {
				t.Fatalf("got %q, err %v", got, err)
			}
			keys, err := s.List(ctx, "snap:")
			if err != nil {
				t.Fatal(err)
			}
			if len(keys) != 1 || keys[0] != key {
				t.Errorf("keys = %v, want [%s]", keys, key)
			}
		})
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Put(ctx, "k", []byte("abc")); err != nil {
		t.Fatal(err)
	}
	got, _ := m.Get(ctx, "k")
	got[0] = 'z'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Error("mutating a returned value must not affect the store")
	}
}
