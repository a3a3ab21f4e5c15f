// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package cache

import (
	"errors"
	"testing"
	"time"
)

func openTestDisk(t *testing.T) *DiskStore {
	t.Helper()
	d, err := OpenDisk(DiskConfig{InMemory: true, TTL: time.Hour})
	if err != nil {
		t.Fatalf("OpenDisk() error = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDiskStore_SetGet(t *testing.T) {
	d := openTestDisk(t)

	d.Set("s1:abc", []byte(`{"success":true}`))

	v, ok := d.Get("s1:abc")
	if !ok {
		t.Fatal("expected stored value")
	}
	if string(v) != `{"success":true}` {
		t.Errorf("Get() = %s", v)
	}
	if _, ok := d.Get("s1:missing"); ok {
		t.Error("expected miss for unknown key")
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestDiskStore_DropSession(t *testing.T) {
	d := openTestDisk(t)

	d.Set("s1:a", []byte("1"))
	d.Set("s1:b", []byte("2"))
	d.Set("s2:a", []byte("3"))

	d.DropSession("s1")

	if _, ok := d.Get("s1:a"); ok {
		t.Error("s1 entries should be dropped")
	}
	if _, ok := d.Get("s2:a"); !ok {
		t.Error("s2 entries should survive")
	}
}

func TestDiskStore_GCInMemory(t *testing.T) {
	d := openTestDisk(t)
	if err := d.RunGC(); err != nil {
		t.Errorf("RunGC() in memory = %v, want nil", err)
	}
}

func TestDiskStore_Closed(t *testing.T) {
	d, err := OpenDisk(DiskConfig{InMemory: true})
	if err != nil {
		t.Fatalf("OpenDisk() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := d.Put("k", []byte("v")); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Put() after close = %v, want ErrStoreClosed", err)
	}
	if _, ok := d.Get("k"); ok {
		t.Error("Get() after close should miss")
	}
	if d.Len() != 0 {
		t.Error("Len() after close should be 0")
	}
}

func TestOpenDisk_RequiresPath(t *testing.T) {
	if _, err := OpenDisk(DiskConfig{}); err == nil {
		t.Error("expected error without path")
	}
}

func TestOpenDisk_Directory(t *testing.T) {
	d, err := OpenDisk(DiskConfig{Path: t.TempDir(), Compression: true})
	if err != nil {
		t.Fatalf("OpenDisk() error = %v", err)
	}
	defer d.Close()

	d.Set("s:k", []byte("persisted"))
	if v, ok := d.Get("s:k"); !ok || string(v) != "persisted" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
	if err := d.RunGC(); err != nil {
		t.Errorf("RunGC() = %v", err)
	}
}
