package main

import (
	"testing"

	"bigcalc/internal/driver"
)

func TestOpenCache(t *testing.T) {
	dir := t.TempDir()
	seed, err := driver.NewDiskCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := driver.KeyFor("2 * 3")
	if err := seed.Put(key, &driver.DiskPayload{Expr: "2 * 3", Output: "6"}); err != nil {
		t.Fatal(err)
	}
	cfg := cacheConfig{Dir: dir}

	if c, err := openCache(cfg, false, false); c != nil || err != nil {
		t.Fatalf("disabled cache = %v, %v", c, err)
	}

	c, err := openCache(cfg, true, false)
	if err != nil || c == nil {
		t.Fatalf("openCache = %v, %v", c, err)
	}
	var got driver.DiskPayload
	if ok, _ := c.Get(key, &got); !ok || got.Output != "6" {
		t.Fatalf("entry lost without --clear-cache: ok=%v got=%+v", ok, got)
	}

	// очистка при выключенном кэше: записи удалены, кэш не возвращается
	if c, err := openCache(cfg, false, true); c != nil || err != nil {
		t.Fatalf("clear-only = %v, %v", c, err)
	}
	if ok, _ := seed.Get(key, &got); ok {
		t.Error("entry survived --clear-cache")
	}
}
