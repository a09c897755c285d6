package cache

import (
	"testing"
	"time"
)

func TestKey_DistinguishesInputs(t *testing.T) {
	base := Key("system", "user", "model")

	if Key("system", "user", "model") != base {
		t.Error("Key should be deterministic")
	}
	if Key("system2", "user", "model") == base {
		t.Error("system prompt should change the key")
	}
	if Key("system", "user2", "model") == base {
		t.Error("user prompt should change the key")
	}
	if Key("system", "user", "model2") == base {
		t.Error("model should change the key")
	}
	// Field boundaries matter: "ab"+"c" must differ from "a"+"bc".
	if Key("ab", "c", "m") == Key("a", "bc", "m") {
		t.Error("key should separate fields, not concatenate them")
	}
}

func TestCache_SetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("k", "cached response")

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected a hit")
	}
	if got != "cached response" {
		t.Errorf("Get = %q", got)
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("expected a miss")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(time.Minute)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("k", "v")

	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry should be live before TTL")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should be gone after TTL")
	}
	if c.Len() != 0 {
		t.Error("expired entry should be deleted on access")
	}
}

func TestCache_ZeroTTLStoresNothing(t *testing.T) {
	c := New(0)

	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Error("zero-TTL cache should never hit")
	}
	if c.Len() != 0 {
		t.Error("zero-TTL cache should stay empty")
	}
}

func TestCache_Purge(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Purge()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Purge, want 0", c.Len())
	}
}

func TestCache_Overwrite(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "old")
	c.Set("k", "new")

	got, _ := c.Get("k")
	if got != "new" {
		t.Errorf("Get = %q, want new", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
