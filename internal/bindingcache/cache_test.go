package bindingcache

import (
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bindings.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_GetMiss(t *testing.T) {
	c := openTestCache(t)
	_, ok, err := c.Get("Newtonsoft.Json", "13.0.3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get reported a hit for a package never stored")
	}
}

func TestCache_PutThenGet(t *testing.T) {
	c := openTestCache(t)
	want := []Binding{
		{ExportName: "JsonConvert", ClrType: "Newtonsoft.Json.JsonConvert", IsType: true},
		{ExportName: "SerializeObject", ClrType: "Newtonsoft.Json.JsonConvert", IsType: false},
	}
	if err := c.Put("Newtonsoft.Json", "13.0.3", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get("Newtonsoft.Json", "13.0.3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get reported a miss after Put")
	}
	if len(got) != len(want) {
		t.Fatalf("got %d bindings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("binding %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCache_PutOverwritesPriorEntry(t *testing.T) {
	c := openTestCache(t)
	first := []Binding{{ExportName: "A", ClrType: "NS.A", IsType: true}}
	second := []Binding{{ExportName: "B", ClrType: "NS.B", IsType: true}}

	if err := c.Put("pkg", "1.0.0", first); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	if err := c.Put("pkg", "1.0.0", second); err != nil {
		t.Fatalf("Put second: %v", err)
	}

	got, _, err := c.Get("pkg", "1.0.0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 || got[0].ExportName != "B" {
		t.Fatalf("Get after overwrite = %+v, want [B]", got)
	}
}

func TestCache_VersionsAreDistinctKeys(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("pkg", "1.0.0", []Binding{{ExportName: "A"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_, ok, err := c.Get("pkg", "2.0.0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get found a hit under a different version than was stored")
	}
}

func TestRegistry_IsBoundPackage(t *testing.T) {
	r := NewRegistry([]string{"Newtonsoft.Json", "System.Text.Json"})
	if !r.IsBoundPackage("Newtonsoft.Json") {
		t.Error("IsBoundPackage(Newtonsoft.Json) = false, want true")
	}
	if r.IsBoundPackage("Unbound.Package") {
		t.Error("IsBoundPackage(Unbound.Package) = true, want false")
	}
}
