package serdes_test

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	serdes "github.com/riseshia/serdes"
)

func TestMap_OrderAndLookup(t *testing.T) {
	m := serdes.NewMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	if got := m.Keys(); !reflect.DeepEqual(got, []any{"b", "a"}) {
		t.Fatalf("unexpected keys: %v", got)
	}
	if v, ok := m.Get("b"); !ok || v != 3 {
		t.Fatalf("unexpected b: %v %v", v, ok)
	}
	if _, ok := m.Get(serdes.Symbol("b")); ok {
		t.Fatalf("symbol key must differ from string key")
	}
}

func TestMap_MarshalJSONSymbols(t *testing.T) {
	m := serdes.NewMap()
	m.Set(serdes.Symbol("UserName"), "mysql")
	m.Set(serdes.Symbol("Tags"), []any{"a", nil})
	b, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"UserName":"mysql","Tags":["a",null]}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestMap_MarshalYAMLKeepsOrder(t *testing.T) {
	inner := serdes.NewMap()
	inner.Set("name", "users")
	m := serdes.NewMap()
	m.Set("zulu", 1)
	m.Set("alpha", inner)
	b, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "zulu: 1\nalpha:\n    name: users\n"
	if string(b) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", b, want)
	}
}

func TestMap_PlainMixedKeys(t *testing.T) {
	m := serdes.NewMap()
	m.Set("a", 1)
	m.Set(serdes.Symbol("b"), 2)
	want := map[any]any{"a": 1, serdes.Symbol("b"): 2}
	if !reflect.DeepEqual(m.Plain(), want) {
		t.Fatalf("unexpected plain: %#v", m.Plain())
	}
}
