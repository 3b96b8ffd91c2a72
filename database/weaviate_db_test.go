package database

import "testing"

func TestAsScore(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float", 0.0321, 0.0321},
		{"string", "0.0321", 0.0321},
		{"garbage string", "not-a-number", 0},
		{"nil", nil, 0},
		{"wrong type", []interface{}{0.5}, 0},
	}
	for _, tt := range tests {
		if got := asScore(tt.in); got != tt.want {
			t.Errorf("%s: asScore(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestAsIntSlice(t *testing.T) {
	got := asIntSlice([]interface{}{float64(3), float64(4), "x", float64(5)})
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("asIntSlice = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("asIntSlice[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if asIntSlice("not a slice") != nil {
		t.Error("expected nil for non-slice input")
	}
}

func TestAsString(t *testing.T) {
	if got := asString("hello"); got != "hello" {
		t.Errorf("asString = %q", got)
	}
	if got := asString(42); got != "" {
		t.Errorf("asString(42) = %q, want empty", got)
	}
}

func TestChunkObjectIDDeterministic(t *testing.T) {
	a := chunkObjectID("manual.pdf", "chunk_0001")
	b := chunkObjectID("manual.pdf", "chunk_0001")
	if a != b {
		t.Errorf("same inputs produced different IDs: %s vs %s", a, b)
	}

	other := chunkObjectID("manual.pdf", "chunk_0002")
	if a == other {
		t.Error("different chunks produced the same ID")
	}
	otherDoc := chunkObjectID("other.pdf", "chunk_0001")
	if a == otherDoc {
		t.Error("different documents produced the same ID")
	}
}

func TestNewWeaviateStoreSchemeParsing(t *testing.T) {
	tests := []struct {
		host       string
		wantScheme string
	}{
		{"http://localhost:8081", "http"},
		{"https://weaviate.internal", "https"},
		{"localhost:8081", "http"},
	}
	for _, tt := range tests {
		store, err := NewWeaviateStore(tt.host, "", "GatewayManualChunk", 1536)
		if err != nil {
			t.Fatalf("NewWeaviateStore(%q): %v", tt.host, err)
		}
		if store.className != "GatewayManualChunk" || store.dimensions != 1536 {
			t.Errorf("store fields not set: %+v", store)
		}
	}
}

func TestClassObjectSchema(t *testing.T) {
	store := &WeaviateStore{className: "GatewayManualChunk", dimensions: 1536}
	class := store.classObject()

	if class.Class != "GatewayManualChunk" {
		t.Errorf("class name = %q", class.Class)
	}
	if class.Vectorizer != "none" {
		t.Errorf("vectorizer = %q, want none (vectors are supplied by the caller)", class.Vectorizer)
	}

	props := make(map[string]string)
	for _, p := range class.Properties {
		props[p.Name] = p.DataType[0]
	}
	for name, dataType := range map[string]string{
		"chunkId":      "text",
		"content":      "text",
		"pageNumbers":  "int[]",
		"sectionTitle": "text",
		"chunkIndex":   "int",
		"documentName": "text",
		"indexedAt":    "date",
	} {
		if props[name] != dataType {
			t.Errorf("property %s has type %q, want %q", name, props[name], dataType)
		}
	}

	cfg, ok := class.VectorIndexConfig.(map[string]interface{})
	if !ok {
		t.Fatal("vector index config is not a map")
	}
	if cfg["distance"] != "cosine" {
		t.Errorf("distance = %v, want cosine", cfg["distance"])
	}
}
