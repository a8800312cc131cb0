package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToDocument_ConvertsDriverTypes(t *testing.T) {
	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	oid := primitive.NewObjectID()

	doc := toDocument(bson.M{
		"uid":       "abc",
		"createdAt": primitive.NewDateTimeFromTime(at),
		"symptoms":  primitive.A{"a", primitive.NewDateTimeFromTime(at)},
		"legacy_id": oid,
		"nested":    bson.M{"when": primitive.NewDateTimeFromTime(at)},
		"enabled":   true,
	})

	if doc["uid"] != "abc" || doc["enabled"] != true {
		t.Errorf("plain values changed: %v", doc)
	}
	if got, ok := doc["createdAt"].(time.Time); !ok || !got.Equal(at) {
		t.Errorf("createdAt = %#v", doc["createdAt"])
	}
	list, ok := doc["symptoms"].([]any)
	if !ok || len(list) != 2 || list[0] != "a" {
		t.Fatalf("symptoms = %#v", doc["symptoms"])
	}
	if _, ok := list[1].(time.Time); !ok {
		t.Errorf("nested date not converted: %#v", list[1])
	}
	if doc["legacy_id"] != oid.Hex() {
		t.Errorf("object id not converted: %#v", doc["legacy_id"])
	}
	nested, ok := doc["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested = %#v", doc["nested"])
	}
	if _, ok := nested["when"].(time.Time); !ok {
		t.Errorf("nested map date not converted: %#v", nested["when"])
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Bob@X.com "); got != "bob@x.com" {
		t.Errorf("got %q", got)
	}
}

func TestOrDefault(t *testing.T) {
	if orDefault(0) != defaultTimeout || orDefault(time.Second) != time.Second {
		t.Error("timeout defaulting wrong")
	}
}
