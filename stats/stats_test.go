package stats

import (
	"sort"
	"testing"
)

func TestScaledMaxHealth(t *testing.T) {
	cases := []struct {
		base  float64
		level int
		want  float64
	}{
		{75, 1, 75},
		{75, 2, 86},  // floor(75 * 1.15)
		{75, 3, 97},  // floor(75 * 1.30)
		{75, 0, 75},  // levels below 1 clamp up
		{320, 1, 320},
	}
	for _, tc := range cases {
		if got := ScaledMaxHealth(tc.base, tc.level); got != tc.want {
			t.Errorf("ScaledMaxHealth(%v, %d) = %v, want %v", tc.base, tc.level, got, tc.want)
		}
	}
}

func TestKillReward(t *testing.T) {
	cases := []struct {
		base  float64
		level int
		want  int
	}{
		{75, 1, 11},  // floor(75 * 1.5 / 10)
		{75, 3, 18},  // floor(75 * 2.5 / 10)
		{45, 1, 6},
		{320, 1, 48},
	}
	for _, tc := range cases {
		if got := KillReward(tc.base, tc.level); got != tc.want {
			t.Errorf("KillReward(%v, %d) = %d, want %d", tc.base, tc.level, got, tc.want)
		}
	}
}

func TestHealthFractionClamps(t *testing.T) {
	if got := HealthFraction(-5, 100); got != 0 {
		t.Fatalf("negative health fraction = %v, want 0", got)
	}
	if got := HealthFraction(150, 100); got != 1 {
		t.Fatalf("overheal fraction = %v, want 1", got)
	}
	if got := HealthFraction(30, 100); got != 0.3 {
		t.Fatalf("fraction = %v, want 0.3", got)
	}
	if got := HealthFraction(50, 0); got != 0 {
		t.Fatalf("zero max health fraction = %v, want 0", got)
	}
}

func TestLookupKnownType(t *testing.T) {
	record, ok := Default().Lookup("skeleton")
	if !ok {
		t.Fatalf("skeleton missing from the catalog")
	}
	if record.MaxHealth != 75 || !record.CanChat {
		t.Fatalf("skeleton record = %+v", record)
	}
}

func TestLookupUnknownTypeFallsBack(t *testing.T) {
	record, ok := Default().Lookup("eldritch_horror")
	if ok {
		t.Fatalf("unknown type reported as recognized")
	}
	if record.Type != "eldritch_horror" {
		t.Fatalf("fallback record type = %q, want the requested name", record.Type)
	}
	if record.MaxHealth != Default().Fallback().MaxHealth {
		t.Fatalf("fallback stats not applied: %+v", record)
	}
}

func TestTypesAreSorted(t *testing.T) {
	types := Default().Types()
	if len(types) == 0 {
		t.Fatalf("catalog lists no types")
	}
	if !sort.StringsAreSorted(types) {
		t.Fatalf("types not sorted: %v", types)
	}
	for _, want := range []string{"goblin", "skeleton", "skeleton_lord", "slime", "wolf"} {
		idx := sort.SearchStrings(types, want)
		if idx >= len(types) || types[idx] != want {
			t.Fatalf("catalog missing %q: %v", want, types)
		}
	}
}

func TestSchemaJSONRenders(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("schema is empty")
	}
}
