package dialogue

import (
	"math/rand"
	"testing"
)

func TestLoadEmbeddedScript(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(table.Initiators()) == 0 {
		t.Fatalf("expected at least one dedicated monster type")
	}
}

func TestExchangeUsesExactPair(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	entries := table.exchanges[pairKey{"goblin", "goblin"}]
	if len(entries) == 0 {
		t.Fatalf("expected goblin/goblin exchanges in embedded script")
	}
	for i := 0; i < 32; i++ {
		exchange := table.Exchange("goblin", "goblin", rng)
		found := false
		for _, entry := range entries {
			if entry == exchange {
				found = true
			}
		}
		if !found {
			t.Fatalf("exchange %+v not in goblin/goblin entries", exchange)
		}
	}
}

func TestExchangePartnerWildcardFallback(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	rng := rand.New(rand.NewSource(2))
	exchange := table.Exchange("skeleton", "no_such_monster", rng)
	found := false
	for _, entry := range table.exchanges[pairKey{"skeleton", wildcardKey}] {
		if entry == exchange {
			found = true
		}
	}
	if !found {
		t.Fatalf("exchange %+v not in skeleton wildcard row", exchange)
	}
}

func TestExchangeDoubleWildcardFallback(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	rng := rand.New(rand.NewSource(3))
	exchange := table.Exchange("no_such_monster", "also_unknown", rng)
	if exchange.Opener == "" {
		t.Fatalf("double wildcard fallback produced empty opener")
	}
}

func TestExchangeDeterministicForSeed(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	first := table.Exchange("goblin", "goblin", rand.New(rand.NewSource(7)))
	second := table.Exchange("goblin", "goblin", rand.New(rand.NewSource(7)))
	if first != second {
		t.Fatalf("same seed produced different exchanges: %+v vs %+v", first, second)
	}
}

func TestPropLineFallback(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	rng := rand.New(rand.NewSource(4))
	line, ok := table.PropLine("no_such_monster", rng)
	if !ok || line == "" {
		t.Fatalf("expected wildcard prop line, got ok=%v line=%q", ok, line)
	}
}

func TestParseRejectsMissingWildcard(t *testing.T) {
	_, err := parse(`return { exchanges = { ["goblin"] = { ["goblin"] = { { opener = "hi", reply = "ho" } } } } }`)
	if err == nil {
		t.Fatalf("expected error for script without wildcard exchanges")
	}
}

func TestParseRejectsNonTableReturn(t *testing.T) {
	_, err := parse(`return 42`)
	if err == nil {
		t.Fatalf("expected error for non-table return")
	}
}
