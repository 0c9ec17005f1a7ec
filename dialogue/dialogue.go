// Package dialogue loads the monster banter table from an embedded Lua
// script. The script is evaluated once at load time and flattened into Go
// maps so the per-tick chat coordinator never touches the Lua runtime.
package dialogue

import (
	"embed"
	"fmt"
	"math/rand"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

//go:embed banter.lua
var scriptFS embed.FS

const wildcardKey = "*"

// Exchange is a two-line conversation: the initiator speaks the opener and
// the partner answers with the reply after a short delay. Reply may be empty
// for one-sided exchanges.
type Exchange struct {
	Opener string
	Reply  string
}

type pairKey struct {
	initiator string
	partner   string
}

// Table holds the flattened banter script, keyed by (initiator, partner)
// type pairs with wildcard fallback at either position.
type Table struct {
	exchanges map[pairKey][]Exchange
	propLines map[string][]string
}

// Load evaluates the embedded banter script and returns the flattened table.
func Load() (*Table, error) {
	data, err := scriptFS.ReadFile("banter.lua")
	if err != nil {
		return nil, fmt.Errorf("read banter script: %w", err)
	}
	return parse(string(data))
}

// MustLoad is Load for wiring paths where a broken embedded script is fatal.
func MustLoad() *Table {
	table, err := Load()
	if err != nil {
		panic(err)
	}
	return table
}

func parse(script string) (*Table, error) {
	state := lua.NewState()
	defer state.Close()

	if err := state.DoString(script); err != nil {
		return nil, fmt.Errorf("evaluate banter script: %w", err)
	}
	root, ok := state.Get(-1).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("banter script must return a table, got %s", state.Get(-1).Type())
	}

	table := &Table{
		exchanges: make(map[pairKey][]Exchange),
		propLines: make(map[string][]string),
	}

	if raw, ok := state.GetField(root, "exchanges").(*lua.LTable); ok {
		var parseErr error
		raw.ForEach(func(key, value lua.LValue) {
			if parseErr != nil {
				return
			}
			initiator := lua.LVAsString(key)
			partners, ok := value.(*lua.LTable)
			if !ok {
				parseErr = fmt.Errorf("exchanges[%q] is not a table", initiator)
				return
			}
			partners.ForEach(func(partnerKey, entriesValue lua.LValue) {
				if parseErr != nil {
					return
				}
				partner := lua.LVAsString(partnerKey)
				entries, ok := entriesValue.(*lua.LTable)
				if !ok {
					parseErr = fmt.Errorf("exchanges[%q][%q] is not a table", initiator, partner)
					return
				}
				entries.ForEach(func(_, entry lua.LValue) {
					if parseErr != nil {
						return
					}
					pair, ok := entry.(*lua.LTable)
					if !ok {
						parseErr = fmt.Errorf("exchanges[%q][%q] contains a non-table entry", initiator, partner)
						return
					}
					opener := lua.LVAsString(state.GetField(pair, "opener"))
					reply := lua.LVAsString(state.GetField(pair, "reply"))
					if opener == "" {
						parseErr = fmt.Errorf("exchanges[%q][%q] entry missing opener", initiator, partner)
						return
					}
					k := pairKey{initiator: initiator, partner: partner}
					table.exchanges[k] = append(table.exchanges[k], Exchange{Opener: opener, Reply: reply})
				})
			})
		})
		if parseErr != nil {
			return nil, parseErr
		}
	}

	if raw, ok := state.GetField(root, "prop_lines").(*lua.LTable); ok {
		raw.ForEach(func(key, value lua.LValue) {
			typeName := lua.LVAsString(key)
			lines, ok := value.(*lua.LTable)
			if !ok {
				return
			}
			lines.ForEach(func(_, line lua.LValue) {
				if text := lua.LVAsString(line); text != "" {
					table.propLines[typeName] = append(table.propLines[typeName], text)
				}
			})
		})
	}

	if len(table.exchanges[pairKey{wildcardKey, wildcardKey}]) == 0 {
		return nil, fmt.Errorf("banter script missing wildcard exchanges")
	}
	return table, nil
}

// Exchange picks a conversation for the given type pair. Lookup prefers the
// exact pair, then the initiator's wildcard row, then the wildcard initiator
// with the exact partner, and finally the double wildcard, which parse
// guarantees to exist.
func (t *Table) Exchange(initiatorType, partnerType string, rng *rand.Rand) Exchange {
	for _, key := range []pairKey{
		{initiatorType, partnerType},
		{initiatorType, wildcardKey},
		{wildcardKey, partnerType},
		{wildcardKey, wildcardKey},
	} {
		if entries := t.exchanges[key]; len(entries) > 0 {
			return entries[pick(rng, len(entries))]
		}
	}
	return Exchange{}
}

// PropLine picks a line the initiator mutters at a prop. The second return
// is false when neither the type nor the wildcard has prop lines.
func (t *Table) PropLine(initiatorType string, rng *rand.Rand) (string, bool) {
	lines := t.propLines[initiatorType]
	if len(lines) == 0 {
		lines = t.propLines[wildcardKey]
	}
	if len(lines) == 0 {
		return "", false
	}
	return lines[pick(rng, len(lines))], true
}

// Initiators lists every monster type with dedicated exchange rows, wildcard
// excluded.
func (t *Table) Initiators() []string {
	seen := make(map[string]bool)
	for key := range t.exchanges {
		if key.initiator != wildcardKey {
			seen[key.initiator] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pick(rng *rand.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	if rng == nil {
		return 0
	}
	return rng.Intn(n)
}
