package domain

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ShiftEntry is one configured shift plus the extra names it answers to.
type ShiftEntry struct {
	Shift   ShiftDefinition
	Aliases []string
}

type ResolvedIdentity struct {
	MatchedKey string
	Shift      ShiftDefinition
}

type directoryKey struct {
	key      string
	tokens   []string
	shiftIdx int
}

// Directory maps person identifiers to shifts. It is immutable once built.
type Directory struct {
	entries []ShiftEntry
	keys    []directoryKey
	exact   map[string]int
}

func NewDirectory(entries []ShiftEntry) (*Directory, error) {
	d := &Directory{
		entries: make([]ShiftEntry, 0, len(entries)),
		exact:   make(map[string]int, len(entries)),
	}

	for _, entry := range entries {
		entry.Shift.Key = NormalizeKey(entry.Shift.Key)
		if err := entry.Shift.Validate(); err != nil {
			return nil, err
		}

		aliases := make([]string, 0, len(entry.Aliases))
		for _, alias := range entry.Aliases {
			if normalized := NormalizeKey(alias); normalized != "" {
				aliases = append(aliases, normalized)
			}
		}
		entry.Aliases = aliases

		idx := len(d.entries)
		d.entries = append(d.entries, entry)

		for _, key := range append([]string{entry.Shift.Key}, aliases...) {
			if _, ok := d.exact[key]; ok {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
			}
			d.exact[key] = len(d.keys)
			d.keys = append(d.keys, directoryKey{key: key, tokens: strings.Fields(key), shiftIdx: idx})
		}
	}

	return d, nil
}

// foldChains holds transformers; a chain is stateful and not safe to share.
var foldChains = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			norm.NFC,
		)
	},
}

// NormalizeKey folds compatibility forms, case and accents, then collapses
// whitespace. "  Yérika  T2 " and "ｙｅｒｉｋａ t2" both become "yerika t2".
func NormalizeKey(raw string) string {
	if raw == "" {
		return ""
	}

	tr := foldChains.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, strings.ToValidUTF8(raw, ""))
	tr.Reset()
	foldChains.Put(tr)
	if err != nil {
		folded = strings.ToLower(raw)
	}

	return strings.Join(strings.Fields(folded), " ")
}

// Resolve matches a free-text display name: exact key first, then the first
// key whose leading token occurs inside the name, then the first key sharing
// any token with it.
func (d *Directory) Resolve(rawName string) (ResolvedIdentity, bool) {
	if d == nil {
		return ResolvedIdentity{}, false
	}

	name := NormalizeKey(rawName)
	if name == "" {
		return ResolvedIdentity{}, false
	}

	if i, ok := d.exact[name]; ok {
		return d.identity(d.keys[i]), true
	}

	for _, k := range d.keys {
		if strings.Contains(name, k.tokens[0]) {
			return d.identity(k), true
		}
	}

	nameTokens := strings.Fields(name)
	for _, k := range d.keys {
		for _, token := range k.tokens {
			if slices.Contains(nameTokens, token) {
				return d.identity(k), true
			}
		}
	}

	return ResolvedIdentity{}, false
}

func (d *Directory) identity(k directoryKey) ResolvedIdentity {
	return ResolvedIdentity{MatchedKey: k.key, Shift: d.entries[k.shiftIdx].Shift}
}

func (d *Directory) Entries() []ShiftEntry {
	if d == nil {
		return nil
	}

	out := make([]ShiftEntry, len(d.entries))
	for i, entry := range d.entries {
		entry.Aliases = append([]string(nil), entry.Aliases...)
		out[i] = entry
	}
	return out
}

// Teams lists team labels in first-seen order.
func (d *Directory) Teams() []string {
	if d == nil {
		return nil
	}

	teams := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for _, entry := range d.entries {
		if _, ok := seen[entry.Shift.Team]; ok {
			continue
		}
		seen[entry.Shift.Team] = struct{}{}
		teams = append(teams, entry.Shift.Team)
	}
	return teams
}
