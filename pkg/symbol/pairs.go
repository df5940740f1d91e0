package symbol

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// PinGroup is a run of pins kept adjacent on a multi-unit symbol. Base is
// the shared name prefix of a differential pair, or empty for a single pin.
type PinGroup struct {
	Base string
	Pins []part.Pin
}

var pairSuffix = regexp.MustCompile(`^(.+?)([PN]|[AB])$`)

// PairPins orders signal pins for a multi-unit body. Pins whose upper-case
// names differ only in a trailing P/N or A/B form one group per base, bases
// in ascending order, with the P or A member first. The remaining pins
// follow as single-pin groups sorted by name. A suffixed name without a
// partner is treated as a single pin.
func PairPins(pins []part.Pin) []PinGroup {
	byBase := map[string][]part.Pin{}
	var bases []string
	var singles []part.Pin
	for _, p := range pins {
		m := pairSuffix.FindStringSubmatch(strings.ToUpper(p.Name))
		if m == nil {
			singles = append(singles, p)
			continue
		}
		if _, ok := byBase[m[1]]; !ok {
			bases = append(bases, m[1])
		}
		byBase[m[1]] = append(byBase[m[1]], p)
	}

	sort.Strings(bases)
	var groups []PinGroup
	for _, base := range bases {
		members := byBase[base]
		if len(members) < 2 {
			singles = append(singles, members...)
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			pi, pj := positiveMember(members[i].Name), positiveMember(members[j].Name)
			if pi != pj {
				return pi
			}
			return members[i].Name < members[j].Name
		})
		groups = append(groups, PinGroup{Base: base, Pins: members})
	}

	sortByName(singles)
	for _, p := range singles {
		groups = append(groups, PinGroup{Pins: []part.Pin{p}})
	}
	return groups
}

// positiveMember reports a name ending in P or A, ignoring case.
func positiveMember(name string) bool {
	u := strings.ToUpper(name)
	return strings.HasSuffix(u, "P") || strings.HasSuffix(u, "A")
}

// negativeMember reports a name ending in N or B, ignoring case.
func negativeMember(name string) bool {
	u := strings.ToUpper(name)
	return strings.HasSuffix(u, "N") || strings.HasSuffix(u, "B")
}
