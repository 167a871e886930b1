package manifest

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
)

// "git+https://github.com/user/repo" and friends
var reGitHubURL = regexp.MustCompile(`^(?:git\+)?(?:https?|git|ssh)://(?:git@)?github\.com[/:](.+?)(?:\.git)?$`)

// Format applies the rcfile's formatting rules to the manifest in memory.
// Whether anything changed is observed afterwards via IsModified.
func Format(p *Package, rc config.Rcfile) {
	if rc.FormatBugs {
		formatBugs(p)
	}
	if rc.FormatRepository {
		formatRepository(p)
	}
	for _, key := range rc.SortAz {
		sortAlphabetically(p, key)
	}
	if len(rc.SortExports) > 0 && p.Get("exports").IsObject() {
		sortExports(p, rc.SortExports)
	}
	sortTopLevel(p, rc.SortFirst, rc.SortPackages)
}

// formatBugs uses the shorthand "bugs" form when the object only carries a url.
func formatBugs(p *Package) {
	bugs := p.Get("bugs")
	if !bugs.IsObject() {
		return
	}
	url := bugs.Get("url")
	if !url.Exists() {
		return
	}
	keyCount := 0
	bugs.ForEach(func(_, _ gjson.Result) bool {
		keyCount++
		return true
	})
	if keyCount == 1 {
		_ = p.Set("bugs", url.String())
	}
}

// formatRepository uses the shorthand "repository" form when the object has
// no directory property.
func formatRepository(p *Package) {
	repo := p.Get("repository")
	if !repo.IsObject() || repo.Get("directory").Exists() {
		return
	}
	url := repo.Get("url")
	if !url.Exists() {
		return
	}
	short := url.String()
	if m := reGitHubURL.FindStringSubmatch(short); m != nil {
		short = m[1]
	}
	_ = p.Set("repository", short)
}

// sortAlphabetically sorts the members of the object or string array at the
// given path.
func sortAlphabetically(p *Package, path string) {
	value := p.Get(path)
	if value.IsObject() {
		raw, changed := reorderedObject(value, func(keys []string) []string {
			sorted := append([]string(nil), keys...)
			sort.Strings(sorted)
			return sorted
		})
		if changed {
			_ = p.SetRaw(path, raw)
		}
		return
	}
	if value.IsArray() {
		var items []string
		allStrings := true
		value.ForEach(func(_, item gjson.Result) bool {
			if item.Type != gjson.String {
				allStrings = false
				return false
			}
			items = append(items, item.String())
			return true
		})
		if !allStrings || sort.StringsAreSorted(items) {
			return
		}
		sort.Strings(items)
		quoted := make([]string, len(items))
		for i, item := range items {
			quoted[i] = strconv.Quote(item)
		}
		_ = p.SetRaw(path, "["+strings.Join(quoted, ",")+"]")
	}
}

// sortExports recursively orders the exports map: conditions named in the
// configured order come first, anything else keeps its position after them.
func sortExports(p *Package, order []string) {
	raw, changed := reorderedObjectDeep(p.Get("exports"), order)
	if changed {
		_ = p.SetRaw("exports", raw)
	}
}

func reorderedObjectDeep(obj gjson.Result, order []string) (string, bool) {
	rank := make(map[string]int, len(order))
	for i, key := range order {
		rank[key] = i
	}
	type member struct {
		key string
		raw string
	}
	var members []member
	changed := false
	obj.ForEach(func(key, val gjson.Result) bool {
		raw := val.Raw
		if val.IsObject() {
			if inner, innerChanged := reorderedObjectDeep(val, order); innerChanged {
				raw = inner
				changed = true
			}
		}
		members = append(members, member{key.String(), raw})
		return true
	})
	ordered := append([]member(nil), members...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iOK := rank[ordered[i].key]
		rj, jOK := rank[ordered[j].key]
		if iOK && jOK {
			return ri < rj
		}
		return iOK && !jOK
	})
	for i := range ordered {
		if ordered[i].key != members[i].key {
			changed = true
			break
		}
	}
	var b strings.Builder
	b.WriteString("{")
	for i, m := range ordered {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Quote(m.key))
		b.WriteString(":")
		b.WriteString(m.raw)
	}
	b.WriteString("}")
	return b.String(), changed
}

// reorderedObject rebuilds an object's members in the order chosen by the
// given function, preserving each member's raw value.
func reorderedObject(obj gjson.Result, choose func(keys []string) []string) (string, bool) {
	rawByKey := make(map[string]string)
	var keys []string
	obj.ForEach(func(key, val gjson.Result) bool {
		keys = append(keys, key.String())
		rawByKey[key.String()] = val.Raw
		return true
	})
	ordered := choose(keys)
	changed := false
	for i := range keys {
		if keys[i] != ordered[i] {
			changed = true
			break
		}
	}
	if !changed {
		return "", false
	}
	var b strings.Builder
	b.WriteString("{")
	for i, key := range ordered {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Quote(key))
		b.WriteString(":")
		b.WriteString(rawByKey[key])
	}
	b.WriteString("}")
	return b.String(), true
}

// sortTopLevel orders the manifest's top-level keys: those named in sortFirst
// come first in that order, the rest follow alphabetically when sortPackages
// is enabled or in their original order otherwise.
func sortTopLevel(p *Package, sortFirst []string, sortPackages bool) {
	root := gjson.ParseBytes(p.contents)
	if !root.IsObject() {
		return
	}
	raw, changed := reorderedObject(root, func(keys []string) []string {
		firstSet := make(map[string]bool, len(sortFirst))
		for _, key := range sortFirst {
			firstSet[key] = true
		}
		present := make(map[string]bool, len(keys))
		for _, key := range keys {
			present[key] = true
		}
		var ordered []string
		for _, key := range sortFirst {
			if present[key] {
				ordered = append(ordered, key)
			}
		}
		var rest []string
		for _, key := range keys {
			if !firstSet[key] {
				rest = append(rest, key)
			}
		}
		if sortPackages {
			sort.Strings(rest)
		}
		return append(ordered, rest...)
	})
	if changed {
		p.contents = []byte(raw)
	}
}
