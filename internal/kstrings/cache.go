package kstrings

// Cache is a dense state-id -> k-string-list memo. It is deliberately
// ignorant of the merge that invalidates it: the driver that owns it
// decides whether to Flush (full invalidation) or Discard one absorbed
// state's entry (indistinguishable-merge patch), per spec.md §4.2/§4.3.
type Cache struct {
	graph   Graph
	params  Params
	entries map[int][]KString
}

// NewCache returns an empty cache bound to graph and params.
func NewCache(graph Graph, params Params) *Cache {
	return &Cache{graph: graph, params: params, entries: make(map[int][]KString)}
}

// Get returns the (enumeration-order, coalesced) k-string list for state,
// computing and memoizing it on first access.
func (c *Cache) Get(state int) []KString {
	if list, ok := c.entries[state]; ok {
		return list
	}
	list := GetKStrings(c.graph, state, c.params)
	c.entries[state] = list
	return list
}

// ByProb returns a probability-ordered copy of state's k-string list,
// suitable for the and/or heuristics. The cached entry itself is left in
// enumeration order.
func (c *Cache) ByProb(state int) []KString {
	return sortedCopy(c.Get(state), SortByProb)
}

// ByStr returns a sequence-ordered copy of state's k-string list, suitable
// for the lax/strict/xentropic/vardist heuristics.
func (c *Cache) ByStr(state int) []KString {
	return sortedCopy(c.Get(state), SortByStr)
}

func sortedCopy(list []KString, sortFn func([]KString)) []KString {
	cp := make([]KString, len(list))
	copy(cp, list)
	sortFn(cp)
	return cp
}

// Discard drops exactly one state's cached entry -- used when a merge is
// indistinguishable, since upstream distributions provably don't change.
func (c *Cache) Discard(state int) {
	delete(c.entries, state)
}

// Flush invalidates the entire cache -- used when a merge is not
// indistinguishable, since the graph topology changed in a way that could
// alter any state's reachable k-strings.
func (c *Cache) Flush() {
	c.entries = make(map[int][]KString)
}

// Params returns the enumeration parameters this cache was built with.
func (c *Cache) Params() Params { return c.params }
