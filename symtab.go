package skstr

import "sort"

// DelimiterSymbol is the reserved symbol id that terminates every training
// string. Symbol id 0 is never assigned; it is the sentinel the original
// C implementation used for "no symbol" and is preserved here so symbol ids
// read from older PFSA files stay stable.
const DelimiterSymbol = 1

// DefaultMaxSymSize is the fixed MAXSYMSIZE label-length limit of the source
// implementation. Intern does not check label length against it.
const DefaultMaxSymSize = 64

// Symbol is one entry of a SymbolTable: a label and the number of times it
// has been seen across every arc added through AddArc.
type Symbol struct {
	Label string
	Freq  int
}

// SymbolTable interns symbol labels to small integer ids. Id 0 is an unused
// sentinel and id DelimiterSymbol is always the string terminator, exactly as
// the original table reserved its first live slot for the delimiter before
// any training data was read.
type SymbolTable struct {
	symbols []Symbol
	byLabel map[string]int
	maxSyms int
}

// NewSymbolTable builds a table with the newline delimiter pre-registered.
// maxSyms caps the number of table slots, counting both the unused id-0
// sentinel and the delimiter, so at most maxSyms-1 distinct symbols
// (delimiter included) fit; a value <= 0 disables the cap.
func NewSymbolTable(maxSyms int) *SymbolTable {
	return NewSymbolTableWithDelimiter(maxSyms, "\n")
}

// NewSymbolTableWithDelimiter is NewSymbolTable with an explicit delimiter
// label, for callers honoring a configured `-D` delimiter character other
// than the default newline.
func NewSymbolTableWithDelimiter(maxSyms int, delimiter string) *SymbolTable {
	st := &SymbolTable{
		symbols: make([]Symbol, 2, 16),
		byLabel: make(map[string]int),
		maxSyms: maxSyms,
	}
	st.symbols[DelimiterSymbol] = Symbol{Label: delimiter}
	st.byLabel[delimiter] = DelimiterSymbol
	return st
}

// Intern returns the id for label, allocating a new one if label has not
// been seen before. It fails once the table's maxSyms slots (id-0 sentinel
// included) are all taken.
func (st *SymbolTable) Intern(label string) (int, error) {
	if id, ok := st.byLabel[label]; ok {
		return id, nil
	}
	if st.maxSyms > 0 && len(st.symbols) >= st.maxSyms {
		return 0, errf("symbol table overflow: more than %d distinct symbols", st.maxSyms)
	}
	id := len(st.symbols)
	st.symbols = append(st.symbols, Symbol{Label: label})
	st.byLabel[label] = id
	return id, nil
}

// Lookup returns the id of label without creating it.
func (st *SymbolTable) Lookup(label string) (int, bool) {
	id, ok := st.byLabel[label]
	return id, ok
}

// Label returns the text for a symbol id, or "" if sym is out of range.
func (st *SymbolTable) Label(sym int) string {
	if sym <= 0 || sym >= len(st.symbols) {
		return ""
	}
	return st.symbols[sym].Label
}

// IsDelimiter reports whether sym is the string terminator.
func (st *SymbolTable) IsDelimiter(sym int) bool {
	return sym == DelimiterSymbol
}

// AddFreq adds delta to the occurrence count recorded against sym.
func (st *SymbolTable) AddFreq(sym int, delta int) {
	if sym <= 0 || sym >= len(st.symbols) {
		return
	}
	st.symbols[sym].Freq += delta
}

// Len returns the number of symbols registered, including the delimiter but
// excluding the unused id-0 sentinel.
func (st *SymbolTable) Len() int {
	return len(st.symbols) - 1
}

// Symbols returns every non-delimiter symbol id in ascending order, useful
// for iterating arc alphabets without re-deriving it from a node's arc list.
func (st *SymbolTable) Symbols() []int {
	ids := make([]int, 0, len(st.symbols)-2)
	for id := range st.symbols {
		if id == 0 || id == DelimiterSymbol {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
