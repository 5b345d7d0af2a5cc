package search

import (
	"strings"

	"lintang/bearmaps/pkg/datastructure"

	"golang.org/x/exp/slices"
)

// Normalize buang semua karakter selain huruf ascii & spasi, lalu lower-case.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c == ' ':
			sb.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c + ('a' - 'A'))
		}
	}
	return sb.String()
}

// trieNode. child di simpan sparse per karakter hasil Normalize (a-z & spasi), bukan array 128.
type trieNode struct {
	next      map[byte]*trieNode
	names     map[string]struct{} // nama asli (belum dinormalisasi) dari semua key yang lewat node ini
	locations []datastructure.Location
}

func newTrieNode() *trieNode {
	return &trieNode{
		next:  make(map[byte]*trieNode),
		names: make(map[string]struct{}),
	}
}

/*
Trie. prefix search index nama lokasi. Setiap node di path insertion (root termasuk) menyimpan nama asli
yang di insert, jadi query prefix pendek mengembalikan semua nama yang lebih panjang dengan prefix yang sama.
Node terakhir menyimpan location record untuk exact match.

Dibangun sekali saat ingestion, setelah itu read-only.
*/
type Trie struct {
	root *trieNode
	size int
}

func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Index insert name dengan location record. nama sama di lokasi beda menambah record baru, tidak overwrite.
func (t *Trie) Index(name string, loc datastructure.Location) {
	key := Normalize(name)
	x := t.root
	x.names[name] = struct{}{}
	for i := 0; i < len(key); i++ {
		c := key[i]
		child, ok := x.next[c]
		if !ok {
			child = newTrieNode()
			x.next[c] = child
		}
		x = child
		x.names[name] = struct{}{}
	}
	x.locations = append(x.locations, loc)
	t.size++
}

func (t *Trie) get(key string) *trieNode {
	x := t.root
	for i := 0; i < len(key); i++ {
		next, ok := x.next[key[i]]
		if !ok {
			return nil
		}
		x = next
	}
	return x
}

// PrefixLookup nama asli semua lokasi yang key nya diawali Normalize(prefix). kosong kalau tidak ada.
func (t *Trie) PrefixLookup(prefix string) []string {
	x := t.get(Normalize(prefix))
	if x == nil {
		return []string{}
	}
	names := make([]string, 0, len(x.names))
	for name := range x.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ExactLookup location record yang nama normalisasinya sama persis dengan Normalize(name).
func (t *Trie) ExactLookup(name string) []datastructure.Location {
	x := t.get(Normalize(name))
	if x == nil || len(x.locations) == 0 {
		return []datastructure.Location{}
	}
	locs := make([]datastructure.Location, len(x.locations))
	copy(locs, x.locations)
	return locs
}

func (t *Trie) Contains(name string) bool {
	x := t.get(Normalize(name))
	return x != nil && len(x.locations) > 0
}

// Keys semua nama yang pernah di index.
func (t *Trie) Keys() []string {
	return t.PrefixLookup("")
}

// Size jumlah location record.
func (t *Trie) Size() int {
	return t.size
}
