package ufo

import "github.com/typeforge/ufo/plist"

// KerningPair is a (left, right) glyph-or-group name pair.
type KerningPair struct {
	Left, Right string
}

// Kerning maps glyph/group name pairs to kerning adjustment values.
type Kerning struct {
	pairs map[KerningPair]float64
	order []KerningPair
}

// NewKerning returns an empty Kerning table.
func NewKerning() *Kerning {
	return &Kerning{pairs: make(map[KerningPair]float64)}
}

// Set records the kerning value for (left, right).
func (k *Kerning) Set(left, right string, value float64) {
	p := KerningPair{left, right}
	if _, ok := k.pairs[p]; !ok {
		k.order = append(k.order, p)
	}
	k.pairs[p] = value
}

// Get returns the kerning value for (left, right), if set.
func (k *Kerning) Get(left, right string) (float64, bool) {
	v, ok := k.pairs[KerningPair{left, right}]
	return v, ok
}

// Pairs returns every (pair, value) in insertion order.
func (k *Kerning) Pairs() []KerningPair {
	out := make([]KerningPair, len(k.order))
	copy(out, k.order)
	return out
}

func loadKerning(d plist.Dict) (*Kerning, error) {
	k := NewKerning()
	for left, rawRight := range d {
		rightDict, err := plist.AsDict(rawRight)
		if err != nil {
			continue
		}
		for right, rawVal := range rightDict {
			val, err := plist.AsFloat(rawVal)
			if err != nil {
				continue
			}
			k.Set(left, right, val)
		}
	}
	return k, nil
}

func saveKerning(k *Kerning) plist.Dict {
	d := plist.Dict{}
	for _, p := range k.order {
		rightDict, ok := d[p.Left].(plist.Dict)
		if !ok {
			rightDict = plist.Dict{}
			d[p.Left] = rightDict
		}
		rightDict[p.Right] = k.pairs[p]
	}
	return d
}
