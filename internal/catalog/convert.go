package catalog

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// ErrVocabulary reports a breakdown that would lose stock in the target
// vocabulary.
var ErrVocabulary = errors.New("sizes outside the target vocabulary")

// Convert re-expresses p in the target layout, re-encoding its size breakdown
// from one codec's vocabulary and literals to another's.
//
// A block already in the description is rewritten in place for a described
// target and stripped for the others. The sentinel carries over as absence:
// no block, no size columns, or the target's own sentinel. The declared
// total is kept as is, so a product that did not reconcile before still does
// not. A size field that does not decode, or one holding stock in sizes the
// target vocabulary lacks, is returned as an error and p is left unconverted.
func Convert(p Product, from, to *sizes.Codec, target core.Layout, omitZero bool) (Product, error) {
	var (
		q   sizes.Quantities
		has bool
	)
	if field, ok := p.SizeField(from); ok {
		decoded, err := from.Decode(field)
		if err != nil {
			return p, err
		}
		if !from.Equal(decoded, to.Normalize(decoded)) {
			return p, fmt.Errorf("%w: %s", ErrVocabulary, from.Encode(decoded, true))
		}
		q, has = decoded, true
	}

	out := p
	out.Source = target.Source
	out.SizeCell = ""
	out.SizeMissing = false
	out.Columns = nil
	out.Raw = nil

	desc := p.Description
	if from.HasBlock(desc) && !sameMarkers(from, to) {
		desc = from.Strip(desc)
	}

	switch target.Source {
	case core.SizesInColumn:
		out.Description = to.Strip(desc)
		if has {
			out.SizeCell = to.Encode(q, omitZero)
		} else {
			out.SizeMissing = true
		}
	case core.SizesInDescription:
		if has && len(q) > 0 {
			out.Description = to.Replace(desc, q)
		} else {
			out.Description = to.Strip(desc)
		}
	case core.SizesPerColumn:
		out.Description = to.Strip(desc)
		if has && len(q) > 0 {
			out.Columns = to.Normalize(q)
		}
	default:
		return p, fmt.Errorf("layout %q has no size source", target.Key)
	}
	return out, nil
}

func sameMarkers(a, b *sizes.Codec) bool {
	ao, ac := a.Markers()
	bo, bc := b.Markers()
	return ao == bo && ac == bc
}
