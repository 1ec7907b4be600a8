package kdgo

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/kdgo/index"
)

// BitmapFilter adapts a roaring bitmap allow-list to a query filter.
// Only point indexes contained in the bitmap are admitted; the bitmap
// must not be mutated while queries using the filter are in flight.
func BitmapFilter(bm *roaring.Bitmap) index.Filter {
	if bm == nil {
		return nil
	}
	return bm.Contains
}

// WithBitmap sets a roaring-bitmap allow-list for one query.
func WithBitmap(bm *roaring.Bitmap) func(o *SearchOptions) {
	return WithFilter(BitmapFilter(bm))
}

// FilterByIDs builds a bitmap-backed filter admitting exactly the given
// point indexes. Convenient for small ad-hoc allow-lists.
func FilterByIDs(ids ...uint32) index.Filter {
	return BitmapFilter(roaring.BitmapOf(ids...))
}
