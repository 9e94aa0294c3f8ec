package state

// PageSize is the number of entity slots in one menu page.
const PageSize = 45

// Pager holds the fixed item list of one menu session and the page being
// shown. Items never change after construction; a new browse builds a new
// Pager.
type Pager[T any] struct {
	items []T
	page  int
	size  int
}

// NewPager copies items into a pager with the given page size. Sizes below one
// fall back to PageSize.
func NewPager[T any](items []T, size int) *Pager[T] {
	if size < 1 {
		size = PageSize
	}
	return &Pager[T]{items: append([]T(nil), items...), size: size}
}

// Len is the number of items.
func (p *Pager[T]) Len() int { return len(p.items) }

// Size is the page size.
func (p *Pager[T]) Size() int { return p.size }

// Page is the current zero-based page.
func (p *Pager[T]) Page() int { return p.page }

// TotalPages is ceil(len/size), never less than one.
func (p *Pager[T]) TotalPages() int {
	n := (len(p.items) + p.size - 1) / p.size
	if n < 1 {
		return 1
	}
	return n
}

func (p *Pager[T]) HasPrevious() bool {
	return p.page > 0
}

func (p *Pager[T]) HasNext() bool {
	return p.page < p.TotalPages()-1
}

// SetPage records page as current. Callers check HasPrevious/HasNext first;
// no range check happens here.
func (p *Pager[T]) SetPage(page int) {
	p.page = page
}

// PageSlice returns the items shown on page, empty when page is out of range.
func (p *Pager[T]) PageSlice(page int) []T {
	start := page * p.size
	if page < 0 || start >= len(p.items) {
		return nil
	}
	end := start + p.size
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// Resolve maps an entity slot on the current page to its item. It reports
// false for slots outside the page or past the end of the list.
func (p *Pager[T]) Resolve(slot int) (T, bool) {
	var zero T
	if slot < 0 || slot >= p.size {
		return zero, false
	}
	index := p.page*p.size + slot
	if index < 0 || index >= len(p.items) {
		return zero, false
	}
	return p.items[index], true
}
