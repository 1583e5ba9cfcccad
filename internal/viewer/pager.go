package viewer

// Pager хранит текущую страницу многостраничного документа. Нумерация с 1.
type Pager struct {
	current int
	count   int
}

// NewPager возвращает пейджер на первой странице. count меньше 1 считается равным 1.
func NewPager(count int) *Pager {
	if count < 1 {
		count = 1
	}
	return &Pager{current: 1, count: count}
}

func (p *Pager) Current() int { return p.current }

func (p *Pager) Count() int { return p.count }

// Next переходит на страницу вперёд, на последней остаётся на месте.
func (p *Pager) Next() int { return p.Go(p.current + 1) }

// Prev переходит на страницу назад, на первой остаётся на месте.
func (p *Pager) Prev() int { return p.Go(p.current - 1) }

// Go переходит на страницу n, ограниченную диапазоном [1, Count].
func (p *Pager) Go(n int) int {
	switch {
	case n < 1:
		n = 1
	case n > p.count:
		n = p.count
	}
	p.current = n
	return p.current
}

func (p *Pager) HasPrev() bool { return p.current > 1 }

func (p *Pager) HasNext() bool { return p.current < p.count }
