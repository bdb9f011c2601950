package ui

import "time"

// CarouselInterval is the fixed auto-advance period of the banner slider.
const CarouselInterval = 3800 * time.Millisecond

type Carousel struct {
	Index int
	Count int
}

func NewCarousel(count int) Carousel {
	if count < 0 {
		count = 0
	}
	return Carousel{Count: count}
}

func (c Carousel) Next() Carousel {
	if c.Count == 0 {
		return c
	}
	c.Index = (c.Index + 1) % c.Count
	return c
}

// Show jumps to idx, wrapping in both directions.
func (c Carousel) Show(idx int) Carousel {
	if c.Count == 0 {
		return c
	}
	c.Index = ((idx % c.Count) + c.Count) % c.Count
	return c
}
