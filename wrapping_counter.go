package ebustl

// subtitleNumberCounter hands out the Subtitle Number (SN) the writer
// stamps on each logical subtitle's TTI blocks, wrapping modulo 2^16
// (§4.5: "SN increments per logical subtitle, wrapping modulo 2^16").
type subtitleNumberCounter struct {
	value  uint16
	wrapAt uint16
}

func newSubtitleNumberCounter() subtitleNumberCounter {
	return subtitleNumberCounter{wrapAt: 0xffff}
}

func (c *subtitleNumberCounter) next() uint16 {
	v := c.value
	if c.value == c.wrapAt {
		c.value = 0
	} else {
		c.value++
	}
	return v
}
