// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Ram is a sparse word addressed store. Unwritten words read as zero.
type Ram struct {
	Data map[int64]int32
}

func (m *Ram) Load(addr int64) (value int32, err error) {
	if addr < 0 {
		err = ErrAddressInvalid(addr)
		return
	}

	value = m.Data[addr]
	return
}

func (m *Ram) Store(addr int64, value int32) (err error) {
	if addr < 0 {
		err = ErrAddressInvalid(addr)
		return
	}

	if m.Data == nil {
		m.Data = make(map[int64]int32)
	}
	m.Data[addr] = value
	return
}

func (m *Ram) Reset() {
	clear(m.Data)
}
