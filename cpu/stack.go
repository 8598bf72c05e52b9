// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Stack is a sparse array of words indexed by the stack pointer.
type Stack struct {
	Data map[int32]int32
}

func (s *Stack) Store(sp int32, value int32) {
	if s.Data == nil {
		s.Data = make(map[int32]int32)
	}
	s.Data[sp] = value
}

// Load returns the word at sp, and false if it was never written.
func (s *Stack) Load(sp int32) (value int32, ok bool) {
	value, ok = s.Data[sp]
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Reset() {
	clear(s.Data)
}
