// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
)

// asBool gets the boolean value of the byte array.
func asBool(t []byte) bool {
	for i := range t {
		if t[i] != 0 {
			// Negative 0 is also considered false.
			if i == len(t)-1 && t[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// fromBool converts a boolean into the appropriate byte array.
func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}

// stack represents a stack of immutable objects to be used with bitcoin
// scripts. Objects may be shared, therefore in usage if a value is to be
// changed, it *must* be deep-copied first to avoid changing other values
// on the stack.
type stack struct {
	stk              [][]byte
	verifyMinimalData bool
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

// PushByteArray adds the given back array to the top of the stack.
func (s *stack) PushByteArray(so []byte) {
	s.stk = append(s.stk, so)
}

// PushInt converts the provided scriptNum to a suitable byte array then
// pushes it onto the top of the stack.
func (s *stack) PushInt(val scriptNum) {
	s.PushByteArray(val.Bytes())
}

// PushBool converts the provided boolean to a suitable byte array then
// pushes it onto the top of the stack.
func (s *stack) PushBool(val bool) {
	s.PushByteArray(fromBool(val))
}

// PopByteArray pops the value off the top of the stack and returns it.
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PopInt pops the value off the top of the stack, converts it into a
// scriptNum, and returns it. The act of converting to a scriptNum
// enforces the consensus rules imposed on data interpreted as numbers.
func (s *stack) PopInt() (scriptNum, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}

	return makeScriptNum(so, s.verifyMinimalData)
}

// PopIntWithMaxLen pops the value off the top of the stack and decodes it
// as a scriptNum allowing up to maxLen bytes, for opcodes such as
// CHECKLOCKTIMEVERIFY and CHECKSEQUENCEVERIFY that widen the default
// 4-byte limit.
func (s *stack) PopIntWithMaxLen(maxLen int) (scriptNum, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}

	return MakeScriptNumWithMaxLen(so, s.verifyMinimalData, maxLen)
}

// PopBool pops the value off the top of the stack, converts it into a
// bool, and returns it.
func (s *stack) PopBool() (bool, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return false, err
	}

	return asBool(so), nil
}

// PeekByteArray returns the nth item on the stack without removing it.
func (s *stack) PeekByteArray(idx int) ([]byte, error) {
	sz := len(s.stk)
	if idx < 0 || idx >= sz {
		return nil, scriptError(ErrInvalidStackOperation,
			"index out of range")
	}

	return s.stk[sz-idx-1], nil
}

// PeekInt returns the nth item on the stack as a script num without
// removing it.
func (s *stack) PeekInt(idx int) (scriptNum, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}

	return makeScriptNum(so, s.verifyMinimalData)
}

// PeekIntWithMaxLen returns the nth item on the stack as a script num,
// decoded with the given maximum byte length, without removing it.
func (s *stack) PeekIntWithMaxLen(idx int, maxLen int) (scriptNum, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}

	return MakeScriptNumWithMaxLen(so, s.verifyMinimalData, maxLen)
}

// PeekBool returns the nth item on the stack as a bool without removing
// it.
func (s *stack) PeekBool(idx int) (bool, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return false, err
	}

	return asBool(so), nil
}

// nipN is an internal function that removes the nth item on the stack and
// returns it.
func (s *stack) nipN(idx int) ([]byte, error) {
	sz := len(s.stk)
	if idx < 0 || idx > sz-1 {
		str := fmt.Sprintf("nip-from-stack at %d is out of range %d", idx, sz)
		return nil, scriptError(ErrInvalidStackOperation, str)
	}
	so := s.stk[sz-idx-1]
	if idx == 0 {
		s.stk = s.stk[:sz-1]
	} else if idx == sz-1 {
		s1 := make([][]byte, sz-1)
		copy(s1, s.stk[1:])
		s.stk = s1
	} else {
		s1 := s.stk[sz-idx : sz]
		s.stk = s.stk[:sz-idx-1]
		s.stk = append(s.stk, s1...)
	}
	return so, nil
}

// NipN removes the nth object on the stack.
func (s *stack) NipN(idx int) error {
	_, err := s.nipN(idx)
	return err
}

// Tuck copies the item at the top of the stack and inserts it before the
// 2nd to top item.
func (s *stack) Tuck() error {
	so2, err := s.PopByteArray()
	if err != nil {
		return err
	}
	so1, err := s.PopByteArray()
	if err != nil {
		return err
	}
	s.PushByteArray(so2)
	s.PushByteArray(so1)
	s.PushByteArray(so2)

	return nil
}

// DropN removes the top N items from the stack.
func (s *stack) DropN(n int) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to drop %d items from stack", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	for ; n > 0; n-- {
		_, err := s.PopByteArray()
		if err != nil {
			return err
		}
	}
	return nil
}

// DupN duplicates the top N items on the stack.
func (s *stack) DupN(n int) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to dup %d stack items", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// RotN rotates the top 3N items on the stack to the left N times.
func (s *stack) RotN(n int) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to rotate %d stack items", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	entry := 3*n - 1
	for i := n; i > 0; i-- {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// SwapN swaps the top N items on the stack with those below them.
func (s *stack) SwapN(n int) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to swap %d stack items", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	entry := 2*n - 1
	for i := 0; i < n; i++ {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// OverN copies N items N items back to the top of the stack.
func (s *stack) OverN(n int) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to perform over on %d stack items", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	entry := 2*n - 1
	for ; n > 0; n-- {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// PickN copies the item N items back in the stack to the top.
func (s *stack) PickN(n int) error {
	so, err := s.PeekByteArray(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// RollN moves the item N items back in the stack to the top.
func (s *stack) RollN(n int) error {
	so, err := s.nipN(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// String returns the stack in a readable format.
func (s *stack) String() string {
	var result string
	for _, stack := range s.stk {
		if len(stack) == 0 {
			result += "00000000  <empty>\n"
		}
		result += fmt.Sprintf("%x\n", stack)
	}
	return result
}
