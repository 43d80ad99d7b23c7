package machine

// MEMORY_SIZE is the size of the address space.
const MEMORY_SIZE = 0x10000

// Memory is a flat, byte addressed, little-endian memory.
// Multi-byte accesses need no alignment, and wrap at the top of memory.
type Memory struct {
	M [MEMORY_SIZE]byte
}

// LoadByte returns the byte at address.
func (mem *Memory) LoadByte(address uint16) uint8 {
	return mem.M[address]
}

// StoreByte sets the byte at address.
func (mem *Memory) StoreByte(address uint16, value uint8) {
	mem.M[address] = value
}

// LoadHalfword returns the 16-bit value at address, low byte first.
func (mem *Memory) LoadHalfword(address uint16) uint16 {
	return uint16(mem.M[address]) | uint16(mem.M[address+1])<<8
}

// StoreHalfword sets the 16-bit value at address, low byte first.
func (mem *Memory) StoreHalfword(address uint16, value uint16) {
	mem.M[address] = uint8(value)
	mem.M[address+1] = uint8(value >> 8)
}

// LoadWord returns the 32-bit value at address, low byte first.
func (mem *Memory) LoadWord(address uint16) uint32 {
	return uint32(mem.LoadHalfword(address)) | uint32(mem.LoadHalfword(address+2))<<16
}
