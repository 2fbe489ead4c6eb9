package vm

import "errors"

var (
	errSuperpage = errors.New("vm: superpages are not supported by this kernel")
	errOOM       = errors.New("vm: frame allocator exhausted while walking page table")
	errBadVA     = errors.New("vm: virtual address is not canonical for Sv39")
	errUnmapped  = errors.New("vm: virtual address is not mapped")
	errPerm      = errors.New("vm: access violates page permissions")
)
