package testutil

import "fmt"

// TestAddress returns a deterministic wallet address for index n
func TestAddress(n int) string {
	return fmt.Sprintf("0x%040x", n+1)
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
