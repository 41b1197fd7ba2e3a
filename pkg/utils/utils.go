package utils

import "strings"

// Cast ...
func Cast[T any](origin any) (T, bool) {
	val, ok := origin.(T)
	return val, ok
}

// Must ...
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func Map[T, R any](a []T, clb func(T) R) (out []R) {
	for _, el := range a {
		out = append(out, clb(el))
	}
	return
}

func MapJoin[T any](a []T, clb func(T) string, sep string) string {
	return strings.Join(Map(a, clb), sep)
}
