package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// Mod is the always-positive remainder of a / m.
func Mod[A constraints.Integer](a A, m A) A {
	return ((a % m) + m) % m
}

// Unique keeps the first occurrence of every element, preserving order.
func Unique[A comparable](items []A) []A {
	seen := make(map[A]bool, len(items))
	res := make([]A, 0, len(items))
	for _, v := range items {
		if seen[v] {
			continue
		}
		seen[v] = true
		res = append(res, v)
	}
	return res
}

func Contains[A comparable](items []A, target A) bool {
	for _, v := range items {
		if v == target {
			return true
		}
	}
	return false
}
