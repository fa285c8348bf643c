package common

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

func Deduplicate(list []string) []string {
	res := make([]string, 0, len(list))
	m := make(map[string]struct{})
	for _, v := range list {
		if _, ok := m[v]; ok {
			continue
		}
		m[v] = struct{}{}
		res = append(res, v)
	}
	return res
}

// SplitComma splits a comma separated list, trimming blanks and dropping empty and duplicated items.
func SplitComma(s string) []string {
	fields := strings.Split(s, ",")
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			res = append(res, f)
		}
	}
	return Deduplicate(res)
}

func SliceToSet(slice []string) map[string]struct{} {
	var m = make(map[string]struct{})
	for _, s := range slice {
		m[s] = struct{}{}
	}
	return m
}

// HomeExpand expands a leading '~' with the home directory of current user.
func HomeExpand(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// Expired reports whether t has passed. Zero means never expire.
func Expired(t time.Time) bool {
	return !t.IsZero() && time.Now().After(t)
}

func BytesCopy(b []byte) []byte {
	var a = make([]byte, len(b))
	copy(a, b)
	return a
}
